// Command locus generates sustained, configurable CPU and memory-subsystem
// load across all available cores, for thermal/stability testing and for
// comparing throughput across workload types.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/Aethdv/CPU-stress/stress"
	"github.com/Aethdv/CPU-stress/sysinfo"
	"github.com/Aethdv/CPU-stress/workload"
)

var (
	durationFlag   = flag.Int("d", 0, "duration in seconds (0 = run until Ctrl+C)")
	threadsFlag    = flag.Int("j", 0, "number of worker threads (0 = one per core)")
	workloadFlag   = flag.String("w", "mixed", "workload: integer, float, memory-latency, memory-bandwidth, mixed")
	memoryFlag     = flag.Int("m", 0, "memory buffer MB per thread (0 = auto-detect, overrides -x)")
	multiplierFlag = flag.Int("x", 4, "memory multiplier for auto-detection: 2=light, 4=balanced, 8=aggressive, 16=extreme")
	batchFlag      = flag.Uint64("b", 100_000, "batch size (iterations between stop checks)")
	quietFlag      = flag.Bool("q", false, "disable progress reporting")
	benchmarkFlag  = flag.Bool("B", false, "run all workloads sequentially and print a comparison table")
	jsonFlag       = flag.Bool("json", false, "emit benchmark results as JSON instead of a table")
)

func run() error {
	flag.Parse()

	kind, err := workload.ParseKind(*workloadFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v, using mixed\n", err)
		kind = workload.Mixed
	}

	threads := *threadsFlag
	if threads == 0 {
		threads = runtime.NumCPU()
	}

	memoryMB := *memoryFlag
	autoMemory := memoryMB == 0
	if autoMemory {
		memoryMB = sysinfo.Detect().BufferSizeMB(*multiplierFlag)
	}

	cfg := stress.Config{
		Kind:      kind,
		Threads:   threads,
		MemoryMB:  memoryMB,
		BatchSize: *batchFlag,
		Duration:  time.Duration(*durationFlag) * time.Second,
		Quiet:     *quietFlag,
	}

	if *benchmarkFlag {
		return runBenchmark(cfg, autoMemory)
	}
	return runSingle(cfg, autoMemory)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

const rule = "════════════════════════════════════════════════════════════"

func printHeader(title string, cfg stress.Config, autoMemory bool) {
	fmt.Println(rule)
	fmt.Printf("  %s\n", title)
	fmt.Println(rule)
	fmt.Printf("  Threads:    %d\n", cfg.Threads)
	if autoMemory {
		fmt.Printf("  Memory buf: %d MB per thread (%dx multiplier)\n", cfg.MemoryMB, *multiplierFlag)
	} else {
		fmt.Printf("  Memory buf: %d MB per thread (manual)\n", cfg.MemoryMB)
	}
	fmt.Printf("  Batch size: %s\n", stress.FormatOps(cfg.BatchSize))
}

func runSingle(cfg stress.Config, autoMemory bool) error {
	printHeader("CPU STRESS TEST", cfg, autoMemory)
	fmt.Printf("  Workload:   %s\n", cfg.Kind)
	if cfg.Duration == 0 {
		fmt.Println("  Duration:   unlimited (Ctrl+C to stop)")
	} else {
		fmt.Printf("  Duration:   %ds\n", *durationFlag)
	}
	fmt.Println("  WARNING: this will push the CPU to ~100%. Monitor temperatures!")
	fmt.Println(rule)

	res, err := stress.Run(cfg)
	if err != nil {
		return err
	}
	fmt.Println("\n" + rule)
	fmt.Println("  STRESS TEST COMPLETE")
	fmt.Println(rule)
	stress.PrintSummary(os.Stdout, res)
	return nil
}

func runBenchmark(cfg stress.Config, autoMemory bool) error {
	if cfg.Duration == 0 {
		return fmt.Errorf("benchmark mode requires a duration (e.g. -d 60): %w", stress.ErrNoDuration)
	}

	printHeader("CPU STRESS BENCHMARK", cfg, autoMemory)
	fmt.Printf("  Duration:   %ds per workload\n", *durationFlag)
	fmt.Printf("  Total time: ~%ds (%d workloads)\n", *durationFlag*len(workload.Kinds()), len(workload.Kinds()))
	fmt.Println(rule)

	results, err := stress.RunBenchmark(cfg)
	if err != nil {
		return err
	}

	if *jsonFlag {
		out, err := json.Marshal(results)
		if err != nil {
			return fmt.Errorf("marshalling results: %v", err)
		}
		fmt.Println(string(out))
		return nil
	}

	printTable(results, cfg.Threads)
	return nil
}

func printTable(results []stress.Result, threads int) {
	rel := stress.Relative(results)

	fmt.Println("\n  BENCHMARK RESULTS")
	fmt.Println("┌──────────────────┬─────────────────┬──────────┬─────────────────┐")
	fmt.Println("│ Workload         │      Rate       │ Relative │ Per-Thread Rate │")
	fmt.Println("├──────────────────┼─────────────────┼──────────┼─────────────────┤")
	for _, r := range results {
		fmt.Printf("│ %-16s │ %13s/s │ %7.1fx │ %13s/s │\n",
			displayName(r.Name),
			stress.FormatOps(r.OpsPerSec),
			rel[r.Name],
			stress.FormatOps(stress.PerThread(r, threads)))
	}
	fmt.Println("└──────────────────┴─────────────────┴──────────┴─────────────────┘")
	fmt.Printf("\nBaseline: mixed = 1.0x | Threads: %d\n", threads)
}

func displayName(name string) string {
	parts := strings.Split(name, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "-")
}
