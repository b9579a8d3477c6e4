package stress

import (
	"errors"
	"fmt"

	"github.com/Aethdv/CPU-stress/workload"
)

// ErrNoDuration reports a benchmark requested without a duration. An
// unbounded per-kind run would never let the orchestrator move on to the
// next kind, so this is a configuration error and no workers are spawned.
var ErrNoDuration = errors.New("benchmark requires a non-zero duration")

// RunBenchmark measures every workload kind sequentially, each for the same
// duration, and returns one Result per kind in execution order.
func RunBenchmark(cfg Config) ([]Result, error) {
	if cfg.Duration <= 0 {
		return nil, ErrNoDuration
	}

	results := make([]Result, 0, len(workload.Kinds()))
	for _, kind := range workload.Kinds() {
		runCfg := cfg
		runCfg.Kind = kind
		if !cfg.Quiet {
			fmt.Printf("\n[>] running %s workload...\n", kind)
		}
		res, err := Run(runCfg)
		if err != nil {
			return nil, fmt.Errorf("benchmark %s: %v", kind, err)
		}
		if !cfg.Quiet {
			fmt.Printf("\r[ok] %s: %s ops in %.2fs            \n", kind, FormatOps(res.TotalOps), res.Elapsed)
		}
		results = append(results, res)
	}
	return results, nil
}

// Relative normalizes each result's rate against the mixed baseline. Every
// kind reports 1.0 when the mixed rate is absent or zero.
func Relative(results []Result) map[string]float64 {
	var mixed uint64
	for _, r := range results {
		if r.Name == string(workload.Mixed) {
			mixed = r.OpsPerSec
		}
	}

	rel := make(map[string]float64, len(results))
	for _, r := range results {
		if mixed == 0 {
			rel[r.Name] = 1.0
		} else {
			rel[r.Name] = float64(r.OpsPerSec) / float64(mixed)
		}
	}
	return rel
}

// PerThread returns a result's rate divided across the worker count.
func PerThread(res Result, threads int) uint64 {
	if threads < 1 {
		threads = 1
	}
	return res.OpsPerSec / uint64(threads)
}
