package stress

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/stat"

	"github.com/Aethdv/CPU-stress/workload"
)

// Estimated memory traffic per counted operation, used for the GB/s figure.
const (
	// latency: one read + one write of a 64-bit word.
	latencyBytesPerOp = 16
	// bandwidth: 8 streams x (one read + one write) x 8 bytes.
	bandwidthBytesPerOp = 128
)

// reporter samples the work counter once per second and prints a delta-based
// instantaneous rate until the stop flag is set.
type reporter struct {
	done    chan struct{}
	samples []float64
}

func startReporter(stop *atomic.Bool, counter *atomic.Uint64) *reporter {
	r := &reporter{done: make(chan struct{})}
	go r.loop(stop, counter)
	return r
}

func (r *reporter) loop(stop *atomic.Bool, counter *atomic.Uint64) {
	defer close(r.done)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var last uint64
	for range ticker.C {
		if stop.Load() {
			return
		}
		current := counter.Load()
		rate := current - last
		last = current
		r.samples = append(r.samples, float64(rate))
		fmt.Printf("\r[running] total ops: %s | rate: %s/s    ", FormatOps(current), FormatOps(rate))
	}
}

// wait blocks until the reporter goroutine exits and returns the collected
// per-second rate samples.
func (r *reporter) wait() []float64 {
	<-r.done
	return r.samples
}

// FormatOps renders an operation count with thousands separators.
func FormatOps(n uint64) string {
	return humanize.Comma(int64(n))
}

// PrintSummary writes the final statistics of a completed run. Memory
// workloads additionally report an estimated transfer rate derived from the
// documented bytes-per-operation constants.
func PrintSummary(w io.Writer, res Result) {
	fmt.Fprintf(w, "\n  Elapsed:    %.2fs\n", res.Elapsed)
	fmt.Fprintf(w, "  Total ops:  %s\n", FormatOps(res.TotalOps))
	fmt.Fprintf(w, "  Avg rate:   %s/s\n", FormatOps(res.OpsPerSec))

	if len(res.RateSamples) >= 2 {
		mean := stat.Mean(res.RateSamples, nil)
		stddev := stat.StdDev(res.RateSamples, nil)
		fmt.Fprintf(w, "  Sampled:    mean %s/s, stddev %s/s (%d samples)\n",
			FormatOps(uint64(mean)), FormatOps(uint64(stddev)), len(res.RateSamples))
	}

	if bpo := bytesPerOp(workload.Kind(res.Name)); bpo > 0 && res.Elapsed > 0 {
		gbs := float64(res.TotalOps) * float64(bpo) / res.Elapsed / 1e9
		fmt.Fprintf(w, "  Memory BW:  %.2f GB/s (estimated, %dB per op)\n", gbs, bpo)
	}
}

func bytesPerOp(kind workload.Kind) uint64 {
	switch kind {
	case workload.MemoryLatency:
		return latencyBytesPerOp
	case workload.MemoryBandwidth:
		return bandwidthBytesPerOp
	}
	return 0
}
