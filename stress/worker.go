// Package stress drives measured load runs: it fans worker goroutines out
// over the workload kernels, accounts their progress in shared atomics, and
// turns the totals into throughput results.
package stress

import (
	"fmt"
	"sync/atomic"

	"github.com/Aethdv/CPU-stress/workload"
)

// worker runs the configured kernel in batches until stop is observed true,
// adding each completed batch to counter. The batch size is the scheduling
// quantum: a stop request goes unnoticed for at most one batch's wall-clock
// duration.
//
// Only Running -> Terminating: once stop is seen true the worker exits, it
// never resumes.
func worker(id int, cfg Config, stop *atomic.Bool, counter *atomic.Uint64) error {
	buf, err := workload.NewBuffer(cfg.MemoryMB)
	if err != nil {
		return fmt.Errorf("worker %d: %w", id, err)
	}

	// Seed the accumulators from the worker index so threads do not
	// converge on identical values.
	intAcc := uint64(id)
	floatAcc := float64(id)

	for !stop.Load() {
		switch cfg.Kind {
		case workload.Integer:
			workload.StressInteger(cfg.BatchSize, &intAcc)
		case workload.Float:
			workload.StressFloat(cfg.BatchSize, &floatAcc)
		case workload.MemoryLatency:
			workload.StressMemoryLatency(cfg.BatchSize, buf)
		case workload.MemoryBandwidth:
			workload.StressMemoryBandwidth(cfg.BatchSize, buf)
		default:
			workload.StressInteger(cfg.BatchSize/3, &intAcc)
			workload.StressFloat(cfg.BatchSize/3, &floatAcc)
			workload.StressMemoryLatency(cfg.BatchSize/3, buf)
		}
		counter.Add(cfg.BatchSize)
	}

	workload.Consume(intAcc, floatAcc, buf)
	return nil
}
