package sysinfo

import (
	"fmt"
	"io"
	"os"
)

const (
	// minBufferMB is the floor on any recommendation: below this the memory
	// kernels fit entirely in cache and stop exercising RAM.
	minBufferMB = 32

	// ramSafetyFactor caps the total allocation across all workers at this
	// fraction of detected system RAM.
	ramSafetyFactor = 0.9
)

// BufferSizeMB picks a safe per-worker buffer size in megabytes. The
// multiplier scales the detected L3 size (4 is the balanced baseline for the
// heuristic path). The result is monotonically non-decreasing in multiplier
// and always at least minBufferMB.
func (p Probes) BufferSizeMB(multiplier int) int {
	cores := p.NumCPU()
	if cores < 1 {
		cores = 1
	}

	l3, ok := p.L3CacheMB()
	if !ok {
		return p.heuristicMB(multiplier, cores)
	}

	recommended := l3 * multiplier
	if recommended < minBufferMB {
		recommended = minBufferMB
	}

	if ram, ok := p.TotalRAMMB(); ok {
		total := recommended * cores
		maxSafe := int(float64(ram) * ramSafetyFactor)
		if total > maxSafe {
			adjusted := maxSafe / cores
			if adjusted < minBufferMB {
				adjusted = minBufferMB
			}
			fmt.Fprintf(p.diag(), "[auto-detect] L3 cache %d MB -> %d MB per worker (%dx multiplier)\n",
				l3, recommended, multiplier)
			fmt.Fprintf(p.diag(), "[warning] total allocation %d MB (%d workers x %d MB) exceeds %d%% of system RAM (%d MB total, %d MB limit); reducing to %d MB per worker\n",
				total, cores, recommended, int(ramSafetyFactor*100), ram, maxSafe, adjusted)
			return adjusted
		}
	}

	fmt.Fprintf(p.diag(), "[auto-detect] L3 cache %d MB -> %d MB per worker (%dx multiplier)\n",
		l3, recommended, multiplier)
	return recommended
}

// heuristicMB falls back to a core-count-keyed table when the L3 size is
// unknown, scaled linearly around the multiplier-4 baseline.
func (p Probes) heuristicMB(multiplier, cores int) int {
	var base int
	switch {
	case cores <= 2:
		base = 32
	case cores <= 4:
		base = 64
	case cores <= 8:
		base = 128
	case cores <= 16:
		base = 192
	case cores <= 32:
		base = 256
	case cores <= 64:
		base = 512
	case cores <= 128:
		base = 768
	default:
		base = 1024
	}

	mb := base * multiplier / 4
	if mb < minBufferMB {
		mb = minBufferMB
	}
	fmt.Fprintf(p.diag(), "[auto-detect] L3 cache unknown -> heuristic %d MB (%dx multiplier, %d CPUs)\n",
		mb, multiplier, cores)
	return mb
}

func (p Probes) diag() io.Writer {
	if p.Diag != nil {
		return p.Diag
	}
	return os.Stderr
}
