package workload

import "fmt"

// Kind selects which kernel(s) a worker executes.
type Kind string

const (
	Integer         Kind = "integer"
	Float           Kind = "float"
	MemoryLatency   Kind = "memory-latency"
	MemoryBandwidth Kind = "memory-bandwidth"

	// Mixed runs the integer, float, and memory-latency kernels at a third
	// of the batch size each per cycle.
	Mixed Kind = "mixed"
)

// ParseKind maps a command-line spelling to a Kind. "memory" is accepted as
// an alias for memory-latency.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "integer":
		return Integer, nil
	case "float":
		return Float, nil
	case "memory", "memory-latency":
		return MemoryLatency, nil
	case "memory-bandwidth":
		return MemoryBandwidth, nil
	case "mixed":
		return Mixed, nil
	}
	return "", fmt.Errorf("unknown workload %q", s)
}

// Kinds returns every workload kind in benchmark execution order.
func Kinds() []Kind {
	return []Kind{Integer, Float, Mixed, MemoryLatency, MemoryBandwidth}
}
