// Package workload provides the synthetic kernels that generate load on the
// integer units, floating-point units, and memory subsystem. Each kernel is a
// pure function over thread-local state: no I/O, no allocation, no shared
// mutable state inside a call.
package workload

import (
	"math"
	"math/bits"
	"sync/atomic"
)

const (
	// Knuth's multiplicative hash constant (odd, 64-bit).
	integerMix = 0x9e3779b97f4a7c15

	// Knuth MMIX LCG multiplier.
	latencyMul = 6364136223846793005

	goldenRatio = 1.618033988749895
)

// StressInteger hammers the integer ALUs: multiply, XOR-fold, rotate, and a
// wrapping add into acc per iteration. uint64 arithmetic wraps, so overflow
// is defined behavior here, not an error.
func StressInteger(iterations uint64, acc *uint64) {
	for i := uint64(0); i < iterations; i++ {
		y := i * integerMix
		z := y ^ (y >> 17)
		*acc += bits.RotateLeft64(z, 31)
	}
}

// StressFloat exercises the FPU with sqrt, sin+cos, and Log1p per iteration.
// The accumulator stays finite for every non-negative iteration count: Log1p
// of an absolute value never produces NaN or -Inf.
func StressFloat(iterations uint64, acc *float64) {
	for i := uint64(0); i < iterations; i++ {
		x := float64(i) + 1
		y := math.Sqrt(x) * goldenRatio
		z := math.Sin(y) + math.Cos(y)
		*acc += math.Log1p(math.Abs(z))
	}
}

// StressMemoryLatency walks a single pointer-chasing chain over buf. The
// next index depends on the value just read, which defeats hardware
// prefetching and serializes the loads, approximating real access latency.
// No-op on an empty buffer.
func StressMemoryLatency(iterations uint64, buf []uint64) {
	if len(buf) == 0 {
		return
	}
	n := uint64(len(buf))
	index := uint64(0)
	for i := uint64(0); i < iterations; i++ {
		v := buf[index]*latencyMul + i
		buf[index] = v
		index = ((v >> 17) ^ i) % n
	}
}

// streams is the number of independent walk sequences in the bandwidth
// kernel, chosen to exercise memory-level parallelism.
const streams = 8

// Pairwise-independent odd multipliers, one per stream: Knuth MMIX, the
// golden-ratio constant, splitmix64, murmur3 and xorshift finalizers.
var streamMul = [streams]uint64{
	6364136223846793005,
	0x9e3779b97f4a7c15,
	0xbf58476d1ce4e5b9,
	0x94d049bb133111eb,
	0xff51afd7ed558ccd,
	0xc4ceb9fe1a85ec53,
	0x2545f4914f6cdd1d,
	0xd6e8feb86659fd93,
}

// StressMemoryBandwidth drives 8 interleaved streams over buf. Per outer
// iteration the reads, computes, and writes happen in separate phases so the
// 8 accesses carry no data dependency between each other and can issue in
// parallel, the deliberate contrast to the serialized latency chain. No-op
// on an empty buffer.
func StressMemoryBandwidth(iterations uint64, buf []uint64) {
	if len(buf) == 0 {
		return
	}
	n := uint64(len(buf))

	var idx [streams]uint64
	for s := range idx {
		idx[s] = (n / streams) * uint64(s)
	}

	var vals, next [streams]uint64
	for i := uint64(0); i < iterations; i++ {
		for s := 0; s < streams; s++ {
			vals[s] = buf[idx[s]]
		}
		for s := 0; s < streams; s++ {
			next[s] = vals[s]*streamMul[s] + i
		}
		for s := 0; s < streams; s++ {
			buf[idx[s]] = next[s]
		}
		for s := 0; s < streams; s++ {
			idx[s] = (next[s] >> 17) % n
		}
	}
}

var sink atomic.Uint64

// Consume forces a worker's final accumulators and buffer to be observably
// used, so the kernel loops cannot be eliminated as dead code. Safe to call
// from many goroutines.
func Consume(intAcc uint64, floatAcc float64, buf []uint64) {
	v := intAcc ^ math.Float64bits(floatAcc)
	if len(buf) > 0 {
		v ^= buf[len(buf)-1]
	}
	sink.Add(v)
}
