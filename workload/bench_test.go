package workload

import "testing"

func BenchmarkStressInteger(b *testing.B) {
	var acc uint64
	StressInteger(uint64(b.N), &acc)
	Consume(acc, 0, nil)
}

func BenchmarkStressFloat(b *testing.B) {
	var acc float64
	StressFloat(uint64(b.N), &acc)
	Consume(0, acc, nil)
}

func BenchmarkStressMemoryLatency(b *testing.B) {
	buf, err := NewBuffer(8)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	StressMemoryLatency(uint64(b.N), buf)
	Consume(0, 0, buf)
}

func BenchmarkStressMemoryBandwidth(b *testing.B) {
	buf, err := NewBuffer(8)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	StressMemoryBandwidth(uint64(b.N), buf)
	Consume(0, 0, buf)
}
