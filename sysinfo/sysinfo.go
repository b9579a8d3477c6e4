// Package sysinfo probes the host's cache and memory topology and sizes the
// per-worker stress buffers against it.
package sysinfo

import (
	"io"
	"runtime"

	"github.com/klauspost/cpuid/v2"
	"github.com/shirou/gopsutil/v4/mem"
)

// Probes bundles the platform detection hooks consumed by the sizing
// advisor. Detect returns the real host probes; tests substitute their own.
// Every probe is best-effort: a false second return means unknown, never an
// aborted run.
type Probes struct {
	L3CacheMB  func() (int, bool)
	TotalRAMMB func() (int, bool)
	NumCPU     func() int

	// Diag receives sizing diagnostics. Nil means os.Stderr.
	Diag io.Writer
}

// Detect returns probes backed by the running host.
func Detect() Probes {
	return Probes{
		L3CacheMB:  detectL3CacheMB,
		TotalRAMMB: detectTotalRAMMB,
		NumCPU:     runtime.NumCPU,
	}
}

func detectL3CacheMB() (int, bool) {
	l3 := cpuid.CPU.Cache.L3
	if l3 <= 0 {
		return 0, false
	}
	mb := l3 / (1 << 20)
	if mb <= 0 {
		return 0, false
	}
	return mb, true
}

func detectTotalRAMMB() (int, bool) {
	vm, err := mem.VirtualMemory()
	if err != nil || vm.Total == 0 {
		return 0, false
	}
	return int(vm.Total / (1 << 20)), true
}
