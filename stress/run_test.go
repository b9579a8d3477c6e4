package stress

import (
	"errors"
	"math"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aethdv/CPU-stress/workload"
)

// noInterrupt keeps tests away from the process-wide SIGINT handler.
func noInterrupt(func()) error { return nil }

func TestRunIntegerEndToEnd(t *testing.T) {
	cfg := Config{
		Kind:            workload.Integer,
		Threads:         4,
		MemoryMB:        1,
		BatchSize:       10_000,
		Duration:        time.Second,
		Quiet:           true,
		NotifyInterrupt: noInterrupt,
	}

	res, err := Run(cfg)
	require.NoError(t, err)

	assert.Equal(t, "integer", res.Name)
	assert.Greater(t, res.TotalOps, uint64(0))
	assert.GreaterOrEqual(t, res.Elapsed, 1.0)

	// rate = total / max(elapsed_seconds, 1)
	secs := uint64(res.Elapsed)
	if secs < 1 {
		secs = 1
	}
	assert.Equal(t, res.TotalOps/secs, res.OpsPerSec)
}

func TestRunStopsOnInterrupt(t *testing.T) {
	var interrupt func()
	cfg := Config{
		Kind:      workload.Float,
		Threads:   2,
		MemoryMB:  1,
		BatchSize: 5_000,
		Duration:  0, // until interrupted
		Quiet:     true,
		NotifyInterrupt: func(cb func()) error {
			interrupt = cb
			return nil
		},
	}

	done := make(chan struct{})
	var res Result
	var err error
	go func() {
		defer close(done)
		res, err = Run(cfg)
	}()

	time.Sleep(250 * time.Millisecond)
	require.NotNil(t, interrupt, "interrupt callback should be registered before workers start")
	interrupt()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not terminate after interrupt")
	}
	require.NoError(t, err)
	assert.Greater(t, res.TotalOps, uint64(0))
}

func TestRunSurvivesInterruptRegistrationFailure(t *testing.T) {
	cfg := Config{
		Kind:      workload.Integer,
		Threads:   1,
		MemoryMB:  1,
		BatchSize: 1_000,
		Duration:  200 * time.Millisecond,
		Quiet:     true,
		NotifyInterrupt: func(func()) error {
			return errors.New("no signal support")
		},
	}

	res, err := Run(cfg)
	require.NoError(t, err)
	assert.Greater(t, res.TotalOps, uint64(0))
}

func TestRunWorkerAllocationFailure(t *testing.T) {
	cfg := Config{
		Kind:            workload.MemoryLatency,
		Threads:         2,
		MemoryMB:        math.MaxInt,
		BatchSize:       1_000,
		Duration:        200 * time.Millisecond,
		Quiet:           true,
		NotifyInterrupt: noInterrupt,
	}

	_, err := Run(cfg)
	assert.ErrorIs(t, err, workload.ErrBufferTooLarge)
}

func TestRunWorkerAllocationFailureUnbounded(t *testing.T) {
	// No duration and no interrupt: the run must still terminate once every
	// worker has died at startup.
	cfg := Config{
		Kind:            workload.MemoryLatency,
		Threads:         2,
		MemoryMB:        math.MaxInt,
		BatchSize:       1_000,
		Duration:        0,
		Quiet:           true,
		NotifyInterrupt: noInterrupt,
	}

	done := make(chan error, 1)
	go func() {
		_, err := Run(cfg)
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, workload.ErrBufferTooLarge)
	case <-time.After(3 * time.Second):
		t.Fatal("run did not terminate after worker startup failure")
	}
}

func TestNotifySIGINTReplacesCallback(t *testing.T) {
	var stale atomic.Bool
	require.NoError(t, notifySIGINT(func() { stale.Store(true) }))

	fired := make(chan struct{})
	require.NoError(t, notifySIGINT(func() {
		select {
		case <-fired:
		default:
			close(fired)
		}
	}))

	p, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, p.Signal(os.Interrupt))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("interrupt callback did not fire")
	}
	assert.False(t, stale.Load(), "replaced callback must not fire")
}

func TestRunRejectsZeroThreads(t *testing.T) {
	_, err := Run(Config{Kind: workload.Integer, NotifyInterrupt: noInterrupt})
	assert.Error(t, err)
}
