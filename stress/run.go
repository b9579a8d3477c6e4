package stress

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Aethdv/CPU-stress/workload"
)

// pollInterval bounds how long the coordinator takes to notice a stop
// request or an expired deadline.
const pollInterval = 100 * time.Millisecond

// Config describes one measured run.
type Config struct {
	Kind      workload.Kind
	Threads   int
	MemoryMB  int
	BatchSize uint64

	// Duration zero means run until externally interrupted.
	Duration time.Duration

	// Quiet disables the once-per-second progress reporter.
	Quiet bool

	// NotifyInterrupt registers cb to run once when the user requests early
	// termination. Nil selects the default SIGINT handler. A registration
	// error is logged and the run proceeds without early-interrupt support.
	NotifyInterrupt func(cb func()) error
}

// Result is the measured outcome of one run.
type Result struct {
	Name      string  `json:"name"`
	TotalOps  uint64  `json:"total_ops"`
	Elapsed   float64 `json:"elapsed_sec"`
	OpsPerSec uint64  `json:"ops_per_sec"`

	// RateSamples holds the reporter's per-second instantaneous rates.
	RateSamples []float64 `json:"-"`
}

// Run drives one measured run: it spawns the workers, waits for the
// deadline or an interrupt, joins everything, and computes the final rate.
// A worker that fails at startup or panics makes Run return an error after
// the remaining workers have been joined.
func Run(cfg Config) (Result, error) {
	if cfg.Threads < 1 {
		return Result{}, fmt.Errorf("run %s: thread count must be at least 1", cfg.Kind)
	}

	// The stop flag and work counter are the only cross-worker shared
	// state; both are owned here and passed down explicitly.
	var (
		stop    atomic.Bool
		counter atomic.Uint64
	)

	notify := cfg.NotifyInterrupt
	if notify == nil {
		notify = notifySIGINT
	}
	if err := notify(func() {
		fmt.Fprintln(os.Stderr, "\n[!] interrupt received, stopping workers")
		stop.Store(true)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: interrupt handler not registered: %v\n", err)
	}

	errs := make([]error, cfg.Threads)
	var wg sync.WaitGroup
	for id := 0; id < cfg.Threads; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[id] = fmt.Errorf("worker %d panicked: %v", id, r)
				}
				// A failed worker ends the whole run: without this an
				// interrupt-less run would poll forever over dead workers.
				if errs[id] != nil {
					stop.Store(true)
				}
			}()
			errs[id] = worker(id, cfg, &stop, &counter)
		}(id)
	}

	start := time.Now()

	var rep *reporter
	if !cfg.Quiet {
		rep = startReporter(&stop, &counter)
	}

	for !stop.Load() {
		time.Sleep(pollInterval)
		if cfg.Duration > 0 && time.Since(start) >= cfg.Duration {
			stop.Store(true)
		}
	}
	wg.Wait()
	elapsed := time.Since(start)

	var samples []float64
	if rep != nil {
		samples = rep.wait()
	}

	for _, err := range errs {
		if err != nil {
			return Result{}, err
		}
	}

	total := counter.Load()
	rate := total
	if secs := uint64(elapsed.Seconds()); secs > 0 {
		rate = total / secs
	}
	return Result{
		Name:        string(cfg.Kind),
		TotalOps:    total,
		Elapsed:     elapsed.Seconds(),
		OpsPerSec:   rate,
		RateSamples: samples,
	}, nil
}

var (
	sigOnce sync.Once
	sigCb   atomic.Value // func()
)

// notifySIGINT wires cb to SIGINT delivery. The signal channel and its
// goroutine are registered once per process; each run replaces the active
// callback, so sequential benchmark runs do not accumulate registrations
// whose stale callbacks would all fire on one interrupt.
func notifySIGINT(cb func()) error {
	sigCb.Store(cb)
	sigOnce.Do(func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		go func() {
			for range ch {
				if f, ok := sigCb.Load().(func()); ok {
					f()
				}
			}
		}()
	})
	return nil
}
