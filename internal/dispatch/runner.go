// Package dispatch drives a scheduler's execution passes from a periodic
// clock source for the lifetime of the process.
//
// Run arms the wakeup source, Monitor consumes wakeups on the calling
// goroutine and calls ExecuteDue for each one, so passes never overlap.
// Callbacks run on that goroutine too: a slow callback delays every later
// task and the next wakeup.
package dispatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/warpdl/warptimer/internal/clock"
	"github.com/warpdl/warptimer/internal/scheduler"
	"github.com/warpdl/warptimer/pkg/logger"
)

// Sentinel errors for the dispatch runner.
var (
	// ErrAlreadyRunning is returned when Run is called on an armed runner,
	// or Monitor is entered twice.
	ErrAlreadyRunning = errors.New("dispatch loop is already running")

	// ErrNotRunning is returned when Monitor or Shutdown is called before Run.
	ErrNotRunning = errors.New("dispatch loop is not running")
)

// Executor is the part of the scheduler the loop depends on.
type Executor interface {
	ExecuteDue() error
}

// Config holds the configuration for the dispatch runner.
type Config struct {
	// Interval is the wakeup cadence. Zero means clock.DefaultInterval.
	Interval time.Duration

	// Strategy selects the wakeup source. Empty means clock.StrategyTicker.
	Strategy clock.Strategy
}

// Dependencies holds the external dependencies for the dispatch runner.
// This enables dependency injection for testing.
type Dependencies struct {
	// SourceFactory builds the wakeup source for a strategy.
	// If nil, clock.NewSource is used.
	SourceFactory func(clock.Strategy) (clock.Source, error)

	// Logger receives lifecycle messages and callback failures.
	// If nil, messages are discarded.
	Logger logger.Logger

	// OnFailure is called with the error of every failed execution pass,
	// after it has been logged. If nil, failures are only logged.
	OnFailure func(error)
}

// Runner manages the dispatch loop lifecycle.
type Runner struct {
	config *Config
	deps   *Dependencies
	exec   Executor

	mu         sync.Mutex
	running    bool
	monitoring bool
	source     clock.Source
	stop       chan struct{}
}

// New creates a runner that drives exec.
// If config is nil, default values are used.
// If deps is nil, default dependencies (using clock.NewSource) are used.
func New(exec Executor, config *Config, deps *Dependencies) *Runner {
	return &Runner{
		config: applyConfigDefaults(config),
		deps:   applyDependencyDefaults(deps),
		exec:   exec,
	}
}

// applyConfigDefaults returns a Config with default values applied for zero fields.
func applyConfigDefaults(config *Config) *Config {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	if cfg.Interval <= 0 {
		cfg.Interval = clock.DefaultInterval
	}
	if cfg.Strategy == "" {
		cfg.Strategy = clock.StrategyTicker
	}
	return &cfg
}

// applyDependencyDefaults returns Dependencies with default values applied.
func applyDependencyDefaults(deps *Dependencies) *Dependencies {
	d := Dependencies{}
	if deps != nil {
		d = *deps
	}
	if d.SourceFactory == nil {
		d.SourceFactory = clock.NewSource
	}
	if d.Logger == nil {
		d.Logger = logger.NewNopLogger()
	}
	return &d
}

// Config returns the runner's configuration.
func (r *Runner) Config() *Config {
	return r.config
}

// Run arms the wakeup source. It fails with clock.ErrUnsupportedPlatform
// when the configured strategy cannot run on this host.
func (r *Runner) Run() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return ErrAlreadyRunning
	}

	src, err := r.deps.SourceFactory(r.config.Strategy)
	if err != nil {
		return err
	}
	if err := src.Start(r.config.Interval); err != nil {
		return err
	}

	r.source = src
	r.stop = make(chan struct{})
	r.running = true
	r.deps.Logger.Info("dispatch armed: %s wakeups every %s", r.config.Strategy, r.config.Interval)
	return nil
}

// Monitor runs the dispatch loop on the calling goroutine until ctx is
// canceled or Shutdown is called. One execution pass runs immediately, then
// one per wakeup. Callback failures are logged and the loop continues.
// Returns ctx.Err() on cancellation and nil after Shutdown.
func (r *Runner) Monitor(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return ErrNotRunning
	}
	if r.monitoring {
		r.mu.Unlock()
		return ErrAlreadyRunning
	}
	r.monitoring = true
	src, stop := r.source, r.stop
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.monitoring = false
		r.mu.Unlock()
	}()

	r.pass()
	last := src.Now()
	for {
		select {
		case <-ctx.Done():
			r.cleanupOnStop()
			return ctx.Err()
		case <-stop:
			return nil
		case <-src.C():
			now := src.Now()
			if lag := now.Sub(last); lag > 2*r.config.Interval {
				r.deps.Logger.Warning("wakeup delayed: %s since previous pass", lag.Round(time.Millisecond))
			}
			last = now
			r.pass()
		}
	}
}

// Start arms the source and monitors until ctx is canceled.
func (r *Runner) Start(ctx context.Context) error {
	if err := r.Run(); err != nil {
		return err
	}
	return r.Monitor(ctx)
}

// pass performs one execution pass and reports its failures.
func (r *Runner) pass() {
	err := r.exec.ExecuteDue()
	if err == nil {
		return
	}
	if errors.Is(err, scheduler.ErrExecuting) {
		r.deps.Logger.Warning("skipped wakeup: %v", err)
		return
	}
	if failures := scheduler.TaskErrors(err); len(failures) > 0 {
		for _, f := range failures {
			r.deps.Logger.Error("task %d failed: %v", f.ID, f.Err)
		}
	} else {
		r.deps.Logger.Error("execution pass failed: %v", err)
	}
	if r.deps.OnFailure != nil {
		r.deps.OnFailure(err)
	}
}

// Shutdown stops the loop and disarms the wakeup source.
// Returns ErrNotRunning if the runner is not armed.
func (r *Runner) Shutdown() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return ErrNotRunning
	}
	close(r.stop)
	r.disarmLocked()
	return nil
}

// cleanupOnStop disarms the source when Monitor exits on cancellation.
func (r *Runner) cleanupOnStop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		close(r.stop)
		r.disarmLocked()
	}
}

// disarmLocked stops the source. Caller must hold the mutex.
func (r *Runner) disarmLocked() {
	r.running = false
	if r.source != nil {
		r.source.Stop()
		r.source = nil
	}
	r.deps.Logger.Info("dispatch stopped")
}

// IsRunning returns true while the wakeup source is armed.
func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
