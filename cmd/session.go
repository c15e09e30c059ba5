package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/warpdl/warptimer/common"
	"github.com/warpdl/warptimer/internal/clock"
	"github.com/warpdl/warptimer/internal/dispatch"
	"github.com/warpdl/warptimer/internal/journal"
	"github.com/warpdl/warptimer/internal/scheduler"
	"github.com/warpdl/warptimer/pkg/logger"
)

// sessionOptions configures one run or daemon invocation.
type sessionOptions struct {
	Strategy clock.Strategy
	Interval time.Duration
	Journal  bool

	// Clock and SourceFactory default to the wall clock and
	// clock.NewSource. Tests replace both with a clock.Fake.
	Clock         clock.Clock
	SourceFactory func(clock.Strategy) (clock.Source, error)

	Stdout io.Writer
	Stderr io.Writer
}

// session owns the scheduler, the dispatch runner driving it and the
// optional journal recording its outcomes.
type session struct {
	log     logger.Logger
	sched   *scheduler.Scheduler
	runner  *dispatch.Runner
	journal *journal.Journal
	shell   *shellTask

	total  atomic.Int64
	fired  atomic.Int64
	failed atomic.Int64

	doneOnce sync.Once
	done     chan struct{}
}

func newSession(opts sessionOptions, l logger.Logger) (*session, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	s := &session{
		log:  l,
		done: make(chan struct{}),
		shell: &shellTask{
			log:    logger.WithPrefix("task", l),
			stdout: opts.Stdout,
			stderr: opts.Stderr,
		},
	}
	s.sched = scheduler.New(opts.Clock, logger.WithPrefix("scheduler", l))
	s.sched.Observe(scheduler.ObserverFunc(s.count))

	if opts.Journal {
		j, err := journal.Open(common.ConfigPath(journal.FileName), logger.WithPrefix("journal", l))
		if err != nil {
			return nil, fmt.Errorf("failed to open journal: %w", err)
		}
		s.journal = j
		s.sched.Observe(j)
	}

	s.runner = dispatch.New(s.sched, &dispatch.Config{
		Interval: opts.Interval,
		Strategy: opts.Strategy,
	}, &dispatch.Dependencies{
		SourceFactory: opts.SourceFactory,
		Logger:        logger.WithPrefix("dispatch", l),
	})
	return s, nil
}

// schedule registers each entry as a shell task and returns the ids in
// input order.
func (s *session) schedule(specs []taskSpec) ([]uint64, error) {
	ids := make([]uint64, 0, len(specs))
	for _, spec := range specs {
		id, err := s.sched.Add(spec.Delay, s.shell.run, spec.Command)
		if err != nil {
			return ids, fmt.Errorf("task %q: %w", spec.Command, err)
		}
		s.total.Add(1)
		ids = append(ids, id)
	}
	if due, ok := s.sched.NextDue(); ok {
		s.log.Info("%d tasks scheduled, first due %s", len(ids), humanize.Time(due))
	}
	return ids, nil
}

// observe adds an extra observer, such as the progress bar.
func (s *session) observe(o scheduler.Observer) {
	s.sched.Observe(o)
}

func (s *session) count(o scheduler.Outcome) {
	if o.Err != nil {
		s.failed.Add(1)
	}
	if s.fired.Add(1) >= s.total.Load() {
		s.doneOnce.Do(func() { close(s.done) })
	}
}

// Done is closed once every scheduled task has fired.
func (s *session) Done() <-chan struct{} {
	return s.done
}

func (s *session) Failed() int {
	return int(s.failed.Load())
}

func (s *session) Close() error {
	if s.runner.IsRunning() {
		_ = s.runner.Shutdown()
	}
	if s.journal != nil {
		return s.journal.Close()
	}
	return nil
}
