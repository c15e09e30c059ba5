package scheduler

import (
	"runtime/debug"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"github.com/warpdl/warptimer/internal/clock"
	"github.com/warpdl/warptimer/pkg/logger"
)

// Scheduler owns the Store and the id counter. One Scheduler is meant to be
// created per process and handed to whoever registers tasks and to the
// dispatch loop that drives ExecuteDue.
type Scheduler struct {
	mu        sync.Mutex
	store     *Store
	nextID    uint64
	observers []Observer

	// exec serializes ExecuteDue passes.
	exec sync.Mutex

	clock clock.Clock
	log   logger.Logger
}

// New creates a Scheduler reading time from c and logging to l.
// A nil c uses the wall clock; a nil l discards log output.
func New(c clock.Clock, l logger.Logger) *Scheduler {
	if c == nil {
		c = clock.System
	}
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Scheduler{
		store: NewStore(),
		clock: c,
		log:   l,
	}
}

// Observe registers o to be notified of every attempted task.
func (s *Scheduler) Observe(o Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Add registers fn to be called once with args after delay and returns the
// task id. It fails with ErrInvalidDelay if delay <= 0 and ErrNotCallable if
// fn cannot be invoked with args. The task is stored before Add returns.
func (s *Scheduler) Add(delay time.Duration, fn any, args ...any) (uint64, error) {
	if delay <= 0 {
		return 0, ErrInvalidDelay
	}
	// args may alias a caller slice passed with "slice...".
	args = append([]any(nil), args...)
	call, err := bind(fn, args)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	task := &Task{
		Args:       args,
		Delay:      delay,
		Due:        now.Add(delay).Unix(),
		Registered: now,
		call:       call,
	}

	s.mu.Lock()
	s.nextID++
	task.ID = s.nextID
	s.store.Insert(task.Due, task)
	s.mu.Unlock()

	s.log.Debug("task %d registered, due %s", task.ID, humanize.RelTime(task.DueTime(), now, "ago", "from now"))
	return task.ID, nil
}

// Cancel drops a pending task. It returns false if the id is unknown or
// the task already fired.
func (s *Scheduler) Cancel(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Cancel(id)
}

// Pending returns the number of tasks waiting to fire.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// NextDue returns the due time of the earliest pending task.
func (s *Scheduler) NextDue() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	due, ok := s.store.Next()
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(due, 0), true
}

// ExecuteDue fires every task whose due second is at or before the current
// clock reading, earliest bucket first and registration order within a
// bucket. Due buckets are removed from the store before their callbacks run,
// so callbacks may call Add or Cancel freely and a fired task never fires
// again. Every due task is attempted even when some fail; the failures are
// returned together as a *multierror.Error of *TaskError values.
//
// ExecuteDue returns ErrExecuting if another pass is still running.
func (s *Scheduler) ExecuteDue() error {
	if !s.exec.TryLock() {
		return ErrExecuting
	}
	defer s.exec.Unlock()

	now := s.clock.Now()

	s.mu.Lock()
	buckets := s.store.DueBefore(now.Unix())
	for _, b := range buckets {
		s.store.Remove(b.Due)
	}
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	var result *multierror.Error
	for _, b := range buckets {
		s.log.Debug("firing %d task(s) due %s", len(b.Tasks), humanize.RelTime(time.Unix(b.Due, 0), now, "ago", "from now"))
		for _, task := range b.Tasks {
			var terr error
			if err := fire(task); err != nil {
				terr = &TaskError{ID: task.ID, Due: task.Due, Err: err}
				result = multierror.Append(result, terr)
			}
			out := Outcome{Task: task, FiredAt: s.clock.Now(), Err: terr}
			for _, o := range observers {
				s.notify(o, out)
			}
		}
	}
	return result.ErrorOrNil()
}

// notify hands out to o. A panicking observer is logged and skipped so the
// rest of the pass still runs.
func (s *Scheduler) notify(o Observer, out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("observer %T panicked on task %d: %v", o, out.Task.ID, r)
		}
	}()
	o.Fired(out)
}

// fire invokes the task's callback, converting a panic into a *PanicError.
func fire(task *Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return task.call()
}
