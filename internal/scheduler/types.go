package scheduler

import "time"

// Callback is the native callback shape. Any other Go func whose parameters
// accept the registered arguments is also accepted by Add.
type Callback func(args ...any) error

// Task is one pending unit of delayed work.
// Tasks live in memory only and do not survive a restart.
type Task struct {
	// ID is unique among pending tasks and assigned in registration order.
	ID uint64
	// Args are passed to the callback when the task fires.
	Args []any
	// Delay is the delay requested at registration, kept for diagnostics.
	Delay time.Duration
	// Due is the unix second at which the task becomes eligible to fire.
	Due int64
	// Registered is the clock reading at registration.
	Registered time.Time

	call func() error
}

// DueTime returns Due as a time.Time.
func (t *Task) DueTime() time.Time {
	return time.Unix(t.Due, 0)
}

// Bucket groups the tasks sharing one due second, in registration order.
type Bucket struct {
	Due   int64
	Tasks []*Task
}

// Outcome describes one attempted task.
type Outcome struct {
	Task    *Task
	FiredAt time.Time
	// Err is nil on success, otherwise a *TaskError.
	Err error
}

// Observer is notified after every attempted task, on the goroutine running
// ExecuteDue.
type Observer interface {
	Fired(Outcome)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Outcome)

func (f ObserverFunc) Fired(o Outcome) { f(o) }
