package clock

import (
	"sync"
	"time"
)

// Fake is a manually driven Source for tests. Time only moves through Set
// and Advance, and wakeups only happen through Tick.
type Fake struct {
	mu       sync.Mutex
	now      time.Time
	interval time.Duration
	armed    bool
	stopped  chan struct{}
	c        chan time.Time
}

// NewFake returns a Fake whose clock reads start.
func NewFake(start time.Time) *Fake {
	return &Fake{
		now:     start,
		stopped: make(chan struct{}),
		c:       make(chan time.Time),
	}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set moves the clock to t.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func (f *Fake) Start(interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.armed {
		f.stopped = make(chan struct{})
	}
	f.interval = interval
	f.armed = true
	return nil
}

func (f *Fake) C() <-chan time.Time {
	return f.c
}

func (f *Fake) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.armed {
		f.armed = false
		close(f.stopped)
	}
}

// Armed reports whether Start has been called without a matching Stop.
func (f *Fake) Armed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.armed
}

// Interval returns the interval passed to the last Start.
func (f *Fake) Interval() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.interval
}

// Tick advances the clock by the armed interval and delivers one wakeup.
// It blocks until the wakeup is received and returns false if the source
// is stopped or was never armed.
func (f *Fake) Tick() bool {
	f.mu.Lock()
	if !f.armed {
		f.mu.Unlock()
		return false
	}
	f.now = f.now.Add(f.interval)
	now, stopped := f.now, f.stopped
	f.mu.Unlock()

	select {
	case f.c <- now:
		return true
	case <-stopped:
		return false
	}
}

var _ Source = (*Fake)(nil)
