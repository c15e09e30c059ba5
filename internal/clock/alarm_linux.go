//go:build linux

package clock

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// Alarm is a Source that arms an ITIMER_REAL interval timer and receives
// the resulting SIGALRM signals through os/signal. Only one Alarm should be
// armed per process since the interval timer is process-wide.
type Alarm struct {
	mu      sync.Mutex
	sigs    chan os.Signal
	done    chan struct{}
	c       chan time.Time
	setitim func(unix.ItimerWhich, unix.Itimerval) (unix.Itimerval, error)
}

// NewAlarm creates an unarmed Alarm source.
func NewAlarm() (*Alarm, error) {
	return &Alarm{
		c:       make(chan time.Time, 1),
		setitim: unix.Setitimer,
	}, nil
}

func (a *Alarm) Now() time.Time {
	return time.Now()
}

func (a *Alarm) C() <-chan time.Time {
	return a.c
}

// Start installs the SIGALRM handler and arms the interval timer.
func (a *Alarm) Start(interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()

	a.sigs = make(chan os.Signal, 1)
	a.done = make(chan struct{})
	signal.Notify(a.sigs, syscall.SIGALRM)

	tv := unix.NsecToTimeval(interval.Nanoseconds())
	if _, err := a.setitim(unix.ItimerReal, unix.Itimerval{Interval: tv, Value: tv}); err != nil {
		signal.Stop(a.sigs)
		a.sigs = nil
		a.done = nil
		return fmt.Errorf("%w: setitimer: %v", ErrUnsupportedPlatform, err)
	}
	go a.forward(a.sigs, a.done)
	return nil
}

func (a *Alarm) forward(sigs <-chan os.Signal, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-sigs:
			offer(a.c, time.Now())
		}
	}
}

func (a *Alarm) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

func (a *Alarm) stopLocked() {
	if a.sigs == nil {
		return
	}
	// A zero Itimerval disarms the timer; errors here leave nothing to undo.
	_, _ = a.setitim(unix.ItimerReal, unix.Itimerval{})
	signal.Stop(a.sigs)
	close(a.done)
	a.sigs = nil
	a.done = nil
}

var _ Source = (*Alarm)(nil)
