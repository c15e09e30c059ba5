// Package clock provides the time and periodic wakeup facilities the
// dispatch loop relies on.
//
// Two wakeup strategies are available: a Ticker, which works everywhere and
// is polled by the dispatch goroutine, and an Alarm, which arms a SIGALRM
// interval timer with setitimer(2) and forwards each signal to a channel.
// In both cases the dispatch goroutine receives wakeups from a channel, so
// execution never happens inside signal delivery.
package clock

import (
	"errors"
	"fmt"
	"time"
)

// DefaultInterval is the wakeup cadence used when none is configured.
const DefaultInterval = time.Second

var (
	// ErrUnsupportedPlatform is returned when the host has no usable
	// periodic wakeup facility for the requested strategy.
	ErrUnsupportedPlatform = errors.New("periodic wakeup facility unavailable on this platform")

	// ErrInvalidInterval is returned when a source is armed with a
	// non-positive interval.
	ErrInvalidInterval = errors.New("wakeup interval must be positive")
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// Source delivers periodic wakeups.
type Source interface {
	Clock

	// Start arms periodic wakeups every interval. Calling Start on an armed
	// source re-arms it with the new interval.
	Start(interval time.Duration) error

	// C returns the channel wakeups are delivered on. Wakeups that are not
	// received in time are coalesced, never queued.
	C() <-chan time.Time

	// Stop disarms the source. Safe to call multiple times.
	Stop()
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// System is the wall clock.
var System Clock = systemClock{}

// Strategy names a wakeup implementation.
type Strategy string

const (
	// StrategyTicker polls a time.Ticker.
	StrategyTicker Strategy = "ticker"
	// StrategyAlarm arms a SIGALRM interval timer.
	StrategyAlarm Strategy = "alarm"
)

// ParseStrategy validates a strategy name coming from configuration.
// The empty string selects StrategyTicker.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyTicker:
		return StrategyTicker, nil
	case StrategyAlarm:
		return StrategyAlarm, nil
	}
	return "", fmt.Errorf("unknown clock strategy %q, expected ticker or alarm", s)
}

// NewSource builds the Source for the given strategy.
// It returns ErrUnsupportedPlatform when the strategy cannot run on this host.
func NewSource(s Strategy) (Source, error) {
	switch s {
	case "", StrategyTicker:
		return NewTicker(), nil
	case StrategyAlarm:
		return NewAlarm()
	}
	_, err := ParseStrategy(string(s))
	return nil, err
}

// offer performs a non-blocking send so a slow receiver sees at most one
// pending wakeup.
func offer(c chan time.Time, t time.Time) {
	select {
	case c <- t:
	default:
	}
}
