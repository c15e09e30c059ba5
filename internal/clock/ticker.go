package clock

import (
	"sync"
	"time"
)

// Ticker is a Source backed by time.Ticker.
type Ticker struct {
	mu     sync.Mutex
	ticker *time.Ticker
	done   chan struct{}
	c      chan time.Time
}

// NewTicker creates an unarmed Ticker source.
func NewTicker() *Ticker {
	return &Ticker{c: make(chan time.Time, 1)}
}

func (t *Ticker) Now() time.Time {
	return time.Now()
}

func (t *Ticker) C() <-chan time.Time {
	return t.c
}

// Start arms the ticker. A previous ticker is stopped first.
func (t *Ticker) Start(interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()

	t.ticker = time.NewTicker(interval)
	t.done = make(chan struct{})
	go t.forward(t.ticker.C, t.done)
	return nil
}

func (t *Ticker) forward(src <-chan time.Time, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case now := <-src:
			offer(t.c, now)
		}
	}
}

func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Ticker) stopLocked() {
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	close(t.done)
	t.ticker = nil
	t.done = nil
}

var _ Source = (*Ticker)(nil)
