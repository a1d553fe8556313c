// Package throttle runs a callback at most once per interval, coalescing
// bursts of triggers into a single trailing call.
package throttle

import (
	"sync"
	"time"

	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Throttler paces callbacks. It is safe for concurrent use.
type Throttler struct {
	interval time.Duration
	clock    clock.Clock

	mu      sync.Mutex
	lastRun time.Time
	ran     bool
	pending func()
	timer   clock.Timer
	stopped bool
}

// New creates a Throttler with the given interval.
func New(interval time.Duration, clk clock.Clock) *Throttler {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Throttler{
		interval: interval,
		clock:    clk,
	}
}

// Trigger runs fn now if the interval has elapsed since the last run.
// Otherwise fn replaces any pending trailing call, which fires
// interval-elapsed after the last run.
func (t *Throttler) Trigger(fn func()) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}

	now := t.clock.Now()
	elapsed := now.Sub(t.lastRun)
	if !t.ran || elapsed >= t.interval {
		t.cancelPendingLocked()
		t.lastRun = now
		t.ran = true
		t.mu.Unlock()
		fn()
		return
	}

	t.pending = fn
	if t.timer == nil {
		t.timer = t.clock.AfterFunc(t.interval-elapsed, t.fire)
	}
	t.mu.Unlock()
}

// Stop cancels any pending trailing call. No callback starts after Stop
// returns, and later triggers are ignored.
func (t *Throttler) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
	t.cancelPendingLocked()
}

// HasPending reports whether a trailing call is scheduled.
func (t *Throttler) HasPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}

func (t *Throttler) fire() {
	t.mu.Lock()
	fn := t.pending
	t.pending = nil
	t.timer = nil
	if t.stopped || fn == nil {
		t.mu.Unlock()
		return
	}
	t.lastRun = t.clock.Now()
	t.mu.Unlock()

	fn()
}

func (t *Throttler) cancelPendingLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = nil
}
