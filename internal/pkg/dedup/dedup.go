// Package dedup collapses identical requests issued within a short window
// into one in-flight call whose result every caller shares.
//
// Unlike singleflight, a registration outlives the call it wraps: it is
// dropped by a timer once the window elapses, independent of when the call
// settles, so a caller arriving after completion but inside the window still
// receives the settled result.
package dedup

import (
	"context"
	"sync"
	"time"

	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// DefaultWindow is the dedup window used when none is configured.
const DefaultWindow = 100 * time.Millisecond

// Group deduplicates calls by key.
type Group[T any] struct {
	window time.Duration
	clock  clock.Clock

	mu      sync.Mutex
	pending map[string]*call[T]
}

// call is a pending request registration.
type call[T any] struct {
	issuedAt time.Time
	timer    clock.Timer
	done     chan struct{}
	val      T
	err      error
}

// NewGroup creates a Group. A non-positive window falls back to DefaultWindow.
func NewGroup[T any](window time.Duration, clk clock.Clock) *Group[T] {
	if window <= 0 {
		window = DefaultWindow
	}
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Group[T]{
		window:  window,
		clock:   clk,
		pending: make(map[string]*call[T]),
	}
}

// Do returns the result of fetch for key. If a registration for key exists,
// the caller waits on it and fetch is never invoked.
//
// fetch runs detached from every caller's cancellation, so one caller giving
// up never fails the others. Each caller, the first included, stops waiting
// when its own ctx is done. fetch must bound itself (the HTTP client timeout
// does this for the commerce client).
func (g *Group[T]) Do(ctx context.Context, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	g.mu.Lock()
	if c, ok := g.pending[key]; ok {
		g.mu.Unlock()
		return c.wait(ctx)
	}

	c := &call[T]{
		issuedAt: g.clock.Now(),
		done:     make(chan struct{}),
	}
	g.pending[key] = c
	c.timer = g.clock.AfterFunc(g.window, func() { g.forget(key, c) })
	g.mu.Unlock()

	go func(ctx context.Context) {
		defer close(c.done)
		c.val, c.err = fetch(ctx)
	}(context.WithoutCancel(ctx))

	return c.wait(ctx)
}

// Clear drops every registration. Calls already in flight still complete
// for the callers waiting on them.
func (g *Group[T]) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for key, c := range g.pending {
		c.timer.Stop()
		delete(g.pending, key)
	}
}

// Len returns the number of live registrations.
func (g *Group[T]) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

func (g *Group[T]) forget(key string, c *call[T]) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// A Clear followed by a fresh registration must not be dropped early.
	if g.pending[key] == c {
		delete(g.pending, key)
	}
}

func (c *call[T]) wait(ctx context.Context) (T, error) {
	select {
	case <-c.done:
		return c.val, c.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
