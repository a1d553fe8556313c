package throttle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

func newTestThrottler() (*Throttler, *clock.MockClock) {
	clk := clock.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return New(500*time.Millisecond, clk), clk
}

func TestThrottler_FirstTriggerRunsImmediately(t *testing.T) {
	th, _ := newTestThrottler()

	runs := 0
	th.Trigger(func() { runs++ })

	assert.Equal(t, 1, runs)
	assert.False(t, th.HasPending())
}

func TestThrottler_CoalescesIntoSingleTrailingCall(t *testing.T) {
	th, clk := newTestThrottler()

	var calls []string
	th.Trigger(func() { calls = append(calls, "first") })

	clk.Advance(100 * time.Millisecond)
	th.Trigger(func() { calls = append(calls, "second") })
	clk.Advance(100 * time.Millisecond)
	th.Trigger(func() { calls = append(calls, "third") })

	assert.Equal(t, []string{"first"}, calls)
	assert.True(t, th.HasPending())

	// Trailing call lands interval after the last run, not after the last trigger.
	clk.Advance(299 * time.Millisecond)
	assert.Equal(t, []string{"first"}, calls)

	clk.Advance(time.Millisecond)
	assert.Equal(t, []string{"first", "third"}, calls, "only the latest closure runs")
	assert.False(t, th.HasPending())
}

func TestThrottler_RunsAgainAfterIdleInterval(t *testing.T) {
	th, clk := newTestThrottler()

	runs := 0
	th.Trigger(func() { runs++ })
	clk.Advance(time.Second)
	th.Trigger(func() { runs++ })

	assert.Equal(t, 2, runs)
}

func TestThrottler_TrailingRunResetsInterval(t *testing.T) {
	th, clk := newTestThrottler()

	runs := 0
	th.Trigger(func() { runs++ })
	clk.Advance(100 * time.Millisecond)
	th.Trigger(func() { runs++ })
	clk.Advance(400 * time.Millisecond) // trailing fires at t=500
	assert.Equal(t, 2, runs)

	clk.Advance(100 * time.Millisecond)
	th.Trigger(func() { runs++ })
	assert.Equal(t, 2, runs, "within interval of the trailing run")

	clk.Advance(400 * time.Millisecond)
	assert.Equal(t, 3, runs)
}

func TestThrottler_StopCancelsPending(t *testing.T) {
	th, clk := newTestThrottler()

	runs := 0
	th.Trigger(func() { runs++ })
	clk.Advance(100 * time.Millisecond)
	th.Trigger(func() { runs++ })

	th.Stop()
	clk.Advance(time.Second)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 0, clk.Pending())

	th.Trigger(func() { runs++ })
	assert.Equal(t, 1, runs, "triggers after Stop are ignored")
}
