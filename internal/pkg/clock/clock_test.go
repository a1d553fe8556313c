package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClock_AfterFunc(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("fires once due", func(t *testing.T) {
		clk := NewMockClock(start)
		fired := 0
		clk.AfterFunc(100*time.Millisecond, func() { fired++ })

		clk.Advance(99 * time.Millisecond)
		assert.Equal(t, 0, fired)

		clk.Advance(time.Millisecond)
		assert.Equal(t, 1, fired)

		clk.Advance(time.Second)
		assert.Equal(t, 1, fired, "timer must fire only once")
	})

	t.Run("stopped timer never fires", func(t *testing.T) {
		clk := NewMockClock(start)
		fired := false
		timer := clk.AfterFunc(time.Second, func() { fired = true })

		assert.True(t, timer.Stop())
		assert.False(t, timer.Stop())

		clk.Advance(2 * time.Second)
		assert.False(t, fired)
		assert.Equal(t, 0, clk.Pending())
	})

	t.Run("fires in deadline order", func(t *testing.T) {
		clk := NewMockClock(start)
		var order []string
		clk.AfterFunc(2*time.Second, func() { order = append(order, "late") })
		clk.AfterFunc(time.Second, func() { order = append(order, "early") })

		clk.Set(start.Add(5 * time.Second))
		assert.Equal(t, []string{"early", "late"}, order)
	})
}
