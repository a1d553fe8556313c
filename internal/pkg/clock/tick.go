package clock

import (
	"context"
	"time"
)

// Tick calls fn every interval, measured on clk, until ctx is done. It
// blocks, so run it in its own goroutine. Unlike time.Ticker the next tick is
// scheduled only after fn returns, so slow runs never pile up.
func Tick(ctx context.Context, clk Clock, interval time.Duration, fn func()) {
	for {
		due := make(chan struct{})
		timer := clk.AfterFunc(interval, func() { close(due) })

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-due:
			fn()
		}
	}
}
