package loop

import (
	"context"
	"time"

	"github.com/valerio/practicum/practicum/clock"
)

// DefaultRefresh approximates a 60 Hz display.
const DefaultRefresh = time.Second / 60

// TickerHost is a desktop animation-frame host. A time.Ticker stands in for
// the display refresh and Serve invokes callbacks on the calling goroutine,
// so it can own a window that must stay on the main thread.
type TickerHost struct {
	interval time.Duration
	clock    *clock.Clock
	registry
}

func NewTickerHost(interval time.Duration) *TickerHost {
	if interval <= 0 {
		interval = DefaultRefresh
	}
	return &TickerHost{
		interval: interval,
		clock:    clock.New(nil),
	}
}

func (t *TickerHost) RequestAnimationFrameLoop(cb FrameCallback) {
	t.add(cb)
}

func (t *TickerHost) Serve(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.clock.ElapsedSeconds()

	for !t.empty() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		t.dispatch(t.clock.ElapsedSeconds() * 1000)
	}

	return nil
}
