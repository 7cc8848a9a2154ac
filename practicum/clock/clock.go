// Package clock turns a high resolution performance counter into a
// zero-based elapsed time.
package clock

import (
	"sync/atomic"
	"time"
)

// Source is a free running counter and its rate in ticks per second.
type Source interface {
	Counter() uint64
	Frequency() uint64
}

// Clock reports the time elapsed since it was first read.
// The reference counter and frequency are captured lazily on first use.
// A Clock is not safe for concurrent use; it belongs to the loop goroutine.
type Clock struct {
	src  Source
	base uint64
	freq float64 // zero until initialised
}

func New(src Source) *Clock {
	if src == nil {
		src = SystemSource{}
	}
	return &Clock{src: src}
}

func (c *Clock) init() {
	if c.freq != 0 {
		return
	}
	c.freq = float64(c.src.Frequency())
	c.base = c.src.Counter()
}

// ElapsedSeconds returns the fractional seconds since the first call to any
// clock method. It is never negative and never decreases.
func (c *Clock) ElapsedSeconds() float64 {
	c.init()
	if c.freq == 0 {
		return 0
	}

	now := c.src.Counter()
	if now < c.base {
		return 0
	}
	return float64(now-c.base) / c.freq
}

// Elapsed is ElapsedSeconds as a time.Duration.
func (c *Clock) Elapsed() time.Duration {
	return time.Duration(c.ElapsedSeconds() * float64(time.Second))
}

// epoch is an arbitrary t0 for SystemSource.
var epoch = time.Now()

// SystemSource counts nanoseconds on the Go runtime's monotonic clock.
type SystemSource struct{}

func (SystemSource) Counter() uint64 {
	return uint64(time.Since(epoch))
}

func (SystemSource) Frequency() uint64 {
	return uint64(time.Second)
}

// Manual is a nanosecond Source that only moves when told to.
// Headless runs and tests use it to make frame durations deterministic.
type Manual struct {
	ticks atomic.Uint64
}

func (m *Manual) Counter() uint64 {
	return m.ticks.Load()
}

func (m *Manual) Frequency() uint64 {
	return uint64(time.Second)
}

// Advance moves the counter forward by d. Negative values are ignored.
func (m *Manual) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	m.ticks.Add(uint64(d))
}
