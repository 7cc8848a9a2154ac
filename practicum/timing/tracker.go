package timing

import "time"

// Signal marks a frame boundary.
type Signal int32

const (
	BeginFrame Signal = iota
	EndFrame
)

func (s Signal) String() string {
	switch s {
	case BeginFrame:
		return "begin_frame"
	case EndFrame:
		return "end_frame"
	default:
		return "unknown"
	}
}

// Tracker pairs begin/end timestamps into a frame duration.
// Brackets do not nest: a second Begin replaces the pending start.
type Tracker struct {
	start   time.Duration
	pending bool

	last     time.Duration
	complete bool
}

// Begin records ts as the pending frame start.
func (t *Tracker) Begin(ts time.Duration) {
	t.start = ts
	t.pending = true
}

// End closes the pending bracket and returns its duration. Without a pending
// Begin it reports false and leaves the last duration untouched.
func (t *Tracker) End(ts time.Duration) (time.Duration, bool) {
	if !t.pending {
		return 0, false
	}

	d := ts - t.start
	if d < 0 {
		d = 0
	}

	t.last = d
	t.complete = true
	t.start = 0
	t.pending = false
	return d, true
}

// Last returns the duration of the most recently closed bracket.
func (t *Tracker) Last() (time.Duration, bool) {
	return t.last, t.complete
}

// Pending reports whether a Begin is waiting for its End.
func (t *Tracker) Pending() bool {
	return t.pending
}
