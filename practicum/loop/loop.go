// Package loop drives the frame tick, either as a blocking loop on the
// calling goroutine or as a callback owned by an animation-frame host.
package loop

import (
	"context"
	"errors"
)

var errNoHost = errors.New("callback scheduler has no animation frame host")

// TickFunc runs one frame and reports whether to keep going.
type TickFunc func() bool

// FrameCallback is invoked once per display refresh with the host's
// timestamp in milliseconds. Returning false deregisters it.
type FrameCallback func(timestamp float64) bool

// Scheduler drives a TickFunc until it asks to stop.
type Scheduler interface {
	Run(tick TickFunc) error
}

// AnimationFrameHost invokes registered callbacks once per refresh.
type AnimationFrameHost interface {
	RequestAnimationFrameLoop(cb FrameCallback)
}

// Host is an animation-frame host that the program has to pump.
type Host interface {
	AnimationFrameHost
	// Serve runs the host until every callback has deregistered or ctx is done.
	Serve(ctx context.Context) error
}

// Model selects a scheduling strategy.
type Model int

const (
	ModelBlocking Model = iota
	ModelCallback
)

func (m Model) String() string {
	switch m {
	case ModelBlocking:
		return "blocking"
	case ModelCallback:
		return "callback"
	default:
		return "unknown"
	}
}

// Blocking calls the tick synchronously until it returns false.
type Blocking struct{}

func (Blocking) Run(tick TickFunc) error {
	for tick() {
	}
	return nil
}

// Callback registers the tick with an animation-frame host and returns
// immediately. Teardown after the last frame is up to the host's owner.
type Callback struct {
	Host AnimationFrameHost
}

func (c Callback) Run(tick TickFunc) error {
	if c.Host == nil {
		return errNoHost
	}
	c.Host.RequestAnimationFrameLoop(func(float64) bool {
		return tick()
	})
	return nil
}

// registry holds the callbacks of an animation-frame host.
type registry struct {
	callbacks []FrameCallback
}

func (r *registry) add(cb FrameCallback) {
	r.callbacks = append(r.callbacks, cb)
}

func (r *registry) empty() bool {
	return len(r.callbacks) == 0
}

// dispatch invokes every callback once and drops those returning false.
// Callbacks registered during dispatch first run on the next refresh.
func (r *registry) dispatch(ts float64) {
	current := r.callbacks
	r.callbacks = nil

	var keep []FrameCallback
	for _, cb := range current {
		if cb(ts) {
			keep = append(keep, cb)
		}
	}
	r.callbacks = append(keep, r.callbacks...)
}
