//go:build js && wasm

package loop

import (
	"context"
	"syscall/js"
	"time"
)

// NewHost returns the browser's requestAnimationFrame host. The refresh
// interval is decided by the browser and ignored.
func NewHost(time.Duration) Host {
	return newRAFHost()
}

// rafHost pumps requestAnimationFrame into Serve. Callbacks never run inside
// the JS callback itself: blocking there (the frame delay sleeps) would stall
// the browser's event loop and deadlock the Go runtime.
type rafHost struct {
	registry
	frames  chan float64
	request js.Func
}

func newRAFHost() *rafHost {
	r := &rafHost{frames: make(chan float64, 1)}
	r.request = js.FuncOf(func(this js.Value, args []js.Value) any {
		ts := 0.0
		if len(args) > 0 {
			ts = args[0].Float()
		}
		select {
		case r.frames <- ts:
		default:
		}
		return nil
	})
	return r
}

func (r *rafHost) RequestAnimationFrameLoop(cb FrameCallback) {
	r.add(cb)
}

func (r *rafHost) Serve(ctx context.Context) error {
	defer r.request.Release()

	for !r.empty() {
		js.Global().Call("requestAnimationFrame", r.request)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case ts := <-r.frames:
			r.dispatch(ts)
		}
	}

	return nil
}
