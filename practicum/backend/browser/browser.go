//go:build js && wasm

package browser

import (
	"fmt"
	"log/slog"
	"syscall/js"

	"github.com/valerio/practicum/practicum/backend"
	"github.com/valerio/practicum/practicum/clock"
	"github.com/valerio/practicum/practicum/display"
	"github.com/valerio/practicum/practicum/event"
)

// canvasID is the element the backend draws into; it is created if missing.
const canvasID = "practicum"

// Backend implements the Host interface on a WebGL canvas. The page
// composites after every animation frame, so Swap has nothing to do.
type Backend struct {
	*backend.Queue

	canvas js.Value
	gl     js.Value
	clear  js.Value

	listeners []listener
	source    clock.Source
}

type listener struct {
	target js.Value
	name   string
	fn     js.Func
}

// New creates a browser backend
func New() *Backend {
	source := performanceSource{perf: js.Global().Get("performance")}
	return &Backend{
		Queue:  backend.NewQueue(clock.New(source)),
		source: source,
	}
}

func (b *Backend) Init(config backend.Config) error {
	doc := js.Global().Get("document")

	canvas := doc.Call("getElementById", canvasID)
	if canvas.IsNull() {
		canvas = doc.Call("createElement", "canvas")
		canvas.Set("id", canvasID)
		doc.Get("body").Call("appendChild", canvas)
	}
	canvas.Set("width", config.Width)
	canvas.Set("height", config.Height)
	b.canvas = canvas

	ctx := canvas.Call("getContext", "webgl", map[string]any{"alpha": true})
	if ctx.IsNull() {
		return fmt.Errorf("failed to create WebGL context")
	}
	b.gl = ctx
	b.clear = ctx.Get("COLOR_BUFFER_BIT")

	doc.Set("title", config.Title)

	b.listen(js.Global(), "keydown", func(e js.Value) event.Event {
		ev := event.Event{Kind: event.KeyDown}
		if e.Get("key").String() == "Escape" {
			ev.Key = event.KeyEscape
		}
		return ev
	})
	b.listen(js.Global(), "keyup", func(js.Value) event.Event {
		return event.Event{Kind: event.KeyUp}
	})
	b.listen(js.Global(), "resize", func(js.Value) event.Event {
		return event.Event{Kind: event.Window}
	})
	b.listen(canvas, "mousemove", func(js.Value) event.Event {
		return event.Event{Kind: event.MouseMotion}
	})
	b.listen(canvas, "mousedown", func(js.Value) event.Event {
		return event.Event{Kind: event.MouseButtonDown}
	})
	b.listen(canvas, "mouseup", func(js.Value) event.Event {
		return event.Event{Kind: event.MouseButtonUp}
	})
	b.listen(js.Global(), "pagehide", func(js.Value) event.Event {
		return event.Event{Kind: event.Quit}
	})

	slog.Info("Browser backend initialized",
		"version", ctx.Call("getParameter", ctx.Get("VERSION")).String(),
		"display", display.Locate(b))
	return nil
}

func (b *Backend) listen(target js.Value, name string, translate func(js.Value) event.Event) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if err := b.PushEvent(translate(args[0])); err != nil {
			slog.Warn("Dropped browser event", "event", name, "error", err)
		}
		return nil
	})
	target.Call("addEventListener", name, fn)
	b.listeners = append(b.listeners, listener{target: target, name: name, fn: fn})
}

func (b *Backend) Cleanup() error {
	slog.Info("Cleaning up browser backend")
	for _, l := range b.listeners {
		l.target.Call("removeEventListener", l.name, l.fn)
		l.fn.Release()
	}
	b.listeners = nil
	return nil
}

func (b *Backend) ClearColor(red, green, blue, alpha float32) {
	b.gl.Call("clearColor", red, green, blue, alpha)
	b.gl.Call("clear", b.clear)
}

func (b *Backend) Swap() {}

// The page is a single display the size of the viewport.

func (b *Backend) DisplayCount() int {
	return 1
}

func (b *Backend) DisplayBounds(index int) (display.Rect, error) {
	if index != 0 {
		return display.Rect{}, &display.IndexError{Index: index, Count: 1}
	}
	w := js.Global().Get("innerWidth").Int()
	h := js.Global().Get("innerHeight").Int()
	return display.Rect{W: int32(w), H: int32(h)}, nil
}

func (b *Backend) GlobalCursor() (int32, int32) {
	return 0, 0
}

func (b *Backend) ClockSource() clock.Source {
	return b.source
}

// performanceSource counts microseconds on performance.now()
type performanceSource struct {
	perf js.Value
}

func (p performanceSource) Counter() uint64 {
	return uint64(p.perf.Call("now").Float() * 1000)
}

func (p performanceSource) Frequency() uint64 {
	return 1_000_000
}
