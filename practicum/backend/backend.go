package backend

import (
	"errors"

	"github.com/valerio/practicum/practicum/clock"
	"github.com/valerio/practicum/practicum/display"
	"github.com/valerio/practicum/practicum/event"
)

// ErrUnavailable is returned by hosts that were not compiled into this build.
var ErrUnavailable = errors.New("backend not available in this build")

// Host represents a complete platform for the harness: one window with a GL
// context, an event queue and display enumeration.
// Hosts are responsible for:
// - Creating the window on the display picked by display.Locate
// - Translating platform events into event.Event values
// - Presenting frames (clear + swap)
type Host interface {
	// Init creates the window and context. Required before any other call.
	Init(config Config) error

	// Cleanup destroys the context and window.
	Cleanup() error

	EventSource
	Renderer
	display.Enumerator
}

// EventSource is the host's event queue.
type EventSource interface {
	// PollEvent pops the next queued event, if any. Never blocks.
	PollEvent() (event.Event, bool)

	// PushEvent stamps the event and hands it to the filter; if kept it
	// is queued. Pushing is fire-and-forget: a filtered event is not an error.
	PushEvent(ev event.Event) error

	// SetEventFilter installs the filter applied to every event before it
	// is queued, replacing any previous one.
	SetEventFilter(filter event.Filter)

	// RegisterEventKind allocates a new raw type for User events.
	RegisterEventKind() (uint32, error)
}

// Renderer is the draw surface of the host's GL context.
type Renderer interface {
	ClearColor(r, g, b, a float32)
	Swap()
}

// ClockProvider is implemented by hosts with their own performance counter.
type ClockProvider interface {
	ClockSource() clock.Source
}

// Config holds configuration for hosts
type Config struct {
	Title  string
	Width  int
	Height int
	// DebugContext requests a debug GL context where supported.
	DebugContext bool
}
