//go:build !(js && wasm)

package browser

import (
	"fmt"

	"github.com/valerio/practicum/practicum/backend"
	"github.com/valerio/practicum/practicum/display"
	"github.com/valerio/practicum/practicum/event"
)

// Backend stub for builds that do not target the browser
type Backend struct{}

// New creates a stub browser backend that returns an error
func New() *Backend {
	return &Backend{}
}

// Init returns an error indicating the browser is not available
func (b *Backend) Init(config backend.Config) error {
	return fmt.Errorf("%w: build with GOOS=js GOARCH=wasm to enable the browser", backend.ErrUnavailable)
}

func (b *Backend) Cleanup() error {
	return nil
}

func (b *Backend) ClearColor(red, green, blue, alpha float32) {}

func (b *Backend) Swap() {}

func (b *Backend) PollEvent() (event.Event, bool) {
	return event.Event{}, false
}

func (b *Backend) PushEvent(ev event.Event) error {
	return backend.ErrUnavailable
}

func (b *Backend) SetEventFilter(filter event.Filter) {}

func (b *Backend) RegisterEventKind() (uint32, error) {
	return 0, backend.ErrUnavailable
}

func (b *Backend) DisplayCount() int {
	return 0
}

func (b *Backend) DisplayBounds(index int) (display.Rect, error) {
	return display.Rect{}, backend.ErrUnavailable
}

func (b *Backend) GlobalCursor() (int32, int32) {
	return 0, 0
}
