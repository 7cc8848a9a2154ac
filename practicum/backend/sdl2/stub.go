//go:build !sdl2

package sdl2

import (
	"fmt"

	"github.com/valerio/practicum/practicum/backend"
	"github.com/valerio/practicum/practicum/display"
	"github.com/valerio/practicum/practicum/event"
)

// Backend stub for when SDL2 is not available
type Backend struct{}

// New creates a stub SDL2 backend that returns an error
func New() *Backend {
	return &Backend{}
}

// Init returns an error indicating SDL2 is not available
func (s *Backend) Init(config backend.Config) error {
	return fmt.Errorf("%w: build with -tags sdl2 to enable SDL2", backend.ErrUnavailable)
}

// Cleanup does nothing
func (s *Backend) Cleanup() error {
	return nil
}

func (s *Backend) ClearColor(r, g, b, a float32) {}

func (s *Backend) Swap() {}

func (s *Backend) PollEvent() (event.Event, bool) {
	return event.Event{}, false
}

func (s *Backend) PushEvent(ev event.Event) error {
	return backend.ErrUnavailable
}

func (s *Backend) SetEventFilter(filter event.Filter) {}

func (s *Backend) RegisterEventKind() (uint32, error) {
	return 0, backend.ErrUnavailable
}

func (s *Backend) DisplayCount() int {
	return 0
}

func (s *Backend) DisplayBounds(index int) (display.Rect, error) {
	return display.Rect{}, backend.ErrUnavailable
}

func (s *Backend) GlobalCursor() (int32, int32) {
	return 0, 0
}
