package headless

import (
	"log/slog"

	"github.com/valerio/practicum/practicum/backend"
	"github.com/valerio/practicum/practicum/clock"
	"github.com/valerio/practicum/practicum/display"
	"github.com/valerio/practicum/practicum/event"
)

// Backend implements the Host interface without a window, for automated
// testing and batch runs. Host events are injected with PushEvent.
type Backend struct {
	*backend.Queue
	display.Static

	config  backend.Config
	options Options
	source  clock.Source

	displayIndex int
	color        [4]float32
	clears       int
	swaps        int
}

// Options configures the headless backend
type Options struct {
	// MaxFrames queues a quit event after this many presented frames (0 = never).
	MaxFrames int
	// Displays is the fake desktop layout; empty means one 800x600 display.
	Displays []display.Rect
	CursorX  int32
	CursorY  int32
	// Clock stamps events; nil uses the system clock.
	Clock clock.Source
}

func New(opts Options) *Backend {
	displays := opts.Displays
	if len(displays) == 0 {
		displays = []display.Rect{{W: display.DefaultWindowWidth, H: display.DefaultWindowHeight}}
	}

	source := opts.Clock
	if source == nil {
		source = clock.SystemSource{}
	}

	return &Backend{
		Queue:   backend.NewQueue(clock.New(source)),
		Static:  display.Static{Displays: displays, CursorX: opts.CursorX, CursorY: opts.CursorY},
		options: opts,
		source:  source,
	}
}

func (h *Backend) Init(config backend.Config) error {
	h.config = config
	h.displayIndex = display.Locate(h)

	slog.Info("Headless backend initialized",
		"display", h.displayIndex,
		"width", config.Width,
		"height", config.Height,
		"max_frames", h.options.MaxFrames)

	return nil
}

func (h *Backend) Cleanup() error {
	slog.Debug("Cleaning up headless backend", "frames", h.swaps)
	return nil
}

func (h *Backend) ClearColor(r, g, b, a float32) {
	h.color = [4]float32{r, g, b, a}
	h.clears++
}

// Swap presents the frame and, once MaxFrames frames were shown, queues a
// quit event for the next drain.
func (h *Backend) Swap() {
	h.swaps++

	if h.options.MaxFrames > 0 && h.swaps == h.options.MaxFrames {
		slog.Info("Headless execution completed", "frames", h.swaps)
		if err := h.PushEvent(event.Event{Kind: event.Quit}); err != nil {
			slog.Error("Failed to queue quit event", "error", err)
		}
	}
}

func (h *Backend) ClockSource() clock.Source {
	return h.source
}

// Display returns the display index picked at Init.
func (h *Backend) Display() int {
	return h.displayIndex
}

// Swaps returns the number of presented frames.
func (h *Backend) Swaps() int {
	return h.swaps
}

// Clears returns the number of framebuffer clears.
func (h *Backend) Clears() int {
	return h.clears
}

// Color returns the last clear color.
func (h *Backend) Color() [4]float32 {
	return h.color
}
