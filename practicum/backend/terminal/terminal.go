package terminal

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/practicum/practicum/backend"
	"github.com/valerio/practicum/practicum/clock"
	"github.com/valerio/practicum/practicum/display"
	"github.com/valerio/practicum/practicum/event"
)

const (
	logLines    = 8
	logCapacity = 100
)

// Backend implements the Host interface using tcell. The terminal is the
// window: a clear fills every cell with the clear color and Swap shows the
// screen. tcell only offers a blocking PollEvent, so a pump goroutine moves
// terminal events into the in-process queue.
type Backend struct {
	*backend.Queue

	screen   tcell.Screen
	logs     *logBuffer
	level    slog.Leveler
	previous *slog.Logger
	done     chan struct{}

	displayIndex int
}

// New creates a terminal backend on the controlling terminal.
func New(level slog.Leveler) *Backend {
	return NewWithScreen(nil, level)
}

// NewWithScreen creates a terminal backend on an existing, uninitialised
// screen, such as a tcell.SimulationScreen.
func NewWithScreen(screen tcell.Screen, level slog.Leveler) *Backend {
	if level == nil {
		level = slog.LevelInfo
	}
	return &Backend{
		Queue:  backend.NewQueue(clock.New(nil)),
		screen: screen,
		logs:   newLogBuffer(logCapacity),
		level:  level,
	}
}

func (t *Backend) Init(config backend.Config) error {
	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}

	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.screen.EnableMouse()
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	// Logs go to the on-screen buffer while tcell owns the terminal
	t.previous = slog.Default()
	slog.SetDefault(slog.New(newLogHandler(t.logs, t.level)))

	t.displayIndex = display.Locate(t)

	t.done = make(chan struct{})
	go t.pump()

	slog.Info("Terminal backend initialized", "display", t.displayIndex, "title", config.Title)
	return nil
}

func (t *Backend) Cleanup() error {
	if t.screen == nil {
		return nil
	}

	slog.Info("Cleaning up terminal backend")
	t.screen.Fini()
	if t.done != nil {
		<-t.done
	}
	if t.previous != nil {
		slog.SetDefault(t.previous)
	}
	return nil
}

// pump forwards terminal events until the screen is finalised.
func (t *Backend) pump() {
	defer close(t.done)

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}

		if _, ok := ev.(*tcell.EventResize); ok {
			t.screen.Sync()
		}

		if err := t.PushEvent(translate(ev)); err != nil {
			slog.Warn("Dropped terminal event", "error", err)
		}
	}
}

// translate maps a tcell event onto the host-neutral categories
func translate(ev tcell.Event) event.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		switch e.Key() {
		case tcell.KeyCtrlC:
			return event.Event{Kind: event.Quit}
		case tcell.KeyEscape:
			return event.Event{Kind: event.KeyDown, Key: event.KeyEscape}
		default:
			return event.Event{Kind: event.KeyDown}
		}
	case *tcell.EventResize, *tcell.EventFocus:
		return event.Event{Kind: event.Window}
	case *tcell.EventMouse:
		if e.Buttons() != tcell.ButtonNone {
			return event.Event{Kind: event.MouseButtonDown}
		}
		return event.Event{Kind: event.MouseMotion}
	case *tcell.EventPaste:
		return event.Event{Kind: event.TextEditing}
	default:
		return event.Event{Kind: event.Unknown}
	}
}

func (t *Backend) ClearColor(r, g, b, a float32) {
	style := tcell.StyleDefault.
		Background(tcell.NewRGBColor(channel(r), channel(g), channel(b))).
		Foreground(tcell.ColorWhite)

	t.screen.Fill(' ', style)
	t.drawLogs(style)
}

func (t *Backend) Swap() {
	t.screen.Show()
}

func (t *Backend) drawLogs(style tcell.Style) {
	_, height := t.screen.Size()
	entries := t.logs.recent(logLines)

	for i, entry := range entries {
		y := height - 1 - i
		if y < 0 {
			break
		}
		for x, r := range []rune(entry.String()) {
			t.screen.SetContent(x, y, r, nil, style)
		}
	}
}

// channel converts a [0, 1] color component to 8 bits
func channel(v float32) int32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int32(v * 255)
}

// The terminal is a single display the size of the screen.

func (t *Backend) DisplayCount() int {
	return 1
}

func (t *Backend) DisplayBounds(index int) (display.Rect, error) {
	if index != 0 {
		return display.Rect{}, &display.IndexError{Index: index, Count: 1}
	}
	w, h := t.screen.Size()
	return display.Rect{W: int32(w), H: int32(h)}, nil
}

func (t *Backend) GlobalCursor() (int32, int32) {
	return 0, 0
}
