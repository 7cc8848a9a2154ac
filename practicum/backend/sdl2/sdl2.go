//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/valerio/practicum/practicum/backend"
	"github.com/valerio/practicum/practicum/clock"
	"github.com/valerio/practicum/practicum/display"
	"github.com/valerio/practicum/practicum/event"
)

// registerFailed is what SDL_RegisterEvents returns when it runs out of types
const registerFailed = 0xFFFFFFFF

// Backend implements the Host interface using SDL2 with an OpenGL context.
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stub, see build tags (sdl2)
type Backend struct {
	window  *sdl.Window
	context sdl.GLContext
	config  backend.Config

	mu     sync.Mutex
	filter event.Filter

	displayIndex int
}

// New creates a new SDL2 backend
func New() *Backend {
	return &Backend{}
}

// Init initializes SDL video, opens a hidden window on the display under the
// cursor, creates the GL context and then shows the window.
func (s *Backend) Init(config backend.Config) error {
	s.config = config

	sdl.SetHint(sdl.HINT_EVENT_LOGGING, "1")

	if err := sdl.InitSubSystem(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %v", err)
	}

	if err := setContextAttributes(config.DebugContext); err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to set GL attributes: %v", err)
	}

	s.displayIndex = display.Locate(s)
	pos := int32(sdl.WINDOWPOS_UNDEFINED_MASK) | int32(s.displayIndex)

	window, err := sdl.CreateWindow(
		config.Title,
		pos,
		pos,
		int32(config.Width),
		int32(config.Height),
		sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %v", err)
	}
	s.window = window

	context, err := window.GLCreateContext()
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create GL context: %v", err)
	}
	s.context = context

	if err := gl.Init(); err != nil {
		sdl.GLDeleteContext(context)
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to load GL functions: %v", err)
	}

	s.logContext()

	window.Show()
	sdl.SetEventFilterFunc(s.filterEvent, nil)

	slog.Info("SDL2 backend initialized", "display", s.displayIndex)
	return nil
}

type glAttribute struct {
	attr  sdl.GLattr
	value int
}

// contextAttributes requests a double-buffered RGBA8888 GL 2.1 context
func contextAttributes(debug bool) []glAttribute {
	attrs := []glAttribute{
		{sdl.GL_CONTEXT_MAJOR_VERSION, 2},
		{sdl.GL_CONTEXT_MINOR_VERSION, 1},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_COMPATIBILITY},
		{sdl.GL_DOUBLEBUFFER, 1},
		{sdl.GL_ACCELERATED_VISUAL, 1},
		{sdl.GL_RED_SIZE, 8},
		{sdl.GL_GREEN_SIZE, 8},
		{sdl.GL_BLUE_SIZE, 8},
		{sdl.GL_ALPHA_SIZE, 8},
		{sdl.GL_STENCIL_SIZE, 8},
	}
	if debug {
		attrs = append(attrs, glAttribute{sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_DEBUG_FLAG})
	}
	return attrs
}

func setContextAttributes(debug bool) error {
	for _, a := range contextAttributes(debug) {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Backend) logContext() {
	format, err := s.window.GetPixelFormat()
	if err != nil {
		slog.Warn("Failed to query window pixel format", "error", err)
	}
	alpha, err := sdl.GLGetAttribute(sdl.GL_ALPHA_SIZE)
	if err != nil {
		slog.Warn("Failed to query GL alpha size", "error", err)
	}

	slog.Info("GL context created",
		"context", fmt.Sprintf("%p", s.context),
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"pixel_format", sdl.GetPixelFormatName(uint(format)),
		"alpha_size", alpha)
}

// Cleanup cleans up SDL2 resources
func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	sdl.SetEventFilter(nil, nil)
	if s.context != nil {
		sdl.GLDeleteContext(s.context)
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()

	return nil
}

func (s *Backend) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (s *Backend) Swap() {
	s.window.GLSwap()
}

func (s *Backend) PollEvent() (event.Event, bool) {
	e := sdl.PollEvent()
	if e == nil {
		return event.Event{}, false
	}
	return translate(e), true
}

// PushEvent only carries User events; SDL runs the filter synchronously.
func (s *Backend) PushEvent(ev event.Event) error {
	if ev.Kind == event.Quit {
		_, err := sdl.PushEvent(&sdl.QuitEvent{Type: sdl.QUIT})
		return err
	}
	if ev.Kind != event.User {
		return fmt.Errorf("cannot push %s events to SDL", ev.Kind)
	}

	_, err := sdl.PushEvent(&sdl.UserEvent{Type: ev.Type, Code: ev.Code})
	return err
}

func (s *Backend) SetEventFilter(filter event.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = filter
}

// filterEvent may be called from any thread that pushes into SDL's queue
func (s *Backend) filterEvent(e sdl.Event, _ interface{}) bool {
	s.mu.Lock()
	filter := s.filter
	s.mu.Unlock()

	if filter == nil {
		return true
	}
	return filter(translate(e))
}

func (s *Backend) RegisterEventKind() (uint32, error) {
	kind := sdl.RegisterEvents(1)
	if kind == registerFailed {
		return 0, fmt.Errorf("failed to register SDL event: %s", sdl.GetError())
	}
	return kind, nil
}

// translate maps an SDL event onto the host-neutral categories. SDL
// timestamps are milliseconds since SDL was initialised.
func translate(e sdl.Event) event.Event {
	ev := event.Event{
		Type:      e.GetType(),
		Timestamp: time.Duration(e.GetTimestamp()) * time.Millisecond,
	}

	switch ev.Type {
	case sdl.QUIT:
		ev.Kind = event.Quit
	case sdl.WINDOWEVENT:
		ev.Kind = event.Window
	case sdl.KEYDOWN, sdl.KEYUP:
		ev.Kind = event.KeyDown
		if ev.Type == sdl.KEYUP {
			ev.Kind = event.KeyUp
		}
		if k, ok := e.(*sdl.KeyboardEvent); ok && k.Keysym.Sym == sdl.K_ESCAPE {
			ev.Key = event.KeyEscape
		}
	case sdl.MOUSEMOTION:
		ev.Kind = event.MouseMotion
	case sdl.MOUSEBUTTONDOWN:
		ev.Kind = event.MouseButtonDown
	case sdl.MOUSEBUTTONUP:
		ev.Kind = event.MouseButtonUp
	case sdl.TEXTEDITING:
		ev.Kind = event.TextEditing
	case sdl.KEYMAPCHANGED:
		ev.Kind = event.KeymapChanged
	case sdl.AUDIODEVICEADDED:
		ev.Kind = event.AudioDeviceAdded
	case sdl.AUDIODEVICEREMOVED:
		ev.Kind = event.AudioDeviceRemoved
	default:
		if u, ok := e.(*sdl.UserEvent); ok && ev.Type >= sdl.USEREVENT {
			ev.Kind = event.User
			ev.Code = u.Code
		}
	}

	return ev
}

func (s *Backend) DisplayCount() int {
	n, err := sdl.GetNumVideoDisplays()
	if err != nil {
		slog.Warn("Failed to count displays", "error", err)
		return 0
	}
	return n
}

func (s *Backend) DisplayBounds(index int) (display.Rect, error) {
	r, err := sdl.GetDisplayBounds(index)
	if err != nil {
		return display.Rect{}, err
	}
	return display.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}, nil
}

func (s *Backend) GlobalCursor() (int32, int32) {
	x, y, _ := sdl.GetGlobalMouseState()
	return x, y
}

// ClockSource exposes SDL's performance counter.
func (s *Backend) ClockSource() clock.Source {
	return performanceCounter{}
}

type performanceCounter struct{}

func (performanceCounter) Counter() uint64 {
	return sdl.GetPerformanceCounter()
}

func (performanceCounter) Frequency() uint64 {
	return sdl.GetPerformanceFrequency()
}
