package practicum

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/valerio/practicum/practicum/backend"
	"github.com/valerio/practicum/practicum/event"
	"github.com/valerio/practicum/practicum/histogram"
	"github.com/valerio/practicum/practicum/timing"
)

// Framebuffer clear color
const (
	ClearRed   = 0.0
	ClearGreen = 0.5
	ClearBlue  = 0.0
	ClearAlpha = 1.0
)

// Options configures a Harness.
type Options struct {
	// Histogram receives one frame rate sample per frame; nil disables statistics.
	Histogram *histogram.Histogram

	// MaxDelay bounds the simulated render cost. Zero skips the delay.
	MaxDelay time.Duration

	// Rand returns values in [0, 1); defaults to math/rand.
	Rand func() float64

	// Sleep blocks for the simulated render cost; defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Harness is the per-frame unit of work: drain host events, render one
// frame inside a timing bracket, feed the statistics.
type Harness struct {
	host    backend.Host
	timing  *timing.Channel
	options Options

	frames uint64
}

// New installs the frame timing channel on host. The host must be initialised.
func New(host backend.Host, opts Options) (*Harness, error) {
	ch, err := timing.NewChannel(host)
	if err != nil {
		return nil, err
	}

	if opts.Rand == nil {
		opts.Rand = rand.Float64
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}

	return &Harness{
		host:    host,
		timing:  ch,
		options: opts,
	}, nil
}

// Tick runs one frame. It returns false once a quit request or the escape
// key has been seen, in which case nothing is rendered.
func (h *Harness) Tick() bool {
	if !h.drain() {
		return false
	}

	h.draw()
	h.frames++

	if h.options.Histogram != nil {
		h.record()
	}

	return true
}

// drain consumes all pending host events and reports whether to continue.
func (h *Harness) drain() bool {
	for ev, ok := h.host.PollEvent(); ok; ev, ok = h.host.PollEvent() {
		switch ev.Kind {
		case event.Quit:
			slog.Debug("Quit requested")
			return false

		case event.KeyDown:
			if ev.Key == event.KeyEscape {
				slog.Debug("Escape pressed")
				return false
			}

		case event.KeyUp,
			event.Window,
			event.MouseMotion, event.MouseButtonDown, event.MouseButtonUp,
			event.TextEditing, event.KeymapChanged,
			event.AudioDeviceAdded, event.AudioDeviceRemoved:

		default:
			slog.Debug("Unhandled event", "type", fmt.Sprintf("0x%08x", ev.Type), "kind", ev.Kind)
		}
	}

	return true
}

// draw renders a frame bracketed by the timing markers.
func (h *Harness) draw() {
	h.timing.Emit(timing.BeginFrame)

	if h.options.MaxDelay > 0 {
		h.options.Sleep(time.Duration(h.options.Rand() * float64(h.options.MaxDelay)))
	}

	h.host.ClearColor(ClearRed, ClearGreen, ClearBlue, ClearAlpha)
	h.host.Swap()

	h.timing.Emit(timing.EndFrame)
}

// record adds the instantaneous frame rate of the last completed frame.
// Frames without a usable duration are skipped.
func (h *Harness) record() {
	d, ok := h.timing.LastFrame()
	if !ok || d <= 0 {
		return
	}

	h.options.Histogram.Record(float64(time.Second) / float64(d))
}

// Frames returns the number of rendered frames.
func (h *Harness) Frames() uint64 {
	return h.frames
}

// LastFrame returns the duration of the last completed frame.
func (h *Harness) LastFrame() (time.Duration, bool) {
	return h.timing.LastFrame()
}
