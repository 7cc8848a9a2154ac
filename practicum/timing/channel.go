// Package timing measures frames by sending begin/end markers through the
// host's own event queue.
//
// The markers are ordinary host events of a privately registered kind. A
// filter installed on the queue timestamps and swallows them before anything
// can poll them, so the render code only ever sees the last frame duration.
package timing

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/valerio/practicum/practicum/backend"
	"github.com/valerio/practicum/practicum/event"
)

// Channel is the frame timing transport on top of a host event source.
type Channel struct {
	src  backend.EventSource
	kind uint32

	// mu guards tracker: some hosts run the filter on their input goroutine.
	mu      sync.Mutex
	tracker Tracker
}

// NewChannel registers the timing event kind on src and installs the
// intercepting filter. src supports a single filter, so one Channel per host.
func NewChannel(src backend.EventSource) (*Channel, error) {
	kind, err := src.RegisterEventKind()
	if err != nil {
		return nil, fmt.Errorf("failed to register frame timing event: %w", err)
	}

	c := &Channel{
		src:  src,
		kind: kind,
	}
	src.SetEventFilter(c.filter)

	slog.Debug("Frame timing channel registered", "kind", fmt.Sprintf("0x%08x", kind))
	return c, nil
}

// Kind returns the raw event type the channel registered.
func (c *Channel) Kind() uint32 {
	return c.kind
}

// Emit injects a timing marker. The host stamps it on entry.
func (c *Channel) Emit(sig Signal) error {
	err := c.src.PushEvent(event.Event{
		Kind: event.User,
		Type: c.kind,
		Code: int32(sig),
	})
	if err != nil {
		slog.Warn("Failed to emit frame timing event", "signal", sig, "error", err)
		return err
	}
	return nil
}

// LastFrame returns the duration of the last completed frame bracket.
func (c *Channel) LastFrame() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.Last()
}

func (c *Channel) filter(ev event.Event) bool {
	if ev.Kind != event.User || ev.Type != c.kind {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch Signal(ev.Code) {
	case BeginFrame:
		c.tracker.Begin(ev.Timestamp)
	case EndFrame:
		c.tracker.End(ev.Timestamp)
	}

	return false
}
