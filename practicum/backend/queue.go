package backend

import (
	"errors"
	"sync"

	"github.com/valerio/practicum/practicum/clock"
	"github.com/valerio/practicum/practicum/event"
)

// maxQueued mirrors SDL's event queue limit
const maxQueued = 65535

// maxKinds is the number of custom kinds a queue can hand out
const maxKinds = 0xFFFF - event.UserBase

var (
	ErrQueueFull  = errors.New("event queue full")
	ErrKindsSpent = errors.New("no custom event kinds left")
)

// Queue is an in-process EventSource for hosts without a native event
// queue. Events may be pushed from any goroutine.
type Queue struct {
	mu     sync.Mutex
	events []event.Event
	filter event.Filter
	kinds  uint32
	clock  *clock.Clock
}

// NewQueue creates a queue that stamps events with the given clock.
func NewQueue(c *clock.Clock) *Queue {
	if c == nil {
		c = clock.New(nil)
	}
	return &Queue{clock: c}
}

func (q *Queue) PollEvent() (event.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return event.Event{}, false
	}

	ev := q.events[0]
	q.events[0] = event.Event{}
	q.events = q.events[1:]
	return ev, true
}

func (q *Queue) PushEvent(ev event.Event) error {
	q.mu.Lock()
	ev.Timestamp = q.clock.Elapsed()
	filter := q.filter
	q.mu.Unlock()

	// The filter runs outside the lock so it may push in turn.
	if filter != nil && !filter(ev) {
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) >= maxQueued {
		return ErrQueueFull
	}
	q.events = append(q.events, ev)
	return nil
}

func (q *Queue) SetEventFilter(filter event.Filter) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.filter = filter
}

func (q *Queue) RegisterEventKind() (uint32, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.kinds >= maxKinds {
		return 0, ErrKindsSpent
	}
	kind := event.UserBase + q.kinds
	q.kinds++
	return kind, nil
}

// Pending returns the number of queued events.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
