package event

import (
	"fmt"
	"time"
)

// Kind is the host-neutral category of an event
type Kind int

const (
	Unknown Kind = iota
	Quit
	Window
	KeyDown
	KeyUp
	MouseMotion
	MouseButtonDown
	MouseButtonUp
	TextEditing
	KeymapChanged
	AudioDeviceAdded
	AudioDeviceRemoved
	User // Custom kind registered at runtime, see Event.Type
)

var kindNames = map[Kind]string{
	Unknown:            "unknown",
	Quit:               "quit",
	Window:             "window",
	KeyDown:            "key_down",
	KeyUp:              "key_up",
	MouseMotion:        "mouse_motion",
	MouseButtonDown:    "mouse_button_down",
	MouseButtonUp:      "mouse_button_up",
	TextEditing:        "text_editing",
	KeymapChanged:      "keymap_changed",
	AudioDeviceAdded:   "audio_device_added",
	AudioDeviceRemoved: "audio_device_removed",
	User:               "user",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Key identifies the keys the harness cares about
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
)

// UserBase is the first raw type handed out for custom event kinds.
// It matches SDL_USEREVENT so in-process queues and SDL agree on ranges.
const UserBase uint32 = 0x8000

// Event is a single host event.
type Event struct {
	Kind Kind
	// Type is the raw host event type. For User events it is the
	// registered kind identifier.
	Type uint32
	Key  Key
	// Code is the user-defined discriminator of a User event.
	Code int32
	// Timestamp is stamped by the host when the event enters its queue,
	// relative to host start.
	Timestamp time.Duration
}

// Filter inspects an event before it is queued. Returning false drops it.
type Filter func(Event) bool
