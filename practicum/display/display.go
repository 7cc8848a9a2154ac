package display

import (
	"fmt"
	"log/slog"
)

// Window defaults
const (
	// DefaultWindowWidth is the default window width in pixels
	DefaultWindowWidth = 800
	// DefaultWindowHeight is the default window height in pixels
	DefaultWindowHeight = 600
)

// Rect is a display's bounds in global desktop coordinates.
type Rect struct {
	X, Y int32
	W, H int32
}

// Contains reports whether the point lies within r. All four edges are
// inclusive, so a point on a shared edge matches both neighbours.
func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Enumerator exposes the host's attached displays and the global cursor.
type Enumerator interface {
	DisplayCount() int
	DisplayBounds(index int) (Rect, error)
	GlobalCursor() (x, y int32)
}

// Locate returns the index of the display the cursor is currently on.
//
// With a single display it returns 0 without querying the cursor. Otherwise
// displays are checked from the last registered down and the first one
// containing the cursor wins. When nothing matches (for example while a
// display is being hot-plugged) it falls back to 0.
func Locate(e Enumerator) int {
	displays := e.DisplayCount()
	if displays <= 1 {
		return 0
	}

	x, y := e.GlobalCursor()

	for i := displays - 1; i >= 0; i-- {
		bounds, err := e.DisplayBounds(i)
		if err != nil {
			slog.Debug("Skipping display without bounds", "display", i, "error", err)
			continue
		}
		if bounds.Contains(x, y) {
			return i
		}
	}

	return 0
}

// Static is a fixed display layout, used by hosts without a real desktop.
type Static struct {
	Displays []Rect
	CursorX  int32
	CursorY  int32
}

func (s *Static) DisplayCount() int {
	return len(s.Displays)
}

func (s *Static) DisplayBounds(index int) (Rect, error) {
	if index < 0 || index >= len(s.Displays) {
		return Rect{}, &IndexError{Index: index, Count: len(s.Displays)}
	}
	return s.Displays[index], nil
}

func (s *Static) GlobalCursor() (int32, int32) {
	return s.CursorX, s.CursorY
}

// IndexError is returned for a display index outside [0, Count).
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("display index %d out of range [0, %d)", e.Index, e.Count)
}
