//go:build sdl2

package sdl2

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/valerio/practicum/practicum/event"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   sdl.Event
		want event.Event
	}{
		{
			name: "quit",
			in:   &sdl.QuitEvent{Type: sdl.QUIT, Timestamp: 5},
			want: event.Event{Kind: event.Quit, Type: sdl.QUIT, Timestamp: 5 * time.Millisecond},
		},
		{
			name: "escape key",
			in: &sdl.KeyboardEvent{
				Type:   sdl.KEYDOWN,
				Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE},
			},
			want: event.Event{Kind: event.KeyDown, Type: sdl.KEYDOWN, Key: event.KeyEscape},
		},
		{
			name: "other key",
			in: &sdl.KeyboardEvent{
				Type:   sdl.KEYUP,
				Keysym: sdl.Keysym{Sym: sdl.K_a},
			},
			want: event.Event{Kind: event.KeyUp, Type: sdl.KEYUP},
		},
		{
			name: "mouse motion",
			in:   &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION},
			want: event.Event{Kind: event.MouseMotion, Type: sdl.MOUSEMOTION},
		},
		{
			name: "user event",
			in:   &sdl.UserEvent{Type: sdl.USEREVENT + 1, Code: 1, Timestamp: 17},
			want: event.Event{Kind: event.User, Type: sdl.USEREVENT + 1, Code: 1, Timestamp: 17 * time.Millisecond},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translate(tt.in))
		})
	}
}

func TestContextAttributes(t *testing.T) {
	hasDebugFlag := func(attrs []glAttribute) bool {
		for _, a := range attrs {
			if a.attr == sdl.GL_CONTEXT_FLAGS {
				return true
			}
		}
		return false
	}

	assert.True(t, hasDebugFlag(contextAttributes(true)))
	assert.False(t, hasDebugFlag(contextAttributes(false)))
}
