package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valerio/practicum/practicum/event"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "quit", event.Quit.String())
	assert.Equal(t, "key_down", event.KeyDown.String())
	assert.Equal(t, "user", event.User.String())
	assert.Equal(t, "kind(99)", event.Kind(99).String())
}
