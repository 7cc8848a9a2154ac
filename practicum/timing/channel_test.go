package timing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/practicum/practicum/backend"
	"github.com/valerio/practicum/practicum/clock"
	"github.com/valerio/practicum/practicum/event"
	"github.com/valerio/practicum/practicum/timing"
)

// exhaustedSource cannot hand out custom event kinds
type exhaustedSource struct {
	*backend.Queue
}

func (exhaustedSource) RegisterEventKind() (uint32, error) {
	return 0, errors.New("out of kinds")
}

func TestChannel(t *testing.T) {
	t.Run("markers are swallowed and timed", func(t *testing.T) {
		m := &clock.Manual{}
		q := backend.NewQueue(clock.New(m))

		ch, err := timing.NewChannel(q)
		require.NoError(t, err)

		require.NoError(t, ch.Emit(timing.BeginFrame))
		m.Advance(16 * time.Millisecond)
		require.NoError(t, ch.Emit(timing.EndFrame))

		assert.Equal(t, 0, q.Pending(), "timing events never reach the queue")

		d, ok := ch.LastFrame()
		assert.True(t, ok)
		assert.Equal(t, 16*time.Millisecond, d)
	})

	t.Run("other events pass through", func(t *testing.T) {
		q := backend.NewQueue(nil)
		ch, err := timing.NewChannel(q)
		require.NoError(t, err)

		require.NoError(t, q.PushEvent(event.Event{Kind: event.KeyDown}))
		require.NoError(t, q.PushEvent(event.Event{Kind: event.User, Type: ch.Kind() + 1}))
		assert.Equal(t, 2, q.Pending())
	})

	t.Run("unknown signal is still swallowed", func(t *testing.T) {
		q := backend.NewQueue(nil)
		ch, err := timing.NewChannel(q)
		require.NoError(t, err)

		require.NoError(t, ch.Emit(timing.Signal(9)))
		assert.Equal(t, 0, q.Pending())

		_, ok := ch.LastFrame()
		assert.False(t, ok)
	})

	t.Run("no frame before the first bracket closes", func(t *testing.T) {
		q := backend.NewQueue(nil)
		ch, err := timing.NewChannel(q)
		require.NoError(t, err)

		require.NoError(t, ch.Emit(timing.BeginFrame))
		_, ok := ch.LastFrame()
		assert.False(t, ok)
	})

	t.Run("registration failure", func(t *testing.T) {
		_, err := timing.NewChannel(exhaustedSource{backend.NewQueue(nil)})
		assert.ErrorContains(t, err, "failed to register frame timing event")
	})
}
