package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects every message its handler receives.
type recorder struct {
	msgs []Message
}

func (r *recorder) handler(msg Message) error {
	r.msgs = append(r.msgs, msg)
	return nil
}

func TestRegisterAndBroadcast(t *testing.T) {
	h := New()
	rec := &recorder{}

	id, err := h.Register("tick", "l1", rec.handler)
	require.NoError(t, err)
	assert.Equal(t, "l1", id)

	payload := map[string]int{"n": 1}
	n, err := h.Broadcast("tick", payload)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.Len(t, rec.msgs, 1)
	assert.Equal(t, "tick", rec.msgs[0].Event)
	assert.Equal(t, "l1", rec.msgs[0].Listener)
	assert.Equal(t, payload, rec.msgs[0].Payload)
}

func TestRegisterInvalidArguments(t *testing.T) {
	h := New()

	_, err := h.Register("", "l1", func(Message) error { return nil })
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))

	_, err = h.Register("tick", "l1", nil)
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))

	// Failed registrations leave the registry untouched.
	assert.Equal(t, 0, h.Len())
}

func TestRegisterGeneratesListenerID(t *testing.T) {
	h := New()

	id, err := h.Register("tick", "", func(Message) error { return nil })
	require.NoError(t, err)
	require.NotEmpty(t, id)

	ids, err := h.Listeners("tick")
	require.NoError(t, err)
	assert.Equal(t, []string{id}, ids)

	// A second anonymous registration gets its own ID.
	id2, err := h.Register("tick", "", func(Message) error { return nil })
	require.NoError(t, err)
	assert.NotEqual(t, id, id2)
}

func TestRegisterDuplicateRejected(t *testing.T) {
	h := New()
	first := &recorder{}
	second := &recorder{}

	_, err := h.Register("tick", "l1", first.handler)
	require.NoError(t, err)

	_, err = h.Register("tick", "l1", second.handler)
	require.Error(t, err)
	assert.True(t, IsDuplicateListener(err))

	// The original handler still receives deliveries, exactly once.
	_, err = h.Broadcast("tick", "payload")
	require.NoError(t, err)
	assert.Len(t, first.msgs, 1)
	assert.Empty(t, second.msgs)
}

func TestRegisterOverwrite(t *testing.T) {
	h := New()
	first := &recorder{}
	second := &recorder{}

	_, err := h.Register("tick", "l1", first.handler)
	require.NoError(t, err)
	_, err = h.Register("tick", "l2", func(Message) error { return nil })
	require.NoError(t, err)

	require.NoError(t, h.MuteListener("tick", "l1"))

	_, err = h.Register("tick", "l1", second.handler, WithOverwrite())
	require.NoError(t, err)

	// Overwrite keeps the delivery position and resets the mute flag.
	ids, err := h.Listeners("tick")
	require.NoError(t, err)
	assert.Equal(t, []string{"l1", "l2"}, ids)

	_, err = h.Broadcast("tick", nil)
	require.NoError(t, err)
	assert.Empty(t, first.msgs)
	assert.Len(t, second.msgs, 1)
}

func TestMuteUnmuteListener(t *testing.T) {
	h := New()
	rec := &recorder{}
	_, err := h.Register("tick", "l1", rec.handler)
	require.NoError(t, err)

	require.NoError(t, h.MuteListener("tick", "l1"))
	// Idempotent.
	require.NoError(t, h.MuteListener("tick", "l1"))

	n, err := h.Broadcast("tick", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, rec.msgs)

	require.NoError(t, h.UnmuteListener("tick", "l1"))
	n, err = h.Broadcast("tick", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, rec.msgs, 1)
	assert.Equal(t, 2, rec.msgs[0].Payload)
}

func TestMuteListenerNotFound(t *testing.T) {
	h := New()
	_, err := h.Register("tick", "l1", func(Message) error { return nil })
	require.NoError(t, err)

	err = h.MuteListener("tock", "l1")
	assert.True(t, IsNotFound(err))

	err = h.MuteListener("tick", "ghost")
	assert.True(t, IsNotFound(err))

	err = h.UnmuteListener("tock", "l1")
	assert.True(t, IsNotFound(err))
}

func TestDestroyListener(t *testing.T) {
	h := New()
	r1 := &recorder{}
	r2 := &recorder{}
	_, err := h.Register("tick", "l1", r1.handler)
	require.NoError(t, err)
	_, err = h.Register("tick", "l2", r2.handler)
	require.NoError(t, err)

	require.NoError(t, h.DestroyListener("tick", "l1"))

	ids, err := h.Listeners("tick")
	require.NoError(t, err)
	assert.Equal(t, []string{"l2"}, ids)

	_, err = h.Broadcast("tick", nil)
	require.NoError(t, err)
	assert.Empty(t, r1.msgs)
	assert.Len(t, r2.msgs, 1)

	err = h.DestroyListener("tick", "l1")
	assert.True(t, IsNotFound(err))
}

func TestDestroyLastListenerKeepsEvent(t *testing.T) {
	h := New()
	_, err := h.Register("tick", "l1", func(Message) error { return nil })
	require.NoError(t, err)

	require.NoError(t, h.DestroyListener("tick", "l1"))

	// The event key survives: broadcasting to it succeeds with zero
	// deliveries rather than failing with NotFound.
	n, err := h.Broadcast("tick", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, []string{"tick"}, h.Events())
}

func TestDestroyEvent(t *testing.T) {
	h := New()
	_, err := h.Register("tick", "l1", func(Message) error { return nil })
	require.NoError(t, err)
	_, err = h.Register("tick", "l2", func(Message) error { return nil })
	require.NoError(t, err)

	require.NoError(t, h.DestroyEvent("tick"))
	assert.Equal(t, 0, h.Len())

	_, err = h.Broadcast("tick", nil)
	assert.True(t, IsNotFound(err))

	err = h.DestroyEvent("tick")
	assert.True(t, IsNotFound(err))
}

func TestMuteEventIsSeparateFlag(t *testing.T) {
	h := New()
	r1 := &recorder{}
	late := &recorder{}

	_, err := h.Register("tick", "l1", r1.handler)
	require.NoError(t, err)
	require.NoError(t, h.MuteListener("tick", "l1"))

	require.NoError(t, h.MuteEvent("tick"))

	// A listener registered after MuteEvent is suppressed too.
	_, err = h.Register("tick", "late", late.handler)
	require.NoError(t, err)

	n, err := h.Broadcast("tick", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, late.msgs)

	// UnmuteEvent restores each listener's own flag: l1 stays muted.
	require.NoError(t, h.UnmuteEvent("tick"))
	n, err = h.Broadcast("tick", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, r1.msgs)
	assert.Len(t, late.msgs, 1)
}

func TestMuteEventNotFound(t *testing.T) {
	h := New()
	assert.True(t, IsNotFound(h.MuteEvent("ghost")))
	assert.True(t, IsNotFound(h.UnmuteEvent("ghost")))
	assert.True(t, IsNotFound(h.DestroyEvent("ghost")))
	assert.Equal(t, 0, h.Len())
}

func TestIntrospection(t *testing.T) {
	h := New()
	_, err := h.Register("zeta", "z1", func(Message) error { return nil })
	require.NoError(t, err)
	_, err = h.Register("alpha", "a1", func(Message) error { return nil })
	require.NoError(t, err)
	_, err = h.Register("alpha", "a2", func(Message) error { return nil })
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "zeta"}, h.Events())
	assert.Equal(t, 2, h.Len())

	ids, err := h.Listeners("alpha")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2"}, ids)

	_, err = h.Listeners("ghost")
	assert.True(t, IsNotFound(err))
}

func TestMetaDelivered(t *testing.T) {
	h := New()
	rec := &recorder{}
	meta := map[string]any{"unit": "seconds", "scale": 10}

	_, err := h.Register("tick", "l1", rec.handler, WithMeta(meta))
	require.NoError(t, err)

	_, err = h.Broadcast("tick", nil)
	require.NoError(t, err)
	require.Len(t, rec.msgs, 1)
	assert.Equal(t, meta, rec.msgs[0].Meta)

	delivered, err := h.Whisper("tick", "l1", nil)
	require.NoError(t, err)
	assert.True(t, delivered)
	require.Len(t, rec.msgs, 2)
	assert.Equal(t, meta, rec.msgs[1].Meta)
}

func TestListenerIndependentAcrossEvents(t *testing.T) {
	h := New()
	tick := &recorder{}
	tock := &recorder{}

	_, err := h.Register("tick", "l1", tick.handler)
	require.NoError(t, err)
	_, err = h.Register("tock", "l1", tock.handler)
	require.NoError(t, err)

	require.NoError(t, h.MuteListener("tick", "l1"))

	_, err = h.Broadcast("tick", nil)
	require.NoError(t, err)
	_, err = h.Broadcast("tock", nil)
	require.NoError(t, err)

	assert.Empty(t, tick.msgs)
	assert.Len(t, tock.msgs, 1)
}
