package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/trss/internal/storage"
)

func TestEmit_RegistrationOrder(t *testing.T) {
	b := New()
	var calls []string

	b.Register(ItemRead, func(Event) error { calls = append(calls, "first"); return nil })
	b.Register(ItemRead, func(Event) error { calls = append(calls, "second"); return nil })
	b.Register(ItemsLoaded, func(Event) error { calls = append(calls, "other kind"); return nil })

	require.NoError(t, b.Emit(ItemReadEvent{Link: "a"}))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestEmit_NoHandlers(t *testing.T) {
	b := New()
	assert.NoError(t, b.Emit(ItemActivatedEvent{}))
}

func TestEmit_ErrorStopsDispatch(t *testing.T) {
	b := New()
	boom := errors.New("boom")
	reached := false

	b.Register(ItemRead, func(Event) error { return boom })
	b.Register(ItemRead, func(Event) error { reached = true; return nil })

	err := b.Emit(ItemReadEvent{Link: "a"})
	assert.ErrorIs(t, err, boom)
	assert.False(t, reached)
}

func TestEmit_RegisterDuringDispatch(t *testing.T) {
	b := New()
	late := 0

	b.Register(ItemRead, func(Event) error {
		b.Register(ItemRead, func(Event) error { late++; return nil })
		return nil
	})

	require.NoError(t, b.Emit(ItemReadEvent{}))
	assert.Equal(t, 0, late, "handler added mid-dispatch must not run in the same emit")

	require.NoError(t, b.Emit(ItemReadEvent{}))
	assert.Equal(t, 1, late)
}

func TestEmit_UnsubscribeDuringDispatch(t *testing.T) {
	b := New()
	var calls []string
	var unsubscribeSecond func()

	b.Register(ItemRead, func(Event) error {
		calls = append(calls, "first")
		unsubscribeSecond()
		return nil
	})
	unsubscribeSecond = b.Register(ItemRead, func(Event) error {
		calls = append(calls, "second")
		return nil
	})

	require.NoError(t, b.Emit(ItemReadEvent{}))
	assert.Equal(t, []string{"first", "second"}, calls)

	calls = nil
	require.NoError(t, b.Emit(ItemReadEvent{}))
	assert.Equal(t, []string{"first"}, calls)
	assert.Equal(t, 1, b.Len(ItemRead))
}

func TestEmit_Reentrant(t *testing.T) {
	b := New()
	var order []string

	Subscribe(b, func(ev ItemsLoadedEvent) error {
		order = append(order, "loaded:start")
		if err := b.Emit(ItemActivatedEvent{Item: ev.Items[0]}); err != nil {
			return err
		}
		order = append(order, "loaded:end")
		return nil
	})
	Subscribe(b, func(ev ItemActivatedEvent) error {
		order = append(order, "activated:"+ev.Item.Link)
		return nil
	})
	Subscribe(b, func(ItemsLoadedEvent) error {
		order = append(order, "loaded:second")
		return nil
	})

	items := []*storage.Item{{Link: "x"}}
	require.NoError(t, b.Emit(ItemsLoadedEvent{Items: items}))
	assert.Equal(t, []string{"loaded:start", "activated:x", "loaded:end", "loaded:second"}, order)
}

func TestSubscribe_Typed(t *testing.T) {
	b := New()
	var got []string

	Subscribe(b, func(ev ItemReadEvent) error {
		got = append(got, ev.Link)
		return nil
	})

	require.NoError(t, b.Emit(ItemReadEvent{Link: "one"}))
	require.NoError(t, b.Emit(ItemReadEvent{Link: "two"}))
	assert.Equal(t, []string{"one", "two"}, got)
	assert.Equal(t, 1, b.Len(ItemRead))
	assert.Equal(t, 0, b.Len(ItemsLoaded))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "items_loaded", ItemsLoaded.String())
	assert.Equal(t, "item_activated", ItemActivated.String())
	assert.Equal(t, "item_read", ItemRead.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
