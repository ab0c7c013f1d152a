// Package bus is a synchronous publish/subscribe dispatcher connecting the
// item store to the terminal widgets.
package bus

import (
	"fmt"
	"slices"
)

// Handler receives an event. A non-nil error stops the dispatch and is
// returned from Emit.
type Handler func(Event) error

type subscription struct {
	id uint64
	fn Handler
}

// Bus dispatches events to handlers in registration order on the calling
// goroutine. It is not safe for concurrent use.
type Bus struct {
	handlers map[Kind][]subscription
	nextID   uint64
}

func New() *Bus {
	return &Bus{handlers: make(map[Kind][]subscription)}
}

// Register appends h to the handlers of kind and returns a function that
// removes it again.
func (b *Bus) Register(kind Kind, h Handler) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.handlers[kind] = append(b.handlers[kind], subscription{id: id, fn: h})

	return func() {
		b.handlers[kind] = slices.DeleteFunc(slices.Clone(b.handlers[kind]), func(s subscription) bool {
			return s.id == id
		})
	}
}

// Emit calls every handler registered for ev's kind. The handler list is
// snapshotted first: handlers registered or removed while dispatching only
// see later events.
func (b *Bus) Emit(ev Event) error {
	snapshot := slices.Clone(b.handlers[ev.Kind()])
	for _, s := range snapshot {
		if err := s.fn(ev); err != nil {
			return fmt.Errorf("%s handler: %w", ev.Kind(), err)
		}
	}
	return nil
}

// Len reports how many handlers are registered for kind.
func (b *Bus) Len(kind Kind) int {
	return len(b.handlers[kind])
}

// Subscribe registers a handler typed on the concrete event E.
func Subscribe[E Event](b *Bus, fn func(E) error) (unsubscribe func()) {
	var zero E
	return b.Register(zero.Kind(), func(ev Event) error {
		e, ok := ev.(E)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", ev, zero.Kind())
		}
		return fn(e)
	})
}
