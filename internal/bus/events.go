package bus

import "github.com/pders01/trss/internal/storage"

// Kind identifies one of the event types carried by a Bus.
type Kind int

const (
	ItemsLoaded Kind = iota + 1
	ItemActivated
	ItemRead
)

func (k Kind) String() string {
	switch k {
	case ItemsLoaded:
		return "items_loaded"
	case ItemActivated:
		return "item_activated"
	case ItemRead:
		return "item_read"
	default:
		return "unknown"
	}
}

// Event is implemented by the payload types below; the set is closed.
type Event interface {
	Kind() Kind
}

// ItemsLoadedEvent carries the full item collection after a load or refresh.
// Handlers must treat the items as read-only.
type ItemsLoadedEvent struct {
	Items []*storage.Item
}

// ItemActivatedEvent carries the newly selected item. Item is nil when
// nothing selectable is under the cursor.
type ItemActivatedEvent struct {
	Item *storage.Item
}

// ItemReadEvent carries the link of an item whose read flag was set.
type ItemReadEvent struct {
	Link string
}

func (ItemsLoadedEvent) Kind() Kind   { return ItemsLoaded }
func (ItemActivatedEvent) Kind() Kind { return ItemActivated }
func (ItemReadEvent) Kind() Kind      { return ItemRead }
