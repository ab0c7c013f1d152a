package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned by Load when nothing has been persisted yet.
var ErrNotFound = errors.New("no persisted items")

// Backend persists the whole item collection. Load and Save always operate
// on the complete, ordered sequence; there is no incremental format.
type Backend interface {
	Load() ([]*Item, error)
	Save(items []*Item) error
	Close() error
}

const (
	BackendJSON = "json"
	BackendBolt = "bolt"
)

// Open returns the backend registered under kind.
func Open(kind, path string, timeout time.Duration) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", BackendJSON:
		return NewJSONFile(path), nil
	case BackendBolt:
		return NewBoltStore(path, timeout)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}
