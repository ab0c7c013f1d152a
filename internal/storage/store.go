package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	itemsBucket = []byte("items")
	metaBucket  = []byte("metadata")
	savedAtKey  = []byte("saved_at")
)

// BoltStore keeps the collection in a bbolt database. Items are keyed by
// their position so Load returns them in the order they were saved.
type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(dbPath string, timeout time.Duration) (*BoltStore, error) {
	if timeout <= 0 {
		timeout = 1 * time.Second
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{itemsBucket, metaBucket} {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})

	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Load returns ErrNotFound until the first successful Save.
func (s *BoltStore) Load() ([]*Item, error) {
	var items []*Item
	err := s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(metaBucket).Get(savedAtKey) == nil {
			return ErrNotFound
		}
		return tx.Bucket(itemsBucket).ForEach(func(_ []byte, v []byte) error {
			var item Item
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("decoding item: %w", err)
			}
			items = append(items, &item)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Save replaces the stored collection inside one transaction.
func (s *BoltStore) Save(items []*Item) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(itemsBucket); err != nil {
			return err
		}
		b, err := tx.CreateBucket(itemsBucket)
		if err != nil {
			return err
		}

		for i, item := range items {
			data, err := json.Marshal(item)
			if err != nil {
				return err
			}
			if err := b.Put(positionKey(i), data); err != nil {
				return err
			}
		}

		stamp, err := time.Now().UTC().MarshalText()
		if err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Put(savedAtKey, stamp)
	})
}

func positionKey(i int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(i))
	return key
}
