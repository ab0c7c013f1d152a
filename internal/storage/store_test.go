package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []*Item {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return []*Item{
		{Link: "http://example.org/1", Title: "One", Summary: "<p>first</p>", Source: "X", Updated: base, Read: false},
		{Link: "http://example.org/2", Title: "Two", Summary: "second", Source: "X", Updated: base.Add(-time.Hour), Read: true},
		{Link: "http://example.org/3", Title: "Three", Summary: "", Source: "Y", Updated: base.Add(time.Hour)},
	}
}

func setupBoltStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBoltStore_LoadBeforeSave(t *testing.T) {
	store := setupBoltStore(t)

	items, err := store.Load()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, items)
}

func TestBoltStore_RoundTrip(t *testing.T) {
	store := setupBoltStore(t)
	items := sampleItems()

	require.NoError(t, store.Save(items))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, len(items))
	for i := range items {
		assert.Equal(t, items[i].Link, loaded[i].Link)
		assert.Equal(t, items[i].Title, loaded[i].Title)
		assert.Equal(t, items[i].Read, loaded[i].Read)
		assert.True(t, items[i].Updated.Equal(loaded[i].Updated))
	}
}

func TestBoltStore_SaveOverwrites(t *testing.T) {
	store := setupBoltStore(t)

	require.NoError(t, store.Save(sampleItems()))
	require.NoError(t, store.Save(sampleItems()[:1]))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "http://example.org/1", loaded[0].Link)
}

func TestBoltStore_EmptySaveIsNotMissing(t *testing.T) {
	store := setupBoltStore(t)

	require.NoError(t, store.Save(nil))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestBoltStore_ReopenKeepsItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "test.db")

	first, err := NewBoltStore(path, time.Second)
	require.NoError(t, err)
	require.NoError(t, first.Save(sampleItems()))
	require.NoError(t, first.Close())

	second, err := NewBoltStore(path, time.Second)
	require.NoError(t, err)
	defer second.Close()

	loaded, err := second.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 3)
}

func TestJSONFile_MissingFile(t *testing.T) {
	j := NewJSONFile(filepath.Join(t.TempDir(), "db.json"))

	items, err := j.Load()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, items)
}

func TestJSONFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trss", "db.json")
	j := NewJSONFile(path)
	items := sampleItems()

	require.NoError(t, j.Save(items))

	loaded, err := NewJSONFile(path).Load()
	require.NoError(t, err)
	require.Len(t, loaded, len(items))
	for i := range items {
		assert.Equal(t, items[i].Link, loaded[i].Link)
		assert.Equal(t, items[i].Summary, loaded[i].Summary)
		assert.Equal(t, items[i].Source, loaded[i].Source)
		assert.Equal(t, items[i].Read, loaded[i].Read)
		assert.True(t, items[i].Updated.Equal(loaded[i].Updated))
	}
}

func TestJSONFile_HumanReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, NewJSONFile(path).Save(sampleItems()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    {\n        \"link\": \"http://example.org/1\"")
}

func TestJSONFile_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	j := NewJSONFile(filepath.Join(dir, "db.json"))

	require.NoError(t, j.Save(sampleItems()))
	require.NoError(t, j.Save(sampleItems()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "db.json", entries[0].Name())
}

func TestJSONFile_LegacyRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	legacy := `[
    {
        "title": "Old post",
        "title_detail": {"type": "text/plain", "value": "Old post"},
        "link": "http://example.org/old",
        "links": [{"rel": "alternate", "href": "http://example.org/old"}],
        "summary": "<p>hello</p>",
        "id": "http://example.org/old",
        "updated": "Tue, 03 Jun 2003 09:39:21 GMT",
        "updated_parsed": [2003, 6, 3, 9, 39, 21, 1, 154, 0],
        "source": "example",
        "read": true
    },
    {
        "title": "Published only",
        "link": "http://example.org/published",
        "published": "Wed, 04 Jun 2003 10:00:00 +0200",
        "source": "example",
        "read": false
    },
    {
        "title": "Odd date",
        "link": "http://example.org/odd",
        "updated": "sometime last week",
        "source": "example",
        "read": false
    }
]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	items, err := NewJSONFile(path).Load()
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Old post", items[0].Title)
	assert.True(t, items[0].Read)
	assert.True(t, items[0].Updated.Equal(time.Date(2003, 6, 3, 9, 39, 21, 0, time.UTC)))
	assert.True(t, items[1].Updated.Equal(time.Date(2003, 6, 4, 8, 0, 0, 0, time.UTC)))
	assert.True(t, items[2].Updated.IsZero())

	require.NoError(t, NewJSONFile(path).Save(items))
	reloaded, err := NewJSONFile(path).Load()
	require.NoError(t, err)
	require.Len(t, reloaded, 3)
	assert.True(t, reloaded[0].Updated.Equal(items[0].Updated))
}

func TestItem_UnmarshalUpdated(t *testing.T) {
	want := time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		json string
		want time.Time
	}{
		{name: "rfc3339", json: `{"updated": "2025-03-01T08:30:00Z"}`, want: want},
		{name: "rfc1123", json: `{"updated": "Sat, 01 Mar 2025 08:30:00 GMT"}`, want: want},
		{name: "rfc1123z", json: `{"updated": "Sat, 01 Mar 2025 09:30:00 +0100"}`, want: want},
		{name: "single digit day", json: `{"updated": "Sat, 1 Mar 2025 08:30:00 +0000"}`, want: want},
		{name: "published fallback", json: `{"published": "Sat, 01 Mar 2025 08:30:00 GMT"}`, want: want},
		{name: "null", json: `{"updated": null}`},
		{name: "missing", json: `{}`},
		{name: "not a string", json: `{"updated": 12}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item Item
			require.NoError(t, json.Unmarshal([]byte(tt.json), &item))
			assert.True(t, tt.want.Equal(item.Updated), "got %v", item.Updated)
		})
	}
}

func TestJSONFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewJSONFile(path).Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		kind    string
		wantErr bool
	}{
		{name: "default is json", kind: ""},
		{name: "json", kind: "json"},
		{name: "bolt", kind: "BOLT"},
		{name: "unknown", kind: "sqlite", wantErr: true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := Open(tt.kind, filepath.Join(dir, string(rune('a'+i))), time.Second)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, backend.Close())
		})
	}
}
