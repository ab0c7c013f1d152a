package storage

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Item is one feed entry. Link is its identity: a collection never holds
// two items with the same link.
type Item struct {
	Link    string    `json:"link"`
	Title   string    `json:"title"`
	Summary string    `json:"summary"`
	Source  string    `json:"source"`
	Updated time.Time `json:"updated"`
	Read    bool      `json:"read"`
}

// Layouts accepted for string timestamps in older db.json files, which
// stored the date exactly as the feed spelled it.
var legacyTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822Z,
	time.RFC822,
	time.RFC850,
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// UnmarshalJSON reads both the current format and records written by older
// versions, where updated was a free-form date string and could be missing
// in favour of published. An unparseable date leaves Updated zero.
func (it *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	aux := struct {
		*plain
		Updated   json.RawMessage `json:"updated"`
		Published json.RawMessage `json:"published"`
	}{plain: (*plain)(it)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	it.Updated = time.Time{}
	for _, raw := range []json.RawMessage{aux.Updated, aux.Published} {
		if t, ok := decodeTime(raw); ok {
			it.Updated = t
			break
		}
	}
	return nil
}

func decodeTime(raw json.RawMessage) (time.Time, bool) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range legacyTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
