package feed

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pders01/trss/internal/bus"
	"github.com/pders01/trss/internal/config"
	"github.com/pders01/trss/internal/debuglog"
	"github.com/pders01/trss/internal/storage"
)

var (
	// ErrNoLink marks a candidate that cannot be stored because it has no link.
	ErrNoLink = errors.New("item has no link")
	// ErrReadOnly is returned by Save after Load found unreadable data.
	ErrReadOnly = errors.New("store is read-only")
)

// FetchResult is what one source produced during the network phase of a
// refresh.
type FetchResult struct {
	Source config.Source
	Items  []*storage.Item
	Err    error
}

type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string { return e.Source + ": " + e.Err.Error() }
func (e *SourceError) Unwrap() error { return e.Err }

// RefreshReport summarizes a merged refresh.
type RefreshReport struct {
	Sources int
	Added   int
	Skipped int
	Errors  []*SourceError
	SaveErr error
}

func (r RefreshReport) Summary() string {
	return fmt.Sprintf("Refreshed: %d sources • %d new • %d errors", r.Sources, r.Added, len(r.Errors))
}

// Err joins every source failure and the save failure, or nil.
func (r RefreshReport) Err() error {
	errs := make([]error, 0, len(r.Errors)+1)
	for _, e := range r.Errors {
		errs = append(errs, e)
	}
	if r.SaveErr != nil {
		errs = append(errs, r.SaveErr)
	}
	return errors.Join(errs...)
}

// ItemStore owns the canonical item collection. Every mutation publishes
// on the bus; all methods except FetchAll must be called from the goroutine
// that owns the UI state.
type ItemStore struct {
	backend storage.Backend
	fetcher Fetcher
	bus     *bus.Bus
	limit   int

	items   []*storage.Item
	index   map[string]*storage.Item
	loadErr error
}

// NewItemStore builds an empty store. limit caps concurrent fetches during
// a refresh; values below 1 mean one at a time.
func NewItemStore(backend storage.Backend, fetcher Fetcher, b *bus.Bus, limit int) *ItemStore {
	if limit < 1 {
		limit = 1
	}
	return &ItemStore{
		backend: backend,
		fetcher: fetcher,
		bus:     b,
		limit:   limit,
		index:   make(map[string]*storage.Item),
	}
}

// Load replaces the collection with what the backend holds and publishes
// ItemsLoaded. Missing storage leaves the store empty and publishes
// nothing. Unreadable storage is returned as an error and blocks Save for
// the rest of the session so the file is never clobbered.
func (s *ItemStore) Load() error {
	items, err := s.backend.Load()
	if errors.Is(err, storage.ErrNotFound) {
		debuglog.Infof("no persisted items, starting empty")
		return nil
	}
	if err != nil {
		s.loadErr = err
		return fmt.Errorf("loading items: %w", err)
	}

	s.items = s.items[:0]
	clear(s.index)
	for _, item := range items {
		if item == nil || item.Link == "" {
			continue
		}
		if _, ok := s.index[item.Link]; ok {
			debuglog.Warnf("dropping duplicate persisted item %s", item.Link)
			continue
		}
		s.items = append(s.items, item)
		s.index[item.Link] = item
	}
	debuglog.Infof("loaded %d items", len(s.items))

	return s.bus.Emit(bus.ItemsLoadedEvent{Items: s.Items()})
}

// Save writes the whole collection.
func (s *ItemStore) Save() error {
	if s.loadErr != nil {
		return fmt.Errorf("%w: %v", ErrReadOnly, s.loadErr)
	}
	if err := s.backend.Save(s.items); err != nil {
		return fmt.Errorf("saving items: %w", err)
	}
	return nil
}

// Refresh fetches every source and merges the result. It is FetchAll
// followed by Apply on the calling goroutine.
func (s *ItemStore) Refresh(ctx context.Context, sources []config.Source) (RefreshReport, error) {
	return s.Apply(s.FetchAll(ctx, sources))
}

// FetchAll runs the network phase of a refresh. It touches no store state
// and is safe to call off the UI goroutine. Results keep source order; a
// failing source never stops the others.
func (s *ItemStore) FetchAll(ctx context.Context, sources []config.Source) []FetchResult {
	results := make([]FetchResult, len(sources))

	var g errgroup.Group
	g.SetLimit(s.limit)
	for i, src := range sources {
		g.Go(func() error {
			items, err := s.fetcher.Fetch(ctx, src)
			results[i] = FetchResult{Source: src, Items: items, Err: err}
			log := debuglog.WithFields(map[string]any{"source": src.Name, "url": src.URL})
			if err != nil {
				log.Warnf("fetch failed: %v", err)
			} else {
				log.Debugf("fetched %d candidates", len(items))
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Apply merges fetched candidates: new links are appended unread and
// stamped with their source name, known links are left alone. The store
// is then saved and ItemsLoaded published. A save failure lands in the
// report; the returned error is the publish error only.
func (s *ItemStore) Apply(results []FetchResult) (RefreshReport, error) {
	report := RefreshReport{Sources: len(results)}

	for _, res := range results {
		if res.Err != nil {
			report.Errors = append(report.Errors, &SourceError{Source: res.Source.Name, Err: res.Err})
			continue
		}
		for _, candidate := range res.Items {
			if err := validateCandidate(candidate); err != nil {
				debuglog.Debugf("skipping candidate from %s: %v", res.Source.Name, err)
				report.Skipped++
				continue
			}
			if _, ok := s.index[candidate.Link]; ok {
				continue
			}
			item := *candidate
			item.Read = false
			item.Source = res.Source.Name
			s.items = append(s.items, &item)
			s.index[item.Link] = &item
			report.Added++
		}
	}

	if err := s.Save(); err != nil {
		debuglog.Errorf("saving after refresh: %v", err)
		report.SaveErr = err
	}
	debuglog.Infof("%s", report.Summary())

	return report, s.bus.Emit(bus.ItemsLoadedEvent{Items: s.Items()})
}

// MarkRead sets the read flag of the item with the given link and
// publishes ItemRead for that link, matched or not.
func (s *ItemStore) MarkRead(link string, read bool) error {
	if item, ok := s.index[link]; ok {
		item.Read = read
	}
	return s.bus.Emit(bus.ItemReadEvent{Link: link})
}

// Items returns the collection in insertion order. The slice is a copy;
// the items are shared.
func (s *ItemStore) Items() []*storage.Item {
	return slices.Clone(s.items)
}

func (s *ItemStore) Find(link string) (*storage.Item, bool) {
	item, ok := s.index[link]
	return item, ok
}

func (s *ItemStore) Len() int {
	return len(s.items)
}

func validateCandidate(item *storage.Item) error {
	if item == nil || strings.TrimSpace(item.Link) == "" {
		return ErrNoLink
	}
	return nil
}
