package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/trss/internal/bus"
	"github.com/pders01/trss/internal/storage"
)

// Row is one line of the list projection: a HeaderRow or an ItemRow.
type Row interface {
	isRow()
}

// HeaderRow opens a source group. Count is the number of items of that
// source under the active query.
type HeaderRow struct {
	Source string
	Count  int
}

// ItemRow points into the filtered, sorted item sequence.
type ItemRow struct {
	Index int
}

func (HeaderRow) isRow() {}
func (ItemRow) isRow()   {}

type Query struct {
	UnreadOnly bool
}

func (q Query) Match(item *storage.Item) bool {
	return !q.UnreadOnly || !item.Read
}

// ListView renders the grouped item list as a pad of pre-rendered rows of
// which only a height-sized window is shown. It owns the selection and the
// pad offset.
type ListView struct {
	bus    *bus.Bus
	keys   KeyMap
	styles Styles
	width  int
	height int

	all   []*storage.Item
	query Query
	items []*storage.Item
	rows  []Row
	rowOf map[string]int

	lines []string // plain row text, fitted to width
	pad   []string // styled rows

	selected int
	offset   int
}

func NewListView(b *bus.Bus, keys KeyMap, styles Styles, width int) *ListView {
	lv := &ListView{
		bus:    b,
		keys:   keys,
		styles: styles,
		width:  max(width, 1),
		height: 1,
		query:  Query{UnreadOnly: true},
		rowOf:  make(map[string]int),
	}
	bus.Subscribe(b, lv.onItemsLoaded)
	bus.Subscribe(b, lv.onItemRead)
	return lv
}

func (lv *ListView) onItemsLoaded(ev bus.ItemsLoadedEvent) error {
	lv.all = ev.Items
	lv.rebuild()
	return lv.activate()
}

// onItemRead restyles the affected row only. The projection is not
// recomputed, so an item marked read stays visible until the next rebuild.
func (lv *ListView) onItemRead(ev bus.ItemReadEvent) error {
	if row, ok := lv.rowOf[ev.Link]; ok {
		lv.pad[row] = lv.styleRow(row)
	}
	return nil
}

// SetSize resizes the viewport and keeps the selection visible.
func (lv *ListView) SetSize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if width != lv.width {
		lv.width = width
		lv.renderPad()
	}
	lv.height = height
	lv.scrollIntoView()
}

func (lv *ListView) HandleKey(msg tea.KeyMsg) error {
	switch {
	case key.Matches(msg, lv.keys.Up):
		return lv.MoveSelection(-1)
	case key.Matches(msg, lv.keys.Down):
		return lv.MoveSelection(1)
	case key.Matches(msg, lv.keys.PageUp):
		return lv.MoveSelection(-lv.height)
	case key.Matches(msg, lv.keys.PageDown):
		return lv.MoveSelection(lv.height)
	case key.Matches(msg, lv.keys.ToggleFilter):
		return lv.ToggleReadFilter()
	}
	return nil
}

// MoveSelection moves by delta rows, clamped to the projection. Header rows
// are stepped over in the direction of travel. A page jump (|delta| > 1)
// puts the new selection at the top of the viewport; a single step scrolls
// only as far as needed to keep it visible.
func (lv *ListView) MoveSelection(delta int) error {
	if len(lv.rows) == 0 {
		return lv.activate()
	}

	dir := 1
	if delta < 0 {
		dir = -1
	}
	target := min(max(lv.selected+delta, 0), len(lv.rows)-1)
	lv.selected = lv.nearestItemRow(target, dir)

	if delta > 1 || delta < -1 {
		lv.offset = lv.selected
	} else {
		lv.scrollIntoView()
	}
	return lv.activate()
}

// ToggleReadFilter flips between unread-only and all items.
func (lv *ListView) ToggleReadFilter() error {
	lv.query.UnreadOnly = !lv.query.UnreadOnly
	lv.rebuild()
	return lv.activate()
}

// Selected returns the item under the selection, or nil.
func (lv *ListView) Selected() *storage.Item {
	if lv.selected < 0 || lv.selected >= len(lv.rows) {
		return nil
	}
	if r, ok := lv.rows[lv.selected].(ItemRow); ok {
		return lv.items[r.Index]
	}
	return nil
}

func (lv *ListView) Rows() []Row         { return slices.Clone(lv.rows) }
func (lv *ListView) Selection() int      { return lv.selected }
func (lv *ListView) Offset() int         { return lv.offset }
func (lv *ListView) Height() int         { return lv.height }
func (lv *ListView) CurrentQuery() Query { return lv.query }

func (lv *ListView) View() string {
	end := min(lv.offset+lv.height, len(lv.pad))
	out := make([]string, 0, lv.height)
	for i := lv.offset; i < end; i++ {
		if i == lv.selected {
			if _, ok := lv.rows[i].(ItemRow); ok {
				out = append(out, lv.styles.SelectedItem.Render(lv.lines[i]))
				continue
			}
		}
		out = append(out, lv.pad[i])
	}
	return strings.Join(padLines(out, lv.width, lv.height), "\n")
}

func (lv *ListView) activate() error {
	return lv.bus.Emit(bus.ItemActivatedEvent{Item: lv.Selected()})
}

// rebuild recomputes the projection and resets selection to the first item
// row, scrolled as close to the top as the viewport allows.
func (lv *ListView) rebuild() {
	items := make([]*storage.Item, 0, len(lv.all))
	for _, item := range lv.all {
		if lv.query.Match(item) {
			items = append(items, item)
		}
	}
	slices.SortStableFunc(items, func(a, b *storage.Item) int {
		if c := cmp.Compare(b.Source, a.Source); c != 0 {
			return c
		}
		return b.Updated.Compare(a.Updated)
	})

	counts := make(map[string]int)
	for _, item := range items {
		counts[item.Source]++
	}

	rows := make([]Row, 0, len(items)+len(counts))
	clear(lv.rowOf)
	for i, item := range items {
		if i == 0 || item.Source != items[i-1].Source {
			rows = append(rows, HeaderRow{Source: item.Source, Count: counts[item.Source]})
		}
		lv.rowOf[item.Link] = len(rows)
		rows = append(rows, ItemRow{Index: i})
	}

	lv.items = items
	lv.rows = rows
	lv.renderPad()

	lv.selected = lv.nearestItemRow(0, 1)
	lv.offset = 0
	lv.scrollIntoView()
}

// nearestItemRow returns the first item row from row onwards in direction
// dir, falling back to the opposite direction.
func (lv *ListView) nearestItemRow(row, dir int) int {
	for i := row; i >= 0 && i < len(lv.rows); i += dir {
		if _, ok := lv.rows[i].(ItemRow); ok {
			return i
		}
	}
	for i := row - dir; i >= 0 && i < len(lv.rows); i -= dir {
		if _, ok := lv.rows[i].(ItemRow); ok {
			return i
		}
	}
	return row
}

// scrollIntoView moves the offset only when the selection left the
// viewport.
func (lv *ListView) scrollIntoView() {
	if lv.selected < lv.offset {
		lv.offset = lv.selected
		// Scrolling up to the top of a group also shows its header.
		if lv.height > 1 && lv.selected > 0 {
			if _, ok := lv.rows[lv.selected-1].(HeaderRow); ok {
				lv.offset--
			}
		}
	}
	if lv.selected >= lv.offset+lv.height {
		lv.offset = lv.selected - lv.height + 1
	}
}

func (lv *ListView) renderPad() {
	lv.lines = make([]string, len(lv.rows))
	lv.pad = make([]string, len(lv.rows))
	for i := range lv.rows {
		lv.lines[i] = lv.rowText(i)
		lv.pad[i] = lv.styleRow(i)
	}
}

func (lv *ListView) rowText(i int) string {
	switch r := lv.rows[i].(type) {
	case HeaderRow:
		return fitWidth(fmt.Sprintf("%s %d", r.Source, r.Count), lv.width)
	case ItemRow:
		item := lv.items[r.Index]
		title := singleLine(item.Title)
		if title == "" {
			title = item.Link
		}
		return fitWidth(title, lv.width)
	}
	return ""
}

func (lv *ListView) styleRow(i int) string {
	switch r := lv.rows[i].(type) {
	case HeaderRow:
		return lv.styles.Header.Render(lv.lines[i])
	case ItemRow:
		if lv.items[r.Index].Read {
			return lv.styles.ReadItem.Render(lv.lines[i])
		}
		return lv.styles.UnreadItem.Render(lv.lines[i])
	}
	return lv.lines[i]
}
