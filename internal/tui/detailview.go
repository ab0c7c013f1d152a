package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/pders01/trss/internal/bus"
	"github.com/pders01/trss/internal/markup"
	"github.com/pders01/trss/internal/storage"
)

// DetailView shows the active item as plain text with its own scroll
// offset.
type DetailView struct {
	keys     KeyMap
	styles   Styles
	viewport viewport.Model
	item     *storage.Item
	text     string
}

func NewDetailView(b *bus.Bus, keys KeyMap, styles Styles) *DetailView {
	dv := &DetailView{
		keys:     keys,
		styles:   styles,
		viewport: viewport.New(1, 1),
	}
	bus.Subscribe(b, dv.onItemActivated)
	return dv
}

func (dv *DetailView) onItemActivated(ev bus.ItemActivatedEvent) error {
	dv.item = ev.Item
	dv.render()
	dv.viewport.GotoTop()
	return nil
}

func (dv *DetailView) SetSize(width, height int) {
	dv.viewport.Width = max(width, 1)
	dv.viewport.Height = max(height, 1)
	dv.render()
}

func (dv *DetailView) HandleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, dv.keys.Up):
		dv.viewport.LineUp(1)
	case key.Matches(msg, dv.keys.Down):
		dv.viewport.LineDown(1)
	case key.Matches(msg, dv.keys.PageUp):
		dv.viewport.ViewUp()
	case key.Matches(msg, dv.keys.PageDown):
		dv.viewport.ViewDown()
	}
}

// Text is the unstyled, wrapped content.
func (dv *DetailView) Text() string { return dv.text }

func (dv *DetailView) Offset() int { return dv.viewport.YOffset }

func (dv *DetailView) View() string {
	return dv.viewport.View()
}

func (dv *DetailView) render() {
	if dv.item == nil {
		dv.text = ""
		dv.viewport.SetContent("")
		return
	}

	width := dv.viewport.Width
	title := wrapText(singleLine(dv.item.Title), width)
	body := wrapText(markup.ToText(dv.item.Summary), width)

	dv.text = title + "\n\n" + body
	dv.viewport.SetContent(dv.styles.DetailTitle.Render(title) + "\n\n" + body)
}

// wrapText word-wraps s to width and hard-wraps words that are still too
// long.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wrap.String(wordwrap.String(s, width), width)
}
