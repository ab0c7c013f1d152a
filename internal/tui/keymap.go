package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/pders01/trss/internal/config"
)

// KeyMap holds the global bindings followed by the pane-scoped ones.
type KeyMap struct {
	Quit       key.Binding
	FocusList  key.Binding
	FocusItem  key.Binding
	ToggleRead key.Binding
	Refresh    key.Binding

	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	ToggleFilter key.Binding
}

// NewKeyMap builds bindings from the [keys] config section. A config value
// may list several keys separated by commas.
func NewKeyMap(cfg config.KeyConfig) KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys(append(splitKeys(cfg.Quit), "ctrl+c")...),
			key.WithHelp(cfg.Quit, "quit"),
		),
		FocusList: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "list"),
		),
		FocusItem: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "detail"),
		),
		ToggleRead: key.NewBinding(
			key.WithKeys(splitKeys(cfg.ToggleRead)...),
			key.WithHelp(cfg.ToggleRead, "read/unread"),
		),
		Refresh: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Refresh)...),
			key.WithHelp(cfg.Refresh, "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		ToggleFilter: key.NewBinding(
			key.WithKeys(splitKeys(cfg.ToggleFilter)...),
			key.WithHelp(cfg.ToggleFilter, "unread/all"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.ToggleRead, k.ToggleFilter, k.Refresh}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.FocusList, k.FocusItem},
		k.ShortHelp(),
	}
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
