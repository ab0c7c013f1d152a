package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyHandler matches global bindings first and hands every other key to
// the focused pane.
type KeyHandler struct {
	app  *App
	keys KeyMap
}

func NewKeyHandler(app *App, keys KeyMap) *KeyHandler {
	return &KeyHandler{app: app, keys: keys}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Status messages last until the next key, except the refresh notice.
	if !kh.app.refreshing {
		kh.app.status.Clear()
	}

	if model, cmd, handled := kh.handleGlobalKeys(msg); handled {
		return model, cmd
	}
	return kh.delegateToFocused(msg)
}

func (kh *KeyHandler) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, kh.keys.Quit):
		return kh.app, tea.Quit, true
	case key.Matches(msg, kh.keys.FocusList):
		kh.app.focus = ListFocused
		return kh.app, nil, true
	case key.Matches(msg, kh.keys.FocusItem):
		kh.app.focus = DetailFocused
		return kh.app, nil, true
	case key.Matches(msg, kh.keys.ToggleRead):
		kh.app.toggleRead()
		return kh.app, nil, true
	case key.Matches(msg, kh.keys.Refresh):
		return kh.app, kh.app.startRefresh(), true
	default:
		return kh.app, nil, false
	}
}

func (kh *KeyHandler) delegateToFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch kh.app.focus {
	case ListFocused:
		if err := kh.app.list.HandleKey(msg); err != nil {
			kh.app.ShowError(err)
			return kh.app, nil
		}
		if key.Matches(msg, kh.keys.ToggleFilter) {
			if kh.app.list.CurrentQuery().UnreadOnly {
				kh.app.status.Set(MsgShowingUnread, StatusInfo)
			} else {
				kh.app.status.Set(MsgShowingAll, StatusInfo)
			}
		}
	case DetailFocused:
		kh.app.detail.HandleKey(msg)
	}
	return kh.app, nil
}
