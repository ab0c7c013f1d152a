package tui

import (
	"github.com/charmbracelet/bubbles/help"
)

// StatusLine is the bottom line: focus glyph, then either the current
// status message or the key help.
type StatusLine struct {
	styles Styles
	keys   KeyMap
	help   help.Model
	width  int
	text   string
	kind   StatusKind
}

func NewStatusLine(keys KeyMap, styles Styles) *StatusLine {
	h := help.New()
	h.ShortSeparator = " • "
	h.Styles.ShortKey = styles.Help
	h.Styles.ShortDesc = styles.Help
	h.Styles.ShortSeparator = styles.Help

	return &StatusLine{
		styles: styles,
		keys:   keys,
		help:   h,
		width:  80,
	}
}

func (s *StatusLine) SetWidth(width int) {
	s.width = max(width, 1)
}

func (s *StatusLine) Set(text string, kind StatusKind) {
	s.text = text
	s.kind = kind
}

func (s *StatusLine) Clear() {
	s.text = ""
	s.kind = StatusInfo
}

func (s *StatusLine) Text() string     { return s.text }
func (s *StatusLine) Kind() StatusKind { return s.kind }

func (s *StatusLine) Render(focus Focus) string {
	line := s.styles.FocusGlyph.Render(focus.Glyph()) + " "
	room := s.width - 2
	if s.text != "" {
		return line + s.styles.StatusStyle(s.kind).Render(truncateEnd(s.text, room))
	}
	s.help.Width = room
	return line + s.help.ShortHelpView(s.keys.ShortHelp())
}
