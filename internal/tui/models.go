package tui

// Focus says which pane receives keys that are not global.
type Focus int

const (
	ListFocused Focus = iota
	DetailFocused
)

// Glyph is the status line marker for the focused pane.
func (f Focus) Glyph() string {
	if f == DetailFocused {
		return ">"
	}
	return "<"
}

func (f Focus) String() string {
	if f == DetailFocused {
		return "detail"
	}
	return "list"
}
