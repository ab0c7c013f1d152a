package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// truncateEnd shortens s to at most limit cells, appending an ellipsis if
// truncation occurs.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	return ansi.Truncate(s, limit, "…")
}

// fitWidth truncates or right-pads s so it occupies exactly width cells.
func fitWidth(s string, width int) string {
	s = truncateEnd(s, width)
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// singleLine folds any run of whitespace, newlines included, into one space.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
