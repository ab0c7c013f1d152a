package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderSeparator draws the vertical rule between list and detail pane.
func renderSeparator(style lipgloss.Style, height int) string {
	if height <= 0 {
		return ""
	}
	return style.Render(strings.TrimSuffix(strings.Repeat("│\n", height), "\n"))
}

// padLines appends blank lines of the given width until there are height
// lines.
func padLines(lines []string, width, height int) []string {
	blank := strings.Repeat(" ", max(width, 0))
	for len(lines) < height {
		lines = append(lines, blank)
	}
	return lines
}
