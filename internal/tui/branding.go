package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/trss/internal/config"
)

// Styles holds every lipgloss style the widgets render with. Colors come
// from the [ui.colors] config section.
type Styles struct {
	Header       lipgloss.Style
	ReadItem     lipgloss.Style
	UnreadItem   lipgloss.Style
	SelectedItem lipgloss.Style
	Separator    lipgloss.Style
	DetailTitle  lipgloss.Style
	FocusGlyph   lipgloss.Style
	Help         lipgloss.Style

	StatusInfo    lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarn    lipgloss.Style
	StatusError   lipgloss.Style
}

func NewStyles(colors config.UIColors) Styles {
	var (
		headerColor    = lipgloss.Color(colors.Header)
		itemColor      = lipgloss.Color(colors.Item)
		unreadColor    = lipgloss.Color(colors.Unread)
		selectedColor  = lipgloss.Color(colors.Selected)
		highlightColor = lipgloss.Color(colors.Highlight)
		mutedColor     = lipgloss.Color(colors.Muted)
		errorColor     = lipgloss.Color(colors.Error)
		successColor   = lipgloss.Color(colors.Success)
	)

	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(headerColor).
			Bold(true),

		ReadItem: lipgloss.NewStyle().
			Foreground(itemColor),

		UnreadItem: lipgloss.NewStyle().
			Foreground(unreadColor).
			Bold(true),

		SelectedItem: lipgloss.NewStyle().
			Foreground(selectedColor).
			Background(highlightColor).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(mutedColor),

		DetailTitle: lipgloss.NewStyle().
			Foreground(headerColor).
			Bold(true),

		FocusGlyph: lipgloss.NewStyle().
			Foreground(highlightColor).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true),

		StatusInfo: lipgloss.NewStyle().
			Foreground(mutedColor),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(successColor),

		StatusWarn: lipgloss.NewStyle().
			Foreground(unreadColor),

		StatusError: lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true),
	}
}

// StatusStyle picks the style for a status message of the given severity.
func (s Styles) StatusStyle(kind StatusKind) lipgloss.Style {
	switch kind {
	case StatusSuccess:
		return s.StatusSuccess
	case StatusWarn:
		return s.StatusWarn
	case StatusError:
		return s.StatusError
	default:
		return s.StatusInfo
	}
}
