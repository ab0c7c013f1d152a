package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/pders01/trss/internal/config"
)

func TestNewStyles_UsesConfiguredColors(t *testing.T) {
	colors := config.TestConfig(t.TempDir()).UI.Colors
	colors.Header = "#123456"
	styles := NewStyles(colors)

	assert.Equal(t, lipgloss.Color("#123456"), styles.Header.GetForeground())
	assert.Equal(t, lipgloss.Color(colors.Unread), styles.UnreadItem.GetForeground())
	assert.True(t, styles.UnreadItem.GetBold())
	assert.False(t, styles.ReadItem.GetBold())
	assert.Equal(t, lipgloss.Color(colors.Highlight), styles.SelectedItem.GetBackground())
}

func TestStyles_StatusStyle(t *testing.T) {
	colors := config.TestConfig(t.TempDir()).UI.Colors
	styles := NewStyles(colors)

	tests := []struct {
		kind StatusKind
		want lipgloss.TerminalColor
	}{
		{StatusInfo, lipgloss.Color(colors.Muted)},
		{StatusSuccess, lipgloss.Color(colors.Success)},
		{StatusWarn, lipgloss.Color(colors.Unread)},
		{StatusError, lipgloss.Color(colors.Error)},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, styles.StatusStyle(tt.kind).GetForeground())
		})
	}
}
