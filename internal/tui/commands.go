package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/trss/internal/config"
	"github.com/pders01/trss/internal/feed"
)

// refreshFetchedMsg carries the network phase of a refresh back to the
// update loop, where the results are merged into the store.
type refreshFetchedMsg struct {
	results []feed.FetchResult
}

func fetchSources(store *feed.ItemStore, sources []config.Source) tea.Cmd {
	return func() tea.Msg {
		return refreshFetchedMsg{results: store.FetchAll(context.Background(), sources)}
	}
}
