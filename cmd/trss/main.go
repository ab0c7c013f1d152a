package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/trss/internal/bus"
	"github.com/pders01/trss/internal/config"
	"github.com/pders01/trss/internal/debuglog"
	"github.com/pders01/trss/internal/feed"
	"github.com/pders01/trss/internal/storage"
	"github.com/pders01/trss/internal/tui"
	"github.com/pders01/trss/internal/validation"
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trss",
		Short: "Terminal feed reader",
		Long: `trss reads the feeds listed in ~/.config/trss/urls and shows their items
in a two-pane terminal interface. Items are kept in ~/.config/trss/db.json.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "trss: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := debuglog.Setup(debuglog.ParseLogLevel(cfg.Log.Level), cfg.Log.Path); err != nil {
		return fmt.Errorf("setting up log: %w", err)
	}
	defer debuglog.Close()

	app, backend, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}

// newApp builds bus, store and widgets and loads the persisted items.
// Problems with the sources file or the item store do not stop the
// program; they are shown on the status line instead.
func newApp(cfg *config.Config) (*tui.App, storage.Backend, error) {
	validator := validation.NewSourceValidator(cfg.Feed.AllowPrivateHosts)
	sources, sourcesErr := config.LoadSources(cfg.Feed.SourcesFile, validator)
	if sourcesErr != nil {
		debuglog.Warnf("sources: %v", sourcesErr)
	}
	debuglog.Infof("%d sources from %s", len(sources), cfg.Feed.SourcesFile)

	backend, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path, cfg.Storage.Timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("opening item store: %w", err)
	}

	b := bus.New()
	store := feed.NewItemStore(backend, feed.NewHTTPFetcher(cfg), b, cfg.Feed.MaxConcurrent)
	app := tui.NewApp(cfg, store, b, sources)

	if sourcesErr != nil {
		app.ShowError(fmt.Errorf("sources: %w", sourcesErr))
	}
	if err := store.Load(); err != nil {
		app.ShowError(err)
	}

	return app, backend, nil
}
