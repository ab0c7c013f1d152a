package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/trss/internal/bus"
	"github.com/pders01/trss/internal/config"
	"github.com/pders01/trss/internal/debuglog"
	"github.com/pders01/trss/internal/feed"
)

// App is the bubbletea model. It owns focus and the refresh state and is
// the only component that calls into the item store on input.
type App struct {
	config     *config.Config
	store      *feed.ItemStore
	sources    []config.Source
	styles     Styles
	keyHandler *KeyHandler
	list       *ListView
	detail     *DetailView
	status     *StatusLine
	focus      Focus
	refreshing bool
	width      int
	height     int
}

// NewApp wires the widgets to the bus. Load the store after this so the
// widgets see the initial ItemsLoaded.
func NewApp(cfg *config.Config, store *feed.ItemStore, b *bus.Bus, sources []config.Source) *App {
	styles := NewStyles(cfg.UI.Colors)
	keys := NewKeyMap(cfg.Keys)

	app := &App{
		config:  cfg,
		store:   store,
		sources: sources,
		styles:  styles,
		list:    NewListView(b, keys, styles, cfg.UI.ListWidth),
		detail:  NewDetailView(b, keys, styles),
		status:  NewStatusLine(keys, styles),
		focus:   ListFocused,
	}
	app.keyHandler = NewKeyHandler(app, keys)

	return app
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case refreshFetchedMsg:
		a.finishRefresh(msg.results)
	}

	return a, nil
}

func (a *App) View() string {
	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.list.View(),
		renderSeparator(a.styles.Separator, a.list.Height()),
		a.detail.View(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, body, a.status.Render(a.focus))
}

// ShowError puts err on the status line.
func (a *App) ShowError(err error) {
	if err == nil {
		return
	}
	debuglog.Errorf("%v", err)
	if errors.Is(err, feed.ErrReadOnly) {
		a.status.Set(MsgStoreReadOnly, StatusWarn)
		return
	}
	a.status.Set(err.Error(), StatusError)
}

func (a *App) resize(width, height int) {
	a.width, a.height = width, height

	listWidth := min(a.config.UI.ListWidth, max(width-2, 1))
	detailWidth := max(width-listWidth-1, 1)
	bodyHeight := max(height-1, 1)

	a.list.SetSize(listWidth, bodyHeight)
	a.detail.SetSize(detailWidth, bodyHeight)
	a.status.SetWidth(width)
}

// toggleRead flips the read flag of the selected item, moves on when the
// item became read and persists the store.
func (a *App) toggleRead() {
	item := a.list.Selected()
	if item == nil {
		a.status.Set(MsgNothingToMark, StatusInfo)
		return
	}

	read := !item.Read
	if err := a.store.MarkRead(item.Link, read); err != nil {
		a.ShowError(wrapErr("marking item", err))
		return
	}
	if read {
		if err := a.list.MoveSelection(1); err != nil {
			a.ShowError(err)
			return
		}
	}
	if err := a.store.Save(); err != nil {
		a.ShowError(wrapErr("saving", err))
	}
}

func (a *App) startRefresh() tea.Cmd {
	if a.refreshing {
		a.status.Set(MsgRefreshRunning, StatusInfo)
		return nil
	}
	a.refreshing = true
	a.status.Set(MsgRefreshing, StatusInfo)
	debuglog.Infof("refreshing %d sources", len(a.sources))
	return fetchSources(a.store, a.sources)
}

func (a *App) finishRefresh(results []feed.FetchResult) {
	a.refreshing = false

	report, err := a.store.Apply(results)
	switch {
	case err != nil:
		a.ShowError(wrapErr("refresh", err))
	case report.SaveErr != nil:
		a.ShowError(wrapErr("saving", report.SaveErr))
	case len(report.Errors) > 0:
		a.status.Set(report.Summary(), StatusWarn)
	default:
		a.status.Set(report.Summary(), StatusSuccess)
	}
}
