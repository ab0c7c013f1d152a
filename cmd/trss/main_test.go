package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/trss/internal/config"
	"github.com/pders01/trss/internal/storage"
)

func TestRootCmd_RejectsArguments(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}

func TestRootCmd_HasNoFlags(t *testing.T) {
	cmd := newRootCmd()
	assert.False(t, cmd.HasAvailableLocalFlags())
}

func TestNewApp_LoadsPersistedItems(t *testing.T) {
	dir := t.TempDir()
	cfg := config.TestConfig(dir)

	seed := []*storage.Item{{
		Link:    "https://example.com/1",
		Title:   "persisted",
		Source:  "example",
		Updated: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
	require.NoError(t, storage.NewJSONFile(cfg.Storage.Path).Save(seed))
	require.NoError(t, os.WriteFile(cfg.Feed.SourcesFile, []byte(`{"example": "https://example.com/feed"}`), 0o644))

	app, backend, err := newApp(cfg)
	require.NoError(t, err)
	defer backend.Close()

	app.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	assert.Contains(t, app.View(), "persisted")
	assert.Contains(t, app.View(), "example 1")
}

func TestNewApp_MissingFilesStartEmpty(t *testing.T) {
	cfg := config.TestConfig(t.TempDir())

	app, backend, err := newApp(cfg)
	require.NoError(t, err)
	defer backend.Close()

	_, err = os.Stat(cfg.Storage.Path)
	assert.True(t, os.IsNotExist(err), "nothing is written before the first save")
	assert.NotNil(t, app)
}

func TestNewApp_BoltBackend(t *testing.T) {
	cfg := config.TestConfig(t.TempDir())
	cfg.Storage.Backend = storage.BackendBolt
	cfg.Storage.Path = filepath.Join(t.TempDir(), "items.db")

	_, backend, err := newApp(cfg)
	require.NoError(t, err)
	require.NoError(t, backend.Close())
}

func TestNewApp_UnknownBackend(t *testing.T) {
	cfg := config.TestConfig(t.TempDir())
	cfg.Storage.Backend = "sqlite"

	_, _, err := newApp(cfg)
	assert.Error(t, err)
}
