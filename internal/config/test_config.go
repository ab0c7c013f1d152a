package config

import (
	"path/filepath"
	"time"
)

// TestConfig returns a config whose files all live under dir.
func TestConfig(dir string) *Config {
	cfg := defaultConfig()
	cfg.Storage.Path = filepath.Join(dir, "db.json")
	cfg.Feed.SourcesFile = filepath.Join(dir, "urls")
	cfg.Feed.HTTPTimeout = 5 * time.Second
	cfg.Feed.UserAgent = "trss-test/1.0"
	cfg.Feed.AllowPrivateHosts = true
	cfg.Log.Path = filepath.Join(dir, "trss.log")
	return cfg
}
