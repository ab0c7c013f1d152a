package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const appName = "trss"

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Feed    FeedConfig    `mapstructure:"feed"`
	UI      UIConfig      `mapstructure:"ui"`
	Keys    KeyConfig     `mapstructure:"keys"`
	Log     LogConfig     `mapstructure:"log"`
}

type StorageConfig struct {
	Backend string        `mapstructure:"backend"`
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type FeedConfig struct {
	SourcesFile       string        `mapstructure:"sources_file"`
	HTTPTimeout       time.Duration `mapstructure:"http_timeout"`
	UserAgent         string        `mapstructure:"user_agent"`
	MaxConcurrent     int           `mapstructure:"max_concurrent"`
	AllowPrivateHosts bool          `mapstructure:"allow_private_hosts"`
}

type UIConfig struct {
	ListWidth int      `mapstructure:"list_width"`
	Colors    UIColors `mapstructure:"colors"`
}

type UIColors struct {
	Header    string `mapstructure:"header"`
	Item      string `mapstructure:"item"`
	Unread    string `mapstructure:"unread"`
	Selected  string `mapstructure:"selected"`
	Muted     string `mapstructure:"muted"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
	Highlight string `mapstructure:"highlight"`
}

type KeyConfig struct {
	Quit         string `mapstructure:"quit"`
	ToggleRead   string `mapstructure:"toggle_read"`
	ToggleFilter string `mapstructure:"toggle_filter"`
	Refresh      string `mapstructure:"refresh"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// Dir is the directory holding the config file, sources and item database.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

func defaultConfig() *Config {
	dir := Dir()

	return &Config{
		Storage: StorageConfig{
			Backend: "json",
			Path:    filepath.Join(dir, "db.json"),
			Timeout: 1 * time.Second,
		},
		Feed: FeedConfig{
			SourcesFile:       filepath.Join(dir, "urls"),
			HTTPTimeout:       30 * time.Second,
			UserAgent:         "trss/1.0 (terminal feed reader)",
			MaxConcurrent:     4,
			AllowPrivateHosts: true,
		},
		UI: UIConfig{
			ListWidth: 40,
			Colors: UIColors{
				Header:    "#4ECDC4",
				Item:      "#95E1D3",
				Unread:    "#FFE66D",
				Selected:  "#1A1A2E",
				Muted:     "#94A3B8",
				Error:     "#EF4444",
				Success:   "#10B981",
				Highlight: "#4ECDC4",
			},
		},
		Keys: KeyConfig{
			Quit:         "q",
			ToggleRead:   "n",
			ToggleFilter: "a",
			Refresh:      "r",
		},
		Log: LogConfig{
			Level: "off",
			Path:  filepath.Join(dir, "trss.log"),
		},
	}
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("storage.timeout", cfg.Storage.Timeout)

	v.SetDefault("feed.sources_file", cfg.Feed.SourcesFile)
	v.SetDefault("feed.http_timeout", cfg.Feed.HTTPTimeout)
	v.SetDefault("feed.user_agent", cfg.Feed.UserAgent)
	v.SetDefault("feed.max_concurrent", cfg.Feed.MaxConcurrent)
	v.SetDefault("feed.allow_private_hosts", cfg.Feed.AllowPrivateHosts)

	v.SetDefault("ui.list_width", cfg.UI.ListWidth)
	v.SetDefault("ui.colors.header", cfg.UI.Colors.Header)
	v.SetDefault("ui.colors.item", cfg.UI.Colors.Item)
	v.SetDefault("ui.colors.unread", cfg.UI.Colors.Unread)
	v.SetDefault("ui.colors.selected", cfg.UI.Colors.Selected)
	v.SetDefault("ui.colors.muted", cfg.UI.Colors.Muted)
	v.SetDefault("ui.colors.error", cfg.UI.Colors.Error)
	v.SetDefault("ui.colors.success", cfg.UI.Colors.Success)
	v.SetDefault("ui.colors.highlight", cfg.UI.Colors.Highlight)

	v.SetDefault("keys.quit", cfg.Keys.Quit)
	v.SetDefault("keys.toggle_read", cfg.Keys.ToggleRead)
	v.SetDefault("keys.toggle_filter", cfg.Keys.ToggleFilter)
	v.SetDefault("keys.refresh", cfg.Keys.Refresh)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.path", cfg.Log.Path)
}

// Load reads config.toml from configPath, or from TRSS_CONFIG, or from the
// default config directory. A missing file is not an error; every key can
// also be set through TRSS_* environment variables (TRSS_STORAGE_BACKEND).
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v, defaultConfig())

	if configPath == "" {
		configPath = os.Getenv("TRSS_CONFIG")
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix("TRSS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)
	if config.UI.ListWidth < 10 {
		config.UI.ListWidth = 10
	}
	if config.Feed.MaxConcurrent < 1 {
		config.Feed.MaxConcurrent = 1
	}

	return &config, nil
}

// expandPath expands ~ to the home directory and makes the path absolute.
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	cfg.Feed.SourcesFile = expandPath(cfg.Feed.SourcesFile)
	cfg.Log.Path = expandPath(cfg.Log.Path)
}
