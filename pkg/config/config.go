package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the gallery settings. Values come from the YAML config file;
// OCE_* environment variables override it, so CI and containers can run
// without a config file at all.
type Config struct {
	// Content service connection
	ServerURL    string `yaml:"server_url" env:"OCE_SERVER_URL"`
	ChannelToken string `yaml:"channel_token" env:"OCE_CHANNEL_TOKEN"`

	// Fetching
	PageSize           int    `yaml:"page_size" env:"OCE_PAGE_SIZE"`
	MaxWorkers         int    `yaml:"max_workers" env:"OCE_MAX_WORKERS"`
	HTTPTimeoutSeconds int    `yaml:"http_timeout_seconds" env:"OCE_HTTP_TIMEOUT_SECONDS"`
	ThumbnailRendition string `yaml:"thumbnail_rendition" env:"OCE_THUMBNAIL_RENDITION"`
	PreviewRendition   string `yaml:"preview_rendition" env:"OCE_PREVIEW_RENDITION"`

	// UI Settings
	ColorTheme        string `yaml:"color_theme"`
	DisplayDateFormat string `yaml:"display_date_format"`

	// Storage
	CacheDir string `yaml:"cache_dir" env:"OCE_CACHE_DIR"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:          "",
		ChannelToken:       "",
		PageSize:           20,
		MaxWorkers:         4,
		HTTPTimeoutSeconds: 30,
		ThumbnailRendition: "Thumbnail",
		PreviewRendition:   "Large",
		ColorTheme:         "auto",
		DisplayDateFormat:  "2006-01-02",
	}
}

// Load reads configuration from the specified file path and applies
// environment overrides. A missing file is not an error; defaults plus the
// environment are used.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Apply defaults for essential values if missing
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		cfg.HTTPTimeoutSeconds = 30
	}
	if cfg.ThumbnailRendition == "" {
		cfg.ThumbnailRendition = "Thumbnail"
	}
	if cfg.PreviewRendition == "" {
		cfg.PreviewRendition = "Large"
	}
	if cfg.ColorTheme == "" {
		cfg.ColorTheme = "auto"
	}
	if cfg.DisplayDateFormat == "" {
		cfg.DisplayDateFormat = "2006-01-02"
	}

	return cfg, nil
}

// Validate checks that the connection settings are usable
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url is not set (config file or OCE_SERVER_URL)")
	}
	if c.ChannelToken == "" {
		return fmt.Errorf("channel_token is not set (config file or OCE_CHANNEL_TOKEN)")
	}
	return nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Set updates one key in yaml notation ("server_url", "page_size", ...)
func (c *Config) Set(key, value string) error {
	switch key {
	case "server_url":
		c.ServerURL = value
	case "channel_token":
		c.ChannelToken = value
	case "thumbnail_rendition":
		c.ThumbnailRendition = value
	case "preview_rendition":
		c.PreviewRendition = value
	case "color_theme":
		c.ColorTheme = value
	case "display_date_format":
		c.DisplayDateFormat = value
	case "cache_dir":
		c.CacheDir = value
	case "page_size", "max_workers", "http_timeout_seconds":
		n, err := parsePositiveInt(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		switch key {
		case "page_size":
			c.PageSize = n
		case "max_workers":
			c.MaxWorkers = n
		case "http_timeout_seconds":
			c.HTTPTimeoutSeconds = n
		}
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func parsePositiveInt(value string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		return 0, fmt.Errorf("not a number: %q", value)
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive: %d", n)
	}
	return n, nil
}
