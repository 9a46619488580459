package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Digital-Shane/title-crawl/internal/catalog"
	"github.com/Digital-Shane/title-crawl/internal/listing"
	"github.com/Digital-Shane/title-crawl/internal/tui/theme"
	"github.com/rs/zerolog"
)

// Config holds the user settings stored in ~/.title-crawl/config.json
type Config struct {
	BaseURL      string `json:"base_url"`
	IgnoreExtras bool   `json:"ignore_extras"`
	MaxDepth     int    `json:"max_depth"`

	// Listing fetch settings
	RequestLimit         int    `json:"request_limit"`
	RequestWindowSeconds int    `json:"request_window_seconds"`
	UserAgent            string `json:"user_agent"`
	CacheEnabled         bool   `json:"cache_enabled"`
	CacheTTLMinutes      int    `json:"cache_ttl_minutes"`

	// Logging
	EnableLogging    bool   `json:"enable_logging"`
	LogRetentionDays int    `json:"log_retention_days"`
	LogLevel         string `json:"log_level"`

	// HTTP API
	ServeAddr string `json:"serve_addr"`

	// Progress screen glyphs: auto, emoji or ascii
	Icons string `json:"icons"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:              "https://noobftp1.noobsubs.com",
		IgnoreExtras:         true,
		MaxDepth:             catalog.DefaultMaxDepth,
		RequestLimit:         38,
		RequestWindowSeconds: 10,
		UserAgent:            "title-crawl/1.0",
		CacheEnabled:         true,
		CacheTTLMinutes:      30,
		EnableLogging:        true,
		LogRetentionDays:     30,
		LogLevel:             "info",
		ServeAddr:            ":8080",
		Icons:                string(theme.IconsAuto),
	}
}

// Dir returns the directory holding the config file, logs and caches
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".title-crawl"), nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if file doesn't exist
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Fields missing from the file keep their defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Zero values are not usable settings, fall back to defaults
	defaults := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = defaults.MaxDepth
	}
	if cfg.LogRetentionDays <= 0 {
		cfg.LogRetentionDays = defaults.LogRetentionDays
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = defaults.ServeAddr
	}
	if mode, err := theme.ParseIcons(cfg.Icons); err == nil {
		cfg.Icons = string(mode)
	} else {
		cfg.Icons = defaults.Icons
	}

	return cfg, nil
}

// Save writes the configuration to disk
func (cfg *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// TraversalConfig derives the crawl settings for one episode listing
func (cfg *Config) TraversalConfig(logger *zerolog.Logger) catalog.TraversalConfig {
	return catalog.TraversalConfig{
		IgnoreExtras: cfg.IgnoreExtras,
		MaxDepth:     cfg.MaxDepth,
		Logger:       logger,
	}
}

// ListerOptions derives the HTTP lister settings
func (cfg *Config) ListerOptions(logger *zerolog.Logger) listing.Options {
	opts := listing.Options{
		UserAgent:     cfg.UserAgent,
		RequestLimit:  cfg.RequestLimit,
		RequestWindow: time.Duration(cfg.RequestWindowSeconds) * time.Second,
		Logger:        logger,
	}
	if cfg.CacheEnabled && cfg.CacheTTLMinutes > 0 {
		opts.CacheTTL = time.Duration(cfg.CacheTTLMinutes) * time.Minute
		if dir, err := Dir(); err == nil {
			opts.CacheFile = filepath.Join(dir, "listing_cache.gob")
		}
	}
	return opts
}

// Theme returns the progress screen theme for the icons setting
func (cfg *Config) Theme() theme.Theme {
	mode, _ := theme.ParseIcons(cfg.Icons)
	return theme.New(theme.WithIcons(mode))
}

// ProviderConfig returns the settings handed to the built-in providers,
// keyed by provider name
func (cfg *Config) ProviderConfig() map[string]map[string]interface{} {
	return map[string]map[string]interface{}{
		"noobsubs": {
			"base_url":      cfg.BaseURL,
			"ignore_extras": cfg.IgnoreExtras,
			"max_depth":     cfg.MaxDepth,
		},
	}
}

// Keys returns the setting names accepted by Set, sorted
func Keys() []string {
	var m map[string]interface{}
	data, _ := json.Marshal(DefaultConfig())
	_ = json.Unmarshal(data, &m)

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set parses value and assigns it to the setting named key
func (cfg *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case "base_url":
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base_url must be an absolute URL, got %q", value)
		}
		cfg.BaseURL = strings.TrimSuffix(value, "/")
	case "user_agent":
		cfg.UserAgent = value
	case "serve_addr":
		if value == "" {
			return fmt.Errorf("serve_addr must not be empty")
		}
		cfg.ServeAddr = value
	case "icons":
		mode, err := theme.ParseIcons(value)
		if err != nil {
			return err
		}
		cfg.Icons = string(mode)
	case "log_level":
		if _, err := zerolog.ParseLevel(strings.ToLower(value)); err != nil {
			return fmt.Errorf("invalid log_level %q: %w", value, err)
		}
		cfg.LogLevel = strings.ToLower(value)
	case "ignore_extras", "cache_enabled", "enable_logging":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false, got %q", key, value)
		}
		*cfg.boolField(key) = b
	case "max_depth", "request_limit", "request_window_seconds", "cache_ttl_minutes", "log_retention_days":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", key, value)
		}
		if n < 0 || (n == 0 && (key == "max_depth" || key == "log_retention_days")) {
			return fmt.Errorf("%s must be positive, got %d", key, n)
		}
		*cfg.intField(key) = n
	default:
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}

	return nil
}

func (cfg *Config) boolField(key string) *bool {
	switch key {
	case "ignore_extras":
		return &cfg.IgnoreExtras
	case "cache_enabled":
		return &cfg.CacheEnabled
	default:
		return &cfg.EnableLogging
	}
}

func (cfg *Config) intField(key string) *int {
	switch key {
	case "max_depth":
		return &cfg.MaxDepth
	case "request_limit":
		return &cfg.RequestLimit
	case "request_window_seconds":
		return &cfg.RequestWindowSeconds
	case "cache_ttl_minutes":
		return &cfg.CacheTTLMinutes
	default:
		return &cfg.LogRetentionDays
	}
}
