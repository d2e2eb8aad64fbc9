// Package core provides shared configuration, error types, and small
// utilities used across the share-image backend.
package core

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Config holds all configuration values for the share-image service.
//
// Values are read from environment variables (typically loaded from a .env
// file by main before LoadConfig is called). Every field has a working
// default so the service can start with an empty environment.
type Config struct {
	// Server configuration
	Host string // Bind address for the HTTP surface (default: "localhost")
	Port int    // Listen port (default: 8090)

	// Output configuration
	OutputDir string // Directory for downloaded/exported share images (default: "output")

	// Asset loading
	AssetTimeout time.Duration // Per-asset fetch budget; loads race this timeout (default: 3s)

	// Encoding
	EncodeTimeout time.Duration // Upper bound on PNG encoding (default: 10s)

	// Export integration
	ShareHookURL     string // Optional HTTP endpoint receiving shared images; empty disables Share
	ClipboardCommand string // Optional override for the clipboard write utility

	// Fonts
	FontPath string // Optional explicit TTF path; system candidates are probed when empty

	// Render cache
	CacheEnabled bool   // Enable the sqlite render cache (default: true)
	CacheDBPath  string // Cache database file (default: "render_cache.db")

	// Background offload
	Workers int // Worker goroutines in the offload pool (default: 2)

	// Layout presets
	LayoutPresetsPath string // Optional YAML file overriding per-variant layout budgets
}

// LoadConfig reads configuration from environment variables and validates it.
//
// Returns a ConfigError with an actionable message when a value is present
// but unusable (bad URL, non-positive worker count). Missing values fall
// back to defaults and are never an error.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Host:              GetEnvOrDefault("VIBE_HOST", "localhost"),
		Port:              ParseIntEnv("VIBE_PORT", 8090),
		OutputDir:         GetEnvOrDefault("VIBE_OUTPUT_DIR", "output"),
		AssetTimeout:      ParseDurationEnv("VIBE_ASSET_TIMEOUT", 3*time.Second),
		EncodeTimeout:     ParseDurationEnv("VIBE_ENCODE_TIMEOUT", 10*time.Second),
		ShareHookURL:      os.Getenv("VIBE_SHARE_HOOK_URL"),
		ClipboardCommand:  os.Getenv("VIBE_CLIPBOARD_COMMAND"),
		FontPath:          os.Getenv("VIBE_FONT_PATH"),
		CacheEnabled:      ParseBoolEnv("VIBE_CACHE_ENABLED", true),
		CacheDBPath:       GetEnvOrDefault("VIBE_CACHE_DB", "render_cache.db"),
		Workers:           ParseIntEnv("VIBE_WORKERS", 2),
		LayoutPresetsPath: os.Getenv("VIBE_LAYOUT_PRESETS"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration for unusable values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return ErrInvalidPort(c.Port)
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers(c.Workers)
	}
	if c.AssetTimeout <= 0 {
		return ErrInvalidTimeout("VIBE_ASSET_TIMEOUT", c.AssetTimeout)
	}
	if c.EncodeTimeout <= 0 {
		return ErrInvalidTimeout("VIBE_ENCODE_TIMEOUT", c.EncodeTimeout)
	}
	if c.ShareHookURL != "" {
		u, err := url.Parse(c.ShareHookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrInvalidShareHook(c.ShareHookURL)
		}
	}
	if c.FontPath != "" {
		if _, err := os.Stat(c.FontPath); err != nil {
			return ErrFontNotFound(c.FontPath)
		}
	}
	return nil
}

// Addr returns the host:port address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DefaultHTTPClient returns an HTTP client configured for asset fetching.
// The client timeout is a hard backstop; callers apply the per-asset
// timeout race on top via context.
func DefaultHTTPClient(cfg *Config) *http.Client {
	timeout := 30 * time.Second
	if cfg != nil && cfg.AssetTimeout > 0 {
		// Leave headroom over the asset race so the race loses first.
		timeout = cfg.AssetTimeout * 4
	}
	return &http.Client{Timeout: timeout}
}
