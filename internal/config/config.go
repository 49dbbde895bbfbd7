// Package config defines process configuration and its layered loader.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Cache validation modes.
const (
	ValidationSize    = "size"
	ValidationContent = "content"
)

// SectorRange maps a half-open band of centerline-relative angles to a label.
type SectorRange struct {
	Label string  `koanf:"label"`
	Min   float64 `koanf:"min"`
	Max   float64 `koanf:"max"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects text or json output.
	LogFormat string `koanf:"log_format"`

	// CacheDir is the root of the season/game artifact tree.
	CacheDir string `koanf:"cache_dir"`
	// OutputDir receives compiled hit tables.
	OutputDir string `koanf:"output_dir"`

	APIBaseURL    string `koanf:"api_base_url"`
	UserAgent     string `koanf:"user_agent"`
	HTTPTimeoutMS int    `koanf:"http_timeout_ms"`
	MaxBodyBytes  int64  `koanf:"max_body_bytes"`

	// RateLimitDelayMS is the pause after every successful remote fetch.
	RateLimitDelayMS int `koanf:"rate_limit_delay_ms"`

	// MinValidCacheBytes is the size a cached artifact must exceed to be
	// reused without refetching.
	MinValidCacheBytes int64 `koanf:"min_valid_cache_bytes"`
	// MinContentBytes is the smallest payload the compilation pass reads.
	MinContentBytes int64 `koanf:"min_content_bytes"`
	// CacheValidation is "size" or "content".
	CacheValidation string `koanf:"cache_validation"`

	HomePlateX float64 `koanf:"home_plate_x"`
	HomePlateY float64 `koanf:"home_plate_y"`

	// SectorTable overrides the default field sectors when non-empty.
	SectorTable []SectorRange `koanf:"sector_table"`

	// MetricsFile, when set, receives a Prometheus textfile dump after each run.
	MetricsFile string `koanf:"metrics_file"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		CacheDir:           "MLB_GAME_DATA",
		OutputDir:          "MLB_HIT_DATA",
		APIBaseURL:         "https://statsapi.mlb.com",
		UserAgent:          "mlbspray/1.0",
		HTTPTimeoutMS:      30_000,
		MaxBodyBytes:       32 << 20,
		RateLimitDelayMS:   100,
		MinValidCacheBytes: 2048,
		MinContentBytes:    100,
		CacheValidation:    ValidationSize,
		HomePlateX:         125.0,
		HomePlateY:         199.0,
	}
}

// HTTPTimeout returns the request timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMS) * time.Millisecond
}

// RateLimitDelay returns the inter-fetch pause as a duration.
func (c *Config) RateLimitDelay() time.Duration {
	return time.Duration(c.RateLimitDelayMS) * time.Millisecond
}

// Validate reports the first invalid setting wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.CacheDir == "":
		return fmt.Errorf("%w: cache_dir must not be empty", ErrInvalidConfig)
	case c.APIBaseURL == "":
		return fmt.Errorf("%w: api_base_url must not be empty", ErrInvalidConfig)
	case c.HTTPTimeoutMS <= 0:
		return fmt.Errorf("%w: http_timeout_ms must be positive", ErrInvalidConfig)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	case c.RateLimitDelayMS < 0:
		return fmt.Errorf("%w: rate_limit_delay_ms must not be negative", ErrInvalidConfig)
	case c.MinValidCacheBytes < 0 || c.MinContentBytes < 0:
		return fmt.Errorf("%w: size thresholds must not be negative", ErrInvalidConfig)
	}

	switch strings.ToLower(c.CacheValidation) {
	case ValidationSize, ValidationContent:
	default:
		return fmt.Errorf("%w: cache_validation %q is not size or content", ErrInvalidConfig, c.CacheValidation)
	}

	for i, r := range c.SectorTable {
		if r.Label == "" {
			return fmt.Errorf("%w: sector_table[%d] has no label", ErrInvalidConfig, i)
		}
		if r.Min >= r.Max {
			return fmt.Errorf("%w: sector_table[%d] %s has min >= max", ErrInvalidConfig, i, r.Label)
		}
	}
	return nil
}
