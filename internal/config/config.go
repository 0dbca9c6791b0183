// Package config provides configuration management for the archive checker.
// It handles loading, validation, and access to settings such as the archive
// endpoint, retry policy, rate limiting, and batch input/output layout.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/archivecheck/internal/wayback"
)

// Default configuration values
const (
	DefaultArchiveBaseURL = "https://web.archive.org"
	DefaultRequestTimeout = 10 * time.Second
	DefaultMaxRetries     = 10
	DefaultBackoffBase    = 2.0
	DefaultResultLimit    = 100000
	// DefaultRateLimitDelay keeps the batch near 12 requests per minute,
	// under the archive's informal ceiling.
	DefaultRateLimitDelay = 5 * time.Second
	// DefaultFilter drops error-coded captures client-side so redirects
	// still count as historical presence.
	DefaultFilter = "exclude-errors"
)

// AppConfig holds application-level settings.
type AppConfig struct {
	// Name is the application name used in logs.
	Name string `yaml:"name"`
	// Environment is the deployment environment (development, production).
	Environment string `yaml:"environment"`
	// Debug enables debug logging.
	Debug bool `yaml:"debug"`
}

// ArchiveConfig holds settings for the archive index client.
type ArchiveConfig struct {
	// BaseURL is the archive service root, used for both CDX queries and
	// replay links.
	BaseURL string `env:"ARCHIVE_BASE_URL" yaml:"base_url"`
	// RequestTimeout bounds each HTTP request, CDX and live probe alike.
	RequestTimeout time.Duration `env:"ARCHIVE_REQUEST_TIMEOUT" yaml:"request_timeout"`
	// MaxRetries is the maximum number of CDX query attempts.
	MaxRetries int `env:"ARCHIVE_MAX_RETRIES" yaml:"max_retries"`
	// BackoffBase is the exponential backoff base between attempts, in
	// seconds: attempt n sleeps base^(n-1).
	BackoffBase float64 `env:"ARCHIVE_BACKOFF_BASE" yaml:"backoff_base"`
	// ResultLimit caps the number of CDX rows requested per query.
	ResultLimit int `env:"ARCHIVE_RESULT_LIMIT" yaml:"result_limit"`
	// CollapseDaily dedupes results to one capture per day.
	CollapseDaily bool `env:"ARCHIVE_COLLAPSE_DAILY" yaml:"collapse_daily"`
	// MatchPrefix widens queries to URL variants below the target.
	MatchPrefix bool `env:"ARCHIVE_MATCH_PREFIX" yaml:"match_prefix"`
	// Filter selects the snapshot filter policy: "none",
	// "exclude-errors", or "status:<code>".
	Filter string `env:"ARCHIVE_FILTER" yaml:"filter"`
}

// FilterPolicy parses the configured filter string.
func (c *ArchiveConfig) FilterPolicy() (wayback.FilterPolicy, error) {
	return wayback.ParseFilterPolicy(c.Filter)
}

// CheckerConfig holds settings for the batch check run.
type CheckerConfig struct {
	// InputPath is the CSV file to read.
	InputPath string `env:"CHECKER_INPUT" yaml:"input"`
	// OutputPath is the CSV file to write.
	OutputPath string `env:"CHECKER_OUTPUT" yaml:"output"`
	// URLColumns names the input columns carrying URLs to check.
	URLColumns []string `env:"CHECKER_URL_COLUMNS" yaml:"url_columns"`
	// RateLimitDelay is slept once after each record.
	RateLimitDelay time.Duration `env:"CHECKER_RATE_LIMIT_DELAY" yaml:"rate_limit_delay"`
}

// Config is the root application configuration.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Archive ArchiveConfig `yaml:"archive"`
	Checker CheckerConfig `yaml:"checker"`
}

// Load reads the configuration from viper. Defaults and environment
// bindings are installed by the root command before this runs.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        viper.GetString("app.name"),
			Environment: viper.GetString("app.environment"),
			Debug:       viper.GetBool("app.debug"),
		},
		Archive: ArchiveConfig{
			BaseURL:        viper.GetString("archive.base_url"),
			RequestTimeout: viper.GetDuration("archive.request_timeout"),
			MaxRetries:     viper.GetInt("archive.max_retries"),
			BackoffBase:    viper.GetFloat64("archive.backoff_base"),
			ResultLimit:    viper.GetInt("archive.result_limit"),
			CollapseDaily:  viper.GetBool("archive.collapse_daily"),
			MatchPrefix:    viper.GetBool("archive.match_prefix"),
			Filter:         viper.GetString("archive.filter"),
		},
		Checker: CheckerConfig{
			InputPath:      viper.GetString("checker.input"),
			OutputPath:     viper.GetString("checker.output"),
			URLColumns:     viper.GetStringSlice("checker.url_columns"),
			RateLimitDelay: viper.GetDuration("checker.rate_limit_delay"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Archive.BaseURL == "" {
		return errors.New("archive.base_url must not be empty")
	}
	if c.Archive.RequestTimeout <= 0 {
		return errors.New("archive.request_timeout must be positive")
	}
	if c.Archive.MaxRetries < 1 {
		return errors.New("archive.max_retries must be positive")
	}
	if c.Archive.BackoffBase < 1 {
		return errors.New("archive.backoff_base must be at least 1")
	}
	if c.Archive.ResultLimit < 0 {
		return errors.New("archive.result_limit must be non-negative")
	}
	if c.Checker.RateLimitDelay < 0 {
		return errors.New("checker.rate_limit_delay must be non-negative")
	}
	if _, err := c.Archive.FilterPolicy(); err != nil {
		return fmt.Errorf("archive.filter: %w", err)
	}
	return nil
}
