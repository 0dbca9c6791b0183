package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/archivecheck/internal/config"
	"github.com/jonesrussell/archivecheck/internal/wayback"
)

func setBaseConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("app.name", "archivecheck")
	viper.Set("app.environment", "production")
	viper.Set("archive.base_url", "https://web.archive.org")
	viper.Set("archive.request_timeout", "10s")
	viper.Set("archive.max_retries", 10)
	viper.Set("archive.backoff_base", 2.0)
	viper.Set("archive.result_limit", 100000)
	viper.Set("archive.filter", "exclude-errors")
	viper.Set("checker.input", "input.csv")
	viper.Set("checker.output", "output.csv")
	viper.Set("checker.url_columns", []string{"URL progetto", "URL sito vetrina"})
	viper.Set("checker.rate_limit_delay", "5s")
}

func TestLoad(t *testing.T) {
	setBaseConfig(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "archivecheck", cfg.App.Name)
	assert.Equal(t, "https://web.archive.org", cfg.Archive.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Archive.RequestTimeout)
	assert.Equal(t, 10, cfg.Archive.MaxRetries)
	assert.InDelta(t, 2.0, cfg.Archive.BackoffBase, 0.001)
	assert.Equal(t, []string{"URL progetto", "URL sito vetrina"}, cfg.Checker.URLColumns)
	assert.Equal(t, 5*time.Second, cfg.Checker.RateLimitDelay)

	policy, err := cfg.Archive.FilterPolicy()
	require.NoError(t, err)
	assert.Equal(t, wayback.FilterExcludeErrors, policy.Mode)
}

func TestLoadServerStatusFilter(t *testing.T) {
	setBaseConfig(t)
	viper.Set("archive.filter", "status:200")

	cfg, err := config.Load()

	require.NoError(t, err)
	policy, err := cfg.Archive.FilterPolicy()
	require.NoError(t, err)
	assert.Equal(t, wayback.FilterServerStatus, policy.Mode)
	assert.Equal(t, 200, policy.StatusCode)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "empty base url", key: "archive.base_url", value: ""},
		{name: "zero timeout", key: "archive.request_timeout", value: "0s"},
		{name: "zero retries", key: "archive.max_retries", value: 0},
		{name: "backoff below one", key: "archive.backoff_base", value: 0.5},
		{name: "negative limit", key: "archive.result_limit", value: -1},
		{name: "negative delay", key: "checker.rate_limit_delay", value: "-1s"},
		{name: "unknown filter", key: "archive.filter", value: "latest-only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseConfig(t)
			viper.Set(tt.key, tt.value)

			_, err := config.Load()

			assert.Error(t, err)
		})
	}
}
