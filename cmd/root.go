// Package cmd implements the command-line interface for archivecheck.
// It provides the root command and subcommands for batch and single-URL
// archive lookups.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joho/godotenv"
	"github.com/jonesrussell/archivecheck/cmd/check"
	"github.com/jonesrussell/archivecheck/cmd/lookup"
	"github.com/jonesrussell/archivecheck/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// rootCmd represents the root command for the archivecheck CLI.
	rootCmd = &cobra.Command{
		Use:   "archivecheck",
		Short: "Check URLs against the Wayback Machine",
		Long: `archivecheck checks URLs for current liveness and historical presence
in the Wayback Machine CDX index, enriching a CSV of URLs or inspecting a
single URL interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early to get debug flag before creating logger
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("archivecheck version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(check.Command())
	rootCmd.AddCommand(lookup.Command())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	// godotenv.Load is idempotent and never overwrites variables already
	// present in the environment.
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional; defaults and environment variables cover
	// every key.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: config file not loaded: %v\n", err)
		}
	}

	if err := bindFlags(); err != nil {
		return err
	}
	if err := bindEnvVars(); err != nil {
		return err
	}

	setupDevelopmentLogging()

	return nil
}

// bindFlags binds command-line flags to Viper.
func bindFlags() error {
	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	return nil
}

// bindEnvVars maps environment variables to config keys.
func bindEnvVars() error {
	bindings := map[string][]string{
		"app.environment":          {"APP_ENV"},
		"app.debug":                {"APP_DEBUG"},
		"logger.level":             {"LOG_LEVEL"},
		"logger.encoding":          {"LOG_FORMAT"},
		"logger.output_path":       {"LOG_OUTPUT"},
		"archive.base_url":         {"ARCHIVE_BASE_URL"},
		"archive.request_timeout":  {"ARCHIVE_REQUEST_TIMEOUT"},
		"archive.max_retries":      {"ARCHIVE_MAX_RETRIES"},
		"archive.backoff_base":     {"ARCHIVE_BACKOFF_BASE"},
		"archive.result_limit":     {"ARCHIVE_RESULT_LIMIT"},
		"archive.filter":           {"ARCHIVE_FILTER"},
		"checker.input":            {"CHECKER_INPUT"},
		"checker.output":           {"CHECKER_OUTPUT"},
		"checker.rate_limit_delay": {"CHECKER_RATE_LIMIT_DELAY"},
	}
	for key, envVars := range bindings {
		if err := viper.BindEnv(append([]string{key}, envVars...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", envVars[0], err)
		}
	}
	return nil
}

// setupDevelopmentLogging configures logging based on environment and the
// debug flag.
func setupDevelopmentLogging() {
	debugFlag := Debug || viper.GetBool("app.debug")
	isDev := viper.GetString("app.environment") == "development"

	if debugFlag {
		viper.Set("logger.level", "debug")
	}
	if isDev {
		viper.Set("logger.development", true)
		viper.Set("logger.encoding", "console")
	}

	Debug = debugFlag
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":        "archivecheck",
		"environment": "production",
		"debug":       false,
	})

	// Logs default to stderr so the progress bar keeps stdout to itself.
	viper.SetDefault("logger", map[string]any{
		"level":       "info",
		"development": false,
		"encoding":    "console",
		"output_path": "",
	})

	viper.SetDefault("archive", map[string]any{
		"base_url":        config.DefaultArchiveBaseURL,
		"request_timeout": config.DefaultRequestTimeout.String(),
		"max_retries":     config.DefaultMaxRetries,
		"backoff_base":    config.DefaultBackoffBase,
		"result_limit":    config.DefaultResultLimit,
		"collapse_daily":  false,
		"match_prefix":    false,
		"filter":          config.DefaultFilter,
	})

	viper.SetDefault("checker", map[string]any{
		"input":            "",
		"output":           "",
		"url_columns":      []string{"URL"},
		"rate_limit_delay": config.DefaultRateLimitDelay.String(),
	})
}
