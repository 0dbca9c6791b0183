package common

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jonesrussell/archivecheck/internal/config"
	"github.com/jonesrussell/archivecheck/internal/logger"
)

// NewCommandDeps creates CommandDeps by loading config and creating a
// logger. This consolidates the common initialization code of every
// subcommand.
func NewCommandDeps() (CommandDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}

	logLevel := strings.ToLower(viper.GetString("logger.level"))
	if logLevel == "" {
		logLevel = "info"
	}

	log, err := logger.New(&logger.Config{
		Level:       logger.Level(logLevel),
		Development: viper.GetBool("logger.development"),
		Encoding:    viper.GetString("logger.encoding"),
		OutputPath:  viper.GetString("logger.output_path"),
	})
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	deps := CommandDeps{
		Logger: log,
		Config: cfg,
	}

	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}
