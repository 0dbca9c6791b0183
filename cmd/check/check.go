// Package check implements the batch check command that enriches a CSV of
// URLs with liveness and archive-presence data.
package check

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/archivecheck/cmd/common"
	"github.com/jonesrussell/archivecheck/internal/config"
	"github.com/jonesrussell/archivecheck/internal/httpclient"
	"github.com/jonesrussell/archivecheck/internal/liveness"
	"github.com/jonesrussell/archivecheck/internal/pipeline"
	"github.com/jonesrussell/archivecheck/internal/retry"
	"github.com/jonesrussell/archivecheck/internal/table"
	"github.com/jonesrussell/archivecheck/internal/wayback"
)

const (
	// progressTrackerLength is the rendered width of the progress bar.
	progressTrackerLength = 50
	// progressUpdateFrequency is how often the bar redraws.
	progressUpdateFrequency = 250 * time.Millisecond
)

// Cmd represents the check command.
var Cmd = &cobra.Command{
	Use:   "check",
	Short: "Batch-check a CSV of URLs against the Wayback Machine",
	Long: `Check reads a CSV file, probes each URL's current status and queries the
Wayback Machine CDX index for its capture history, then writes every input
row back out with first-seen, last-seen, live status and last-snapshot
columns appended per URL column.

Examples:
  # Check the URL column of input.csv
  archivecheck check -i input.csv -o checked.csv

  # Check two URL columns with a 4 second delay between rows
  archivecheck check -i input.csv --columns "URL progetto,URL sito vetrina" --delay 4s
`,
	RunE: runCheck,
}

// Command returns the check command for use in the root command
func Command() *cobra.Command {
	Cmd.Flags().StringP("input", "i", "", "input CSV file")
	Cmd.Flags().StringP("output", "o", "", "output CSV file (default <input>_checked.csv)")
	Cmd.Flags().StringSlice("columns", nil, "URL columns to check")
	Cmd.Flags().Duration("delay", 0, "delay after each record")
	return Cmd
}

// runCheck executes the batch run.
func runCheck(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	cfg := deps.Config

	applyFlagOverrides(cmd, cfg)

	if cfg.Checker.InputPath == "" {
		return errors.New("input file is required (use --input or CHECKER_INPUT)")
	}
	if cfg.Checker.OutputPath == "" {
		cfg.Checker.OutputPath = defaultOutputPath(cfg.Checker.InputPath)
	}

	runID := uuid.NewString()
	log := deps.Logger.WithComponent("check").WithRunID(runID)

	tbl, err := table.Read(cfg.Checker.InputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", cfg.Checker.InputPath, err)
	}
	log.Info("input loaded",
		"path", cfg.Checker.InputPath,
		"records", len(tbl.Records),
		"url_columns", strings.Join(cfg.Checker.URLColumns, ","))

	writer, err := table.NewWriter(
		cfg.Checker.OutputPath,
		pipeline.OutputHeader(tbl.Header, cfg.Checker.URLColumns),
	)
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.Checker.OutputPath, err)
	}
	defer writer.Close()

	policy, err := cfg.Archive.FilterPolicy()
	if err != nil {
		return err
	}

	httpClient := httpclient.New(&httpclient.Config{Timeout: cfg.Archive.RequestTimeout})
	querier := wayback.NewClient(
		wayback.WithBaseURL(cfg.Archive.BaseURL),
		wayback.WithHTTPClient(httpClient),
		wayback.WithLimit(cfg.Archive.ResultLimit),
		wayback.WithFilterPolicy(policy),
		wayback.WithCollapseDaily(cfg.Archive.CollapseDaily),
		wayback.WithMatchPrefix(cfg.Archive.MatchPrefix),
		wayback.WithRetry(retry.Config{
			MaxAttempts: cfg.Archive.MaxRetries,
			BackoffBase: cfg.Archive.BackoffBase,
		}),
		wayback.WithLogger(log),
	)
	checker := liveness.NewChecker(httpClient, log)

	pw, tracker := newProgress(len(tbl.Records))
	go pw.Render()

	p, err := pipeline.New(
		pipeline.Config{
			URLColumns:     cfg.Checker.URLColumns,
			ArchiveBaseURL: cfg.Archive.BaseURL,
			RateLimitDelay: cfg.Checker.RateLimitDelay,
		},
		pipeline.Deps{
			Querier: querier,
			Checker: checker,
			Writer:  writer,
			Logger:  log,
			Progress: func(u pipeline.Update) {
				tracker.SetValue(int64(u.Processed))
				tracker.UpdateMessage(fmt.Sprintf("Checking URLs | ~%s remaining",
					u.Remaining.Round(time.Second)))
			},
		},
	)
	if err != nil {
		return err
	}

	stats, runErr := p.Run(cmd.Context(), tbl)

	tracker.MarkAsDone()
	stopProgress(pw)

	if runErr != nil {
		return fmt.Errorf("batch run failed: %w", runErr)
	}

	fmt.Println(text.FgGreen.Sprintf("Done. %d records checked in %s.",
		stats.Records, stats.Elapsed.Round(time.Second)))
	fmt.Println(text.FgBlue.Sprintf("Output written to %s", cfg.Checker.OutputPath))
	return nil
}

// applyFlagOverrides lets flags take precedence over config and env values.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("input"); v != "" {
		cfg.Checker.InputPath = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Checker.OutputPath = v
	}
	if v, _ := cmd.Flags().GetStringSlice("columns"); len(v) > 0 {
		cfg.Checker.URLColumns = v
	}
	if cmd.Flags().Changed("delay") {
		v, _ := cmd.Flags().GetDuration("delay")
		cfg.Checker.RateLimitDelay = v
	}
}

// defaultOutputPath derives the output file name from the input file name.
func defaultOutputPath(input string) string {
	return strings.TrimSuffix(input, ".csv") + "_checked.csv"
}

// newProgress builds the console progress bar and its single tracker.
func newProgress(total int) (progress.Writer, *progress.Tracker) {
	pw := progress.NewWriter()
	pw.SetOutputWriter(os.Stdout)
	pw.SetTrackerLength(progressTrackerLength)
	pw.SetUpdateFrequency(progressUpdateFrequency)
	pw.SetStyle(progress.StyleDefault)
	pw.Style().Colors = progress.StyleColorsExample
	// The pipeline's running-average estimate replaces the built-in ETA.
	pw.Style().Visibility.ETA = false
	pw.Style().Visibility.Speed = false
	pw.Style().Visibility.Time = true

	tracker := &progress.Tracker{
		Message: "Checking URLs",
		Total:   int64(total),
		Units:   progress.UnitsDefault,
	}
	pw.AppendTracker(tracker)
	return pw, tracker
}

// stopProgress stops the render loop and waits for the final frame.
func stopProgress(pw progress.Writer) {
	pw.Stop()
	for pw.IsRenderInProgress() {
		time.Sleep(progressUpdateFrequency)
	}
}
