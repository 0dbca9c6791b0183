// Package lookup implements the single-URL lookup command.
package lookup

import (
	"context"
	"fmt"
	"net/http"
	"os"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/archivecheck/cmd/common"
	"github.com/jonesrussell/archivecheck/internal/httpclient"
	"github.com/jonesrussell/archivecheck/internal/liveness"
	"github.com/jonesrussell/archivecheck/internal/logger"
	"github.com/jonesrussell/archivecheck/internal/retry"
	"github.com/jonesrussell/archivecheck/internal/urlutil"
	"github.com/jonesrussell/archivecheck/internal/wayback"
)

const (
	// lookupSnapshotLimit bounds the full snapshot listing.
	lookupSnapshotLimit = 5000
	// okStatusCode is the status used for the 200-only queries.
	okStatusCode = 200
	// snapshotTableWidth is the maximum width of the URL columns.
	snapshotTableWidth = 100
)

// Cmd represents the lookup command.
var Cmd = &cobra.Command{
	Use:   "lookup <url>",
	Short: "Inspect a single URL's live status and archive history",
	Long: `Lookup probes a single URL's current status, reports its most recent
Wayback Machine snapshot with and without a status-200 restriction, and
lists all status-200 captures with first-seen and last-seen times.

Examples:
  archivecheck lookup www.example.com
  archivecheck lookup https://example.com/page
`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

// Command returns the lookup command for use in the root command
func Command() *cobra.Command {
	Cmd.Flags().Bool("list", true, "list all status-200 snapshots")
	return Cmd
}

// runLookup executes the single-URL lookup.
func runLookup(cmd *cobra.Command, args []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	cfg := deps.Config
	log := deps.Logger.WithComponent("lookup")

	raw := args[0]
	if !urlutil.IsValid(raw) {
		return fmt.Errorf("not a valid URL (must start with http://, https://, or www.): %q", raw)
	}
	target := urlutil.Normalize(raw)
	ctx := cmd.Context()

	httpClient := httpclient.New(&httpclient.Config{Timeout: cfg.Archive.RequestTimeout})
	retryCfg := retry.Config{
		MaxAttempts: cfg.Archive.MaxRetries,
		BackoffBase: cfg.Archive.BackoffBase,
	}

	fmt.Println(text.FgBlue.Sprintf("Checking %s", target))

	live := liveness.NewChecker(httpClient, log).Check(ctx, target)
	if live.Reachable {
		fmt.Printf("Live status code: %d\n", live.StatusCode)
	} else {
		fmt.Println(text.FgYellow.Sprint("Live status: unreachable"))
	}

	printMostRecent(ctx, log, "ANY status",
		mostRecentClient(cfg.Archive.BaseURL, httpClient, retryCfg, log, wayback.FilterPolicy{}),
		target, cfg.Archive.BaseURL)
	printMostRecent(ctx, log, "status 200",
		mostRecentClient(cfg.Archive.BaseURL, httpClient, retryCfg, log,
			wayback.FilterPolicy{Mode: wayback.FilterServerStatus, StatusCode: okStatusCode}),
		target, cfg.Archive.BaseURL)

	if list, _ := cmd.Flags().GetBool("list"); !list {
		return nil
	}

	// Full status-200 history.
	historyClient := wayback.NewClient(
		wayback.WithBaseURL(cfg.Archive.BaseURL),
		wayback.WithHTTPClient(httpClient),
		wayback.WithLimit(lookupSnapshotLimit),
		wayback.WithFilterPolicy(wayback.FilterPolicy{
			Mode:       wayback.FilterServerStatus,
			StatusCode: okStatusCode,
		}),
		wayback.WithRetry(retryCfg),
		wayback.WithLogger(log),
	)
	snapshots, err := historyClient.Snapshots(ctx, target)
	if err != nil {
		return fmt.Errorf("snapshot history query failed: %w", err)
	}
	if len(snapshots) == 0 {
		fmt.Println(text.FgYellow.Sprint("No status-200 snapshots found."))
		return nil
	}

	summary := wayback.Summarize(snapshots, cfg.Archive.BaseURL)
	renderSnapshotTable(snapshots)

	fmt.Printf("\nTotal snapshots (status 200): %d\n", len(snapshots))
	fmt.Println(text.FgGreen.Sprintf("First seen: %s", wayback.FormatSeen(summary.FirstSeen)))
	fmt.Println(text.FgGreen.Sprintf("Last seen:  %s", wayback.FormatSeen(summary.LastSeen)))
	fmt.Println(text.FgGreen.Sprintf("Last snapshot: %s", summary.LastSnapshot))
	return nil
}

// mostRecentClient builds a client that fetches only the newest capture
// under the given policy (sort=reverse, limit=1).
func mostRecentClient(
	baseURL string,
	httpClient *http.Client,
	retryCfg retry.Config,
	log logger.Interface,
	policy wayback.FilterPolicy,
) *wayback.Client {
	return wayback.NewClient(
		wayback.WithBaseURL(baseURL),
		wayback.WithHTTPClient(httpClient),
		wayback.WithLimit(1),
		wayback.WithSortReverse(true),
		wayback.WithFilterPolicy(policy),
		wayback.WithRetry(retryCfg),
		wayback.WithLogger(log),
	)
}

// printMostRecent queries and prints a single newest snapshot.
func printMostRecent(
	ctx context.Context,
	log logger.Interface,
	label string,
	client *wayback.Client,
	target string,
	baseURL string,
) {
	snapshots, err := client.Snapshots(ctx, target)
	if err != nil {
		log.Warn("most recent snapshot query failed", "label", label, "error", err)
		fmt.Printf("Most recent snapshot (%s): query failed\n", label)
		return
	}
	if len(snapshots) == 0 {
		fmt.Printf("Most recent snapshot (%s): none found\n", label)
		return
	}

	snap := snapshots[0]
	captured, err := snap.Time()
	capturedStr := snap.Timestamp
	if err == nil {
		capturedStr = wayback.FormatSeen(captured)
	}
	fmt.Printf("Most recent snapshot (%s): %s, status %d\n  %s\n",
		label, capturedStr, snap.StatusCode,
		wayback.ReplayURL(baseURL, snap.Timestamp, snap.Original))
}

// renderSnapshotTable lists captures oldest first.
func renderSnapshotTable(snapshots []wayback.Snapshot) {
	t := prettytable.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(prettytable.StyleRounded)
	t.SetColumnConfigs([]prettytable.ColumnConfig{
		{Number: 3, WidthMax: snapshotTableWidth},
	})
	t.AppendHeader(prettytable.Row{"#", "Captured", "Original URL", "Status"})

	for i, snap := range snapshots {
		capturedStr := snap.Timestamp
		if captured, err := snap.Time(); err == nil {
			capturedStr = captured.Format("2006-01-02 15:04:05")
		}
		t.AppendRow(prettytable.Row{i + 1, capturedStr, snap.Original, snap.StatusCode})
	}
	t.Render()
}
