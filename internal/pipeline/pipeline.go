// Package pipeline drives the sequential batch run: one enriched output row
// per input record, streamed to disk as it is produced, with a fixed
// rate-limit delay between records and a running ETA projection.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonesrussell/archivecheck/internal/liveness"
	"github.com/jonesrussell/archivecheck/internal/logger"
	"github.com/jonesrussell/archivecheck/internal/table"
	"github.com/jonesrussell/archivecheck/internal/urlutil"
	"github.com/jonesrussell/archivecheck/internal/wayback"
)

// ErrNoInput is returned when the input table holds no records.
var ErrNoInput = errors.New("no records to process")

// SnapshotQuerier fetches archive captures for a normalized URL.
type SnapshotQuerier interface {
	Snapshots(ctx context.Context, target string) ([]wayback.Snapshot, error)
}

// StatusChecker probes the current liveness of a normalized URL.
type StatusChecker interface {
	Check(ctx context.Context, url string) liveness.Result
}

// RowWriter persists one output row. Rows must be durable once Write
// returns so an interrupted run keeps its partial output.
type RowWriter interface {
	Write(fields map[string]string) error
}

// ProgressFunc receives advisory per-record progress updates.
type ProgressFunc func(Update)

// Config holds the pipeline's run parameters.
type Config struct {
	// URLColumns names the input columns carrying URLs, one role each.
	URLColumns []string
	// ArchiveBaseURL is the base used for replay links.
	ArchiveBaseURL string
	// RateLimitDelay is slept once after each record, regardless of how
	// many URL roles the record carries.
	RateLimitDelay time.Duration
}

// Deps are the pipeline's collaborators. Querier, Checker and Writer are
// required; Clock, Logger and Progress default to the system clock, a no-op
// logger and no reporting.
type Deps struct {
	Querier  SnapshotQuerier
	Checker  StatusChecker
	Writer   RowWriter
	Clock    Clock
	Logger   logger.Interface
	Progress ProgressFunc
}

// Stats summarizes a completed run.
type Stats struct {
	// Records is the number of output rows written.
	Records int
	// Elapsed is the total wall-clock duration of the run.
	Elapsed time.Duration
}

// Pipeline processes input records strictly sequentially. There is no
// concurrency anywhere in the loop: the external index enforces an informal
// rate limit and the per-record delay is the compliance mechanism.
type Pipeline struct {
	cfg      Config
	querier  SnapshotQuerier
	checker  StatusChecker
	writer   RowWriter
	clock    Clock
	log      logger.Interface
	progress ProgressFunc
}

// New creates a Pipeline from cfg and deps.
func New(cfg Config, deps Deps) (*Pipeline, error) {
	if len(cfg.URLColumns) == 0 {
		return nil, errors.New("pipeline: no URL columns configured")
	}
	if deps.Querier == nil || deps.Checker == nil || deps.Writer == nil {
		return nil, errors.New("pipeline: querier, checker and writer are required")
	}
	if deps.Clock == nil {
		deps.Clock = NewClock()
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNoOp()
	}

	return &Pipeline{
		cfg:      cfg,
		querier:  deps.Querier,
		checker:  deps.Checker,
		writer:   deps.Writer,
		clock:    deps.Clock,
		log:      deps.Logger,
		progress: deps.Progress,
	}, nil
}

// Run processes every record in tbl and writes one output row each. A
// failure in any sub-step degrades that role's columns to sentinel values
// and never aborts the batch; only a write failure or context cancellation
// terminates the run early. Already-written rows survive either way.
func (p *Pipeline) Run(ctx context.Context, tbl *table.Table) (Stats, error) {
	if len(tbl.Records) == 0 {
		return Stats{}, ErrNoInput
	}

	track := newTracker(p.clock, len(tbl.Records))
	start := p.clock.Now()

	for i, record := range tbl.Records {
		recordStart := p.clock.Now()

		fields := make(map[string]string, len(tbl.Header)+4*len(p.cfg.URLColumns))
		for _, column := range tbl.Header {
			fields[column] = record.Get(column)
		}

		for _, role := range p.cfg.URLColumns {
			result := p.processRole(ctx, record.Get(role))
			result.fill(fields, role)
		}

		if err := p.writer.Write(fields); err != nil {
			return p.stats(start, i), fmt.Errorf("write output row %d: %w", i+1, err)
		}

		if err := p.clock.Sleep(ctx, p.cfg.RateLimitDelay); err != nil {
			return p.stats(start, i+1), fmt.Errorf("run interrupted: %w", err)
		}

		update := track.observe(p.clock.Now().Sub(recordStart))
		if p.progress != nil {
			p.progress(update)
		}
	}

	stats := p.stats(start, len(tbl.Records))
	p.log.Info("batch complete",
		"records", stats.Records,
		"elapsed", stats.Elapsed.String())
	return stats, nil
}

func (p *Pipeline) stats(start time.Time, records int) Stats {
	return Stats{
		Records: records,
		Elapsed: p.clock.Now().Sub(start),
	}
}

// processRole runs the full per-URL sequence for one role: validate,
// normalize, live probe, archive query, aggregate. Invalid input skips the
// network entirely.
func (p *Pipeline) processRole(ctx context.Context, raw string) RoleResult {
	if !urlutil.IsValid(raw) {
		p.log.Debug("url not provided or invalid", "raw", raw)
		return RoleResult{}
	}

	target := urlutil.Normalize(raw)

	live := p.checker.Check(ctx, target)
	if !live.Reachable {
		p.log.Warn("live status check failed", "url", target)
	}

	snapshots, err := p.querier.Snapshots(ctx, target)
	if err != nil {
		p.log.Warn("archive query failed", "url", target, "error", err)
		return RoleResult{Provided: true, Live: live, QueryFailed: true}
	}

	summary := wayback.Summarize(snapshots, p.cfg.ArchiveBaseURL)
	if summary.Empty() {
		p.log.Info("no snapshots found", "url", target)
	}

	return RoleResult{Provided: true, Live: live, Summary: summary}
}
