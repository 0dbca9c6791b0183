package pipeline

import "time"

// Update is one advisory progress report emitted after each record. It is
// console feedback only and never influences control flow.
type Update struct {
	// Processed is the number of records completed so far.
	Processed int
	// Total is the number of records in the run.
	Total int
	// Elapsed is the wall-clock time since the run started.
	Elapsed time.Duration
	// Remaining is the projected time to completion, clamped at zero.
	Remaining time.Duration
}

// Percent returns the completed fraction as a percentage.
func (u Update) Percent() float64 {
	if u.Total == 0 {
		return 0
	}
	return float64(u.Processed) / float64(u.Total) * 100
}

// tracker accumulates per-record latency samples and projects remaining
// duration from the running average. Samples include the enforced rate-limit
// delay, which makes the estimate slightly pessimistic but stable.
type tracker struct {
	clock clock
	total int
	start time.Time
	sum   time.Duration
	done  int
}

type clock interface {
	Now() time.Time
}

func newTracker(c clock, total int) *tracker {
	return &tracker{
		clock: c,
		total: total,
		start: c.Now(),
	}
}

// observe records one per-record latency sample and returns the updated
// projection. The estimate can swing wildly early in a run; callers display
// it as-is.
func (t *tracker) observe(sample time.Duration) Update {
	t.done++
	t.sum += sample

	elapsed := t.clock.Now().Sub(t.start)
	avg := t.sum / time.Duration(t.done)
	estimatedTotal := avg * time.Duration(t.total)

	remaining := estimatedTotal - elapsed
	if remaining < 0 {
		remaining = 0
	}

	return Update{
		Processed: t.done,
		Total:     t.total,
		Elapsed:   elapsed,
		Remaining: remaining,
	}
}
