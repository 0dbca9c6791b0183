package wayback

import (
	"sort"
	"time"
)

// Summary reduces a snapshot set for one URL to its first and last capture
// and a replay link for the most recent one. The zero value means no
// qualifying snapshot was found, which is distinct from a failed query.
type Summary struct {
	// FirstSeen is the earliest qualifying capture time.
	FirstSeen time.Time
	// LastSeen is the latest qualifying capture time.
	LastSeen time.Time
	// LastSnapshot is a browsable replay URL for the latest capture.
	LastSnapshot string
}

// Empty reports whether the summary carries no snapshot data.
func (s Summary) Empty() bool {
	return s.FirstSeen.IsZero() && s.LastSeen.IsZero() && s.LastSnapshot == ""
}

// Summarize reduces snapshots to a Summary. It sorts by the fixed-width CDX
// timestamp, so the result is invariant to input order. Snapshots whose
// timestamps fail to parse are skipped. The function performs no I/O.
func Summarize(snapshots []Snapshot, baseURL string) Summary {
	if len(snapshots) == 0 {
		return Summary{}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	sorted := make([]Snapshot, len(snapshots))
	copy(sorted, snapshots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	var summary Summary
	for _, snap := range sorted {
		t, err := snap.Time()
		if err != nil {
			continue
		}
		if summary.FirstSeen.IsZero() {
			summary.FirstSeen = t
		}
		summary.LastSeen = t
		summary.LastSnapshot = ReplayURL(baseURL, snap.Timestamp, snap.Original)
	}
	return summary
}

// ReplayURL builds the canonical archive replay link for a capture.
func ReplayURL(baseURL, timestamp, original string) string {
	return baseURL + "/web/" + timestamp + "/" + original
}
