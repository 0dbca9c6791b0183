// Package wayback implements the client and aggregation logic for the
// Wayback Machine CDX index.
package wayback

import (
	"fmt"
	"time"
)

// DefaultBaseURL is the archive service all URLs are resolved against.
const DefaultBaseURL = "https://web.archive.org"

// cdxTimestampLayout is the fixed-width capture timestamp format used by the
// CDX API. Its zero-padded digits make lexicographic ordering equal to
// chronological ordering.
const cdxTimestampLayout = "20060102150405"

// seenLayout is the human-readable form used in output tables.
const seenLayout = "2006-01-02 15:04:05"

// Snapshot is one recorded capture of a URL by the archive service.
type Snapshot struct {
	// Timestamp is the capture time in YYYYMMDDHHMMSS form.
	Timestamp string
	// Original is the URL as it was captured.
	Original string
	// StatusCode is the HTTP status observed at capture time.
	StatusCode int
}

// Time parses the snapshot's CDX timestamp.
func (s Snapshot) Time() (time.Time, error) {
	t, err := time.Parse(cdxTimestampLayout, s.Timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cdx timestamp %q: %w", s.Timestamp, err)
	}
	return t, nil
}

// FilterMode selects how snapshot status codes are filtered.
type FilterMode int

const (
	// FilterNone requests and keeps all snapshots regardless of status.
	FilterNone FilterMode = iota
	// FilterServerStatus asks the CDX API to restrict results to a single
	// status code server-side (filter=statuscode:<code>).
	FilterServerStatus
	// FilterExcludeErrors requests all snapshots and locally discards
	// those with client- or server-error codes (400-599).
	FilterExcludeErrors
)

// FilterPolicy describes the snapshot filtering applied by a query. The
// three modes are materially different semantics, not equivalents: a
// server-side filter never sees redirects, while local error exclusion
// keeps 2xx and 3xx captures.
type FilterPolicy struct {
	Mode FilterMode
	// StatusCode is the code used by FilterServerStatus.
	StatusCode int
}

// ExcludesLocally reports whether p drops error-coded snapshots client-side.
func (p FilterPolicy) ExcludesLocally() bool {
	return p.Mode == FilterExcludeErrors
}

// FormatSeen renders a capture time for the output table, or an empty
// string for the zero time.
func FormatSeen(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(seenLayout)
}
