package pipeline

import (
	"strconv"

	"github.com/jonesrussell/archivecheck/internal/liveness"
	"github.com/jonesrussell/archivecheck/internal/wayback"
)

// Sentinel strings written to derived output columns. They distinguish three
// terminal states that must never be collapsed: the URL was missing or
// invalid, the live probe got no answer, and the archive query failed after
// retries. A clean query with zero snapshots leaves the seen columns empty.
const (
	// SentinelNotProvided marks a role whose input was empty or invalid;
	// no network call was made.
	SentinelNotProvided = "NOTPROVIDED"
	// SentinelNoStatusCode marks a live probe that got no HTTP response.
	SentinelNoStatusCode = "NOSTATUSCODE"
	// SentinelNotFound marks seen columns for a query that failed after
	// exhausting retries.
	SentinelNotFound = "NOTFOUND"
)

// Suffixes of the four derived columns appended per URL role.
const (
	colFirstSeen    = "First_Seen"
	colLastSeen     = "Last_Seen"
	colStatusCode   = "Status_Code"
	colLastSnapshot = "Last_URL_Snapshot"
)

// DerivedColumns returns the output column names added for one URL role,
// in output order.
func DerivedColumns(role string) []string {
	return []string{
		role + " " + colFirstSeen,
		role + " " + colLastSeen,
		role + " " + colStatusCode,
		role + " " + colLastSnapshot,
	}
}

// OutputHeader extends an input header with the derived columns for each
// URL role.
func OutputHeader(header []string, roles []string) []string {
	out := make([]string, 0, len(header)+4*len(roles))
	out = append(out, header...)
	for _, role := range roles {
		out = append(out, DerivedColumns(role)...)
	}
	return out
}

// RoleResult is the typed outcome of processing one URL role. The sentinel
// strings exist only at the output boundary; internal logic works on this
// struct. The zero value means the role was not provided.
type RoleResult struct {
	// Provided reports whether the raw input passed validation and was
	// processed over the network.
	Provided bool
	// Live is the present-time probe result.
	Live liveness.Result
	// QueryFailed reports that the archive query could not be completed
	// after retries. Distinct from a successful query with no snapshots.
	QueryFailed bool
	// Summary is the aggregated snapshot data. Zero-valued when
	// QueryFailed is set or no qualifying snapshot exists.
	Summary wayback.Summary
}

// fill serializes the result into the four derived columns for role.
func (r RoleResult) fill(fields map[string]string, role string) {
	cols := DerivedColumns(role)
	firstSeen, lastSeen, statusCode, lastSnapshot := cols[0], cols[1], cols[2], cols[3]

	if !r.Provided {
		fields[firstSeen] = SentinelNotProvided
		fields[lastSeen] = SentinelNotProvided
		fields[statusCode] = SentinelNotProvided
		fields[lastSnapshot] = ""
		return
	}

	if r.Live.Reachable {
		fields[statusCode] = strconv.Itoa(r.Live.StatusCode)
	} else {
		fields[statusCode] = SentinelNoStatusCode
	}

	if r.QueryFailed {
		fields[firstSeen] = SentinelNotFound
		fields[lastSeen] = SentinelNotFound
		fields[lastSnapshot] = ""
		return
	}

	fields[firstSeen] = wayback.FormatSeen(r.Summary.FirstSeen)
	fields[lastSeen] = wayback.FormatSeen(r.Summary.LastSeen)
	fields[lastSnapshot] = r.Summary.LastSnapshot
}
