package wayback_test

import (
	"testing"
	"time"

	"github.com/jonesrussell/archivecheck/internal/wayback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEmptyInput(t *testing.T) {
	summary := wayback.Summarize(nil, wayback.DefaultBaseURL)

	assert.True(t, summary.Empty())
	assert.True(t, summary.FirstSeen.IsZero())
	assert.True(t, summary.LastSeen.IsZero())
	assert.Empty(t, summary.LastSnapshot)
}

func TestSummarizeFirstAndLastSeen(t *testing.T) {
	snapshots := []wayback.Snapshot{
		{Timestamp: "20200101000000", Original: "http://example.com/", StatusCode: 200},
		{Timestamp: "20210601000000", Original: "http://example.com/", StatusCode: 200},
	}

	summary := wayback.Summarize(snapshots, wayback.DefaultBaseURL)

	require.False(t, summary.Empty())
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), summary.FirstSeen)
	assert.Equal(t, time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), summary.LastSeen)
	assert.Equal(t, "https://web.archive.org/web/20210601000000/http://example.com/", summary.LastSnapshot)
}

func TestSummarizeOrderInvariant(t *testing.T) {
	forward := []wayback.Snapshot{
		{Timestamp: "20190315120000", Original: "http://a.example/", StatusCode: 200},
		{Timestamp: "20200715093000", Original: "http://b.example/", StatusCode: 301},
		{Timestamp: "20220101180000", Original: "http://c.example/", StatusCode: 200},
	}
	reversed := []wayback.Snapshot{forward[2], forward[1], forward[0]}

	a := wayback.Summarize(forward, wayback.DefaultBaseURL)
	b := wayback.Summarize(reversed, wayback.DefaultBaseURL)

	assert.Equal(t, a, b)
	assert.Equal(t, "https://web.archive.org/web/20220101180000/http://c.example/", a.LastSnapshot)
}

func TestSummarizeSingleSnapshot(t *testing.T) {
	snapshots := []wayback.Snapshot{
		{Timestamp: "20150610142530", Original: "http://example.com/page", StatusCode: 200},
	}

	summary := wayback.Summarize(snapshots, wayback.DefaultBaseURL)

	assert.Equal(t, summary.FirstSeen, summary.LastSeen)
	assert.Equal(t, "https://web.archive.org/web/20150610142530/http://example.com/page", summary.LastSnapshot)
}

func TestSummarizeSkipsUnparseableTimestamps(t *testing.T) {
	snapshots := []wayback.Snapshot{
		{Timestamp: "not-a-timestamp", Original: "http://example.com/", StatusCode: 200},
		{Timestamp: "20200101000000", Original: "http://example.com/", StatusCode: 200},
	}

	summary := wayback.Summarize(snapshots, wayback.DefaultBaseURL)

	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), summary.FirstSeen)
	assert.Equal(t, summary.FirstSeen, summary.LastSeen)
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	snapshots := []wayback.Snapshot{
		{Timestamp: "20220101000000", Original: "http://example.com/", StatusCode: 200},
		{Timestamp: "20200101000000", Original: "http://example.com/", StatusCode: 200},
	}

	wayback.Summarize(snapshots, wayback.DefaultBaseURL)

	assert.Equal(t, "20220101000000", snapshots[0].Timestamp)
}

func TestFormatSeen(t *testing.T) {
	assert.Empty(t, wayback.FormatSeen(time.Time{}))
	assert.Equal(t, "2021-06-01 00:00:00",
		wayback.FormatSeen(time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)))
}
