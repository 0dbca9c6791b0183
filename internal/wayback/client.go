package wayback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jonesrussell/archivecheck/internal/httpclient"
	"github.com/jonesrussell/archivecheck/internal/logger"
	"github.com/jonesrussell/archivecheck/internal/retry"
)

const (
	// DefaultLimit caps the number of CDX rows requested per query.
	DefaultLimit = 100000
	// cdxPath is the CDX search endpoint below the archive base URL.
	cdxPath = "/cdx/search/cdx"
)

var (
	// ErrQueryFailed is returned when a query could not be completed,
	// either because retries were exhausted or the response was
	// undecodable. Callers treat it like an empty result for output
	// purposes but log it distinctly.
	ErrQueryFailed = errors.New("archive index query failed")
	// ErrMalformedResponse is returned when the CDX response body cannot
	// be decoded. It is never retried.
	ErrMalformedResponse = errors.New("malformed archive index response")
)

// Client queries the Wayback Machine CDX index with bounded retry and
// exponential backoff.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	limit       int
	filter      FilterPolicy
	collapseDay bool
	matchPrefix bool
	sortReverse bool
	retryCfg    retry.Config
	log         logger.Interface
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the archive base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithLimit bounds the number of rows requested from the index.
func WithLimit(limit int) Option {
	return func(c *Client) { c.limit = limit }
}

// WithFilterPolicy sets the snapshot filtering policy.
func WithFilterPolicy(policy FilterPolicy) Option {
	return func(c *Client) { c.filter = policy }
}

// WithCollapseDaily dedupes results to one capture per day
// (collapse=timestamp:8).
func WithCollapseDaily(collapse bool) Option {
	return func(c *Client) { c.collapseDay = collapse }
}

// WithMatchPrefix widens the query to URL variants below the target
// (matchType=prefix).
func WithMatchPrefix(prefix bool) Option {
	return func(c *Client) { c.matchPrefix = prefix }
}

// WithSortReverse asks the index for newest captures first. Combined with
// a limit of one this fetches only the most recent snapshot.
func WithSortReverse(reverse bool) Option {
	return func(c *Client) { c.sortReverse = reverse }
}

// WithRetry sets the retry policy for transient failures.
func WithRetry(cfg retry.Config) Option {
	return func(c *Client) { c.retryCfg = cfg }
}

// WithLogger sets the logger.
func WithLogger(log logger.Interface) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a CDX index client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: httpclient.New(nil),
		limit:      DefaultLimit,
		retryCfg:   retry.DefaultConfig(),
		log:        logger.NewNoOp(),
	}

	for _, opt := range opts {
		opt(client)
	}

	client.retryCfg.IsRetryable = func(err error) bool {
		return !errors.Is(err, ErrMalformedResponse)
	}

	return client
}

// Snapshots queries the index for captures of target and returns them after
// applying the client's filter policy. A well-formed response with no data
// rows yields an empty slice and nil error; ErrQueryFailed is returned only
// when the query itself could not be completed.
func (c *Client) Snapshots(ctx context.Context, target string) ([]Snapshot, error) {
	queryURL := c.queryURL(target)

	var rows [][]string
	attempt := 0
	err := retry.Do(ctx, c.retryCfg, func() error {
		attempt++
		fetched, fetchErr := c.fetch(ctx, queryURL)
		if fetchErr != nil {
			c.log.Warn("cdx request failed",
				"url", target,
				"attempt", attempt,
				"error", fetchErr)
			return fetchErr
		}
		rows = fetched
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	// Element 0 is the header row; fewer than two elements means the
	// archive has no captures, which is a valid empty result.
	if len(rows) < 2 {
		return nil, nil
	}

	return c.collect(rows[1:]), nil
}

// queryURL builds the CDX request for target under the active policy.
func (c *Client) queryURL(target string) string {
	params := url.Values{}
	params.Set("url", target)
	params.Set("output", "json")
	params.Set("fl", "timestamp,original,statuscode")
	if c.limit > 0 {
		params.Set("limit", strconv.Itoa(c.limit))
	}
	if c.filter.Mode == FilterServerStatus {
		params.Set("filter", "statuscode:"+strconv.Itoa(c.filter.StatusCode))
	}
	if c.collapseDay {
		params.Set("collapse", "timestamp:8")
	}
	if c.matchPrefix {
		params.Set("matchType", "prefix")
	}
	if c.sortReverse {
		params.Set("sort", "reverse")
	}
	return c.baseURL + cdxPath + "?" + params.Encode()
}

// fetch performs one CDX request and decodes the array-of-arrays body.
func (c *Client) fetch(ctx context.Context, queryURL string) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create cdx request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cdx request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cdx status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read cdx body: %w", err)
	}

	var rows [][]string
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return rows, nil
}

// collect parses data rows into snapshots, skipping rows with non-numeric
// status codes and applying local error exclusion when the policy asks
// for it.
func (c *Client) collect(rows [][]string) []Snapshot {
	snapshots := make([]Snapshot, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		code, err := strconv.Atoi(row[2])
		if err != nil {
			continue
		}
		if c.filter.ExcludesLocally() && code >= 400 && code < 600 {
			continue
		}
		snapshots = append(snapshots, Snapshot{
			Timestamp:  row[0],
			Original:   row[1],
			StatusCode: code,
		})
	}
	return snapshots
}
