// Package liveness performs best-effort present-time HTTP probes against
// checked URLs, distinct from historical archive data.
package liveness

import (
	"context"
	"net/http"

	"github.com/jonesrussell/archivecheck/internal/httpclient"
	"github.com/jonesrussell/archivecheck/internal/logger"
)

// Result is the outcome of a single live probe.
type Result struct {
	// StatusCode is the HTTP status observed, valid only when Reachable.
	StatusCode int
	// Reachable is false on any network-level failure: timeout, DNS
	// error, connection refusal, or a malformed response.
	Reachable bool
}

// Unreachable is the result for a probe that failed at the network level.
var Unreachable = Result{}

// Checker issues single GET probes. A probe is advisory, not authoritative:
// there is exactly one attempt and no retry.
type Checker struct {
	httpClient *http.Client
	log        logger.Interface
}

// NewChecker creates a liveness checker. A nil httpClient selects the
// shared default client.
func NewChecker(httpClient *http.Client, log logger.Interface) *Checker {
	if httpClient == nil {
		httpClient = httpclient.New(nil)
	}
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Checker{httpClient: httpClient, log: log}
}

// Check probes url with a single GET and reports the observed status code.
// Network failures never propagate; they yield Unreachable.
func (c *Checker) Check(ctx context.Context, url string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		c.log.Debug("invalid probe request", "url", url, "error", err)
		return Unreachable
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("live probe failed", "url", url, "error", err)
		return Unreachable
	}
	defer resp.Body.Close()

	return Result{StatusCode: resp.StatusCode, Reachable: true}
}
