// Package httpclient builds the shared HTTP client used for archive index
// queries and live URL probes.
package httpclient

import (
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds each outbound request end to end.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxIdleConns is the connection pool size across all hosts.
	DefaultMaxIdleConns = 100
	// DefaultMaxIdleConnsPerHost keeps a few connections warm toward the
	// archive index host between sequential requests.
	DefaultMaxIdleConnsPerHost = 4
	// DefaultIdleConnTimeout closes idle connections that outlive the
	// per-record rate-limit delay by a wide margin.
	DefaultIdleConnTimeout = 90 * time.Second
	// DefaultTLSHandshakeTimeout bounds the TLS handshake.
	DefaultTLSHandshakeTimeout = 10 * time.Second
)

// Config configures the HTTP client.
type Config struct {
	// Timeout is the per-request time limit. Zero selects DefaultTimeout.
	Timeout time.Duration
	// MaxIdleConns limits idle keep-alive connections across hosts.
	MaxIdleConns int
	// MaxIdleConnsPerHost limits idle keep-alive connections per host.
	MaxIdleConnsPerHost int
	// IdleConnTimeout is how long an idle connection is kept open.
	IdleConnTimeout time.Duration
}

// New creates an HTTP client with standardized transport settings.
// A nil cfg uses defaults.
func New(cfg *Config) *http.Client {
	if cfg == nil {
		cfg = &Config{}
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	maxIdleConns := cfg.MaxIdleConns
	if maxIdleConns == 0 {
		maxIdleConns = DefaultMaxIdleConns
	}
	maxIdleConnsPerHost := cfg.MaxIdleConnsPerHost
	if maxIdleConnsPerHost == 0 {
		maxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	}
	idleConnTimeout := cfg.IdleConnTimeout
	if idleConnTimeout == 0 {
		idleConnTimeout = DefaultIdleConnTimeout
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        maxIdleConns,
			MaxIdleConnsPerHost: maxIdleConnsPerHost,
			IdleConnTimeout:     idleConnTimeout,
			TLSHandshakeTimeout: DefaultTLSHandshakeTimeout,
		},
	}
}
