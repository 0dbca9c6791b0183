// Package retry provides a bounded-attempt retry combinator with exponential
// backoff for transient failures against rate-limited services.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrMaxAttemptsExceeded is returned when all attempts have failed.
	ErrMaxAttemptsExceeded = errors.New("max retry attempts exceeded")
	// ErrContextCancelled is returned when the context is cancelled while
	// waiting between attempts.
	ErrContextCancelled = errors.New("context cancelled during retry")
)

// Config configures retry behavior.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BackoffBase is the exponential backoff base: the sleep before retry n
	// is BackoffBase^(n-1) seconds, so the first retry waits one second.
	BackoffBase float64
	// IsRetryable decides whether an error is worth another attempt.
	// A nil predicate retries everything.
	IsRetryable func(error) bool
	// Sleep allows tests to stub out the wait. Defaults to a context-aware
	// time.After wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultConfig returns the retry configuration used against the archive
// index: ten attempts with a power-of-two backoff.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 10,
		BackoffBase: 2,
	}
}

// Backoff returns the wait duration applied after failed attempt n (1-based).
func (c Config) Backoff(attempt int) time.Duration {
	secs := math.Pow(c.BackoffBase, float64(attempt-1))
	return time.Duration(secs * float64(time.Second))
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrContextCancelled, ctx.Err())
	case <-timer.C:
		return nil
	}
}

// Do executes fn up to cfg.MaxAttempts times, sleeping between attempts but
// never after the last one. Non-retryable errors are returned immediately.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = 2
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = sleepWithContext
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrContextCancelled, ctx.Err())
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if cfg.IsRetryable != nil && !cfg.IsRetryable(err) {
			return err
		}

		if attempt < cfg.MaxAttempts {
			if sleepErr := sleep(ctx, cfg.Backoff(attempt)); sleepErr != nil {
				return sleepErr
			}
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrMaxAttemptsExceeded, cfg.MaxAttempts, lastErr)
}
