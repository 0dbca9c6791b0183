package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonesrussell/archivecheck/internal/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), retry.Config{MaxAttempts: 3, BackoffBase: 4}, func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoBackoffScheduleAndExhaustion(t *testing.T) {
	var sleeps []time.Duration
	calls := 0
	failure := errors.New("connection refused")

	cfg := retry.Config{
		MaxAttempts: 3,
		BackoffBase: 4,
		Sleep: func(_ context.Context, d time.Duration) error {
			sleeps = append(sleeps, d)
			return nil
		},
	}

	err := retry.Do(context.Background(), cfg, func() error {
		calls++
		return failure
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, retry.ErrMaxAttemptsExceeded)
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 3, calls)
	// 4^0 then 4^1 seconds, and no sleep after the final attempt.
	assert.Equal(t, []time.Duration{1 * time.Second, 4 * time.Second}, sleeps)
}

func TestDoSucceedsAfterRetry(t *testing.T) {
	calls := 0
	cfg := retry.Config{
		MaxAttempts: 5,
		BackoffBase: 2,
		Sleep:       func(context.Context, time.Duration) error { return nil },
	}

	err := retry.Do(context.Background(), cfg, func() error {
		calls++
		if calls < 3 {
			return errors.New("timeout")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoNonRetryableReturnsImmediately(t *testing.T) {
	fatal := errors.New("malformed response")
	calls := 0
	cfg := retry.Config{
		MaxAttempts: 5,
		BackoffBase: 2,
		IsRetryable: func(err error) bool { return !errors.Is(err, fatal) },
		Sleep:       func(context.Context, time.Duration) error { return nil },
	}

	err := retry.Do(context.Background(), cfg, func() error {
		calls++
		return fatal
	})

	assert.ErrorIs(t, err, fatal)
	assert.NotErrorIs(t, err, retry.ErrMaxAttemptsExceeded)
	assert.Equal(t, 1, calls)
}

func TestDoCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retry.Do(ctx, retry.DefaultConfig(), func() error {
		t.Fatal("fn should not run with cancelled context")
		return nil
	})

	assert.ErrorIs(t, err, retry.ErrContextCancelled)
}

func TestBackoff(t *testing.T) {
	cfg := retry.Config{BackoffBase: 4}
	assert.Equal(t, 1*time.Second, cfg.Backoff(1))
	assert.Equal(t, 4*time.Second, cfg.Backoff(2))
	assert.Equal(t, 16*time.Second, cfg.Backoff(3))
}
