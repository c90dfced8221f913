package retrylimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusErr int

func (e statusErr) Error() string   { return "status error" }
func (e statusErr) StatusCode() int { return int(e) }

func fastConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
		RateLimitDelay: time.Millisecond,
		Multiplier:     2,
	}
}

func TestWithRetry_Success(t *testing.T) {
	calls := 0
	err := WithRetryConfig(context.Background(), func() error {
		calls++
		return nil
	}, nil, fastConfig())

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_RetriesTransientErrors(t *testing.T) {
	for _, code := range []int{429, 500, 503} {
		calls := 0
		err := WithRetryConfig(context.Background(), func() error {
			calls++
			if calls < 3 {
				return statusErr(code)
			}
			return nil
		}, nil, fastConfig())

		require.NoError(t, err, code)
		assert.Equal(t, 3, calls, code)
	}
}

func TestWithRetry_GivesUp(t *testing.T) {
	calls := 0
	err := WithRetryConfig(context.Background(), func() error {
		calls++
		return statusErr(502)
	}, nil, fastConfig())

	assert.Equal(t, 3, calls)
	assert.ErrorContains(t, err, "max attempts (3) exceeded")
	assert.True(t, IsServerError(err))
}

func TestWithRetry_DoesNotRetryOtherErrors(t *testing.T) {
	plain := errors.New("bad request")
	for _, e := range []error{plain, statusErr(400), &FatalError{Err: statusErr(500)}} {
		calls := 0
		err := WithRetryConfig(context.Background(), func() error {
			calls++
			return e
		}, nil, fastConfig())

		assert.Equal(t, 1, calls)
		assert.ErrorIs(t, err, e)
	}
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastConfig()
	cfg.RateLimitDelay = time.Hour

	calls := 0
	err := WithRetryConfig(ctx, func() error {
		calls++
		cancel()
		return statusErr(429)
	}, nil, cfg)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestAdaptiveLimiter(t *testing.T) {
	lim := NewAdaptiveLimiter(4, 1, 8, 1, 0.5)
	assert.Equal(t, 4.0, lim.CurrentLimit())

	lim.Success()
	assert.Equal(t, 5.0, lim.CurrentLimit())

	lim.RateLimited()
	assert.Equal(t, 2.5, lim.CurrentLimit())

	lim.Success()
	assert.Equal(t, 2.5, lim.CurrentLimit(), "no increase right after an error")

	for i := 0; i < 5; i++ {
		lim.RateLimited()
	}
	assert.Equal(t, 1.0, lim.CurrentLimit())
}

func TestAdaptiveLimiter_ClampsToMax(t *testing.T) {
	lim := NewAdaptiveLimiter(8, 1, 8, 3, 0.5)
	lim.Success()
	assert.Equal(t, 8.0, lim.CurrentLimit())
}

func TestWithRetry_UsesLimiter(t *testing.T) {
	lim := NewAdaptiveLimiter(100, 1, 100, 1, 0.5)
	calls := 0
	err := WithRetryConfig(context.Background(), func() error {
		calls++
		if calls == 1 {
			return statusErr(429)
		}
		return nil
	}, lim, fastConfig())

	require.NoError(t, err)
	assert.Equal(t, 50.0, lim.CurrentLimit())
}
