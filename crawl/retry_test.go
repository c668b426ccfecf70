package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/rara"
	"github.com/fwojciec/rara/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{
		500 * time.Millisecond,
		time.Second,
		2 * time.Second,
	}, crawl.DefaultRetryDelays())
}

func TestBackoffDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, crawl.BackoffDelays(time.Second, 2))
	assert.Empty(t, crawl.BackoffDelays(time.Second, 0))
}

func TestRetryable(t *testing.T) {
	t.Parallel()

	assert.True(t, crawl.Retryable(errors.New("connection refused")))
	assert.False(t, crawl.Retryable(rara.Errorf(rara.ESTATUS, "HTTP 404")))
	assert.False(t, crawl.Retryable(rara.Errorf(rara.EINVALID, "bad url")))
	assert.False(t, crawl.Retryable(fmt.Errorf("get: %w", context.Canceled)))
	assert.False(t, crawl.Retryable(context.DeadlineExceeded))
}

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	noDelays := []time.Duration{0, 0, 0}

	t.Run("returns first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "<html>", nil
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "u", fetch, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transport errors until success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("connection reset")
			}
			return "ok", nil
		}

		var logged []string
		logger := func(format string, args ...any) {
			logged = append(logged, fmt.Sprintf(format, args...))
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "u", fetch, logger, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, calls)
		require.Len(t, logged, 2)
		assert.Contains(t, logged[0], "attempt 2")
	})

	t.Run("gives up after all retries", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "", errors.New("connection refused")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "u", fetch, nil, noDelays)

		require.Error(t, err)
		assert.Equal(t, "connection refused", err.Error())
		assert.Equal(t, 4, calls)
	})

	t.Run("does not retry status errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "", rara.Errorf(rara.ESTATUS, "HTTP 500 for u")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "u", fetch, nil, noDelays)

		require.Error(t, err)
		assert.Equal(t, rara.ESTATUS, rara.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			cancel()
			return "", errors.New("connection reset")
		}

		_, err := crawl.FetchWithRetryDelays(ctx, "u", fetch, nil, []time.Duration{time.Hour})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
