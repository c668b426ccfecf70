package crawl

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/rara"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// Default retry policy: three retries with an exponential backoff factor of
// half a second.
const (
	DefaultRetries       = 3
	DefaultBackoffFactor = 500 * time.Millisecond
)

// BackoffDelays returns retries delays growing as factor, 2*factor,
// 4*factor, and so on.
func BackoffDelays(factor time.Duration, retries int) []time.Duration {
	delays := make([]time.Duration, retries)
	for i := range delays {
		delays[i] = factor << i
	}
	return delays
}

// DefaultRetryDelays returns the backoff delays for fetch retries: 0.5s, 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return BackoffDelays(DefaultBackoffFactor, DefaultRetries)
}

// Retryable reports whether a failed fetch is worth another attempt.
// The server answering with an error status and the caller giving up are
// final; transport failures are retried.
func Retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch rara.ErrorCode(err) {
	case rara.ESTATUS, rara.EINVALID:
		return false
	}
	return true
}

// FetchWithRetryDelays attempts to fetch a URL, retrying after each delay in
// turn while the failure is Retryable. With DefaultRetryDelays that is up to
// 3 retries (4 total attempts) after 0.5s, 1s and 2s.
// The logger function, if provided, is called for each retry attempt.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || !Retryable(err) {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
