package finalenglish

import (
	"context"
	"errors"
	"time"
)

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	MaxRetries int           // Maximum number of retry attempts
	BaseDelay  time.Duration // Initial delay between retries
	MaxDelay   time.Duration // Maximum delay between retries
}

// DefaultRetryConfig returns sensible defaults for retry behavior.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  200 * time.Millisecond,
		MaxDelay:   5 * time.Second,
	}
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry executes fn with exponential backoff on retryable errors.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}

		// No sleep after the last attempt.
		if attempt < cfg.MaxRetries {
			delay := cfg.BaseDelay * time.Duration(1<<attempt)
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return zero, lastErr
}

// IsRetryable reports whether a fetch error is worth retrying. Transport
// failures are transient; a non-2xx response is retryable only for server
// errors and throttling; context cancellation is terminal.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Retryable()
	}

	// Anything else is a transport-level failure.
	return true
}

// RetryFetcher wraps a Fetcher with retry logic. Retries happen inside a
// single load attempt; once the attempt fails overall, the loader's
// negative cache still applies and the resource is not fetched again.
type RetryFetcher struct {
	fetcher Fetcher
	config  RetryConfig
}

// NewRetryFetcher creates a fetcher that retries transient failures.
func NewRetryFetcher(fetcher Fetcher, cfg RetryConfig) *RetryFetcher {
	return &RetryFetcher{
		fetcher: fetcher,
		config:  cfg,
	}
}

// Fetch implements Fetcher with retry logic.
func (f *RetryFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	return WithRetry(ctx, f.config, func() ([]byte, error) {
		return f.fetcher.Fetch(ctx, path)
	})
}

var _ Fetcher = (*RetryFetcher)(nil)
