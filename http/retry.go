package http

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dalil-app/dalil"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure RetryFetcher implements dalil.Fetcher at compile time.
var _ dalil.Fetcher = (*RetryFetcher)(nil)

// RetryFetcher wraps a Fetcher with exponential backoff retries for
// transient failures. Policy refusals and invalid requests are not
// retried.
type RetryFetcher struct {
	next   dalil.Fetcher
	delays []time.Duration
	logger *slog.Logger
}

// NewRetryFetcher creates a RetryFetcher with the default backoff
// schedule.
func NewRetryFetcher(next dalil.Fetcher, logger *slog.Logger) *RetryFetcher {
	return NewRetryFetcherDelays(next, logger, DefaultRetryDelays())
}

// NewRetryFetcherDelays is like NewRetryFetcher but with configurable
// delays. Useful for testing without real waits.
func NewRetryFetcherDelays(next dalil.Fetcher, logger *slog.Logger, delays []time.Duration) *RetryFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryFetcher{next: next, delays: delays, logger: logger}
}

// Fetch attempts the fetch, retrying after each delay in the schedule.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := f.next.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		f.logger.Debug("retrying fetch",
			"url", url,
			"attempt", attempt+2,
			"err", err,
		)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}

// Close delegates to the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}

// retryable reports whether a fetch error is worth another attempt.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch dalil.ErrorCode(err) {
	case dalil.EPOLICY, dalil.EINVALID:
		return false
	}
	return true
}
