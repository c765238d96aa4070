package http

import (
	"context"
	"log/slog"
	"time"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure RetryFetcher implements chatpage.Fetcher at compile time.
var _ chatpage.Fetcher = (*RetryFetcher)(nil)

// RetryFetcher retries failed fetches with backoff. Errors that a retry
// cannot fix (invalid URL, missing page, oversized body) are returned at once.
type RetryFetcher struct {
	Fetcher chatpage.Fetcher
	Delays  []time.Duration
	Logger  *slog.Logger
}

// NewRetryFetcher wraps f with the default 1s, 2s, 4s backoff.
func NewRetryFetcher(f chatpage.Fetcher, logger *slog.Logger) *RetryFetcher {
	return &RetryFetcher{Fetcher: f, Delays: DefaultRetryDelays(), Logger: logger}
}

// Fetch attempts the fetch once plus one retry per configured delay.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.Delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := f.Fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if f.Logger != nil {
			f.Logger.Warn("retrying fetch",
				slog.String("url", url),
				slog.Int("attempt", attempt+2),
				slog.String("error", err.Error()),
			)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.Delays[attempt]):
		}
	}

	return "", lastErr
}

// Close closes the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.Fetcher.Close()
}

func retryable(err error) bool {
	switch chatpage.ErrorCode(err) {
	case chatpage.EINVALID, chatpage.ENOTFOUND, chatpage.ETOOLARGE:
		return false
	}
	return true
}
