package http

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

// DomainLimiter provides per-domain rate limiting using token buckets.
// It creates a separate rate limiter for each domain, allowing concurrent
// requests to different domains while enforcing rate limits within each domain.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a new DomainLimiter with the specified requests per second limit.
// Each domain gets its own limiter with a burst of 1 (no bursting allowed).
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// Ensure RateLimitedFetcher implements chatpage.Fetcher at compile time.
var _ chatpage.Fetcher = (*RateLimitedFetcher)(nil)

// RateLimitedFetcher delays each fetch until the limiter admits a request to
// the URL's host.
type RateLimitedFetcher struct {
	Fetcher chatpage.Fetcher
	Limiter *DomainLimiter
}

// NewRateLimitedFetcher wraps f so that each host sees at most rps requests
// per second.
func NewRateLimitedFetcher(f chatpage.Fetcher, rps float64) *RateLimitedFetcher {
	return &RateLimitedFetcher{Fetcher: f, Limiter: NewDomainLimiter(rps)}
}

// Fetch waits for the host's limiter, then delegates.
func (f *RateLimitedFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", chatpage.Errorf(chatpage.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if err := f.Limiter.Wait(ctx, u.Hostname()); err != nil {
		return "", err
	}
	return f.Fetcher.Fetch(ctx, rawURL)
}

// Close closes the wrapped fetcher.
func (f *RateLimitedFetcher) Close() error {
	return f.Fetcher.Close()
}
