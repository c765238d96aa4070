// Package rod provides a chatpage.Fetcher that renders pages in headless
// Chrome and returns the live DOM serialized back to markup.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod/lib/proto"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

// DefaultFetchTimeout bounds a single navigation and render.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements chatpage.Fetcher at compile time.
var _ chatpage.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
	settle  time.Duration
	maxPage int64
	bin     string
	closed  atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettle waits until the DOM has not changed for d after load before
// serializing, for pages that render their article with JavaScript.
func WithSettle(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// WithBrowserMaxPages sets how many pages are rendered before the browser
// is recycled.
func WithBrowserMaxPages(n int64) Option {
	return func(f *Fetcher) {
		f.maxPage = n
	}
}

// WithBrowserBin launches the Chrome binary at path.
func WithBrowserBin(path string) Option {
	return func(f *Fetcher) {
		f.bin = path
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		maxPage: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithMaxPages(f.maxPage), WithBin(f.bin))
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", chatpage.Errorf(chatpage.EINVALID, "fetcher closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", wrapContextErr(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", wrapContextErr(ctx, err)
	}
	if f.settle > 0 {
		if err := page.WaitStable(f.settle); err != nil {
			return "", wrapContextErr(ctx, err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", wrapContextErr(ctx, err)
	}

	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// wrapContextErr prefers the context's error so callers can match
// context.DeadlineExceeded and context.Canceled.
func wrapContextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
