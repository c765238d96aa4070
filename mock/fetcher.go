package mock

import (
	"context"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

var _ chatpage.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of chatpage.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
