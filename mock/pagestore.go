package mock

import (
	"context"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

var _ chatpage.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of chatpage.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *chatpage.Page) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *chatpage.Page) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}
