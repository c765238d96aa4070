package chatpage

import "context"

// Page is an extracted article ready to be persisted.
type Page struct {
	// Source is the URL or file path the article was read from.
	Source  string
	Article *Article
	Content string // Markdown
}

// PageStore persists pages to storage with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}
