package mock

import chatpage "github.com/wanderxuhq/chat-with-page-sub000"

var _ chatpage.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of chatpage.Extractor.
type Extractor struct {
	ExtractFn func(rawHTML, pageURL string) (*chatpage.Article, error)
}

func (e *Extractor) Extract(rawHTML, pageURL string) (*chatpage.Article, error) {
	return e.ExtractFn(rawHTML, pageURL)
}
