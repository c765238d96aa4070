package mock

import (
	"golang.org/x/net/html"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

var _ chatpage.ReferenceExtractor = (*ReferenceExtractor)(nil)

// ReferenceExtractor is a mock implementation of chatpage.ReferenceExtractor.
type ReferenceExtractor struct {
	ReferencesFn func(content *html.Node) []chatpage.Reference
}

func (r *ReferenceExtractor) References(content *html.Node) []chatpage.Reference {
	return r.ReferencesFn(content)
}
