package readability

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

// Ensure Extractor implements chatpage.Extractor at compile time.
var _ chatpage.Extractor = (*Extractor)(nil)

// Extractor adapts Parser to the chatpage.Extractor interface.
type Extractor struct {
	parser *Parser
}

// NewExtractor creates a new Extractor with the given parser options.
func NewExtractor(opts Options) *Extractor {
	return &Extractor{parser: New(opts)}
}

// Extract parses raw HTML and returns its article. It reports ENOTFOUND
// when the page has no extractable content.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*chatpage.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, chatpage.Errorf(chatpage.EINVALID, "empty HTML input")
	}

	var u *url.URL
	if pageURL != "" {
		var err error
		if u, err = url.Parse(pageURL); err != nil {
			return nil, chatpage.Errorf(chatpage.EINVALID, "invalid page URL %q: %v", pageURL, err)
		}
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, chatpage.Errorf(chatpage.EINVALID, "failed to parse HTML: %v", err)
	}

	article, err := e.parser.Parse(doc, u)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, chatpage.Errorf(chatpage.ENOTFOUND, "no readable content found")
	}
	return article, nil
}
