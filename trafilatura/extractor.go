package trafilatura

import (
	"bytes"
	"net/url"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

// Ensure Extractor implements chatpage.Extractor at compile time.
var _ chatpage.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura as an alternative extraction engine.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*chatpage.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, chatpage.Errorf(chatpage.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		IncludeImages:  true,
		IncludeLinks:   true,
	}
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, chatpage.Errorf(chatpage.EINVALID, "invalid page URL %q: %v", pageURL, err)
		}
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, chatpage.Errorf(chatpage.ENOTFOUND, "no readable content found: %v", err)
	}
	if result.ContentNode == nil {
		return nil, chatpage.Errorf(chatpage.ENOTFOUND, "no readable content found")
	}

	content, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	var published string
	if !result.Metadata.Date.IsZero() {
		published = result.Metadata.Date.Format(time.RFC3339)
	}

	return &chatpage.Article{
		Title:         result.Metadata.Title,
		Byline:        result.Metadata.Author,
		Content:       content,
		TextContent:   result.ContentText,
		Length:        len([]rune(result.ContentText)),
		Excerpt:       result.Metadata.Description,
		SiteName:      result.Metadata.Sitename,
		PublishedTime: published,
		Node:          result.ContentNode,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
