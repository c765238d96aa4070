// Package bluemonday sanitizes extracted article markup before it is shown
// or forwarded, using a bluemonday policy.
package bluemonday

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

// Ensure SanitizingExtractor implements chatpage.Extractor at compile time.
var _ chatpage.Extractor = (*SanitizingExtractor)(nil)

// SanitizingExtractor wraps an Extractor and strips scripts, event handlers
// and unsafe URLs from Article.Content.
type SanitizingExtractor struct {
	next   chatpage.Extractor
	policy *bluemonday.Policy
}

// NewPolicy returns the policy used for article content: bluemonday's user
// generated content policy plus class attributes, so preserved classes
// such as "page" survive.
func NewPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	return p
}

// NewSanitizingExtractor creates a new SanitizingExtractor using NewPolicy.
func NewSanitizingExtractor(next chatpage.Extractor) *SanitizingExtractor {
	return &SanitizingExtractor{next: next, policy: NewPolicy()}
}

// Extract delegates and sanitizes the returned content. Node is rebuilt as
// a <div> holding the sanitized markup, and TextContent and Length are
// recomputed from it, so that all three stay in step with Content.
func (e *SanitizingExtractor) Extract(rawHTML, pageURL string) (*chatpage.Article, error) {
	article, err := e.next.Extract(rawHTML, pageURL)
	if err != nil {
		return nil, err
	}

	clean := *article
	clean.Content = e.policy.Sanitize(article.Content)

	node, err := parseContent(clean.Content)
	if err != nil {
		return nil, chatpage.Errorf(chatpage.EINTERNAL, "failed to parse sanitized content: %v", err)
	}
	clean.Node = node
	clean.TextContent = goquery.NewDocumentFromNode(node).Text()
	clean.Length = utf8.RuneCountInString(clean.TextContent)

	return &clean, nil
}

// parseContent parses markup as the children of a detached <div>.
func parseContent(markup string) (*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, err
	}
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}
