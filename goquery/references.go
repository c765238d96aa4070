// Package goquery numbers the text blocks of extracted content so that
// answers built from them can cite their sources.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/net/html"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

// Ensure ReferenceExtractor implements chatpage.ReferenceExtractor at compile time.
var _ chatpage.ReferenceExtractor = (*ReferenceExtractor)(nil)

// blockSelector matches the elements that become references.
const blockSelector = "p, h1, h2, h3, h4, h5, h6, li"

// ReferenceExtractor walks content for paragraph, heading and list-item
// blocks.
type ReferenceExtractor struct {
	// MinLength drops blocks whose normalized text is shorter, in runes.
	MinLength int
}

// NewReferenceExtractor creates a new ReferenceExtractor.
func NewReferenceExtractor() *ReferenceExtractor {
	return &ReferenceExtractor{}
}

// References returns the text blocks of content in document order, numbered
// from 1. A list item that holds its own paragraphs or nested list is
// skipped in favour of those inner blocks, and repeated text is kept once.
func (r *ReferenceExtractor) References(content *html.Node) []chatpage.Reference {
	if content == nil {
		return nil
	}

	doc := goquery.NewDocumentFromNode(content)
	seen := make(map[uint64]struct{})
	var refs []chatpage.Reference

	doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		if sel.Find(blockSelector).Length() > 0 {
			return
		}

		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text == "" || len([]rune(text)) < r.MinLength {
			return
		}

		digest := xxhash.Sum64String(text)
		if _, ok := seen[digest]; ok {
			return
		}
		seen[digest] = struct{}{}

		refs = append(refs, chatpage.Reference{
			ID:   len(refs) + 1,
			Tag:  goquery.NodeName(sel),
			Text: text,
		})
	})

	return refs
}
