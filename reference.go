package chatpage

import "golang.org/x/net/html"

// Reference is a numbered block of article text that answers can cite.
type Reference struct {
	ID   int    `json:"id"`
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// ReferenceExtractor splits extracted content into citable references.
type ReferenceExtractor interface {
	// References returns the text blocks of content in document order.
	// Blocks with identical text are reported once.
	References(content *html.Node) []Reference
}
