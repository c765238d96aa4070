package chatpage

import "golang.org/x/net/html"

// Metadata holds the descriptive fields of a page gathered from JSON-LD and
// <meta> tags before content extraction runs.
type Metadata struct {
	Title         string
	Byline        string
	Excerpt       string
	SiteName      string
	PublishedTime string
}

// Article is the readable content extracted from a page.
type Article struct {
	Title         string `json:"title"`
	Byline        string `json:"byline,omitempty"`
	Dir           string `json:"dir,omitempty"`
	Lang          string `json:"lang,omitempty"`
	Content       string `json:"content"`
	TextContent   string `json:"textContent"`
	Length        int    `json:"length"`
	Excerpt       string `json:"excerpt,omitempty"`
	SiteName      string `json:"siteName,omitempty"`
	PublishedTime string `json:"publishedTime,omitempty"`

	// Node is the cleaned content subtree Content was serialized from.
	// It is nil for engines that only produce markup.
	Node *html.Node `json:"-"`
}
