package chatpage

// Extractor extracts the primary article from an HTML page, removing
// navigation, advertising and other boilerplate.
type Extractor interface {
	// Extract parses raw HTML and returns the article it contains.
	// pageURL is used to resolve relative links and may be empty.
	// Returns ENOTFOUND if the page has no recognizable article content.
	Extract(rawHTML string, pageURL string) (*Article, error)
}
