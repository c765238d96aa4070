package readability

import (
	"math"
	"strings"

	"golang.org/x/net/html"
)

// Defaults for IsProbablyReaderable.
const (
	DefaultMinContentLength = 140
	DefaultMinScore         = 20
)

// ReaderableOptions tunes IsProbablyReaderable. Zero values select the
// defaults.
type ReaderableOptions struct {
	MinContentLength int
	MinScore         float64

	// VisibilityChecker overrides the default visibility test.
	VisibilityChecker func(*html.Node) bool
}

// IsProbablyReaderable is a quick check of whether doc holds enough visible
// paragraph text to be worth extracting. It does not modify doc.
func IsProbablyReaderable(doc *html.Node, opts ReaderableOptions) bool {
	if opts.MinContentLength <= 0 {
		opts.MinContentLength = DefaultMinContentLength
	}
	if opts.MinScore <= 0 {
		opts.MinScore = DefaultMinScore
	}
	if opts.VisibilityChecker == nil {
		opts.VisibilityChecker = isNodeVisible
	}

	nodes := getAllNodesWithTag(doc, "p", "pre", "article")
	// Text hanging off <br> inside a div counts as a paragraph too.
	seen := make(map[*html.Node]bool, len(nodes))
	for _, n := range nodes {
		seen[n] = true
	}
	for _, br := range querySelectorAll(doc, "div > br") {
		if p := br.Parent; !seen[p] {
			seen[p] = true
			nodes = append(nodes, p)
		}
	}

	score := 0.0
	return someNode(nodes, func(n *html.Node) bool {
		if !opts.VisibilityChecker(n) {
			return false
		}
		matchString := className(n) + " " + id(n)
		if rxUnlikelyCandidates.MatchString(matchString) && !rxOkMaybeItsACandidate.MatchString(matchString) {
			return false
		}
		if matches(n, "li p") {
			return false
		}
		length := charCount(strings.TrimSpace(textContent(n)))
		if length < opts.MinContentLength {
			return false
		}
		score += math.Sqrt(float64(length - opts.MinContentLength))
		return score > opts.MinScore
	})
}

// isNodeVisible is the visibility test used by IsProbablyReaderable. Unlike
// isProbablyVisible it does not treat visibility:hidden as invisible.
func isNodeVisible(n *html.Node) bool {
	style := getAttribute(n, "style")
	if rxDisplayNone.MatchString(style) || hasAttribute(n, "hidden") {
		return false
	}
	if getAttribute(n, "aria-hidden") == "true" && !strings.Contains(className(n), "fallback-image") {
		return false
	}
	return true
}
