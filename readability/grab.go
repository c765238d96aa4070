package readability

import (
	"log/slog"

	"golang.org/x/net/html"
)

// attemptResult is what a failed extraction attempt leaves behind.
type attemptResult struct {
	content    *html.Node
	textLength int
	dir        string
}

// grabArticle runs extraction attempts until one yields enough text. Each
// failed attempt restores the page from a pristine copy and relaxes one
// heuristic. When every heuristic has been relaxed the longest attempt wins,
// or nil is returned if none produced any text.
func (pc *parseContext) grabArticle() *html.Node {
	page := body(pc.doc)
	if page == nil {
		return nil
	}
	pristine := cloneNode(page)

	var attempts []attemptResult
	for flags := AllFlags; ; {
		result := pc.newAttempt(flags).run(page)

		pc.opts.Logger.Debug("extraction attempt",
			slog.String("flags", flags.String()),
			slog.Int("textLength", result.textLength),
			slog.Int("threshold", pc.opts.CharThreshold),
		)

		if result.content != nil && result.textLength >= pc.opts.CharThreshold {
			pc.articleDir = result.dir
			return result.content
		}
		attempts = append(attempts, result)

		restored := cloneNode(pristine)
		replaceNode(page, restored)
		page = restored

		next, ok := flags.Relax()
		if !ok {
			break
		}
		flags = next
	}

	best := attempts[0]
	for _, a := range attempts[1:] {
		if a.textLength > best.textLength {
			best = a
		}
	}
	if best.content == nil || best.textLength == 0 {
		return nil
	}
	pc.articleDir = best.dir
	return best.content
}

// run performs a single extraction pass over page. An attempt that finds no
// scorable element returns an empty result.
func (a *attempt) run(page *html.Node) attemptResult {
	candidates := a.scoreElements(a.collectElements())

	top, created := a.selectTopCandidate(page, candidates)
	if top == nil {
		return attemptResult{}
	}
	parent := top.Parent

	content := a.aggregateSiblings(top)
	a.prepArticle(content)

	if created {
		// The synthesized candidate already wraps everything; label it.
		setAttribute(top, "id", "readability-page-1")
		setAttribute(top, "class", "page")
	} else {
		div := createElement("div")
		setAttribute(div, "id", "readability-page-1")
		setAttribute(div, "class", "page")
		for content.FirstChild != nil {
			appendChild(div, content.FirstChild)
		}
		content.AppendChild(div)
	}

	return attemptResult{
		content:    content,
		textLength: charCount(innerText(content, true)),
		dir:        direction(parent, top),
	}
}

// direction finds the nearest dir attribute on the candidate, its former
// parent or the parent's ancestors.
func direction(parent, top *html.Node) string {
	nodes := []*html.Node{parent, top}
	if parent != nil {
		nodes = append(nodes, getNodeAncestors(parent, 0)...)
	}
	for _, n := range nodes {
		if !isElement(n) {
			continue
		}
		if dir := getAttribute(n, "dir"); dir != "" {
			return dir
		}
	}
	return ""
}
