package readability

import (
	"strings"

	"golang.org/x/net/html"
)

// prepDocument normalizes markup ahead of scoring: styles are dropped,
// <br> chains become paragraphs and <font> becomes <span>.
func prepDocument(doc *html.Node) {
	removeNodes(getAllNodesWithTag(doc, "style"), nil)
	if b := body(doc); b != nil {
		replaceBrs(b)
	}
	for _, font := range getAllNodesWithTag(doc, "font") {
		setNodeTag(font, "span")
	}
}

// removeScripts drops <script> and <noscript> elements. JSON-LD must be read
// before this runs.
func removeScripts(doc *html.Node) {
	removeNodes(getAllNodesWithTag(doc, "script", "noscript"), nil)
}

// replaceBrs turns runs of two or more <br> into paragraph breaks. The
// phrasing content following such a run is collected into a new <p>.
func replaceBrs(root *html.Node) {
	for _, br := range getAllNodesWithTag(root, "br") {
		if br.Parent == nil {
			continue
		}

		replaced := false
		for next := nextNode(br.NextSibling); next != nil && tagName(next) == "br"; next = nextNode(next) {
			replaced = true
			sibling := next.NextSibling
			removeNode(next)
			next = sibling
		}
		if !replaced {
			continue
		}

		p := createElement("p")
		replaceNode(br, p)

		next := p.NextSibling
		for next != nil {
			// Another <br><br> run ends this paragraph.
			if tagName(next) == "br" {
				if following := nextNode(next.NextSibling); tagName(following) == "br" {
					break
				}
			}
			if !isPhrasingContent(next) {
				break
			}
			sibling := next.NextSibling
			appendChild(p, next)
			next = sibling
		}

		for p.LastChild != nil && isWhitespace(p.LastChild) {
			p.RemoveChild(p.LastChild)
		}

		if tagName(p.Parent) == "p" {
			setNodeTag(p.Parent, "div")
		}
	}
}

// unwrapNoscriptImages drops images without any usable source and replaces
// lazy-loading placeholders with the real image kept in an adjacent
// <noscript>.
func unwrapNoscriptImages(doc *html.Node) {
	for _, img := range getAllNodesWithTag(doc, "img") {
		if !hasImageSource(img) {
			removeNode(img)
		}
	}

	for _, noscript := range getAllNodesWithTag(doc, "noscript") {
		tmp := noscriptContent(noscript)
		if tmp == nil || !isSingleImage(tmp) {
			continue
		}
		prev := previousElementSibling(noscript)
		if prev == nil || !isSingleImage(prev) {
			continue
		}

		prevImg := prev
		if tagName(prevImg) != "img" {
			prevImg = getAllNodesWithTag(prev, "img")[0]
		}
		newImg := getAllNodesWithTag(tmp, "img")[0]

		for _, attr := range prevImg.Attr {
			if attr.Val == "" {
				continue
			}
			if attr.Key != "src" && attr.Key != "srcset" && !rxImageExtension.MatchString(attr.Val) {
				continue
			}
			if getAttribute(newImg, attr.Key) == attr.Val {
				continue
			}
			key := attr.Key
			if hasAttribute(newImg, key) {
				key = "data-old-" + key
			}
			setAttribute(newImg, key, attr.Val)
		}

		replaceNode(prev, firstElementChild(tmp))
	}
}

// hasImageSource reports whether img carries a source, a srcset or any
// attribute that looks like an image URL.
func hasImageSource(img *html.Node) bool {
	for _, attr := range img.Attr {
		switch attr.Key {
		case "src", "srcset", "data-src", "data-srcset":
			if attr.Val != "" {
				return true
			}
		}
		if rxImageExtension.MatchString(attr.Val) {
			return true
		}
	}
	return false
}

// noscriptContent returns a detached <div> holding the parsed children of a
// <noscript>. With scripting enabled the parser keeps noscript content as
// raw text, which is parsed here as a fragment.
func noscriptContent(noscript *html.Node) *html.Node {
	tmp := createElement("div")
	if c := noscript.FirstChild; c != nil && c.Type == html.TextNode && c.NextSibling == nil {
		nodes, err := html.ParseFragment(strings.NewReader(c.Data), tmp)
		if err != nil {
			return nil
		}
		for _, n := range nodes {
			tmp.AppendChild(n)
		}
		return tmp
	}
	for c := noscript.FirstChild; c != nil; c = c.NextSibling {
		tmp.AppendChild(cloneNode(c))
	}
	return tmp
}
