package readability

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// postProcessContent rewrites links to absolute form, flattens redundant
// wrappers and strips classes.
func (pc *parseContext) postProcessContent(content *html.Node) {
	pc.fixRelativeURIs(content)
	simplifyNestedElements(content)
	if !pc.opts.KeepClasses {
		cleanClasses(content, set(pc.opts.ClassesToPreserve...))
	}
}

// baseURI resolves the document's <base href> against the page URL.
func (pc *parseContext) baseURI() *url.URL {
	if pc.pageURL == nil {
		return nil
	}
	for _, base := range getAllNodesWithTag(pc.doc, "base") {
		href := getAttribute(base, "href")
		if href == "" {
			continue
		}
		if u, err := pc.pageURL.Parse(href); err == nil {
			return u
		}
		break
	}
	return pc.pageURL
}

func (pc *parseContext) fixRelativeURIs(content *html.Node) {
	base := pc.baseURI()

	toAbsolute := func(uri string) string {
		if base == nil {
			return uri
		}
		// Same-document fragments stay relative unless a <base> moved the
		// resolution point elsewhere.
		if strings.HasPrefix(uri, "#") && base.String() == pc.pageURL.String() {
			return uri
		}
		u, err := base.Parse(uri)
		if err != nil {
			return uri
		}
		return u.String()
	}

	for _, link := range getAllNodesWithTag(content, "a") {
		href := getAttribute(link, "href")
		if href == "" {
			continue
		}
		if strings.HasPrefix(href, "javascript:") {
			unwrapScriptLink(link)
			continue
		}
		setAttribute(link, "href", toAbsolute(href))
	}

	for _, media := range getAllNodesWithTag(content, "img", "picture", "figure", "video", "audio", "source") {
		if src := getAttribute(media, "src"); src != "" {
			setAttribute(media, "src", toAbsolute(src))
		}
		if poster := getAttribute(media, "poster"); poster != "" {
			setAttribute(media, "poster", toAbsolute(poster))
		}
		if srcset := getAttribute(media, "srcset"); srcset != "" {
			setAttribute(media, "srcset", rxSrcsetURL.ReplaceAllStringFunc(srcset, func(m string) string {
				parts := rxSrcsetURL.FindStringSubmatch(m)
				return toAbsolute(parts[1]) + parts[2] + parts[3]
			}))
		}
	}
}

// unwrapScriptLink replaces a javascript: link with its content: a bare
// text node when it only holds text, otherwise a <span>.
func unwrapScriptLink(link *html.Node) {
	if c := link.FirstChild; c != nil && c.NextSibling == nil && c.Type == html.TextNode {
		replaceNode(link, createTextNode(c.Data))
		return
	}
	span := createElement("span")
	for link.FirstChild != nil {
		appendChild(span, link.FirstChild)
	}
	replaceNode(link, span)
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// simplifyNestedElements removes empty divs and sections and folds wrappers
// that hold a single div or section into their child.
func simplifyNestedElements(content *html.Node) {
	node := content
	for node != nil {
		tag := tagName(node)
		if node.Parent != nil && (tag == "div" || tag == "section") && !strings.HasPrefix(id(node), "readability") {
			if isElementWithoutContent(node) {
				node = removeAndGetNext(node)
				continue
			}
			if hasSingleTagInsideElement(node, "div") || hasSingleTagInsideElement(node, "section") {
				child := children(node)[0]
				for _, attr := range node.Attr {
					setAttribute(child, attr.Key, attr.Val)
				}
				replaceNode(node, child)
				node = child
				continue
			}
		}
		node = getNextNode(node, false)
	}
}

// cleanClasses strips every class not in preserve from n and its descendants.
func cleanClasses(n *html.Node, preserve map[string]bool) {
	if class, ok := attrValue(n, "class"); ok {
		var kept []string
		for _, c := range strings.Fields(class) {
			if preserve[c] {
				kept = append(kept, c)
			}
		}
		if len(kept) > 0 {
			setAttribute(n, "class", strings.Join(kept, " "))
		} else {
			removeAttribute(n, "class")
		}
	}
	for child := firstElementChild(n); child != nil; child = nextElementSibling(child) {
		cleanClasses(child, preserve)
	}
}
