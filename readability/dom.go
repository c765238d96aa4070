package readability

import (
	"bytes"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// selectors caches compiled cascadia selectors by source text.
var selectors sync.Map

func compileSelector(sel string) cascadia.Selector {
	if s, ok := selectors.Load(sel); ok {
		return s.(cascadia.Selector)
	}
	s := cascadia.MustCompile(sel)
	selectors.Store(sel, s)
	return s
}

// querySelectorAll returns the descendants of root matching sel in document
// order. root itself is never included.
func querySelectorAll(root *html.Node, sel string) []*html.Node {
	if root == nil {
		return nil
	}
	return cascadia.QueryAll(root, compileSelector(sel))
}

func getAllNodesWithTag(root *html.Node, tags ...string) []*html.Node {
	return querySelectorAll(root, strings.Join(tags, ", "))
}

func matches(n *html.Node, sel string) bool {
	return n != nil && n.Type == html.ElementNode && compileSelector(sel).Match(n)
}

func isElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// tagName returns the lower-case tag of an element, or "" for other nodes.
func tagName(n *html.Node) string {
	if !isElement(n) {
		return ""
	}
	return n.Data
}

func getAttribute(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasAttribute(n *html.Node, key string) bool {
	if n == nil {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return true
		}
	}
	return false
}

func setAttribute(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttribute(n *html.Node, key string) {
	for i, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

func className(n *html.Node) string { return getAttribute(n, "class") }

func id(n *html.Node) string { return getAttribute(n, "id") }

// children returns the element children of n.
func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// childNodes returns every child of n, text and comments included.
func childNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func firstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

func nextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func previousElementSibling(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// textContent concatenates the text nodes below n.
func textContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode, html.DocumentNode:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

func innerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

func outerHTML(n *html.Node) string {
	var buf bytes.Buffer
	_ = html.Render(&buf, n)
	return buf.String()
}

func createElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

func createTextNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// setNodeTag renames an element in place. Identity, attributes and children
// are kept, so score table entries stay attached to the node.
func setNodeTag(n *html.Node, tag string) {
	n.Data = tag
	n.DataAtom = atom.Lookup([]byte(tag))
}

func removeNode(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// appendChild moves child to the end of parent, detaching it first.
func appendChild(parent, child *html.Node) {
	removeNode(child)
	parent.AppendChild(child)
}

// replaceNode puts replacement where old is. replacement may currently be
// attached anywhere in the tree, including below old.
func replaceNode(old, replacement *html.Node) {
	parent := old.Parent
	if parent == nil {
		return
	}
	removeNode(replacement)
	parent.InsertBefore(replacement, old)
	parent.RemoveChild(old)
}

// cloneNode returns a deep copy of n that is not attached to any tree.
func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(cloneNode(ch))
	}
	return c
}

// documentElement returns the root <html> element of doc, or doc itself when
// it is already an element.
func documentElement(doc *html.Node) *html.Node {
	if isElement(doc) {
		return doc
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

func body(doc *html.Node) *html.Node {
	if tagName(doc) == "body" {
		return doc
	}
	if nodes := getAllNodesWithTag(doc, "body"); len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

// getNextNode walks elements in document order. With ignoreSelfAndKids the
// subtree of n is skipped.
func getNextNode(n *html.Node, ignoreSelfAndKids bool) *html.Node {
	if !ignoreSelfAndKids {
		if c := firstElementChild(n); c != nil {
			return c
		}
	}
	if s := nextElementSibling(n); s != nil {
		return s
	}
	for n = n.Parent; n != nil; n = n.Parent {
		if s := nextElementSibling(n); s != nil {
			return s
		}
	}
	return nil
}

// removeAndGetNext detaches n and returns the element that follows its subtree.
func removeAndGetNext(n *html.Node) *html.Node {
	next := getNextNode(n, true)
	removeNode(n)
	return next
}

// nextNode skips whitespace-only text siblings starting at n.
func nextNode(n *html.Node) *html.Node {
	for n != nil && n.Type != html.ElementNode && strings.TrimSpace(n.Data) == "" {
		n = n.NextSibling
	}
	return n
}

// getNodeAncestors returns the chain of parents of n, nearest first.
// A maxDepth of zero means unlimited.
func getNodeAncestors(n *html.Node, maxDepth int) []*html.Node {
	var ancestors []*html.Node
	for p := n.Parent; p != nil; p = p.Parent {
		ancestors = append(ancestors, p)
		if maxDepth > 0 && len(ancestors) == maxDepth {
			break
		}
	}
	return ancestors
}

// hasAncestorTag reports whether an ancestor of n within maxDepth levels has
// the given tag and satisfies filter. A maxDepth of zero or less is unlimited.
func hasAncestorTag(n *html.Node, tag string, maxDepth int, filter func(*html.Node) bool) bool {
	depth := 0
	for n.Parent != nil {
		if maxDepth > 0 && depth > maxDepth {
			return false
		}
		if tagName(n.Parent) == tag && (filter == nil || filter(n.Parent)) {
			return true
		}
		n = n.Parent
		depth++
	}
	return false
}

func everyNode(nodes []*html.Node, fn func(*html.Node) bool) bool {
	for _, n := range nodes {
		if !fn(n) {
			return false
		}
	}
	return true
}

func someNode(nodes []*html.Node, fn func(*html.Node) bool) bool {
	for _, n := range nodes {
		if fn(n) {
			return true
		}
	}
	return false
}

// removeNodes detaches every node in the list that passes filter, walking
// backwards so nested matches are visited before their containers.
func removeNodes(nodes []*html.Node, filter func(*html.Node) bool) {
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.Parent == nil {
			continue
		}
		if filter == nil || filter(n) {
			removeNode(n)
		}
	}
}

func isWhitespace(n *html.Node) bool {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data) == ""
	}
	return tagName(n) == "br"
}

// isPhrasingContent reports whether n can live inside a paragraph.
func isPhrasingContent(n *html.Node) bool {
	if n.Type == html.TextNode {
		return true
	}
	if n.Type != html.ElementNode {
		return false
	}
	if phrasingElems[n.Data] {
		return true
	}
	if n.Data == "a" || n.Data == "del" || n.Data == "ins" {
		return everyNode(childNodes(n), isPhrasingContent)
	}
	return false
}

// hasSingleTagInsideElement reports whether n has exactly one element child
// with the given tag and no text of its own.
func hasSingleTagInsideElement(n *html.Node, tag string) bool {
	kids := children(n)
	if len(kids) != 1 || tagName(kids[0]) != tag {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return false
		}
	}
	return true
}

func hasChildBlockElement(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if divToPElems[tagName(c)] || hasChildBlockElement(c) {
			return true
		}
	}
	return false
}

// isElementWithoutContent reports whether n holds nothing but line breaks
// and rules.
func isElementWithoutContent(n *html.Node) bool {
	if !isElement(n) || strings.TrimSpace(textContent(n)) != "" {
		return false
	}
	kids := len(children(n))
	return kids == 0 || kids == len(getAllNodesWithTag(n, "br"))+len(getAllNodesWithTag(n, "hr"))
}

// isSingleImage reports whether n is an image or wraps exactly one image
// with no surrounding text.
func isSingleImage(n *html.Node) bool {
	if tagName(n) == "img" {
		return true
	}
	kids := children(n)
	if len(kids) != 1 || strings.TrimSpace(textContent(n)) != "" {
		return false
	}
	return isSingleImage(kids[0])
}

func isProbablyVisible(n *html.Node) bool {
	style := getAttribute(n, "style")
	if rxDisplayNone.MatchString(style) || rxVisibilityHidden.MatchString(style) {
		return false
	}
	if hasAttribute(n, "hidden") {
		return false
	}
	if getAttribute(n, "aria-hidden") == "true" && !strings.Contains(className(n), "fallback-image") {
		return false
	}
	return true
}
