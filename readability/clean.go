package readability

import (
	"math"
	"strings"

	"golang.org/x/net/html"
)

// shareElementThreshold bounds the text of share widgets that get removed.
const shareElementThreshold = DefaultCharThreshold

// prepArticle sanitizes the aggregated article content in place.
func (a *attempt) prepArticle(content *html.Node) {
	cleanStyles(content)
	a.markDataTables(content)
	fixLazyImages(content)

	a.cleanConditionally(content, "form")
	a.cleanConditionally(content, "fieldset")
	a.clean(content, "object")
	a.clean(content, "embed")
	a.clean(content, "footer")
	a.clean(content, "link")
	a.clean(content, "aside")

	for _, child := range children(content) {
		cleanMatchedNodes(child, func(n *html.Node, matchString string) bool {
			return rxShareElements.MatchString(matchString) && charCount(textContent(n)) < shareElementThreshold
		})
	}

	a.clean(content, "iframe")
	a.clean(content, "input")
	a.clean(content, "textarea")
	a.clean(content, "select")
	a.clean(content, "button")
	a.cleanHeaders(content)

	a.cleanConditionally(content, "table")
	a.cleanConditionally(content, "ul")
	a.cleanConditionally(content, "div")

	collapseSingleCellTables(content)

	removeNodes(getAllNodesWithTag(content, "p"), func(p *html.Node) bool {
		return len(getAllNodesWithTag(p, "img", "embed", "object", "iframe")) == 0 && innerText(p, false) == ""
	})

	for _, br := range getAllNodesWithTag(content, "br") {
		if next := nextNode(br.NextSibling); tagName(next) == "p" {
			removeNode(br)
		}
	}

	for _, h1 := range getAllNodesWithTag(content, "h1") {
		setNodeTag(h1, "h2")
	}
}

// cleanStyles strips presentational attributes from e and its descendants.
// SVG subtrees are left alone.
func cleanStyles(e *html.Node) {
	if !isElement(e) || tagName(e) == "svg" {
		return
	}
	for _, attr := range presentationalAttributes {
		removeAttribute(e, attr)
	}
	if deprecatedSizeAttributeElems[tagName(e)] {
		removeAttribute(e, "width")
		removeAttribute(e, "height")
	}
	for child := firstElementChild(e); child != nil; child = nextElementSibling(child) {
		cleanStyles(child)
	}
}

// isVideoEmbed reports whether an embedding element points at an allowed
// video host.
func (a *attempt) isVideoEmbed(n *html.Node) bool {
	for _, attr := range n.Attr {
		if a.pc.opts.AllowedVideoRegex.MatchString(attr.Val) {
			return true
		}
	}
	return tagName(n) == "object" && a.pc.opts.AllowedVideoRegex.MatchString(innerHTML(n))
}

// clean removes every descendant of e with the given tag. Embeds of allowed
// videos survive.
func (a *attempt) clean(e *html.Node, tag string) {
	isEmbed := tag == "object" || tag == "embed" || tag == "iframe"
	removeNodes(getAllNodesWithTag(e, tag), func(n *html.Node) bool {
		return !isEmbed || !a.isVideoEmbed(n)
	})
}

// cleanMatchedNodes removes the descendants of e whose "class id" string
// passes filter.
func cleanMatchedNodes(e *html.Node, filter func(n *html.Node, matchString string) bool) {
	end := getNextNode(e, true)
	next := getNextNode(e, false)
	for next != nil && next != end {
		if filter(next, className(next)+" "+id(next)) {
			next = removeAndGetNext(next)
		} else {
			next = getNextNode(next, false)
		}
	}
}

// cleanHeaders drops h1 and h2 elements whose class weight is negative.
func (a *attempt) cleanHeaders(e *html.Node) {
	removeNodes(getAllNodesWithTag(e, "h1", "h2"), func(n *html.Node) bool {
		return a.classWeight(n) < 0
	})
}

// cleanConditionally removes descendants with the given tag that look like
// boilerplate.
func (a *attempt) cleanConditionally(e *html.Node, tag string) {
	if !a.flags.Has(FlagCleanConditionally) {
		return
	}
	removeNodes(getAllNodesWithTag(e, tag), func(n *html.Node) bool {
		return a.shouldRemoveConditionally(n, tag)
	})
}

func (a *attempt) shouldRemoveConditionally(node *html.Node, tag string) bool {
	isDataTable := func(t *html.Node) bool { return a.dataTables[t] }

	isList := tag == "ul" || tag == "ol"
	if !isList {
		listLength := 0
		for _, list := range getAllNodesWithTag(node, "ul", "ol") {
			listLength += charCount(innerText(list, true))
		}
		if nodeLength := charCount(innerText(node, true)); nodeLength > 0 {
			isList = float64(listLength)/float64(nodeLength) > 0.9
		}
	}

	if tag == "table" && isDataTable(node) {
		return false
	}
	if hasAncestorTag(node, "table", -1, isDataTable) {
		return false
	}
	if hasAncestorTag(node, "code", 3, nil) {
		return false
	}
	if someNode(getAllNodesWithTag(node, "table"), isDataTable) {
		return false
	}

	weight := a.classWeight(node)
	if weight < 0 {
		return true
	}

	text := innerText(node, true)
	if strings.Count(text, ",") >= 10 {
		return false
	}

	p := len(getAllNodesWithTag(node, "p"))
	img := len(getAllNodesWithTag(node, "img"))
	li := len(getAllNodesWithTag(node, "li")) - 100
	input := len(getAllNodesWithTag(node, "input"))
	headingDensity := textDensity(node, headingTags...)

	embedCount := 0
	for _, embed := range getAllNodesWithTag(node, "object", "embed", "iframe") {
		if a.isVideoEmbed(embed) {
			return false
		}
		embedCount++
	}

	if rxAdWords.MatchString(text) || rxLoadingWords.MatchString(text) {
		return true
	}

	contentLength := charCount(text)
	density := linkDensity(node)
	textishDensity := textDensity(node, textishTags...)
	isFigureChild := hasAncestorTag(node, "figure", 3, nil)
	modifier := a.pc.opts.LinkDensityModifier

	remove := (!isFigureChild && img > 1 && float64(p)/float64(img) < 0.5) ||
		(!isList && li > p) ||
		(float64(input) > math.Floor(float64(p)/3)) ||
		(!isList && !isFigureChild && headingDensity < 0.9 && contentLength < 25 && (img == 0 || img > 2) && density > 0) ||
		(!isList && weight < 25 && density > 0.2+modifier) ||
		(weight >= 25 && density > 0.5+modifier) ||
		((embedCount == 1 && contentLength < 75) || embedCount > 1) ||
		(img == 0 && textishDensity == 0)

	// Keep image galleries: lists whose items each hold a single image.
	if isList && remove {
		for _, child := range children(node) {
			if len(children(child)) > 1 {
				return remove
			}
		}
		if img == len(getAllNodesWithTag(node, "li")) {
			return false
		}
	}
	return remove
}

// collapseSingleCellTables replaces tables holding a single cell with that
// cell, retagged as a paragraph when it only has phrasing content.
func collapseSingleCellTables(content *html.Node) {
	for _, table := range getAllNodesWithTag(content, "table") {
		if table.Parent == nil {
			continue
		}
		tbody := table
		if hasSingleTagInsideElement(table, "tbody") {
			tbody = firstElementChild(table)
		}
		if !hasSingleTagInsideElement(tbody, "tr") {
			continue
		}
		row := firstElementChild(tbody)
		if !hasSingleTagInsideElement(row, "td") {
			continue
		}
		cell := firstElementChild(row)
		if everyNode(childNodes(cell), isPhrasingContent) {
			setNodeTag(cell, "p")
		} else {
			setNodeTag(cell, "div")
		}
		replaceNode(table, cell)
	}
}
