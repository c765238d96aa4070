package readability

import (
	"math"
	"strings"

	"golang.org/x/net/html"
)

// Flags selects the heuristics active during an extraction attempt.
type Flags uint8

// Heuristic flags, in the order they are relaxed.
const (
	FlagStripUnlikelys Flags = 1 << iota
	FlagWeightClasses
	FlagCleanConditionally
)

// AllFlags enables every heuristic. Extraction starts here.
const AllFlags = FlagStripUnlikelys | FlagWeightClasses | FlagCleanConditionally

// Has reports whether every flag in flag is set.
func (f Flags) Has(flag Flags) bool { return f&flag == flag }

// Relax clears the first heuristic still enabled. It returns false once no
// heuristic is left to clear.
func (f Flags) Relax() (Flags, bool) {
	for _, flag := range []Flags{FlagStripUnlikelys, FlagWeightClasses, FlagCleanConditionally} {
		if f.Has(flag) {
			return f &^ flag, true
		}
	}
	return f, false
}

func (f Flags) String() string {
	var names []string
	if f.Has(FlagStripUnlikelys) {
		names = append(names, "strip_unlikelys")
	}
	if f.Has(FlagWeightClasses) {
		names = append(names, "weight_classes")
	}
	if f.Has(FlagCleanConditionally) {
		names = append(names, "clean_conditionally")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// ScoreTable maps scored elements to their content score. An element has a
// score only once it has been initialized.
type ScoreTable map[*html.Node]float64

// Has reports whether n has been initialized.
func (t ScoreTable) Has(n *html.Node) bool {
	_, ok := t[n]
	return ok
}

// scoreDivider is how much of a paragraph's score reaches the ancestor at
// the given level: all of it for the parent, half for the grandparent and a
// third per level beyond.
func scoreDivider(level int) float64 {
	switch level {
	case 0:
		return 1
	case 1:
		return 2
	default:
		return float64(level) * 3
	}
}

// attempt is one pass of article extraction under a fixed set of flags. It
// owns the score table and the data table marks of that pass.
type attempt struct {
	pc         *parseContext
	flags      Flags
	scores     ScoreTable
	dataTables map[*html.Node]bool
}

func (pc *parseContext) newAttempt(flags Flags) *attempt {
	return &attempt{
		pc:         pc,
		flags:      flags,
		scores:     make(ScoreTable),
		dataTables: make(map[*html.Node]bool),
	}
}

// classWeight scores the class and id of n against the positive and
// negative vocabularies.
func (a *attempt) classWeight(n *html.Node) int {
	if !a.flags.Has(FlagWeightClasses) {
		return 0
	}
	weight := 0
	for _, attr := range []string{className(n), id(n)} {
		if attr == "" {
			continue
		}
		if rxNegative.MatchString(attr) {
			weight -= 25
		}
		if rxPositive.MatchString(attr) {
			weight += 25
		}
	}
	return weight
}

func (a *attempt) initializeNode(n *html.Node) {
	score := 0.0
	switch tagName(n) {
	case "div":
		score += 5
	case "pre", "td", "blockquote":
		score += 3
	case "address", "ol", "ul", "dl", "dd", "dt", "li", "form":
		score -= 3
	case "h1", "h2", "h3", "h4", "h5", "h6", "th":
		score -= 5
	}
	a.scores[n] = score + float64(a.classWeight(n))
}

// collectElements walks the document once, removing hidden, unlikely and
// empty elements, capturing the byline and normalizing divs. It returns the
// elements that carry scorable text.
func (a *attempt) collectElements() []*html.Node {
	var elementsToScore []*html.Node

	node := documentElement(a.pc.doc)
	for node != nil {
		tag := tagName(node)
		if tag == "html" {
			a.pc.articleLang = getAttribute(node, "lang")
		}

		matchString := className(node) + " " + id(node)

		if !isProbablyVisible(node) {
			node = removeAndGetNext(node)
			continue
		}

		if getAttribute(node, "aria-modal") == "true" && getAttribute(node, "role") == "dialog" {
			node = removeAndGetNext(node)
			continue
		}

		if a.pc.checkByline(node, matchString) {
			node = removeAndGetNext(node)
			continue
		}

		if !a.pc.titleHeaderRemoved && a.headerDuplicatesTitle(node) {
			a.pc.titleHeaderRemoved = true
			node = removeAndGetNext(node)
			continue
		}

		if a.flags.Has(FlagStripUnlikelys) {
			if rxUnlikelyCandidates.MatchString(matchString) &&
				!rxOkMaybeItsACandidate.MatchString(matchString) &&
				!hasAncestorTag(node, "table", 3, nil) &&
				!hasAncestorTag(node, "code", 3, nil) &&
				tag != "body" && tag != "a" {
				node = removeAndGetNext(node)
				continue
			}
			if unlikelyRoles[getAttribute(node, "role")] {
				node = removeAndGetNext(node)
				continue
			}
		}

		switch tag {
		case "div", "section", "header", "h1", "h2", "h3", "h4", "h5", "h6":
			if isElementWithoutContent(node) {
				node = removeAndGetNext(node)
				continue
			}
		}

		if tagsToScore[tag] {
			elementsToScore = append(elementsToScore, node)
		}

		if tag == "div" {
			wrapPhrasingRuns(node)

			// A div holding a single paragraph is replaced by it. A div with
			// no block children is a paragraph itself.
			if hasSingleTagInsideElement(node, "p") && linkDensity(node) < 0.25 {
				child := children(node)[0]
				replaceNode(node, child)
				node = child
				elementsToScore = append(elementsToScore, node)
			} else if !hasChildBlockElement(node) {
				setNodeTag(node, "p")
				elementsToScore = append(elementsToScore, node)
			}
		}

		node = getNextNode(node, false)
	}
	return elementsToScore
}

// wrapPhrasingRuns collects consecutive phrasing children of div into
// paragraphs. Whitespace around the runs is left outside.
func wrapPhrasingRuns(div *html.Node) {
	var p *html.Node
	for child := div.FirstChild; child != nil; {
		next := child.NextSibling
		if isPhrasingContent(child) {
			if p != nil {
				appendChild(p, child)
			} else if !isWhitespace(child) {
				p = createElement("p")
				div.InsertBefore(p, child)
				appendChild(p, child)
			}
		} else if p != nil {
			for p.LastChild != nil && isWhitespace(p.LastChild) {
				p.RemoveChild(p.LastChild)
			}
			p = nil
		}
		child = next
	}
}

func (a *attempt) headerDuplicatesTitle(n *html.Node) bool {
	if tag := tagName(n); tag != "h1" && tag != "h2" {
		return false
	}
	return textSimilarity(a.pc.articleTitle, innerText(n, false)) > 0.75
}

// checkByline captures the first plausible author line. The byline text
// prefers a descendant marked itemprop="name".
func (pc *parseContext) checkByline(n *html.Node, matchString string) bool {
	if pc.articleByline != "" {
		return false
	}
	if getAttribute(n, "rel") != "author" &&
		!strings.Contains(getAttribute(n, "itemprop"), "author") &&
		!rxByline.MatchString(matchString) {
		return false
	}
	if !isValidByline(textContent(n)) {
		return false
	}

	source := n
	end := getNextNode(n, true)
	for next := getNextNode(n, false); next != nil && next != end; next = getNextNode(next, false) {
		if strings.Contains(getAttribute(next, "itemprop"), "name") {
			source = next
			break
		}
	}
	pc.articleByline = strings.TrimSpace(textContent(source))
	return true
}

func isValidByline(text string) bool {
	n := charCount(strings.TrimSpace(text))
	return n > 0 && n < 100
}

// scoreElements gives every scorable element a base score and propagates it
// to up to five ancestors. It returns the ancestors that became candidates.
func (a *attempt) scoreElements(elements []*html.Node) []*html.Node {
	var candidates []*html.Node
	for _, el := range elements {
		if !isElement(el.Parent) {
			continue
		}

		text := innerText(el, true)
		length := charCount(text)
		if length < 25 {
			continue
		}

		ancestors := getNodeAncestors(el, 5)
		if len(ancestors) == 0 {
			continue
		}

		score := 1 + float64(commaSegments(text)) + math.Min(math.Floor(float64(length)/100), 3)

		for level, ancestor := range ancestors {
			if !isElement(ancestor) || !isElement(ancestor.Parent) {
				continue
			}
			if !a.scores.Has(ancestor) {
				a.initializeNode(ancestor)
				candidates = append(candidates, ancestor)
			}
			a.scores[ancestor] += score / scoreDivider(level)
		}
	}
	return candidates
}
