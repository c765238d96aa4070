package readability

import (
	"math"

	"golang.org/x/net/html"
)

// minimumTopCandidates is how many strong alternative candidates must share
// an ancestor before that ancestor replaces the best candidate.
const minimumTopCandidates = 3

// topCandidates scales every candidate's score by its link density and keeps
// the n best, highest first.
func (a *attempt) topCandidates(candidates []*html.Node, n int) []*html.Node {
	var top []*html.Node
	for _, c := range candidates {
		score := a.scores[c] * (1 - linkDensity(c))
		a.scores[c] = score

		for i := 0; i < n; i++ {
			if i < len(top) && score <= a.scores[top[i]] {
				continue
			}
			top = append(top, nil)
			copy(top[i+1:], top[i:])
			top[i] = c
			if len(top) > n {
				top = top[:n]
			}
			break
		}
	}
	return top
}

// selectTopCandidate picks the element most likely to wrap the article. When
// nothing better than <body> exists, the children of page are moved into a
// new <div> which becomes the candidate, and created is true. A nil result
// means no element was scored at all.
func (a *attempt) selectTopCandidate(page *html.Node, candidates []*html.Node) (top *html.Node, created bool) {
	ranked := a.topCandidates(candidates, a.pc.opts.NbTopCandidates)
	if len(ranked) == 0 {
		return nil, false
	}

	if tagName(ranked[0]) == "body" {
		top = createElement("div")
		for page.FirstChild != nil {
			appendChild(top, page.FirstChild)
		}
		page.AppendChild(top)
		a.initializeNode(top)
		return top, true
	}

	top = ranked[0]
	topScore := a.scores[top]

	// Several strong candidates under one ancestor usually means the
	// article is split into columns or sections; promote the ancestor.
	var alternatives [][]*html.Node
	if topScore > 0 {
		for _, c := range ranked[1:] {
			if a.scores[c]/topScore >= 0.75 {
				alternatives = append(alternatives, getNodeAncestors(c, 0))
			}
		}
	}
	if len(alternatives) >= minimumTopCandidates {
		for parent := top.Parent; parent != nil && tagName(parent) != "body"; parent = parent.Parent {
			lists := 0
			for _, ancestors := range alternatives {
				if containsNode(ancestors, parent) {
					lists++
				}
			}
			if lists >= minimumTopCandidates {
				top = parent
				break
			}
		}
	}
	if !a.scores.Has(top) {
		a.initializeNode(top)
	}

	// Climb while parents keep a comparable score; a parent scoring higher
	// than what is below it takes over.
	lastScore := a.scores[top]
	threshold := lastScore / 3
	for parent := top.Parent; parent != nil && tagName(parent) != "body"; parent = parent.Parent {
		parentScore, ok := a.scores[parent]
		if !ok {
			continue
		}
		if parentScore < threshold {
			break
		}
		if parentScore > lastScore {
			top = parent
			break
		}
		lastScore = parentScore
	}

	// Collapse wrappers that hold nothing but the candidate.
	for parent := top.Parent; isElement(parent) && tagName(parent) != "body" && len(children(parent)) == 1; parent = top.Parent {
		top = parent
	}
	if !a.scores.Has(top) {
		a.initializeNode(top)
	}
	return top, false
}

func containsNode(nodes []*html.Node, n *html.Node) bool {
	for _, node := range nodes {
		if node == n {
			return true
		}
	}
	return false
}

// aggregateSiblings builds the article container from the top candidate and
// the siblings that look like part of the same article.
func (a *attempt) aggregateSiblings(top *html.Node) *html.Node {
	content := createElement("div")
	parent := top.Parent
	if parent == nil {
		content.AppendChild(top)
		return content
	}

	topScore := a.scores[top]
	threshold := math.Max(10, topScore*0.2)
	topClass := className(top)

	for _, sibling := range children(parent) {
		if !a.includeSibling(sibling, top, topScore, topClass, threshold) {
			continue
		}
		if !alterToDivExceptions[tagName(sibling)] {
			setNodeTag(sibling, "div")
		}
		appendChild(content, sibling)
	}
	return content
}

func (a *attempt) includeSibling(sibling, top *html.Node, topScore float64, topClass string, threshold float64) bool {
	if sibling == top {
		return true
	}

	bonus := 0.0
	if topClass != "" && className(sibling) == topClass {
		bonus += topScore * 0.2
	}
	if score, ok := a.scores[sibling]; ok && score+bonus >= threshold {
		return true
	}

	if tagName(sibling) != "p" {
		return false
	}
	density := linkDensity(sibling)
	text := innerText(sibling, true)
	length := charCount(text)
	switch {
	case length > 80 && density < 0.25:
		return true
	case length < 80 && length > 0 && density == 0 && rxSentenceEnd.MatchString(text):
		return true
	}
	return false
}
