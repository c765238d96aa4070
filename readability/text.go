package readability

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// innerText returns the trimmed text of n. With normalize, runs of two or
// more whitespace characters collapse to a single space.
func innerText(n *html.Node, normalize bool) string {
	text := strings.TrimSpace(textContent(n))
	if normalize {
		text = rxNormalize.ReplaceAllString(text, " ")
	}
	return text
}

// charCount measures text in characters rather than bytes.
func charCount(s string) int {
	return utf8.RuneCountInString(s)
}

// wordCount counts whitespace-separated segments. Leading or trailing
// whitespace yields an empty segment, and "" counts as one word.
func wordCount(s string) int {
	return len(rxWhitespace.Split(s, -1))
}

// commaSegments counts the pieces text splits into at any comma-like
// character, so text without commas has one segment.
func commaSegments(text string) int {
	return len(rxCommas.Split(text, -1))
}

func tokenize(s string) []string {
	var tokens []string
	for _, t := range rxTokenize.Split(strings.ToLower(s), -1) {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// textSimilarity compares the tokens of b against those of a. It returns 1
// when every token of b also occurs in a and 0 when none does.
func textSimilarity(a, b string) float64 {
	tokensA := tokenize(a)
	tokensB := tokenize(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}
	inA := set(tokensA...)
	unique := 0
	for _, t := range tokensB {
		if !inA[t] {
			unique++
		}
	}
	return 1 - float64(unique)/float64(len(tokensB))
}

// linkDensity is the share of n's text that sits inside links. Text of
// in-page fragment links counts for less.
func linkDensity(n *html.Node) float64 {
	textLength := charCount(innerText(n, true))
	if textLength == 0 {
		return 0
	}
	var linkLength float64
	for _, link := range getAllNodesWithTag(n, "a") {
		coefficient := 1.0
		if rxHashURL.MatchString(getAttribute(link, "href")) {
			coefficient = 0.3
		}
		linkLength += float64(charCount(innerText(link, true))) * coefficient
	}
	return linkLength / float64(textLength)
}

// textDensity is the share of n's text found inside descendants with the
// given tags.
func textDensity(n *html.Node, tags ...string) float64 {
	textLength := charCount(innerText(n, true))
	if textLength == 0 {
		return 0
	}
	childrenLength := 0
	for _, child := range getAllNodesWithTag(n, tags...) {
		childrenLength += charCount(innerText(child, true))
	}
	return float64(childrenLength) / float64(textLength)
}
