package readability

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// articleTitle derives the article title from the document <title>, trimming
// site names joined with separators or colons. It only reads doc.
func articleTitle(doc *html.Node) string {
	gq := goquery.NewDocumentFromNode(doc)
	origTitle := normalizeSpace(gq.Find("title").First().Text())
	curTitle := origTitle

	var headings []string
	gq.Find("h1, h2").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, normalizeSpace(s.Text()))
	})

	hadHierarchicalSeparators := false
	if seps := titleSeparators(origTitle, headings); len(seps) > 0 {
		for _, sep := range seps {
			if rxHierarchicalSeparator.MatchString(origTitle[sep[0]:sep[1]]) {
				hadHierarchicalSeparators = true
			}
		}
		last := seps[len(seps)-1]
		curTitle = origTitle[:last[0]]
		if wordCount(curTitle) < 3 {
			curTitle = origTitle[seps[0][1]:]
		}
	} else if strings.Contains(curTitle, ": ") {
		matchesHeading := false
		for _, h := range headings {
			if h == strings.TrimSpace(curTitle) {
				matchesHeading = true
				break
			}
		}
		if !matchesHeading {
			curTitle = origTitle[strings.LastIndex(origTitle, ":")+1:]
			if wordCount(curTitle) < 3 {
				curTitle = origTitle[strings.Index(origTitle, ":")+1:]
			} else if wordCount(origTitle[:strings.Index(origTitle, ":")]) > 5 {
				curTitle = origTitle
			}
		}
	} else if n := charCount(curTitle); n > 150 || n < 15 {
		if h1s := gq.Find("h1"); h1s.Length() == 1 {
			curTitle = normalizeSpace(h1s.Text())
		}
	}

	curTitle = normalizeSpace(curTitle)

	// Short results are only kept when they came from dropping hierarchical
	// segments such as "Section > Page".
	if n := wordCount(curTitle); n <= 4 &&
		(!hadHierarchicalSeparators || n != wordCount(rxTitleSeparatorStripped.ReplaceAllString(origTitle, ""))-1) {
		curTitle = origTitle
	}
	return curTitle
}

// titleSeparators returns the byte spans of separators in title, skipping
// those that fall inside the text of a page heading quoted by the title.
func titleSeparators(title string, headings []string) [][]int {
	var protected [][]int
	for _, h := range headings {
		if h == "" || !rxTitleSeparator.MatchString(h) {
			continue
		}
		if i := strings.Index(title, h); i >= 0 {
			protected = append(protected, []int{i, i + len(h)})
		}
	}

	var seps [][]int
	for _, sep := range rxTitleSeparator.FindAllStringIndex(title, -1) {
		inside := false
		for _, p := range protected {
			if sep[0] >= p[0] && sep[1] <= p[1] {
				inside = true
				break
			}
		}
		if !inside {
			seps = append(seps, sep)
		}
	}
	return seps
}

func normalizeSpace(s string) string {
	return rxNormalize.ReplaceAllString(strings.TrimSpace(s), " ")
}
