package chatpage

import (
	"fmt"
	"strings"
)

// FormatPrompt formats an article and its references as chat model context.
// Header lines are emitted for the non-empty metadata fields, followed by a
// blank line and one "[id] text" line per reference.
func FormatPrompt(article *Article, refs []Reference) string {
	var b strings.Builder
	if article != nil {
		writeHeader(&b, "Title", article.Title)
		writeHeader(&b, "Byline", article.Byline)
		writeHeader(&b, "Site", article.SiteName)
		writeHeader(&b, "Published", article.PublishedTime)
	}
	if b.Len() > 0 && len(refs) > 0 {
		b.WriteString("\n")
	}
	for _, ref := range refs {
		fmt.Fprintf(&b, "[%d] %s\n", ref.ID, ref.Text)
	}
	return b.String()
}

func writeHeader(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}
