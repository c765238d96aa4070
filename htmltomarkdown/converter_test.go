package htmltomarkdown_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
	"github.com/wanderxuhq/chat-with-page-sub000/htmltomarkdown"
	"golang.org/x/net/html"
)

// Ensure Converter implements chatpage.Converter at compile time.
var _ chatpage.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		html  string
		wants []string
	}{
		{
			name:  "paragraph",
			html:  `<p>Hello, world!</p>`,
			wants: []string{"Hello, world!"},
		},
		{
			name:  "headings",
			html:  `<h1>Title</h1><h2>Subtitle</h2><h3>Section</h3>`,
			wants: []string{"# Title", "## Subtitle", "### Section"},
		},
		{
			name:  "links",
			html:  `<p>Visit <a href="https://example.com">Example</a> for more info.</p>`,
			wants: []string{"[Example](https://example.com)"},
		},
		{
			name:  "lists",
			html:  `<ul><li>Apples</li><li>Pears</li></ul><ol><li>First</li><li>Second</li></ol>`,
			wants: []string{"- Apples", "- Pears", "1. First", "2. Second"},
		},
		{
			name:  "emphasis",
			html:  `<p><strong>Bold</strong> and <em>italic</em> with <code>go build</code>.</p>`,
			wants: []string{"**Bold**", "*italic*", "`go build`"},
		},
		{
			name:  "blockquote",
			html:  `<blockquote><p>This is a quote.</p></blockquote>`,
			wants: []string{"> This is a quote."},
		},
		{
			name: "fenced code with language",
			html: `<pre><code class="language-go">package main
</code></pre>`,
			wants: []string{"```go", "package main"},
		},
		{
			name: "tables",
			html: `<table>
<thead><tr><th>City</th><th>Rainfall</th></tr></thead>
<tbody><tr><td>Lisbon</td><td>774</td></tr></tbody>
</table>`,
			wants: []string{"City", "Rainfall", "Lisbon", "|", "---"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			md, err := htmltomarkdown.NewConverter().Convert(tt.html)

			require.NoError(t, err)
			for _, want := range tt.wants {
				assert.Contains(t, md, want)
			}
		})
	}

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert(" \n")

		require.Error(t, err)
		assert.Equal(t, chatpage.EINVALID, chatpage.ErrorCode(err))
	})

	t.Run("resolves relative links against domain", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter(htmltomarkdown.WithDomain("https://news.example.com"))
		md, err := conv.Convert(`<p>See <a href="/archive">the archive</a>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "(https://news.example.com/archive)")
	})

	t.Run("converts extracted article page", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<div id="readability-page-1" class="page">
<h2>River levels</h2>
<p>Water rose <strong>two metres</strong> overnight.</p>
<figure><img src="https://example.com/river.jpg" alt="River"></figure>
</div>`)

		require.NoError(t, err)
		assert.Contains(t, md, "## River levels")
		assert.Contains(t, md, "**two metres**")
		assert.Contains(t, md, "![River](https://example.com/river.jpg)")
	})
}

func TestConverter_ConvertNode(t *testing.T) {
	t.Parallel()

	t.Run("converts parsed subtree", func(t *testing.T) {
		t.Parallel()

		doc, err := html.Parse(strings.NewReader(`<div><h1>Notes</h1><p>Plain text body.</p></div>`))
		require.NoError(t, err)

		md, err := htmltomarkdown.NewConverter().ConvertNode(doc)

		require.NoError(t, err)
		assert.Contains(t, md, "# Notes")
		assert.Contains(t, md, "Plain text body.")
	})

	t.Run("returns error for nil node", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().ConvertNode(nil)

		require.Error(t, err)
		assert.Equal(t, chatpage.EINVALID, chatpage.ErrorCode(err))
	})
}
