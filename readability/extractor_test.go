package readability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
	"github.com/wanderxuhq/chat-with-page-sub000/readability"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor(readability.Options{})
	_, err := ext.Extract("  ", "")

	require.Error(t, err)
	assert.Equal(t, chatpage.EINVALID, chatpage.ErrorCode(err))
}

func TestExtractor_RejectsInvalidURL(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor(readability.Options{})
	_, err := ext.Extract(page("", articleParagraphs()), "http://[::1")

	require.Error(t, err)
	assert.Equal(t, chatpage.EINVALID, chatpage.ErrorCode(err))
}

func TestExtractor_ReportsMissingContent(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor(readability.Options{})
	_, err := ext.Extract(page("<title>Empty</title>", "<p>short</p>"), "")

	require.Error(t, err)
	assert.Equal(t, chatpage.ENOTFOUND, chatpage.ErrorCode(err))
}

func TestExtractor_ExtractsArticle(t *testing.T) {
	t.Parallel()

	html := page("<title>A Practical Guide To Reading Pages</title>",
		`<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>`+
			`<article>`+articleParagraphs()+`<p><a href="/next">Next part</a> continues the story here.</p></article>`)

	ext := readability.NewExtractor(readability.Options{})
	article, err := ext.Extract(html, "https://example.com/guide/")

	require.NoError(t, err)
	assert.Equal(t, "A Practical Guide To Reading Pages", article.Title)
	assert.NotContains(t, article.Content, "Home Nav Link")
	assert.Contains(t, article.Content, `href="https://example.com/next"`)
}

func TestExtractor_PropagatesTooLarge(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor(readability.Options{MaxElemsToParse: 2})
	_, err := ext.Extract(page("", articleParagraphs()), "")

	assert.Equal(t, chatpage.ETOOLARGE, chatpage.ErrorCode(err))
}
