package readability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArticleTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		head string
		body string
		want string
	}{
		{
			name: "drops site name after separator",
			head: `<title>An Interesting Article About Go Parsing | Example Site</title>`,
			want: "An Interesting Article About Go Parsing",
		},
		{
			name: "keeps short title when separator split is too aggressive",
			head: `<title>Hello World Article | Site</title>`,
			want: "Hello World Article | Site",
		},
		{
			name: "takes text after first separator when prefix is too short",
			head: `<title>Blog - How We Rebuilt Our Search Infrastructure</title>`,
			want: "How We Rebuilt Our Search Infrastructure",
		},
		{
			name: "ignores separators inside page heading",
			head: `<title>Site | Go Tips - Tricks And More Things</title>`,
			body: `<h1>Go Tips - Tricks And More Things</h1>`,
			want: "Go Tips - Tricks And More Things",
		},
		{
			name: "drops prefix before colon",
			head: `<title>Site Name: The Real Article Title Here</title>`,
			want: "The Real Article Title Here",
		},
		{
			name: "keeps colon title matching a heading",
			head: `<title>Go: The Complete Guide To Everything</title>`,
			body: `<h1>Go: The Complete Guide To Everything</h1>`,
			want: "Go: The Complete Guide To Everything",
		},
		{
			name: "uses lone h1 when title is very short",
			head: `<title>Hi</title>`,
			body: `<h1>Actual Heading Of The Page</h1>`,
			want: "Actual Heading Of The Page",
		},
		{
			name: "normalizes whitespace",
			head: "<title>  Spaced \n  Out   Title With Many Words  </title>",
			want: "Spaced Out Title With Many Words",
		},
		{
			name: "empty without title",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := parseDoc(t, "<html><head>"+tt.head+"</head><body>"+tt.body+"</body></html>")
			assert.Equal(t, tt.want, articleTitle(doc))
		})
	}
}

func TestArticleTitle_DoesNotModifyDocument(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><head><title>Site | Go Tips - Tricks And More Things</title></head><body><h1>Go Tips - Tricks And More Things</h1></body></html>`)
	before := outerHTML(doc)

	first := articleTitle(doc)
	second := articleTitle(doc)

	assert.Equal(t, first, second)
	assert.Equal(t, before, outerHTML(doc))
}

func TestExtractJSONLD(t *testing.T) {
	t.Parallel()

	t.Run("reads article fields", func(t *testing.T) {
		t.Parallel()
		doc := parseDoc(t, `<html><head><script type="application/ld+json">{
			"@context": "https://schema.org",
			"@type": "NewsArticle",
			"headline": "Rivers Rise After Storm",
			"author": [{"name": "Ana Silva"}, {"name": "Ben Okafor"}],
			"description": "Flooding expected downstream.",
			"publisher": {"name": "Daily Planet"},
			"datePublished": "2024-03-01T10:00:00Z"
		}</script></head><body></body></html>`)

		md := extractJSONLD(doc)

		assert.Equal(t, "Rivers Rise After Storm", md.Title)
		assert.Equal(t, "Ana Silva, Ben Okafor", md.Byline)
		assert.Equal(t, "Flooding expected downstream.", md.Excerpt)
		assert.Equal(t, "Daily Planet", md.SiteName)
		assert.Equal(t, "2024-03-01T10:00:00Z", md.PublishedTime)
	})

	t.Run("finds article inside graph", func(t *testing.T) {
		t.Parallel()
		doc := parseDoc(t, `<html><head><script type="application/ld+json">{
			"@context": "http://schema.org",
			"@graph": [
				{"@type": "WebSite", "name": "Example"},
				{"@type": "BlogPosting", "name": "Graph Post", "author": {"name": "Kim"}}
			]
		}</script></head><body></body></html>`)

		md := extractJSONLD(doc)

		assert.Equal(t, "Graph Post", md.Title)
		assert.Equal(t, "Kim", md.Byline)
	})

	t.Run("prefers headline matching the document title", func(t *testing.T) {
		t.Parallel()
		doc := parseDoc(t, `<html><head><title>Quarterly Results Beat Expectations</title><script type="application/ld+json">{
			"@context": "https://schema.org",
			"@type": "Article",
			"name": "Example Corp Newsroom",
			"headline": "Quarterly Results Beat Expectations"
		}</script></head><body></body></html>`)

		md := extractJSONLD(doc)

		assert.Equal(t, "Quarterly Results Beat Expectations", md.Title)
	})

	t.Run("skips malformed script and uses next valid one", func(t *testing.T) {
		t.Parallel()
		doc := parseDoc(t, `<html><head>
			<script type="application/ld+json">{not json</script>
			<script type="application/ld+json">{"@context":"https://schema.org","@type":"Article","name":"Second"}</script>
		</head><body></body></html>`)

		md := extractJSONLD(doc)

		assert.Equal(t, "Second", md.Title)
	})

	t.Run("ignores non article types and foreign contexts", func(t *testing.T) {
		t.Parallel()
		doc := parseDoc(t, `<html><head>
			<script type="application/ld+json">{"@context":"https://schema.org","@type":"Organization","name":"Org"}</script>
			<script type="application/ld+json">{"@context":"https://example.com","@type":"Article","name":"Foreign"}</script>
		</head><body></body></html>`)

		md := extractJSONLD(doc)

		assert.Empty(t, md.Title)
	})

	t.Run("strips CDATA wrapper", func(t *testing.T) {
		t.Parallel()
		doc := parseDoc(t, `<html><head><script type="application/ld+json"><![CDATA[{"@context":"https://schema.org","@type":"Article","name":"Wrapped"}]]></script></head><body></body></html>`)

		md := extractJSONLD(doc)

		assert.Equal(t, "Wrapped", md.Title)
	})
}

func TestExtractMetadata(t *testing.T) {
	t.Parallel()

	t.Run("reads meta tags in priority order", func(t *testing.T) {
		t.Parallel()
		doc := parseDoc(t, `<html><head>
			<title>Fallback Title For This Page</title>
			<meta name="twitter:title" content="Twitter Title">
			<meta property="og:title" content="OG Title">
			<meta name="author" content="Sam Writer">
			<meta property="og:description" content="OG description &amp; more">
			<meta name="description" content="Plain description">
			<meta property="og:site_name" content="Example News">
			<meta property="article:published_time" content="2024-01-02">
		</head><body></body></html>`)

		md := extractMetadata(doc, extractJSONLD(doc))

		assert.Equal(t, "OG Title", md.Title)
		assert.Equal(t, "Sam Writer", md.Byline)
		assert.Equal(t, "OG description & more", md.Excerpt)
		assert.Equal(t, "Example News", md.SiteName)
		assert.Equal(t, "2024-01-02", md.PublishedTime)
	})

	t.Run("JSON-LD wins over meta tags", func(t *testing.T) {
		t.Parallel()
		doc := parseDoc(t, `<html><head>
			<meta property="og:title" content="OG Title">
			<script type="application/ld+json">{"@context":"https://schema.org","@type":"Article","name":"LD Title"}</script>
		</head><body></body></html>`)

		md := extractMetadata(doc, extractJSONLD(doc))

		assert.Equal(t, "LD Title", md.Title)
	})

	t.Run("falls back to document title", func(t *testing.T) {
		t.Parallel()
		doc := parseDoc(t, `<html><head><title>An Interesting Article About Go Parsing | Example Site</title></head><body></body></html>`)

		md := extractMetadata(doc, extractJSONLD(doc))

		assert.Equal(t, "An Interesting Article About Go Parsing", md.Title)
	})

	t.Run("ignores article author links", func(t *testing.T) {
		t.Parallel()
		doc := parseDoc(t, `<html><head><meta property="article:author" content="https://example.com/staff/sam"></head><body></body></html>`)

		md := extractMetadata(doc, extractJSONLD(doc))

		assert.Empty(t, md.Byline)
	})
}
