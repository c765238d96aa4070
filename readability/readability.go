// Package readability extracts the primary readable content of an HTML
// document.
//
// Parsing mutates the tree it is given: the document is cleaned, scored,
// and the winning content subtree is moved out of it. Callers that need the
// original tree must pass a copy. A Parser holds only immutable options and
// may be shared between goroutines as long as each call receives its own
// document.
package readability

import (
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

// Default option values.
const (
	DefaultNbTopCandidates = 5
	DefaultCharThreshold   = 500
)

// DefaultClassesToPreserve lists the classes kept on content elements when
// class stripping is enabled. Options.ClassesToPreserve extends it.
var DefaultClassesToPreserve = []string{"page"}

// Serializer renders the content subtree into Article.Content.
type Serializer func(content *html.Node) string

// Options configures a Parser. Zero values select the defaults.
type Options struct {
	// MaxElemsToParse aborts parsing with ETOOLARGE when the document has
	// more elements. Zero disables the limit.
	MaxElemsToParse int

	// NbTopCandidates is how many top scored candidates are tracked.
	NbTopCandidates int

	// CharThreshold is the minimum text length an extraction attempt must
	// reach before the heuristics stop being relaxed.
	CharThreshold int

	// ClassesToPreserve are kept in addition to DefaultClassesToPreserve.
	ClassesToPreserve []string

	// KeepClasses disables class stripping altogether.
	KeepClasses bool

	// DisableJSONLD skips reading metadata from JSON-LD scripts.
	DisableJSONLD bool

	// AllowedVideoRegex matches embed and iframe attributes that must survive
	// cleaning. It defaults to a list of well known video hosts.
	AllowedVideoRegex *regexp.Regexp

	// LinkDensityModifier shifts the link density limits used by conditional
	// cleaning. Positive values keep more link heavy content.
	LinkDensityModifier float64

	// Serializer renders the content node. The default renders inner HTML.
	Serializer Serializer

	// Logger receives debug events for each extraction attempt.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.NbTopCandidates <= 0 {
		o.NbTopCandidates = DefaultNbTopCandidates
	}
	if o.CharThreshold <= 0 {
		o.CharThreshold = DefaultCharThreshold
	}
	if o.AllowedVideoRegex == nil {
		o.AllowedVideoRegex = rxVideos
	}
	if o.Serializer == nil {
		o.Serializer = innerHTML
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	preserve := append([]string(nil), DefaultClassesToPreserve...)
	o.ClassesToPreserve = append(preserve, o.ClassesToPreserve...)
	return o
}

// Parser extracts articles from parsed HTML documents.
type Parser struct {
	opts Options
}

// New returns a Parser with the given options.
func New(opts Options) *Parser {
	return &Parser{opts: opts.withDefaults()}
}

// FromReader parses HTML from r and extracts its article.
// It returns a nil article and a nil error when the page has no content.
func FromReader(r io.Reader, pageURL *url.URL, opts Options) (*chatpage.Article, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, chatpage.Errorf(chatpage.EINVALID, "failed to parse HTML: %v", err)
	}
	return New(opts).Parse(doc, pageURL)
}

// FromHTML is FromReader for a string of markup.
func FromHTML(rawHTML string, pageURL *url.URL, opts Options) (*chatpage.Article, error) {
	return FromReader(strings.NewReader(rawHTML), pageURL, opts)
}

// Parse extracts the article from doc, mutating it in the process.
// pageURL resolves relative links and may be nil, in which case links are
// left as they are. It returns a nil article and a nil error when no
// content could be found.
func (p *Parser) Parse(doc *html.Node, pageURL *url.URL) (*chatpage.Article, error) {
	if doc == nil {
		return nil, chatpage.Errorf(chatpage.EINVALID, "nil document")
	}
	if p.opts.MaxElemsToParse > 0 {
		if n := len(querySelectorAll(doc, "*")); n > p.opts.MaxElemsToParse {
			return nil, chatpage.Errorf(chatpage.ETOOLARGE, "aborting parsing document; %d elements found", n)
		}
	}

	pc := &parseContext{opts: p.opts, doc: doc, pageURL: pageURL}

	unwrapNoscriptImages(doc)
	var jsonLD chatpage.Metadata
	if !p.opts.DisableJSONLD {
		jsonLD = extractJSONLD(doc)
	}
	removeScripts(doc)
	prepDocument(doc)

	pc.metadata = extractMetadata(doc, jsonLD)
	pc.articleTitle = pc.metadata.Title

	content := pc.grabArticle()
	if content == nil {
		return nil, nil
	}

	pc.postProcessContent(content)

	excerpt := pc.metadata.Excerpt
	if excerpt == "" {
		if paragraphs := getAllNodesWithTag(content, "p"); len(paragraphs) > 0 {
			excerpt = strings.TrimSpace(textContent(paragraphs[0]))
		}
	}

	byline := pc.metadata.Byline
	if byline == "" {
		byline = pc.articleByline
	}

	text := textContent(content)
	return &chatpage.Article{
		Title:         pc.articleTitle,
		Byline:        byline,
		Dir:           pc.articleDir,
		Lang:          pc.articleLang,
		Content:       p.opts.Serializer(content),
		TextContent:   text,
		Length:        charCount(text),
		Excerpt:       excerpt,
		SiteName:      pc.metadata.SiteName,
		PublishedTime: pc.metadata.PublishedTime,
		Node:          content,
	}, nil
}

// parseContext holds the state of a single Parse call. Nothing in it is
// shared with other calls.
type parseContext struct {
	opts    Options
	doc     *html.Node
	pageURL *url.URL

	metadata      chatpage.Metadata
	articleTitle  string
	articleByline string
	articleDir    string
	articleLang   string

	// titleHeaderRemoved latches once a heading duplicating the title has
	// been dropped, so later attempts keep it.
	titleHeaderRemoved bool
}
