package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

// Ensure Converter implements chatpage.Converter at compile time.
var _ chatpage.Converter = (*Converter)(nil)

// Option configures a Converter.
type Option func(*Converter)

// WithDomain resolves relative links and images against domain.
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.domain = domain
	}
}

// Converter wraps html-to-markdown to convert article HTML to Markdown.
type Converter struct {
	conv   *converter.Converter
	domain string
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", chatpage.Errorf(chatpage.EINVALID, "empty HTML input")
	}

	var result string
	var err error
	if c.domain != "" {
		result, err = c.conv.ConvertString(html, converter.WithDomain(c.domain))
	} else {
		result, err = c.conv.ConvertString(html)
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}

// ConvertNode transforms an already parsed subtree, such as Article.Node,
// without re-serializing it first.
func (c *Converter) ConvertNode(n *html.Node) (string, error) {
	if n == nil {
		return "", chatpage.Errorf(chatpage.EINVALID, "nil HTML node")
	}

	var result []byte
	var err error
	if c.domain != "" {
		result, err = c.conv.ConvertNode(n, converter.WithDomain(c.domain))
	} else {
		result, err = c.conv.ConvertNode(n)
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(result)), nil
}
