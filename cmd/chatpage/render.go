package main

import (
	"encoding/json"
	"strings"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

// Output formats.
const (
	FormatHTML     = "html"
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatPrompt   = "prompt"
)

var validFormats = map[string]bool{
	FormatHTML:     true,
	FormatText:     true,
	FormatMarkdown: true,
	FormatJSON:     true,
	FormatPrompt:   true,
}

// render formats article for stdout. compact selects single-line JSON so
// that several articles form a JSON Lines stream.
func render(deps *Dependencies, article *chatpage.Article, format string, compact bool) (string, error) {
	var out string
	switch format {
	case FormatHTML:
		out = article.Content
	case FormatText:
		out = article.TextContent
	case FormatMarkdown:
		md, err := markdown(deps, article)
		if err != nil {
			return "", err
		}
		out = md
	case FormatJSON:
		var data []byte
		var err error
		if compact {
			data, err = json.Marshal(article)
		} else {
			data, err = json.MarshalIndent(article, "", "  ")
		}
		if err != nil {
			return "", err
		}
		out = string(data)
	case FormatPrompt:
		var refs []chatpage.Reference
		if article.Node != nil {
			refs = deps.References.References(article.Node)
		}
		out = chatpage.FormatPrompt(article, refs)
	default:
		return "", chatpage.Errorf(chatpage.EINVALID, "unknown format %q", format)
	}

	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

// markdown converts the article body and puts its title on top.
func markdown(deps *Dependencies, article *chatpage.Article) (string, error) {
	md, err := deps.Converter.Convert(article.Content)
	if err != nil {
		return "", err
	}
	if article.Title == "" {
		return md, nil
	}
	return "# " + article.Title + "\n\n" + md, nil
}
