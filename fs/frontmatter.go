package fs

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

// FrontMatter is the YAML header written above each stored page.
type FrontMatter struct {
	Source    string `yaml:"source"`
	Title     string `yaml:"title,omitempty"`
	Byline    string `yaml:"byline,omitempty"`
	Site      string `yaml:"site,omitempty"`
	Published string `yaml:"published,omitempty"`
	Lang      string `yaml:"lang,omitempty"`
	Length    int    `yaml:"length,omitempty"`
	Hash      string `yaml:"hash"`
}

// NewFrontMatter collects the front matter for page. Hash is the xxhash
// digest of the Markdown body, so unchanged articles hash identically.
func NewFrontMatter(page *chatpage.Page) FrontMatter {
	fm := FrontMatter{
		Source: page.Source,
		Hash:   ContentHash(page.Content),
	}
	if a := page.Article; a != nil {
		fm.Title = a.Title
		fm.Byline = a.Byline
		fm.Site = a.SiteName
		fm.Published = a.PublishedTime
		fm.Lang = a.Lang
		fm.Length = a.Length
	}
	return fm
}

// ContentHash returns the hex xxhash digest of content.
func ContentHash(content string) string {
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}

// FormatPage renders page as YAML front matter followed by its Markdown.
func FormatPage(page *chatpage.Page) (string, error) {
	header, err := yaml.Marshal(NewFrontMatter(page))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(page.Content)
	if !strings.HasSuffix(page.Content, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}

// ParsePage splits a stored page back into its front matter and body.
func ParsePage(data string) (FrontMatter, string, error) {
	var fm FrontMatter
	rest, ok := strings.CutPrefix(data, "---\n")
	if !ok {
		return fm, "", chatpage.Errorf(chatpage.EINVALID, "missing front matter")
	}
	header, body, ok := strings.Cut(rest, "\n---\n")
	if !ok {
		return fm, "", chatpage.Errorf(chatpage.EINVALID, "unterminated front matter")
	}
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return fm, "", chatpage.Errorf(chatpage.EINVALID, "invalid front matter: %v", err)
	}
	return fm, strings.TrimPrefix(body, "\n"), nil
}
