// Package fs stores extracted articles as Markdown files with YAML front
// matter.
package fs

import (
	"net/url"
	"path/filepath"
	"strings"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

// URLToPath converts an article URL to a relative file path.
// Example: https://example.com/news/2024/storm → news/2024/storm.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", chatpage.Errorf(chatpage.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	path := u.Path

	// Handle root or trailing slash → index.md
	if path == "" || path == "/" {
		return "index.md", nil
	}

	path = strings.TrimPrefix(path, "/")
	if strings.HasSuffix(path, "/") {
		path += "index"
	}
	switch ext := filepath.Ext(path); ext {
	case ".html", ".htm":
		path = strings.TrimSuffix(path, ext)
	}
	path += ".md"

	if !filepath.IsLocal(filepath.FromSlash(path)) {
		return "", chatpage.Errorf(chatpage.EINVALID, "path traversal in %q", rawURL)
	}
	return filepath.FromSlash(path), nil
}

// PagePath returns where a page read from source is stored, relative to
// the store root. URLs keep their path structure; local files and stdin
// are named after their base name.
func PagePath(source string) (string, error) {
	switch {
	case source == "" || source == "-":
		return "stdin.md", nil
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return URLToPath(source)
	}
	name := filepath.Base(source)
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".md", nil
}
