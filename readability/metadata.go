package readability

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	nethtml "golang.org/x/net/html"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

// extractJSONLD reads article metadata from the first schema.org JSON-LD
// script describing an article. Malformed scripts are skipped.
func extractJSONLD(doc *nethtml.Node) chatpage.Metadata {
	var md chatpage.Metadata
	goquery.NewDocumentFromNode(doc).Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if t, _ := s.Attr("type"); strings.TrimSpace(t) != "application/ld+json" {
			return true
		}
		found, ok := parseJSONLD(doc, s.Text())
		if !ok {
			return true
		}
		md = found
		return false
	})
	return md
}

func parseJSONLD(doc *nethtml.Node, script string) (chatpage.Metadata, bool) {
	var md chatpage.Metadata

	var parsed any
	if err := json.Unmarshal([]byte(rxCDATA.ReplaceAllString(script, "")), &parsed); err != nil {
		return md, false
	}

	var obj map[string]any
	switch v := parsed.(type) {
	case []any:
		obj = findArticleObject(v)
	case map[string]any:
		obj = v
	}
	if obj == nil || !isSchemaOrgContext(obj["@context"]) {
		return md, false
	}
	if _, ok := obj["@type"]; !ok {
		if graph, ok := obj["@graph"].([]any); ok {
			obj = findArticleObject(graph)
		}
	}
	if obj == nil || !isArticleType(obj["@type"]) {
		return md, false
	}

	name, hasName := obj["name"].(string)
	headline, hasHeadline := obj["headline"].(string)
	switch {
	case hasName && hasHeadline && name != headline:
		// Some sites put the site name in "name" and the article title in
		// "headline"; prefer whichever resembles the document title.
		title := articleTitle(doc)
		nameMatches := textSimilarity(name, title) > 0.75
		headlineMatches := textSimilarity(headline, title) > 0.75
		if headlineMatches && !nameMatches {
			md.Title = headline
		} else {
			md.Title = name
		}
	case hasName:
		md.Title = name
	case hasHeadline:
		md.Title = headline
	}
	md.Title = strings.TrimSpace(md.Title)

	switch author := obj["author"].(type) {
	case map[string]any:
		if name, ok := author["name"].(string); ok {
			md.Byline = strings.TrimSpace(name)
		}
	case []any:
		var names []string
		for _, a := range author {
			if m, ok := a.(map[string]any); ok {
				if name, ok := m["name"].(string); ok {
					names = append(names, strings.TrimSpace(name))
				}
			}
		}
		md.Byline = strings.Join(names, ", ")
	}

	if description, ok := obj["description"].(string); ok {
		md.Excerpt = strings.TrimSpace(description)
	}
	if publisher, ok := obj["publisher"].(map[string]any); ok {
		if name, ok := publisher["name"].(string); ok {
			md.SiteName = strings.TrimSpace(name)
		}
	}
	if published, ok := obj["datePublished"].(string); ok {
		md.PublishedTime = strings.TrimSpace(published)
	}
	return md, true
}

func findArticleObject(items []any) map[string]any {
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok && isArticleType(obj["@type"]) {
			return obj
		}
	}
	return nil
}

func isSchemaOrgContext(v any) bool {
	switch ctx := v.(type) {
	case string:
		return rxSchemaOrg.MatchString(ctx)
	case map[string]any:
		vocab, ok := ctx["@vocab"].(string)
		return ok && rxSchemaOrg.MatchString(vocab)
	}
	return false
}

func isArticleType(v any) bool {
	switch t := v.(type) {
	case string:
		return rxJSONLDArticleTypes.MatchString(t)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && rxJSONLDArticleTypes.MatchString(s) {
				return true
			}
		}
	}
	return false
}

// extractMetadata merges JSON-LD values with <meta> tags. JSON-LD wins over
// every tag and the document title is the last resort for the title.
func extractMetadata(doc *nethtml.Node, jsonLD chatpage.Metadata) chatpage.Metadata {
	values := make(map[string]string)
	goquery.NewDocumentFromNode(doc).Find("meta").Each(func(_ int, s *goquery.Selection) {
		content, _ := s.Attr("content")
		if content == "" {
			return
		}
		content = strings.TrimSpace(content)

		matched := false
		if property, ok := s.Attr("property"); ok {
			for _, m := range rxMetaProperty.FindAllString(property, -1) {
				matched = true
				key := strings.ToLower(rxWhitespace.ReplaceAllString(m, ""))
				values[key] = content
			}
		}
		if name, ok := s.Attr("name"); ok && !matched && rxMetaName.MatchString(name) {
			key := strings.ToLower(rxWhitespace.ReplaceAllString(name, ""))
			values[strings.ReplaceAll(key, ".", ":")] = content
		}
	})

	md := chatpage.Metadata{
		Title: firstNonEmpty(jsonLD.Title,
			values["dc:title"], values["dcterm:title"], values["og:title"],
			values["weibo:article:title"], values["weibo:webpage:title"],
			values["title"], values["twitter:title"], values["parsely-title"]),
		Byline: firstNonEmpty(jsonLD.Byline,
			values["dc:creator"], values["dcterm:creator"], values["author"],
			values["parsely-author"], nonURL(values["article:author"])),
		Excerpt: firstNonEmpty(jsonLD.Excerpt,
			values["dc:description"], values["dcterm:description"], values["og:description"],
			values["weibo:article:description"], values["weibo:webpage:description"],
			values["description"], values["twitter:description"]),
		SiteName:      firstNonEmpty(jsonLD.SiteName, values["og:site_name"]),
		PublishedTime: firstNonEmpty(jsonLD.PublishedTime, values["article:published_time"], values["parsely-pub-date"]),
	}
	if md.Title == "" {
		md.Title = articleTitle(doc)
	}

	md.Title = html.UnescapeString(md.Title)
	md.Byline = html.UnescapeString(md.Byline)
	md.Excerpt = html.UnescapeString(md.Excerpt)
	md.SiteName = html.UnescapeString(md.SiteName)
	md.PublishedTime = html.UnescapeString(md.PublishedTime)
	return md
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// nonURL drops author values that are profile links rather than names.
func nonURL(s string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return ""
	}
	return s
}
