package readability

import (
	"regexp"
	"strings"
)

// Word lists behind the class/id heuristics. They are kept as data so that
// locale-specific vocabularies can be extended without touching the scoring
// code.
var (
	unlikelyCandidateWords = []string{
		"-ad-", "ai2html", "banner", "breadcrumbs", "combx", "comment", "community",
		"cover-wrap", "disqus", "extra", "footer", "gdpr", "header", "legends", "menu",
		"related", "remark", "replies", "rss", "shoutbox", "sidebar", "skyscraper",
		"social", "sponsor", "supplemental", "ad-break", "agegate", "pagination",
		"pager", "popup", "yom-remote",
	}
	maybeCandidateWords = []string{
		"and", "article", "body", "column", "content", "main", "mathjax", "shadow",
	}
	positiveWords = []string{
		"article", "body", "content", "entry", "hentry", "h-entry", "main", "page",
		"pagination", "post", "text", "blog", "story",
	}
	negativeWords = []string{
		"-ad-", "hidden", "^hid$", " hid$", " hid ", "^hid ", "banner", "combx",
		"comment", "com-", "contact", "footer", "gdpr", "masthead", "media", "meta",
		"outbrain", "promo", "related", "scroll", "share", "shoutbox", "sidebar",
		"skyscraper", "sponsor", "shopping", "tags", "widget",
	}
	bylineWords = []string{"byline", "author", "dateline", "writtenby", "p-author"}

	// adWords and loadingWords match whole-element placeholder text in
	// several languages.
	adWords = []string{
		"ad(vertising|vertisement)?", "pub(licité)?", "werb(ung)?", "广告",
		"Реклама", "Anuncio",
	}
	loadingWords = []string{
		"(loading|正在加载|Загрузка|chargement|cargando)(…|\\.\\.\\.)?",
	}
)

var (
	rxUnlikelyCandidates   = wordsRegexp(unlikelyCandidateWords)
	rxOkMaybeItsACandidate = wordsRegexp(maybeCandidateWords)
	rxPositive             = wordsRegexp(positiveWords)
	rxNegative             = wordsRegexp(negativeWords)
	rxByline               = wordsRegexp(bylineWords)
	rxAdWords              = regexp.MustCompile(`(?i)^\s*(` + strings.Join(adWords, "|") + `)\s*$`)
	rxLoadingWords         = regexp.MustCompile(`(?i)^\s*(` + strings.Join(loadingWords, "|") + `)\s*$`)

	rxNormalize        = regexp.MustCompile(`(?:\s|\p{Z}){2,}`)
	rxWhitespace       = regexp.MustCompile(`\s+`)
	rxTokenize         = regexp.MustCompile(`\W+`)
	rxCommas           = regexp.MustCompile(`[\x{002C}\x{060C}\x{FE50}\x{FE10}\x{FE11}\x{2E41}\x{2E34}\x{2E32}\x{FF0C}]`)
	rxVideos           = regexp.MustCompile(`(?i)//(www\.)?((dailymotion|youtube|youtube-nocookie|player\.vimeo|v\.qq|bilibili|live\.bilibili)\.com|(archive|upload\.wikimedia)\.org|player\.twitch\.tv)`)
	rxShareElements    = regexp.MustCompile(`(?i)(\b|_)(share|sharedaddy)(\b|_)`)
	rxSentenceEnd      = regexp.MustCompile(`\.( |$)`)
	rxHashURL          = regexp.MustCompile(`^#.+`)
	rxSrcsetURL        = regexp.MustCompile(`(\S+)(\s+[\d.]+[xw])?(\s*(?:,|$))`)
	rxB64DataURL       = regexp.MustCompile(`(?i)^data:\s*([^\s;,]+)\s*;\s*base64\s*,`)
	rxBase64           = regexp.MustCompile(`(?i)base64\s*`)
	rxImageExtension   = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp)`)
	rxLazySrcset       = regexp.MustCompile(`\.(jpg|jpeg|png|webp)\s+\d`)
	rxLazySrc          = regexp.MustCompile(`^\s*\S+\.(jpg|jpeg|png|webp)\S*\s*$`)
	rxDisplayNone      = regexp.MustCompile(`(?i)(^|;)\s*display\s*:\s*none`)
	rxVisibilityHidden = regexp.MustCompile(`(?i)(^|;)\s*visibility\s*:\s*hidden`)

	rxTitleSeparator         = regexp.MustCompile(` [\|\-–—\\/>»] `)
	rxHierarchicalSeparator  = regexp.MustCompile(` [\\/>»] `)
	rxTitleSeparatorStripped = regexp.MustCompile(`[\|\-–—\\/>»]+`)

	rxJSONLDArticleTypes = regexp.MustCompile(`^(Article|AdvertiserContentArticle|NewsArticle|AnalysisNewsArticle|AskPublicNewsArticle|BackgroundNewsArticle|OpinionNewsArticle|ReportageNewsArticle|ReviewNewsArticle|Report|SatiricalArticle|ScholarlyArticle|MedicalScholarlyArticle|SocialMediaPosting|BlogPosting|LiveBlogPosting|DiscussionForumPosting|TechArticle|APIReference)$`)
	rxCDATA              = regexp.MustCompile(`^\s*<!\[CDATA\[|\]\]>\s*$`)
	rxSchemaOrg          = regexp.MustCompile(`^https?://schema\.org/?$`)

	rxMetaProperty = regexp.MustCompile(`(?i)\s*(article|dc|dcterm|og|twitter)\s*:\s*(author|creator|description|published_time|title|site_name)\s*`)
	rxMetaName     = regexp.MustCompile(`(?i)^\s*(?:(dc|dcterm|og|twitter|parsely|weibo:(article|webpage))\s*[-\.:]\s*)?(author|creator|pub-date|description|title|site_name)\s*$`)
)

// wordsRegexp compiles a case-insensitive alternation of the given fragments.
func wordsRegexp(words []string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + strings.Join(words, "|"))
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[item] = true
	}
	return m
}

var (
	unlikelyRoles = set("menu", "menubar", "complementary", "navigation", "alert", "alertdialog", "dialog")

	// divToPElems are the block elements that keep a <div> from being
	// treated as a paragraph.
	divToPElems = set("blockquote", "dl", "div", "img", "ol", "p", "pre", "table", "ul")

	alterToDivExceptions = set("div", "article", "section", "p", "ol", "ul")

	presentationalAttributes = []string{
		"align", "background", "bgcolor", "border", "cellpadding", "cellspacing",
		"frame", "hspace", "rules", "style", "valign", "vspace",
	}

	deprecatedSizeAttributeElems = set("table", "th", "td", "hr", "pre")

	phrasingElems = set(
		"abbr", "audio", "b", "bdo", "br", "button", "cite", "code", "data",
		"datalist", "dfn", "em", "embed", "i", "img", "input", "kbd", "label",
		"mark", "math", "meter", "noscript", "object", "output", "progress", "q",
		"ruby", "samp", "script", "select", "small", "span", "strong", "sub",
		"sup", "textarea", "time", "var", "wbr",
	)

	tagsToScore = set("section", "h2", "h3", "h4", "h5", "h6", "p", "td", "pre")

	headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

	// textishTags are the descendants whose text counts towards the text
	// density of a conditionally cleaned element.
	textishTags = []string{"span", "li", "td", "blockquote", "dl", "div", "img", "ol", "p", "pre", "table", "ul"}
)
