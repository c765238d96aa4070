package slog

import (
	"log/slog"
	"time"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

// Ensure LoggingExtractor implements chatpage.Extractor.
var _ chatpage.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   chatpage.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next chatpage.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs input size, the extracted title and text length.
func (e *LoggingExtractor) Extract(rawHTML, pageURL string) (article *chatpage.Article, err error) {
	defer func(begin time.Time) {
		var title string
		var length int
		if article != nil {
			title, length = article.Title, article.Length
		}
		e.logger.Info("extract",
			"url", pageURL,
			"bytes", len(rawHTML),
			"title", title,
			"length", length,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(rawHTML, pageURL)
}
