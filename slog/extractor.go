package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/wordcrawl"
)

// Ensure LoggingExtractor implements wordcrawl.Extractor.
var _ wordcrawl.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   wordcrawl.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next wordcrawl.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs the size of the extracted text and link list.
func (e *LoggingExtractor) Extract(html string) (result *wordcrawl.ExtractResult, err error) {
	defer func(begin time.Time) {
		var words, links int
		var title string
		if result != nil {
			words = len(wordcrawl.Tokenize(result.Text))
			links = len(result.Links)
			title = result.Title
		}
		e.logger.Info("extract",
			"title", title,
			"words", words,
			"links", links,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
