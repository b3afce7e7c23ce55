// Package readability implements wordcrawl.Extractor with go-readability.
// Only the main article text is counted; navigation, sidebars and footers
// are dropped. Links are still taken from the whole page.
package readability

import (
	"strings"

	"github.com/fwojciec/wordcrawl"
	"github.com/fwojciec/wordcrawl/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements wordcrawl.Extractor at compile time.
var _ wordcrawl.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the article text of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article text of rawHTML and every anchor target on
// the page.
func (e *Extractor) Extract(rawHTML string) (*wordcrawl.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, wordcrawl.Errorf(wordcrawl.EEXTRACT, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, wordcrawl.Errorf(wordcrawl.EEXTRACT, "readability: %v", err)
	}

	links, err := goquery.ExtractLinks(rawHTML)
	if err != nil {
		return nil, err
	}

	return &wordcrawl.ExtractResult{
		Title: article.Title,
		Text:  article.TextContent,
		Links: links,
	}, nil
}
