// Package trafilatura implements wordcrawl.Extractor with go-trafilatura.
// Only the main content of a page is counted. Links are taken from the
// whole page.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/wordcrawl"
	"github.com/fwojciec/wordcrawl/goquery"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements wordcrawl.Extractor at compile time.
var _ wordcrawl.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content text.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content text of rawHTML and every anchor target
// on the page.
func (e *Extractor) Extract(rawHTML string) (*wordcrawl.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, wordcrawl.Errorf(wordcrawl.EEXTRACT, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, wordcrawl.Errorf(wordcrawl.EEXTRACT, "trafilatura: %v", err)
	}

	links, err := goquery.ExtractLinks(rawHTML)
	if err != nil {
		return nil, err
	}

	return &wordcrawl.ExtractResult{
		Title: result.Metadata.Title,
		Text:  goquery.NodeText(result.ContentNode),
		Links: links,
	}, nil
}
