package mock

import "github.com/fwojciec/wordcrawl"

var _ wordcrawl.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of wordcrawl.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*wordcrawl.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*wordcrawl.ExtractResult, error) {
	return e.ExtractFn(html)
}
