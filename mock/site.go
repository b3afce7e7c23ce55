package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/wordcrawl"
)

// Page is a canned page served by Site.
type Page struct {
	Text  string
	Links []string
}

// Site is an in-memory web used to drive crawls in tests.
// Its Fetcher returns the URL itself as the "HTML" and its Extractor looks
// the page up by that URL, so no parsing is involved.
type Site struct {
	Pages map[string]Page

	// Fail lists URLs whose fetch returns an error.
	Fail map[string]error

	mu      sync.Mutex
	fetches []string
}

// Fetcher returns a Fetcher that serves the site's pages.
func (s *Site) Fetcher() *Fetcher {
	return &Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			s.mu.Lock()
			s.fetches = append(s.fetches, url)
			s.mu.Unlock()

			if err, ok := s.Fail[url]; ok {
				return "", err
			}
			if _, ok := s.Pages[url]; !ok {
				return "", fmt.Errorf("HTTP 404 for %s", url)
			}
			return url, nil
		},
		CloseFn: func() error { return nil },
	}
}

// Extractor returns an Extractor that resolves the site's pages.
func (s *Site) Extractor() *Extractor {
	return &Extractor{
		ExtractFn: func(html string) (*wordcrawl.ExtractResult, error) {
			page := s.Pages[html]
			return &wordcrawl.ExtractResult{Text: page.Text, Links: page.Links}, nil
		},
	}
}

// Fetches returns every URL fetched so far, in order.
func (s *Site) Fetches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.fetches...)
}
