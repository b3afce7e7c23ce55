package crawl

import "github.com/fwojciec/wordcrawl"

// Compile-time interface verification.
var _ wordcrawl.VisitedSet = (*VisitedSet)(nil)

// VisitedSet is an exact in-memory set of URLs.
// URLs are compared as raw strings; no normalization is applied.
type VisitedSet struct {
	urls map[string]struct{}
}

// NewVisitedSet creates an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{urls: make(map[string]struct{})}
}

// Visit marks url as visited. Returns false if it already was.
func (s *VisitedSet) Visit(url string) bool {
	if _, ok := s.urls[url]; ok {
		return false
	}
	s.urls[url] = struct{}{}
	return true
}

// Seen returns true if url has been visited.
func (s *VisitedSet) Seen(url string) bool {
	_, ok := s.urls[url]
	return ok
}

// Len returns the number of visited URLs.
func (s *VisitedSet) Len() int {
	return len(s.urls)
}
