// Package bloom provides a memory-bounded visited set using Bloom filters.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/wordcrawl"
)

// Default sizing used by the CLI.
const (
	DefaultExpectedURLs      = 100_000
	DefaultFalsePositiveRate = 0.001
)

// Compile-time interface verification.
var _ wordcrawl.VisitedSet = (*VisitedSet)(nil)

// VisitedSet records visited URLs in a Bloom filter.
//
// Memory stays fixed regardless of crawl size. A false positive makes the
// crawler treat a never-visited URL as visited and skip it; a URL is never
// visited twice.
type VisitedSet struct {
	f     *bloom.BloomFilter
	count int
}

// NewVisitedSet creates a set sized for n expected URLs with the given
// false positive rate.
func NewVisitedSet(n uint, fpRate float64) *VisitedSet {
	return &VisitedSet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Visit marks url as visited. Returns false if it might already be.
func (s *VisitedSet) Visit(url string) bool {
	if s.f.TestOrAddString(url) {
		return false
	}
	s.count++
	return true
}

// Seen returns true if url might have been visited.
// False positives are possible; false negatives are not.
func (s *VisitedSet) Seen(url string) bool {
	return s.f.TestString(url)
}

// Len returns the number of URLs accepted by Visit.
func (s *VisitedSet) Len() int {
	return s.count
}
