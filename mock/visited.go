package mock

import "github.com/fwojciec/wordcrawl"

var _ wordcrawl.VisitedSet = (*VisitedSet)(nil)

// VisitedSet is a mock implementation of wordcrawl.VisitedSet.
type VisitedSet struct {
	VisitFn func(url string) bool
	SeenFn  func(url string) bool
	LenFn   func() int
}

func (s *VisitedSet) Visit(url string) bool {
	return s.VisitFn(url)
}

func (s *VisitedSet) Seen(url string) bool {
	return s.SeenFn(url)
}

func (s *VisitedSet) Len() int {
	return s.LenFn()
}
