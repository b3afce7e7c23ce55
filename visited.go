package wordcrawl

// VisitedSet tracks the URLs already fetched during one crawl.
// Implementations need not be safe for concurrent use; a crawl owns its
// set exclusively.
type VisitedSet interface {
	// Visit marks url as visited.
	// Returns false if url had already been visited.
	Visit(url string) bool

	// Seen returns true if url has been visited.
	Seen(url string) bool

	// Len returns the number of visited URLs.
	Len() int
}
