package wordcrawl

// CrawlFailure records a URL whose subtree was abandoned.
type CrawlFailure struct {
	URL   string
	Depth int
	Err   error
}

// CrawlResult holds the outcome of a crawl.
type CrawlResult struct {
	Seed     string
	MaxDepth int

	// Table aggregates word counts over every page fetched successfully.
	Table FrequencyTable

	// Visited lists URLs in the order they were visited, failures included.
	Visited []string

	// Failures lists the URLs that could not be fetched or parsed.
	Failures []CrawlFailure
}

// CrawlEventType indicates the type of a crawl event.
type CrawlEventType int

const (
	EventVisiting CrawlEventType = iota
	EventVisited
	EventFailed
	EventFinished
)

// CrawlEvent reports progress during a crawl.
type CrawlEvent struct {
	Type CrawlEventType
	URL  string

	// Depth is the remaining hop budget at URL.
	Depth int

	// Words is the number of tokens counted from URL (EventVisited only).
	Words int

	Err error
}

// CrawlProgressFunc is called as the crawl proceeds.
type CrawlProgressFunc func(CrawlEvent)
