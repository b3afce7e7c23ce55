package wordcrawl

// ExtractResult holds what the crawler needs from a single page.
type ExtractResult struct {
	// Title is the page title, if any.
	Title string

	// Text is the visible text of the page. Text from adjacent elements
	// is separated by whitespace so words never run together.
	Text string

	// Links holds the raw href targets of anchor elements in document order.
	// Targets may be relative, fragments, or use non-HTTP schemes;
	// filtering is the caller's job.
	Links []string
}

// Extractor turns raw HTML into visible text and outbound links.
type Extractor interface {
	// Extract parses html and returns its text and anchor targets.
	Extract(html string) (*ExtractResult, error)
}
