// Package crawl provides the depth-bounded word-counting crawl.
// It walks hyperlinks depth-first from a seed URL, fetching each distinct
// URL at most once and merging the words of every page into one table.
package crawl

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/wordcrawl"
)

// Crawler walks pages from a seed URL and counts their words.
// Pages are fetched one at a time; each Crawl call owns its own table and
// visited set.
type Crawler struct {
	Fetcher   wordcrawl.Fetcher
	Extractor wordcrawl.Extractor

	// NewVisitedSet creates the visited set for each crawl.
	// Defaults to an exact in-memory set.
	NewVisitedSet func() wordcrawl.VisitedSet

	// RetryDelays are the waits between fetch attempts of a single URL.
	// Nil or empty means one attempt.
	RetryDelays []time.Duration

	// Log, if set, is told about each retry.
	Log LogFunc
}

// task is one pending visit: a URL and the hops still allowed beyond it.
type task struct {
	url   string
	depth int
}

// Crawl visits seedURL and, while depth remains, the absolute http(s)
// links of each visited page in document order, depth-first.
//
// A URL that cannot be fetched or parsed is recorded as a failure and its
// subtree is skipped; the crawl itself carries on. Crawl only returns an
// error for invalid input or when ctx is canceled, in which case the
// partial result is returned alongside ctx.Err().
func (c *Crawler) Crawl(ctx context.Context, seedURL string, maxDepth int, progress wordcrawl.CrawlProgressFunc) (*wordcrawl.CrawlResult, error) {
	if !IsCrawlable(seedURL) {
		return nil, wordcrawl.Errorf(wordcrawl.EINVALID, "seed URL %q must be an absolute http or https URL", seedURL)
	}
	if maxDepth < 0 {
		return nil, wordcrawl.Errorf(wordcrawl.EINVALID, "depth must be >= 0, got %d", maxDepth)
	}
	seedURL = strings.TrimSpace(seedURL)

	visited := c.newVisitedSet()
	result := &wordcrawl.CrawlResult{
		Seed:     seedURL,
		MaxDepth: maxDepth,
		Table:    wordcrawl.FrequencyTable{},
	}

	// Children are pushed in reverse so they pop in document order. A URL
	// is checked against the visited set when popped, after its earlier
	// siblings' subtrees are done, which matches a recursive pre-order walk.
	stack := []task{{url: seedURL, depth: maxDepth}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visited.Visit(t.url) {
			continue
		}
		result.Visited = append(result.Visited, t.url)
		notify(progress, wordcrawl.CrawlEvent{Type: wordcrawl.EventVisiting, URL: t.url, Depth: t.depth})

		page, err := c.visit(ctx, t.url)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Failures = append(result.Failures, wordcrawl.CrawlFailure{URL: t.url, Depth: t.depth, Err: err})
			notify(progress, wordcrawl.CrawlEvent{Type: wordcrawl.EventFailed, URL: t.url, Depth: t.depth, Err: err})
			continue
		}

		words := result.Table.AddText(page.Text)
		notify(progress, wordcrawl.CrawlEvent{Type: wordcrawl.EventVisited, URL: t.url, Depth: t.depth, Words: words})

		if t.depth == 0 {
			continue
		}
		links := CrawlableLinks(page.Links)
		for i := len(links) - 1; i >= 0; i-- {
			if visited.Seen(links[i]) {
				continue
			}
			stack = append(stack, task{url: links[i], depth: t.depth - 1})
		}
	}

	notify(progress, wordcrawl.CrawlEvent{Type: wordcrawl.EventFinished})
	return result, nil
}

// visit fetches and extracts a single page.
func (c *Crawler) visit(ctx context.Context, pageURL string) (*wordcrawl.ExtractResult, error) {
	fetchFn := func(ctx context.Context, url string) (string, error) {
		return c.Fetcher.Fetch(ctx, url)
	}
	html, err := FetchWithRetryDelays(ctx, pageURL, fetchFn, c.Log, c.RetryDelays)
	if err != nil {
		return nil, failure(wordcrawl.EFETCH, "fetch", pageURL, err)
	}

	page, err := c.Extractor.Extract(html)
	if err != nil {
		return nil, failure(wordcrawl.EEXTRACT, "extract", pageURL, err)
	}
	return page, nil
}

// failure tags err with code unless it already carries it.
func failure(code, op, pageURL string, err error) error {
	if wordcrawl.ErrorCode(err) == code {
		return err
	}
	msg := err.Error()
	if wordcrawl.ErrorCode(err) != wordcrawl.EINTERNAL {
		msg = wordcrawl.ErrorMessage(err)
	}
	return wordcrawl.Errorf(code, "%s %s: %s", op, pageURL, msg)
}

func (c *Crawler) newVisitedSet() wordcrawl.VisitedSet {
	if c.NewVisitedSet != nil {
		return c.NewVisitedSet()
	}
	return NewVisitedSet()
}

func notify(progress wordcrawl.CrawlProgressFunc, event wordcrawl.CrawlEvent) {
	if progress != nil {
		progress(event)
	}
}

// IsCrawlable reports whether href is an absolute http or https URL.
// Relative links, same-page anchors and other schemes are not crawlable.
func IsCrawlable(href string) bool {
	href = strings.TrimSpace(href)
	if href == "" {
		return false
	}
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// CrawlableLinks returns the crawlable links of hrefs, trimmed, in their
// original order. Duplicates are kept; the visited set takes care of them.
func CrawlableLinks(hrefs []string) []string {
	links := make([]string, 0, len(hrefs))
	for _, href := range hrefs {
		if IsCrawlable(href) {
			links = append(links, strings.TrimSpace(href))
		}
	}
	return links
}
