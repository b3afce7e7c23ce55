package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fwojciec/wordcrawl"
	"github.com/fwojciec/wordcrawl/crawl"
)

// Run obtains the frequency table and prints the requested queries.
func (c *WordsCmd) Run(deps *Dependencies) error {
	var in *bufio.Scanner
	if c.Interactive {
		in = bufio.NewScanner(deps.Stdin)
	}

	table, source, err := c.table(deps, in)
	if err != nil {
		return err
	}

	if c.Interactive {
		return c.interactive(deps, in, table)
	}

	rep := newReport(source, table, c.Keywords, c.Top)
	if c.Format == formatText {
		fmt.Fprintf(deps.Stderr, "%s distinct, %s total from %s\n",
			crawl.FormatWords(len(table)), crawl.FormatWords(table.Total()), source)
	}
	return rep.write(deps.Stdout, c.Format)
}

// table loads or crawls the table to query. It returns the table and a
// description of where it came from.
func (c *WordsCmd) table(deps *Dependencies, in *bufio.Scanner) (wordcrawl.FrequencyTable, string, error) {
	ctx := deps.Ctx

	if c.URL == "" {
		table, err := deps.Store.Load(ctx, wordcrawl.LatestKey)
		switch wordcrawl.ErrorCode(err) {
		case wordcrawl.ENOTFOUND:
			return nil, "", wordcrawl.Errorf(wordcrawl.EUSAGE, "no URL specified and no cached table found; pass a URL to crawl")
		case wordcrawl.EPERSIST:
			return nil, "", wordcrawl.Errorf(wordcrawl.EUSAGE, "no URL specified and cached table is unusable (%s); pass a URL to crawl", wordcrawl.ErrorMessage(err))
		}
		if err != nil {
			return nil, "", err
		}
		return table, "cache (latest crawl)", nil
	}

	if c.Reuse || c.Interactive {
		cached, err := deps.Store.Load(ctx, c.URL)
		switch {
		case err == nil:
			if c.Reuse || confirm(deps, in, "Would you like to use your previous Word Count for this URL? (y/n) ") {
				return cached, "cache (" + c.URL + ")", nil
			}
		case wordcrawl.ErrorCode(err) == wordcrawl.ENOTFOUND:
			if c.Reuse {
				fmt.Fprintf(deps.Stderr, "No cached table for %s; crawling\n", c.URL)
			}
		default:
			fmt.Fprintf(deps.Stderr, "warning: ignoring cached table: %s\n", wordcrawl.ErrorMessage(err))
		}
	}

	table, err := c.crawl(deps)
	if err != nil {
		return nil, "", err
	}
	return table, c.URL, nil
}

// crawl runs a fresh crawl and caches the result under the URL and the
// latest slot. A failed save is reported but does not fail the run.
func (c *WordsCmd) crawl(deps *Dependencies) (wordcrawl.FrequencyTable, error) {
	progress := func(event wordcrawl.CrawlEvent) {
		switch event.Type {
		case wordcrawl.EventVisiting:
			fmt.Fprintf(deps.Stderr, "Visiting URL: %s\n", event.URL)
		case wordcrawl.EventFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", crawl.TruncateURL(event.URL, 60), failureMessage(event.Err))
		}
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, c.URL, c.Depth, progress)
	if err != nil {
		return nil, err
	}
	if n := len(result.Failures); n > 0 {
		fmt.Fprintf(deps.Stderr, "Visited %d pages, %d failed\n", len(result.Visited), n)
	}

	for _, key := range []string{c.URL, wordcrawl.LatestKey} {
		if err := deps.Store.Save(deps.Ctx, result.Table, key); err != nil {
			fmt.Fprintf(deps.Stderr, "warning: could not cache table: %s\n", failureMessage(err))
			break
		}
	}
	return result.Table, nil
}

// confirm asks a yes/no question. Only "y" or "yes" count as yes.
func confirm(deps *Dependencies, in *bufio.Scanner, question string) bool {
	fmt.Fprint(deps.Stdout, question)
	if in == nil || !in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(in.Text()))
	return answer == "y" || answer == "yes"
}

// failureMessage prefers the application message and falls back to the
// raw error text for errors from outside the application.
func failureMessage(err error) string {
	if wordcrawl.ErrorCode(err) == wordcrawl.EINTERNAL {
		return err.Error()
	}
	return wordcrawl.ErrorMessage(err)
}
