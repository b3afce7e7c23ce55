package main_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/wordcrawl"
	main "github.com/fwojciec/wordcrawl/cmd/wordcrawl"
	"github.com/fwojciec/wordcrawl/crawl"
	"github.com/fwojciec/wordcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seed = "https://example.com/"

// memoryStore returns a FrequencyStore mock backed by a map, plus the map.
func memoryStore() (*mock.FrequencyStore, map[string]wordcrawl.FrequencyTable) {
	tables := map[string]wordcrawl.FrequencyTable{}
	return &mock.FrequencyStore{
		SaveFn: func(_ context.Context, table wordcrawl.FrequencyTable, key string) error {
			tables[key] = table
			return nil
		},
		LoadFn: func(_ context.Context, key string) (wordcrawl.FrequencyTable, error) {
			table, ok := tables[key]
			if !ok {
				return nil, wordcrawl.Errorf(wordcrawl.ENOTFOUND, "no cached table for %s", key)
			}
			return table, nil
		},
	}, tables
}

func catSite() *mock.Site {
	return &mock.Site{Pages: map[string]mock.Page{
		seed:                      {Text: "The Cat sat. The cat ran.", Links: []string{"https://example.com/dog"}},
		"https://example.com/dog": {Text: "the dog"},
	}}
}

func newDeps(store wordcrawl.FrequencyStore, site *mock.Site, stdin string) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
		Store:  store,
	}
	if site != nil {
		deps.Crawler = &crawl.Crawler{Fetcher: site.Fetcher(), Extractor: site.Extractor()}
	}
	return deps, &stdout, &stderr
}

func TestWordsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("crawls and answers keyword queries", func(t *testing.T) {
		t.Parallel()

		store, _ := memoryStore()
		deps, stdout, stderr := newDeps(store, catSite(), "")

		cmd := &main.WordsCmd{URL: seed, Depth: 0, Keywords: []string{"CAT", " the", "bird"}, Format: "text"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t,
			"'cat' occurs 2 times.\n'the' occurs 2 times.\n'bird' does not occur at all.\n",
			stdout.String())
		assert.Contains(t, stderr.String(), "Visiting URL: "+seed)
	})

	t.Run("caches crawl under URL and latest slot", func(t *testing.T) {
		t.Parallel()

		store, tables := memoryStore()
		deps, _, _ := newDeps(store, catSite(), "")

		cmd := &main.WordsCmd{URL: seed, Depth: 1, Format: "text"}
		require.NoError(t, cmd.Run(deps))

		want := wordcrawl.FrequencyTable{"the": 3, "cat": 2, "sat.": 1, "ran.": 1, "dog": 1}
		assert.Equal(t, want, tables[seed])
		assert.Equal(t, want, tables[wordcrawl.LatestKey])
	})

	t.Run("prints top words", func(t *testing.T) {
		t.Parallel()

		store, _ := memoryStore()
		deps, stdout, _ := newDeps(store, catSite(), "")

		cmd := &main.WordsCmd{URL: seed, Depth: 0, Top: 2, Format: "text"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "  1. cat (2)\n  2. the (2)\n", stdout.String())
	})

	t.Run("without URL reuses latest table", func(t *testing.T) {
		t.Parallel()

		store, tables := memoryStore()
		tables[wordcrawl.LatestKey] = wordcrawl.FrequencyTable{"cached": 4}
		site := catSite()
		deps, stdout, _ := newDeps(store, site, "")

		cmd := &main.WordsCmd{Keywords: []string{"cached"}, Format: "text"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "'cached' occurs 4 times.\n", stdout.String())
		assert.Empty(t, site.Fetches())
	})

	t.Run("without URL or cache returns usage error", func(t *testing.T) {
		t.Parallel()

		store, _ := memoryStore()
		site := catSite()
		deps, _, _ := newDeps(store, site, "")

		cmd := &main.WordsCmd{Format: "text"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, wordcrawl.EUSAGE, wordcrawl.ErrorCode(err))
		assert.Contains(t, wordcrawl.ErrorMessage(err), "no URL specified and no cached table found")
		assert.Empty(t, site.Fetches())
	})

	t.Run("without URL and corrupt cache returns usage error", func(t *testing.T) {
		t.Parallel()

		store := &mock.FrequencyStore{
			LoadFn: func(context.Context, string) (wordcrawl.FrequencyTable, error) {
				return nil, wordcrawl.Errorf(wordcrawl.EPERSIST, "decoding latest: unexpected end of JSON input")
			},
		}
		site := catSite()
		deps, _, _ := newDeps(store, site, "")

		cmd := &main.WordsCmd{Format: "text"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, wordcrawl.EUSAGE, wordcrawl.ErrorCode(err))
		assert.Contains(t, wordcrawl.ErrorMessage(err), "cached table is unusable")
		assert.Contains(t, wordcrawl.ErrorMessage(err), "unexpected end of JSON input")
		assert.Empty(t, site.Fetches())
	})

	t.Run("reuse loads cached table without crawling", func(t *testing.T) {
		t.Parallel()

		store, tables := memoryStore()
		tables[seed] = wordcrawl.FrequencyTable{"old": 9}
		site := catSite()
		deps, stdout, _ := newDeps(store, site, "")

		cmd := &main.WordsCmd{URL: seed, Reuse: true, Keywords: []string{"old"}, Format: "text"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "'old' occurs 9 times.\n", stdout.String())
		assert.Empty(t, site.Fetches())
	})

	t.Run("reuse crawls when no cache exists", func(t *testing.T) {
		t.Parallel()

		store, _ := memoryStore()
		site := catSite()
		deps, _, stderr := newDeps(store, site, "")

		cmd := &main.WordsCmd{URL: seed, Reuse: true, Format: "text"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, []string{seed}, site.Fetches())
		assert.Contains(t, stderr.String(), "No cached table")
	})

	t.Run("reuse ignores corrupt cache and crawls", func(t *testing.T) {
		t.Parallel()

		store, tables := memoryStore()
		store.LoadFn = func(context.Context, string) (wordcrawl.FrequencyTable, error) {
			return nil, wordcrawl.Errorf(wordcrawl.EPERSIST, "decoding cache record: invalid character")
		}
		site := catSite()
		deps, stdout, stderr := newDeps(store, site, "")

		cmd := &main.WordsCmd{URL: seed, Reuse: true, Keywords: []string{"cat"}, Format: "text"}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stderr.String(), "warning: ignoring cached table: decoding cache record: invalid character")
		assert.NotContains(t, stderr.String(), "No cached table")
		assert.Equal(t, []string{seed}, site.Fetches())
		assert.Equal(t, "'cat' occurs 2 times.\n", stdout.String())
		assert.Equal(t, 2, tables[seed].Lookup("cat"))
	})

	t.Run("save failure is reported but not fatal", func(t *testing.T) {
		t.Parallel()

		store := &mock.FrequencyStore{
			SaveFn: func(context.Context, wordcrawl.FrequencyTable, string) error {
				return wordcrawl.Errorf(wordcrawl.EPERSIST, "disk full")
			},
		}
		deps, stdout, stderr := newDeps(store, catSite(), "")

		cmd := &main.WordsCmd{URL: seed, Depth: 0, Keywords: []string{"cat"}, Format: "text"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "'cat' occurs 2 times.\n", stdout.String())
		assert.Contains(t, stderr.String(), "warning: could not cache table: disk full")
	})

	t.Run("failed child fetch is reported and skipped", func(t *testing.T) {
		t.Parallel()

		site := catSite()
		site.Fail = map[string]error{"https://example.com/dog": errors.New("connection refused")}
		store, tables := memoryStore()
		deps, _, stderr := newDeps(store, site, "")

		cmd := &main.WordsCmd{URL: seed, Depth: 1, Format: "text"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, 0, tables[seed].Lookup("dog"))
		assert.Equal(t, 2, tables[seed].Lookup("cat"))
		assert.Contains(t, stderr.String(), "skip https://example.com/dog")
		assert.Contains(t, stderr.String(), "1 failed")
	})

	t.Run("renders json report", func(t *testing.T) {
		t.Parallel()

		store, _ := memoryStore()
		deps, stdout, _ := newDeps(store, catSite(), "")

		cmd := &main.WordsCmd{URL: seed, Depth: 0, Keywords: []string{"cat"}, Top: 1, Format: "json"}
		require.NoError(t, cmd.Run(deps))

		assert.JSONEq(t, `{
			"source": "https://example.com/",
			"distinctWords": 4,
			"totalWords": 6,
			"keywords": [{"keyword": "cat", "count": 2}],
			"top": [{"rank": 1, "word": "cat", "count": 2}]
		}`, stdout.String())
	})

	t.Run("renders yaml report", func(t *testing.T) {
		t.Parallel()

		store, _ := memoryStore()
		deps, stdout, _ := newDeps(store, catSite(), "")

		cmd := &main.WordsCmd{URL: seed, Depth: 0, Keywords: []string{"dog"}, Format: "yaml"}
		require.NoError(t, cmd.Run(deps))

		assert.YAMLEq(t, `
source: https://example.com/
distinct_words: 4
total_words: 6
keywords:
  - keyword: dog
    count: 0
`, stdout.String())
	})
}

func TestWordsCmd_Interactive(t *testing.T) {
	t.Parallel()

	t.Run("runs keyword and top queries until exit", func(t *testing.T) {
		t.Parallel()

		store, _ := memoryStore()
		deps, stdout, _ := newDeps(store, catSite(), "1\ncat, bird\n2\n1\n3\n")

		cmd := &main.WordsCmd{URL: seed, Depth: 0, Interactive: true, Format: "text"}
		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "1 - Query by keywords")
		assert.Contains(t, out, "'cat' occurs 2 times.")
		assert.Contains(t, out, "'bird' does not occur at all.")
		assert.Contains(t, out, "  1. cat (2)")
		assert.NotContains(t, out, "  2. ")
	})

	t.Run("re-prompts on invalid input", func(t *testing.T) {
		t.Parallel()

		store, _ := memoryStore()
		deps, stdout, _ := newDeps(store, catSite(), "9\n2\nmany\n3\n")

		cmd := &main.WordsCmd{URL: seed, Depth: 0, Interactive: true, Format: "text"}
		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, `You did not enter a valid input. Please input either "1", "2", or "3"`)
		assert.Contains(t, out, "Please input a non-negative whole number.")
		assert.Equal(t, 3, strings.Count(out, "3 - Exit"))
	})

	t.Run("ends quietly when input runs out", func(t *testing.T) {
		t.Parallel()

		store, _ := memoryStore()
		deps, _, _ := newDeps(store, catSite(), "1\n")

		cmd := &main.WordsCmd{URL: seed, Depth: 0, Interactive: true, Format: "text"}
		assert.NoError(t, cmd.Run(deps))
	})

	t.Run("asks before reusing cached table", func(t *testing.T) {
		t.Parallel()

		store, tables := memoryStore()
		tables[seed] = wordcrawl.FrequencyTable{"old": 1}
		site := catSite()
		deps, stdout, _ := newDeps(store, site, "y\n1\nold\n3\n")

		cmd := &main.WordsCmd{URL: seed, Depth: 0, Interactive: true, Format: "text"}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "(y/n)")
		assert.Contains(t, stdout.String(), "'old' occurs 1 times.")
		assert.Empty(t, site.Fetches())
	})

	t.Run("crawls when cached table is declined", func(t *testing.T) {
		t.Parallel()

		store, tables := memoryStore()
		tables[seed] = wordcrawl.FrequencyTable{"old": 1}
		site := catSite()
		deps, stdout, _ := newDeps(store, site, "n\n1\nold\n3\n")

		cmd := &main.WordsCmd{URL: seed, Depth: 0, Interactive: true, Format: "text"}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "'old' does not occur at all.")
		assert.Equal(t, []string{seed}, site.Fetches())
		assert.Equal(t, 2, tables[seed].Lookup("cat"))
	})
}
