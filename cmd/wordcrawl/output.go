package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/wordcrawl"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// keywordCount is the answer to one keyword query.
type keywordCount struct {
	Keyword string `json:"keyword" yaml:"keyword"`
	Count   int    `json:"count" yaml:"count"`
}

// rankedWord is one entry of a top-N listing.
type rankedWord struct {
	Rank  int    `json:"rank" yaml:"rank"`
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// report is the structured form of a run's output.
type report struct {
	Source        string         `json:"source" yaml:"source"`
	DistinctWords int            `json:"distinctWords" yaml:"distinct_words"`
	TotalWords    int            `json:"totalWords" yaml:"total_words"`
	Keywords      []keywordCount `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Top           []rankedWord   `json:"top,omitempty" yaml:"top,omitempty"`
}

func newReport(source string, table wordcrawl.FrequencyTable, keywords []string, top int) *report {
	rep := &report{
		Source:        source,
		DistinctWords: len(table),
		TotalWords:    table.Total(),
		Keywords:      keywordCounts(table, keywords),
	}
	for _, wc := range table.TopN(top) {
		rep.Top = append(rep.Top, rankedWord{Rank: len(rep.Top) + 1, Word: wc.Word, Count: wc.Count})
	}
	return rep
}

// write renders the report in the given format.
func (r *report) write(w io.Writer, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		writeKeywords(w, r.Keywords)
		if len(r.Top) > 0 {
			words := make([]wordcrawl.WordCount, len(r.Top))
			for i, rw := range r.Top {
				words[i] = wordcrawl.WordCount{Word: rw.Word, Count: rw.Count}
			}
			writeTop(w, words)
		}
		return nil
	}
}

// keywordCounts looks up each keyword, normalized the way the table
// normalizes lookups. Blank keywords are skipped.
func keywordCounts(table wordcrawl.FrequencyTable, keywords []string) []keywordCount {
	var counts []keywordCount
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		counts = append(counts, keywordCount{Keyword: kw, Count: table.Lookup(kw)})
	}
	return counts
}

func writeKeywords(w io.Writer, counts []keywordCount) {
	for _, kc := range counts {
		if kc.Count > 0 {
			fmt.Fprintf(w, "'%s' occurs %d times.\n", kc.Keyword, kc.Count)
		} else {
			fmt.Fprintf(w, "'%s' does not occur at all.\n", kc.Keyword)
		}
	}
}

func writeTop(w io.Writer, words []wordcrawl.WordCount) {
	if len(words) == 0 {
		fmt.Fprintln(w, "No words to display.")
		return
	}
	for i, wc := range words {
		fmt.Fprintf(w, "%3d. %s (%d)\n", i+1, wc.Word, wc.Count)
	}
}
