package wordcrawl

import (
	"sort"
	"strings"
)

// FrequencyTable maps a lowercase word to the number of times it occurred.
type FrequencyTable map[string]int

// WordCount is a single ranked entry of a FrequencyTable.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// Tokenize lower-cases text and splits it on whitespace.
// Punctuation stays attached to its token, so "Cat." and "cat" are
// different words.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// AddText tokenizes text and counts every token.
// Returns the number of tokens counted.
func (t FrequencyTable) AddText(text string) int {
	tokens := Tokenize(text)
	for _, tok := range tokens {
		t[tok]++
	}
	return len(tokens)
}

// Lookup returns the count for keyword after trimming surrounding
// whitespace and case-folding it. Unknown words count zero.
func (t FrequencyTable) Lookup(keyword string) int {
	return t[strings.ToLower(strings.TrimSpace(keyword))]
}

// Total returns the sum of all counts.
func (t FrequencyTable) Total() int {
	var total int
	for _, n := range t {
		total += n
	}
	return total
}

// TopN returns the n most common words by descending count.
// Words with equal counts are ordered lexicographically, so the result is
// stable across runs. Returns an empty slice when n <= 0 and every word
// when n exceeds the number of distinct words.
func (t FrequencyTable) TopN(n int) []WordCount {
	if n <= 0 || len(t) == 0 {
		return []WordCount{}
	}

	ranked := make([]WordCount, 0, len(t))
	for word, count := range t {
		ranked = append(ranked, WordCount{Word: word, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
