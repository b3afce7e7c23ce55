// Package goquery implements wordcrawl.Extractor on top of goquery.
// It extracts the visible text of a whole page and its anchor targets.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wordcrawl"
	"golang.org/x/net/html"
)

// Ensure Extractor implements wordcrawl.Extractor at compile time.
var _ wordcrawl.Extractor = (*Extractor)(nil)

// hiddenSelector matches elements whose text is never rendered.
const hiddenSelector = "script, style, noscript, template"

// Extractor extracts visible text and links from full HTML documents.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses rawHTML and returns its title, visible text and anchor
// targets. Text nodes are joined with a space so that adjacent elements
// never merge into one word.
func (e *Extractor) Extract(rawHTML string) (*wordcrawl.ExtractResult, error) {
	doc, err := parse(rawHTML)
	if err != nil {
		return nil, err
	}

	hrefs := links(doc)
	doc.Find(hiddenSelector).Remove()

	return &wordcrawl.ExtractResult{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		Text:  VisibleText(doc.Selection),
		Links: hrefs,
	}, nil
}

// ExtractLinks returns the href of every anchor in rawHTML in document
// order. Targets are returned exactly as written.
func ExtractLinks(rawHTML string) ([]string, error) {
	doc, err := parse(rawHTML)
	if err != nil {
		return nil, err
	}
	return links(doc), nil
}

// VisibleText concatenates the text nodes under sel, separated by spaces.
// Comments and doctype nodes are skipped.
func VisibleText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}
	return b.String()
}

// NodeText is VisibleText for a single parsed node.
func NodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	writeText(&b, n)
	return b.String()
}

func writeText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
}

func parse(rawHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, wordcrawl.Errorf(wordcrawl.EEXTRACT, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

func links(doc *goquery.Document) []string {
	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		hrefs = append(hrefs, href)
	})
	return hrefs
}
