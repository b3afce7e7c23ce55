package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/wordcrawl"
	"github.com/fwojciec/wordcrawl/config"
	"github.com/fwojciec/wordcrawl/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Store   wordcrawl.FrequencyStore
	Crawler *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
//
// Settings that can also come from the config file use sentinel defaults
// (-1, "" or 0) so an unset flag falls through to the file.
type CLI struct {
	URL string `arg:"" optional:"" help:"Seed URL to crawl. Without it the most recent table is reused."`

	Depth       int      `short:"d" default:"-1" env:"WORDCRAWL_DEPTH" help:"Link depth to follow from the seed page (default 1)"`
	Reuse       bool     `short:"r" help:"Reuse the cached table for URL instead of crawling"`
	Keywords    []string `short:"k" sep:"," help:"Comma-separated keywords to count"`
	Top         int      `short:"n" help:"Show the N most common words"`
	Interactive bool     `short:"i" help:"Query the table from an interactive menu"`
	Format      string   `short:"f" default:"text" enum:"text,json,yaml" help:"Output format (text, json, yaml)"`

	Store     string        `env:"WORDCRAWL_STORE" help:"Storage backend (file, sqlite)"`
	CacheDir  string        `env:"WORDCRAWL_CACHE_DIR" help:"Directory for cached tables"`
	Timeout   time.Duration `short:"t" env:"WORDCRAWL_TIMEOUT" help:"Fetch timeout per page (default 10s)"`
	Retries   int           `default:"-1" env:"WORDCRAWL_RETRIES" help:"Extra attempts after a failed fetch (default 0)"`
	Extractor string        `short:"e" env:"WORDCRAWL_EXTRACTOR" help:"Text extractor (full, readability, trafilatura)"`
	UserAgent string        `env:"WORDCRAWL_USER_AGENT" help:"User-Agent header for HTTP fetches"`
	Browser   bool          `short:"b" help:"Render pages in headless Chrome"`
	Bloom     bool          `help:"Track visited URLs in a fixed-size Bloom filter"`

	Config  string `short:"c" env:"WORDCRAWL_CONFIG" help:"Config file (default $XDG_CONFIG_HOME/wordcrawl/config.yaml)"`
	Verbose bool   `short:"v" help:"Log every fetch, extraction and store operation"`
}

// apply overrides cfg with every flag or environment value that was set.
func (c *CLI) apply(cfg *config.Config) {
	if c.Depth != -1 {
		cfg.Depth = c.Depth
	}
	if c.Store != "" {
		cfg.Store = c.Store
	}
	if c.CacheDir != "" {
		cfg.CacheDir = c.CacheDir
	}
	if c.Timeout != 0 {
		cfg.Timeout = c.Timeout
	}
	if c.Retries != -1 {
		cfg.Retries = c.Retries
	}
	if c.Extractor != "" {
		cfg.Extractor = c.Extractor
	}
	if c.UserAgent != "" {
		cfg.UserAgent = c.UserAgent
	}
	if c.Browser {
		cfg.Browser = true
	}
	if c.Bloom {
		cfg.Bloom = true
	}
}

// WordsCmd crawls or loads a frequency table and answers queries on it.
type WordsCmd struct {
	URL         string
	Depth       int
	Reuse       bool
	Keywords    []string
	Top         int
	Interactive bool
	Format      string
}
