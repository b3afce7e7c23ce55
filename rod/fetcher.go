// Package rod provides a headless-browser implementation of wordcrawl.Fetcher
// for pages that render their text with JavaScript.
package rod

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/fwojciec/wordcrawl"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// DefaultFetchTimeout bounds a single page load.
// Kept consistent with http.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements wordcrawl.Fetcher at compile time.
var _ wordcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// The browser is recycled periodically by a BrowserManager.
type Fetcher struct {
	manager      *BrowserManager
	fetchTimeout time.Duration
	stealth      bool
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*fetcherConfig)

type fetcherConfig struct {
	fetchTimeout time.Duration
	stealth      bool
	managerOpts  []ManagerOption
}

// WithFetchTimeout sets the per-page load timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *fetcherConfig) {
		c.fetchTimeout = d
	}
}

// WithStealth opens pages with evasions that hide headless Chrome from
// bot detection scripts.
func WithStealth() Option {
	return func(c *fetcherConfig) {
		c.stealth = true
	}
}

// WithRecycleAfter recycles the browser after n pages.
func WithRecycleAfter(n int64) Option {
	return func(c *fetcherConfig) {
		c.managerOpts = append(c.managerOpts, WithMaxPages(n))
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	cfg := fetcherConfig{fetchTimeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	manager, err := NewBrowserManager(cfg.managerOpts...)
	if err != nil {
		return nil, err
	}

	return &Fetcher{manager: manager, fetchTimeout: cfg.fetchTimeout, stealth: cfg.stealth}, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", wordcrawl.Errorf(wordcrawl.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	page, err := f.newPage()
	if err != nil {
		return "", wordcrawl.Errorf(wordcrawl.EFETCH, "opening page for %s: %v", url, err)
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", fetchErr(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fetchErr(ctx, url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fetchErr(ctx, url, err)
	}

	return html, nil
}

func (f *Fetcher) newPage() (*rod.Page, error) {
	b := f.manager.Browser()
	if f.stealth {
		return stealth.Page(b)
	}
	return b.Page(proto.TargetCreateTarget{})
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// fetchErr reports context errors as-is and everything else as EFETCH.
func fetchErr(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return wordcrawl.Errorf(wordcrawl.EFETCH, "rendering %s: %v", url, err)
}
