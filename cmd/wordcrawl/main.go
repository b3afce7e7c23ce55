package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"
	"github.com/fwojciec/wordcrawl"
	"github.com/fwojciec/wordcrawl/bloom"
	"github.com/fwojciec/wordcrawl/config"
	"github.com/fwojciec/wordcrawl/crawl"
	"github.com/fwojciec/wordcrawl/fs"
	"github.com/fwojciec/wordcrawl/goquery"
	wchttp "github.com/fwojciec/wordcrawl/http"
	"github.com/fwojciec/wordcrawl/readability"
	"github.com/fwojciec/wordcrawl/rod"
	wcslog "github.com/fwojciec/wordcrawl/slog"
	"github.com/fwojciec/wordcrawl/sqlite"
	"github.com/fwojciec/wordcrawl/trafilatura"
)

// retryBaseDelay is the first wait between fetch attempts; later waits double.
const retryBaseDelay = 500 * time.Millisecond

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", failureMessage(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// ConfigPath is read when --config is not given. Missing is fine.
	ConfigPath string

	// Stdin feeds interactive prompts.
	Stdin io.Reader

	// DB is the SQLite database when the sqlite store is selected.
	DB *sqlite.DB

	// Fetcher overrides the fetcher built from configuration.
	Fetcher wordcrawl.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: config.DefaultPath(),
		Stdin:      os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wordcrawl"),
		kong.Description("Crawl a web page and its links to a fixed depth and count word frequencies."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return wordcrawl.Errorf(wordcrawl.EUSAGE, "%v", err)
	}

	cfg, err := m.loadConfig(cli.Config)
	if err != nil {
		return err
	}
	cli.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)

	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	store, err := m.openStore(cfg)
	if err != nil {
		return err
	}
	defer m.Close()
	deps.Store = store
	if cli.Verbose {
		deps.Store = wcslog.NewLoggingStore(store, logger)
	}

	// Only a crawl needs a fetcher; the browser is expensive to start.
	if cli.URL != "" {
		fetcher, err := m.newFetcher(cfg)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		extractor := newExtractor(cfg.Extractor)
		if cli.Verbose {
			fetcher = wcslog.NewLoggingFetcher(fetcher, logger)
			extractor = wcslog.NewLoggingExtractor(extractor, logger)
		}

		deps.Crawler = &crawl.Crawler{
			Fetcher:     fetcher,
			Extractor:   extractor,
			RetryDelays: crawl.BackoffDelays(cfg.Retries, retryBaseDelay),
			Log: func(format string, args ...any) {
				logger.Warn(fmt.Sprintf(format, args...))
			},
		}
		if cfg.Bloom {
			deps.Crawler.NewVisitedSet = func() wordcrawl.VisitedSet {
				return bloom.NewVisitedSet(bloom.DefaultExpectedURLs, bloom.DefaultFalsePositiveRate)
			}
		}
	}

	cmd := &WordsCmd{
		URL:         cli.URL,
		Depth:       cfg.Depth,
		Reuse:       cli.Reuse,
		Keywords:    cli.Keywords,
		Top:         cli.Top,
		Interactive: cli.Interactive,
		Format:      cli.Format,
	}
	return cmd.Run(deps)
}

// loadConfig reads the config file. An explicit path must exist; the
// default path is optional.
func (m *Main) loadConfig(explicit string) (config.Config, error) {
	path := explicit
	if path == "" {
		path = m.ConfigPath
	}
	if path == "" {
		return config.Default(), nil
	}

	cfg, err := config.Load(path)
	if wordcrawl.ErrorCode(err) == wordcrawl.ENOTFOUND && explicit == "" {
		return cfg, nil
	}
	return cfg, err
}

// openStore opens the configured frequency store.
func (m *Main) openStore(cfg config.Config) (wordcrawl.FrequencyStore, error) {
	if cfg.Store != config.StoreSQLite {
		return fs.NewFrequencyStore(cfg.CacheDir), nil
	}

	if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
		return nil, wordcrawl.Errorf(wordcrawl.EPERSIST, "creating cache directory: %v", err)
	}
	m.DB = sqlite.NewDB(cfg.DatabasePath())
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return nil, wordcrawl.Errorf(wordcrawl.EPERSIST, "opening database at %q: %v", cfg.DatabasePath(), err)
	}
	return sqlite.NewFrequencyStore(m.DB), nil
}

// newFetcher builds the HTTP or browser fetcher.
func (m *Main) newFetcher(cfg config.Config) (wordcrawl.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}
	if cfg.Browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cfg.Timeout), rod.WithStealth())
		if err != nil {
			return nil, wordcrawl.Errorf(wordcrawl.EFETCH, "failed to start browser (Chrome or Chromium must be installed): %v", err)
		}
		return f, nil
	}
	return wchttp.NewFetcher(
		wchttp.WithTimeout(cfg.Timeout),
		wchttp.WithUserAgent(cfg.UserAgent),
		wchttp.WithMaxBodyBytes(cfg.MaxBodyBytes),
	), nil
}

func newExtractor(name string) wordcrawl.Extractor {
	switch name {
	case config.ExtractorReadability:
		return readability.NewExtractor()
	case config.ExtractorTrafilatura:
		return trafilatura.NewExtractor()
	default:
		return goquery.NewExtractor()
	}
}

// newLogger returns a slog logger backed by a levelled terminal handler.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		ReportTimestamp: verbose,
		Prefix:          "wordcrawl",
	})
	return slog.New(handler)
}
