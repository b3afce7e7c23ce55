// Package config holds wordcrawl's settings and loads them from YAML files
// in XDG locations.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/fwojciec/wordcrawl"
	wchttp "github.com/fwojciec/wordcrawl/http"
	"gopkg.in/yaml.v3"
)

// AppName is the application name used for XDG directory paths.
const AppName = "wordcrawl"

// Default configuration values.
const (
	// DefaultDepth follows links one level beyond the seed page.
	DefaultDepth = 1

	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = wchttp.DefaultFetchTimeout
)

// Storage backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Text extractors.
const (
	ExtractorFull        = "full"
	ExtractorReadability = "readability"
	ExtractorTrafilatura = "trafilatura"
)

// Config holds every setting that can come from a config file.
type Config struct {
	// Depth is the maximum link depth followed from the seed page.
	Depth int `yaml:"depth"`

	// CacheDir is where frequency tables are stored.
	CacheDir string `yaml:"cache_dir"`

	// Store selects the storage backend: "file" or "sqlite".
	Store string `yaml:"store"`

	// Timeout bounds a single page fetch.
	Timeout time.Duration `yaml:"timeout"`

	// Retries is the number of extra attempts after a failed fetch.
	Retries int `yaml:"retries"`

	// Extractor selects how visible text is taken from a page.
	Extractor string `yaml:"extractor"`

	UserAgent    string `yaml:"user_agent"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`

	// Browser renders pages in headless Chrome instead of plain HTTP.
	Browser bool `yaml:"browser"`

	// Bloom tracks visited URLs in a fixed-size Bloom filter.
	Bloom bool `yaml:"bloom"`
}

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		Depth:        DefaultDepth,
		CacheDir:     CacheDir(),
		Store:        StoreFile,
		Timeout:      DefaultTimeout,
		Extractor:    ExtractorFull,
		UserAgent:    wchttp.DefaultUserAgent,
		MaxBodyBytes: wchttp.DefaultMaxBodyBytes,
	}
}

// Load reads a YAML config file on top of the defaults.
// Keys missing from the file keep their default values.
// Returns ENOTFOUND if the file does not exist.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, wordcrawl.Errorf(wordcrawl.ENOTFOUND, "config file %s not found", path)
	} else if err != nil {
		return cfg, wordcrawl.Errorf(wordcrawl.EINVALID, "reading config file: %v", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), wordcrawl.Errorf(wordcrawl.EINVALID, "parsing config file %s: %v", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting as an EINVALID error.
func (c Config) Validate() error {
	if c.Depth < 0 {
		return wordcrawl.Errorf(wordcrawl.EINVALID, "depth must be non-negative, got %d", c.Depth)
	}
	if c.Timeout <= 0 {
		return wordcrawl.Errorf(wordcrawl.EINVALID, "timeout must be positive, got %s", c.Timeout)
	}
	if c.Retries < 0 {
		return wordcrawl.Errorf(wordcrawl.EINVALID, "retries must be non-negative, got %d", c.Retries)
	}
	if c.MaxBodyBytes < 0 {
		return wordcrawl.Errorf(wordcrawl.EINVALID, "max_body_bytes must be non-negative, got %d", c.MaxBodyBytes)
	}
	if c.CacheDir == "" {
		return wordcrawl.Errorf(wordcrawl.EINVALID, "cache directory must be set")
	}
	switch c.Store {
	case StoreFile, StoreSQLite:
	default:
		return wordcrawl.Errorf(wordcrawl.EINVALID, "unknown store %q (want %s or %s)", c.Store, StoreFile, StoreSQLite)
	}
	switch c.Extractor {
	case ExtractorFull, ExtractorReadability, ExtractorTrafilatura:
	default:
		return wordcrawl.Errorf(wordcrawl.EINVALID, "unknown extractor %q", c.Extractor)
	}
	return nil
}

// DatabasePath returns the SQLite database file inside the cache directory.
func (c Config) DatabasePath() string {
	return filepath.Join(c.CacheDir, AppName+".db")
}

// ConfigDir returns the XDG config directory for wordcrawl.
// On Linux: ~/.config/wordcrawl
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// CacheDir returns the XDG cache directory for wordcrawl.
// On Linux: ~/.cache/wordcrawl
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// DefaultPath returns the config file read when none is given explicitly.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
