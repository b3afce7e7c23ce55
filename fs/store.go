// Package fs provides file-based storage for frequency tables.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wordcrawl"
)

// maxNameLen bounds the readable part of a cache file name.
const maxNameLen = 80

// Ensure FrequencyStore implements wordcrawl.FrequencyStore at compile time.
var _ wordcrawl.FrequencyStore = (*FrequencyStore)(nil)

// FrequencyStore keeps one JSON file per cache key in a directory.
// Writes go to a temporary file that is renamed into place, so a reader
// never observes a partially written record.
type FrequencyStore struct {
	dir string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewFrequencyStore creates a store rooted at dir. The directory is
// created on first Save.
func NewFrequencyStore(dir string) *FrequencyStore {
	return &FrequencyStore{dir: dir, Now: time.Now}
}

// record is the on-disk format of a cached table.
type record struct {
	Key     string                   `json:"key"`
	SavedAt time.Time                `json:"savedAt"`
	Words   wordcrawl.FrequencyTable `json:"words"`
}

// Path returns the file a key is stored in.
func (s *FrequencyStore) Path(key string) string {
	return filepath.Join(s.dir, KeyToFileName(key))
}

// Save writes table under key, replacing any previous record.
func (s *FrequencyStore) Save(ctx context.Context, table wordcrawl.FrequencyTable, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if table == nil {
		table = wordcrawl.FrequencyTable{}
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return wordcrawl.Errorf(wordcrawl.EPERSIST, "creating cache directory: %v", err)
	}

	data, err := json.Marshal(record{Key: key, SavedAt: s.Now().UTC(), Words: table})
	if err != nil {
		return wordcrawl.Errorf(wordcrawl.EPERSIST, "encoding table: %v", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".wordcrawl-*.tmp")
	if err != nil {
		return wordcrawl.Errorf(wordcrawl.EPERSIST, "creating temp file: %v", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return wordcrawl.Errorf(wordcrawl.EPERSIST, "writing table: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return wordcrawl.Errorf(wordcrawl.EPERSIST, "writing table: %v", err)
	}
	if err := os.Rename(tmpName, s.Path(key)); err != nil {
		return wordcrawl.Errorf(wordcrawl.EPERSIST, "committing table: %v", err)
	}
	return nil
}

// Load reads the table stored under key.
func (s *FrequencyStore) Load(ctx context.Context, key string) (wordcrawl.FrequencyTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, wordcrawl.Errorf(wordcrawl.ENOTFOUND, "no cached table for %s", key)
	} else if err != nil {
		return nil, wordcrawl.Errorf(wordcrawl.EPERSIST, "reading cached table: %v", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, wordcrawl.Errorf(wordcrawl.EPERSIST, "cached table for %s is corrupt: %v", key, err)
	}
	if rec.Words == nil {
		rec.Words = wordcrawl.FrequencyTable{}
	}
	return rec.Words, nil
}

// KeyToFileName converts a cache key into a safe file name.
// Example: https://example.com/a?b → https___example.com_a_b-<hash>.json
//
// Characters that are unsafe in paths are replaced with underscores and
// the readable part is truncated. The hash of the raw key keeps distinct
// keys from colliding after sanitizing.
func KeyToFileName(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r), unicode.IsSpace(r), unicode.IsControl(r):
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}

	name := b.String()
	if len(name) > maxNameLen {
		name = truncateRunes(name, maxNameLen)
	}
	if name == "" {
		name = "_"
	}
	return fmt.Sprintf("%s-%016x.json", name, xxhash.Sum64String(key))
}

// truncateRunes cuts s to at most n bytes without splitting a rune.
func truncateRunes(s string, n int) string {
	cut := 0
	for i, r := range s {
		end := i + utf8.RuneLen(r)
		if end > n {
			break
		}
		cut = end
	}
	return s[:cut]
}
