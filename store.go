package wordcrawl

import "context"

// LatestKey is the fixed cache slot that mirrors the most recent crawl.
// It lets a run without a seed URL reuse the last table.
const LatestKey = "latest"

// FrequencyStore persists frequency tables under a cache key.
// The key is usually the seed URL of the crawl that produced the table.
type FrequencyStore interface {
	// Save writes table under key, replacing any existing record.
	// Returns EPERSIST if the record cannot be written.
	Save(ctx context.Context, table FrequencyTable, key string) error

	// Load reads the table stored under key.
	// Returns ENOTFOUND if no record exists and EPERSIST if the record
	// exists but cannot be read or decoded.
	Load(ctx context.Context, key string) (FrequencyTable, error)
}
