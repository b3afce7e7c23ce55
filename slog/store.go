package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wordcrawl"
)

// Ensure LoggingStore implements wordcrawl.FrequencyStore.
var _ wordcrawl.FrequencyStore = (*LoggingStore)(nil)

// LoggingStore wraps a FrequencyStore with logging.
type LoggingStore struct {
	next   wordcrawl.FrequencyStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next wordcrawl.FrequencyStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// Save logs the key and table size and delegates to the wrapped store.
func (s *LoggingStore) Save(ctx context.Context, table wordcrawl.FrequencyTable, key string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save",
			"key", key,
			"words", len(table),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, table, key)
}

// Load logs the key and loaded table size and delegates to the wrapped store.
func (s *LoggingStore) Load(ctx context.Context, key string) (table wordcrawl.FrequencyTable, err error) {
	defer func(begin time.Time) {
		s.logger.Info("load",
			"key", key,
			"words", len(table),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx, key)
}
