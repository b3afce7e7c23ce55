package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/wordcrawl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ wordcrawl.FrequencyStore = (*FrequencyStore)(nil)

// FrequencyStore implements wordcrawl.FrequencyStore using SQLite.
// Each cache key owns one crawl row; its words live in the words table.
type FrequencyStore struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewFrequencyStore creates a new FrequencyStore.
func NewFrequencyStore(db *DB) *FrequencyStore {
	return &FrequencyStore{db: db, Now: time.Now}
}

// Save replaces the table stored under key in a single transaction.
func (s *FrequencyStore) Save(ctx context.Context, table wordcrawl.FrequencyTable, key string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistErr(ctx, "beginning transaction", err)
	}
	defer tx.Rollback()

	// Cascades to the previous words.
	if _, err := tx.ExecContext(ctx, `DELETE FROM crawls WHERE cache_key = ?`, key); err != nil {
		return persistErr(ctx, "removing previous table", err)
	}

	id := uuid.New().String()
	savedAt := s.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO crawls (id, cache_key, saved_at)
		VALUES (?, ?, ?)
	`, id, key, savedAt); err != nil {
		return persistErr(ctx, "inserting crawl", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO words (crawl_id, word, count) VALUES (?, ?, ?)`)
	if err != nil {
		return persistErr(ctx, "preparing insert", err)
	}
	defer stmt.Close()

	for word, count := range table {
		if _, err := stmt.ExecContext(ctx, id, word, count); err != nil {
			return persistErr(ctx, "inserting word", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return persistErr(ctx, "committing table", err)
	}
	return nil
}

// Load returns the table stored under key.
func (s *FrequencyStore) Load(ctx context.Context, key string) (wordcrawl.FrequencyTable, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM crawls WHERE cache_key = ?`, key).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, wordcrawl.Errorf(wordcrawl.ENOTFOUND, "no cached table for %s", key)
	}
	if err != nil {
		return nil, persistErr(ctx, "finding crawl", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT word, count FROM words WHERE crawl_id = ?`, id)
	if err != nil {
		return nil, persistErr(ctx, "reading words", err)
	}
	defer rows.Close()

	table := wordcrawl.FrequencyTable{}
	for rows.Next() {
		var word string
		var count int
		if err := rows.Scan(&word, &count); err != nil {
			return nil, persistErr(ctx, "scanning word", err)
		}
		table[word] = count
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr(ctx, "reading words", err)
	}
	return table, nil
}

// persistErr wraps a database failure as EPERSIST. Context errors pass
// through unchanged so callers can tell cancellation apart.
func persistErr(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return ctxErr
	}
	return wordcrawl.Errorf(wordcrawl.EPERSIST, "%s: %v", op, err)
}
