package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/wordcrawl"
	"github.com/fwojciec/wordcrawl/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("round trips a table", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewFrequencyStore(openTestDB(t))
		ctx := context.Background()
		table := wordcrawl.FrequencyTable{"the": 2, "cat": 2, "sat.": 1, "ran.": 1}

		require.NoError(t, store.Save(ctx, table, "https://example.com/"))

		got, err := store.Load(ctx, "https://example.com/")
		require.NoError(t, err)
		assert.Equal(t, table, got)
	})

	t.Run("replaces previous table under the same key", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		store := sqlite.NewFrequencyStore(db)
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, wordcrawl.FrequencyTable{"old": 1, "shared": 1}, "k"))
		require.NoError(t, store.Save(ctx, wordcrawl.FrequencyTable{"shared": 5}, "k"))

		got, err := store.Load(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, wordcrawl.FrequencyTable{"shared": 5}, got)

		var rows int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM words").Scan(&rows))
		assert.Equal(t, 1, rows)
	})

	t.Run("keeps keys independent", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewFrequencyStore(openTestDB(t))
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, wordcrawl.FrequencyTable{"a": 1}, "https://a.example/"))
		require.NoError(t, store.Save(ctx, wordcrawl.FrequencyTable{"b": 2}, wordcrawl.LatestKey))

		a, err := store.Load(ctx, "https://a.example/")
		require.NoError(t, err)
		assert.Equal(t, wordcrawl.FrequencyTable{"a": 1}, a)

		latest, err := store.Load(ctx, wordcrawl.LatestKey)
		require.NoError(t, err)
		assert.Equal(t, wordcrawl.FrequencyTable{"b": 2}, latest)
	})

	t.Run("saves an empty table", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewFrequencyStore(openTestDB(t))
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, wordcrawl.FrequencyTable{}, "empty"))

		got, err := store.Load(ctx, "empty")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("records save time", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		store := sqlite.NewFrequencyStore(db)
		store.Now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, wordcrawl.FrequencyTable{"x": 1}, "k"))

		var savedAt string
		require.NoError(t, db.QueryRowContext(ctx, `SELECT saved_at FROM crawls WHERE cache_key = ?`, "k").Scan(&savedAt))
		assert.Equal(t, "2024-03-01T12:00:00Z", savedAt)
	})
}

func TestFrequencyStore_Load(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for missing key", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewFrequencyStore(openTestDB(t))

		_, err := store.Load(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, wordcrawl.ENOTFOUND, wordcrawl.ErrorCode(err))
	})

	t.Run("returns EPERSIST when the database is closed", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		store := sqlite.NewFrequencyStore(db)
		require.NoError(t, db.Close())

		_, err := store.Load(context.Background(), "k")
		require.Error(t, err)
		assert.Equal(t, wordcrawl.EPERSIST, wordcrawl.ErrorCode(err))
	})
}
