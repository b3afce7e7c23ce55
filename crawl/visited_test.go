package crawl_test

import (
	"testing"

	"github.com/fwojciec/wordcrawl/crawl"
	"github.com/stretchr/testify/assert"
)

func TestVisitedSet(t *testing.T) {
	t.Parallel()

	t.Run("first visit succeeds and repeat is rejected", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet()

		assert.True(t, s.Visit("https://example.com/a"))
		assert.False(t, s.Visit("https://example.com/a"))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("compares raw strings", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet()
		s.Visit("https://example.com/a")

		assert.True(t, s.Seen("https://example.com/a"))
		assert.False(t, s.Seen("https://example.com/a/"))
		assert.False(t, s.Seen("https://example.com/a#frag"))
	})
}
