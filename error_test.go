package wordcrawl_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/wordcrawl"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := wordcrawl.Errorf(wordcrawl.EFETCH, "fetch %q: HTTP 500", "https://example.com")

	assert.Equal(t, wordcrawl.EFETCH, wordcrawl.ErrorCode(err))
	assert.Equal(t, "fetch \"https://example.com\": HTTP 500", wordcrawl.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, wordcrawl.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, wordcrawl.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("saving cache: %w", wordcrawl.Errorf(wordcrawl.EPERSIST, "disk full"))

	assert.Equal(t, wordcrawl.EPERSIST, wordcrawl.ErrorCode(err))
	assert.Equal(t, "disk full", wordcrawl.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, wordcrawl.EINTERNAL, wordcrawl.ErrorCode(err))
	assert.Equal(t, "Internal error.", wordcrawl.ErrorMessage(err))
}
