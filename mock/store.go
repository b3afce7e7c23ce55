package mock

import (
	"context"

	"github.com/fwojciec/wordcrawl"
)

var _ wordcrawl.FrequencyStore = (*FrequencyStore)(nil)

// FrequencyStore is a mock implementation of wordcrawl.FrequencyStore.
type FrequencyStore struct {
	SaveFn func(ctx context.Context, table wordcrawl.FrequencyTable, key string) error
	LoadFn func(ctx context.Context, key string) (wordcrawl.FrequencyTable, error)
}

func (s *FrequencyStore) Save(ctx context.Context, table wordcrawl.FrequencyTable, key string) error {
	return s.SaveFn(ctx, table, key)
}

func (s *FrequencyStore) Load(ctx context.Context, key string) (wordcrawl.FrequencyTable, error) {
	return s.LoadFn(ctx, key)
}
