// Package catalog loads and memoizes the per-category ore catalogs.
package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"mining_hub/internal/domain/entity"
)

// Fetcher is the dataset source. Implemented by infrastructure/refdata.
type Fetcher interface {
	FetchOres(ctx context.Context, category entity.Category) ([]*entity.Ore, error)
}

// Store performs one network fetch per category and memoizes the result.
// Concurrent first-time callers share a single in-flight fetch; a failed
// load is not cached, so the next caller retries.
type Store struct {
	fetcher Fetcher

	mu      sync.RWMutex
	loaded  map[entity.Category]*entity.Catalog
	flights singleflight.Group
}

func NewStore(fetcher Fetcher) *Store {
	return &Store{
		fetcher: fetcher,
		loaded:  make(map[entity.Category]*entity.Catalog),
	}
}

// Load returns the memoized catalog, fetching it on first access. The
// returned catalog is shared and mutable: the overlay patches prices in
// place, but the key set is fixed after load.
func (s *Store) Load(ctx context.Context, category entity.Category) (*entity.Catalog, error) {
	if c := s.peek(category); c != nil {
		return c, nil
	}

	v, err, _ := s.flights.Do(category.String(), func() (any, error) {
		if c := s.peek(category); c != nil {
			return c, nil
		}

		ores, err := s.fetcher.FetchOres(ctx, category)
		if err != nil {
			return nil, err
		}

		c := entity.NewCatalog(category, ores)

		s.mu.Lock()
		s.loaded[category] = c
		s.mu.Unlock()

		return c, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*entity.Catalog), nil
}

// Loaded returns the catalog without triggering a fetch.
func (s *Store) Loaded(category entity.Category) (*entity.Catalog, bool) {
	c := s.peek(category)
	return c, c != nil
}

func (s *Store) peek(category entity.Category) *entity.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded[category]
}
