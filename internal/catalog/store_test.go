package catalog_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"mining_hub/internal/catalog"
	"mining_hub/internal/domain"
	"mining_hub/internal/domain/entity"
	"mining_hub/pkg/errcodes"
)

type fetcherFunc func(ctx context.Context, category entity.Category) ([]*entity.Ore, error)

func (f fetcherFunc) FetchOres(ctx context.Context, category entity.Category) ([]*entity.Ore, error) {
	return f(ctx, category)
}

func TestLoadMemoizesPerCategory(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var fetches atomic.Int32
	store := catalog.NewStore(fetcherFunc(func(_ context.Context, category entity.Category) ([]*entity.Ore, error) {
		fetches.Add(1)
		return []*entity.Ore{{Key: "ore-" + category.String()}}, nil
	}))

	first, err := store.Load(ctx, entity.ShipMineable)
	rq.NoError(err)

	again, err := store.Load(ctx, entity.ShipMineable)
	rq.NoError(err)
	rq.Same(first, again)

	vehicle, err := store.Load(ctx, entity.VehicleMineable)
	rq.NoError(err)
	rq.True(vehicle.Has("ore-vehicle"))

	rq.EqualValues(2, fetches.Load())
}

func TestLoadSingleFlightUnderConcurrency(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var fetches atomic.Int32
	release := make(chan struct{})

	store := catalog.NewStore(fetcherFunc(func(context.Context, entity.Category) ([]*entity.Ore, error) {
		fetches.Add(1)
		<-release
		return []*entity.Ore{{Key: "quantainium"}}, nil
	}))

	const callers = 8

	var wg sync.WaitGroup
	results := make([]*entity.Catalog, callers)

	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := store.Load(ctx, entity.ShipMineable)
			rq.NoError(err)
			results[i] = c
		}()
	}

	close(release)
	wg.Wait()

	rq.EqualValues(1, fetches.Load())
	for _, c := range results {
		rq.Same(results[0], c)
	}
}

func TestLoadFailureIsNotCached(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var fetches atomic.Int32
	store := catalog.NewStore(fetcherFunc(func(context.Context, entity.Category) ([]*entity.Ore, error) {
		if fetches.Add(1) == 1 {
			return nil, domain.NewError(errcodes.DatasetUnavailable, "boom")
		}
		return []*entity.Ore{{Key: "quantainium"}}, nil
	}))

	_, err := store.Load(ctx, entity.ShipMineable)
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.DatasetUnavailable))

	_, ok := store.Loaded(entity.ShipMineable)
	rq.False(ok)

	c, err := store.Load(ctx, entity.ShipMineable)
	rq.NoError(err)
	rq.True(c.Has("quantainium"))
	rq.EqualValues(2, fetches.Load())
}
