package overlay_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mining_hub/internal/domain/entity"
	"mining_hub/internal/infrastructure/uexlive"
	"mining_hub/internal/overlay"
)

type clientFunc func(ctx context.Context, keys []string, prefer string, topN int) (*uexlive.Result, error)

func (f clientFunc) FetchOres(ctx context.Context, keys []string, prefer string, topN int) (*uexlive.Result, error) {
	return f(ctx, keys, prefer, topN)
}

func liveResult() *uexlive.Result {
	return &uexlive.Result{
		Ores: map[string]uexlive.OreEntry{
			"quantainium": {PriceAuECPerSCU: ptr(22_000)},
		},
		Meta: uexlive.Meta{UpdatedAt: 1_700_000_000, Source: "uex"},
	}
}

func TestRefreshNoSelectionStaysLocal(t *testing.T) {
	rq := require.New(t)

	o := overlay.New(clientFunc(func(context.Context, []string, string, int) (*uexlive.Result, error) {
		t.Fatal("must not fetch without selection")
		return nil, nil
	}), "best", 5)

	status := o.Refresh(context.Background(), entity.ShipMineable, nil, true, func(*uexlive.Result) {})
	rq.Equal(overlay.StatusLocal, status)
}

func TestRefreshSuccessAppliesAndSetsLive(t *testing.T) {
	rq := require.New(t)

	o := overlay.New(clientFunc(func(_ context.Context, keys []string, prefer string, topN int) (*uexlive.Result, error) {
		rq.Equal([]string{"quantainium"}, keys)
		rq.Equal("best", prefer)
		rq.Equal(5, topN)
		return liveResult(), nil
	}), "best", 5)

	applied := 0
	status := o.Refresh(context.Background(), entity.ShipMineable, []string{"quantainium"}, true, func(res *uexlive.Result) {
		applied++
		rq.Contains(res.Ores, "quantainium")
	})

	rq.Equal(overlay.StatusLive, status)
	rq.Equal(1, applied)

	st, meta := o.State(entity.ShipMineable)
	rq.Equal(overlay.StatusLive, st)
	rq.NotNil(meta)
	rq.Equal("uex", meta.Source)
}

func TestRefreshFailureLeavesCatalogAlone(t *testing.T) {
	rq := require.New(t)

	o := overlay.New(clientFunc(func(context.Context, []string, string, int) (*uexlive.Result, error) {
		return nil, errors.New("worker down")
	}), "best", 5)

	status := o.Refresh(context.Background(), entity.ShipMineable, []string{"quantainium"}, true, func(*uexlive.Result) {
		t.Fatal("apply must not run on failure")
	})

	rq.Equal(overlay.StatusError, status)

	st, meta := o.State(entity.ShipMineable)
	rq.Equal(overlay.StatusError, st)
	rq.Nil(meta)
}

func TestRefreshThrottled(t *testing.T) {
	rq := require.New(t)

	now := time.Unix(1_700_000_000, 0)
	var fetches atomic.Int32

	o := overlay.New(clientFunc(func(context.Context, []string, string, int) (*uexlive.Result, error) {
		fetches.Add(1)
		return liveResult(), nil
	}), "best", 5,
		overlay.WithMinInterval(time.Minute),
		overlay.WithClock(func() time.Time { return now }),
	)

	keys := []string{"quantainium"}
	apply := func(*uexlive.Result) {}
	ctx := context.Background()

	rq.Equal(overlay.StatusLive, o.Refresh(ctx, entity.ShipMineable, keys, false, apply))
	rq.EqualValues(1, fetches.Load())

	// Within the floor: no-op, status unchanged.
	rq.Equal(overlay.StatusLive, o.Refresh(ctx, entity.ShipMineable, keys, false, apply))
	rq.EqualValues(1, fetches.Load())

	// Force bypasses the floor.
	rq.Equal(overlay.StatusLive, o.Refresh(ctx, entity.ShipMineable, keys, true, apply))
	rq.EqualValues(2, fetches.Load())

	// Past the floor the throttle opens again.
	now = now.Add(61 * time.Second)
	rq.Equal(overlay.StatusLive, o.Refresh(ctx, entity.ShipMineable, keys, false, apply))
	rq.EqualValues(3, fetches.Load())
}

func TestRefreshDedupesConcurrentCalls(t *testing.T) {
	rq := require.New(t)

	release := make(chan struct{})
	var fetches atomic.Int32

	o := overlay.New(clientFunc(func(context.Context, []string, string, int) (*uexlive.Result, error) {
		fetches.Add(1)
		<-release
		return liveResult(), nil
	}), "best", 5)

	keys := []string{"quantainium"}
	ctx := context.Background()

	const callers = 6

	var wg sync.WaitGroup
	statuses := make([]overlay.Status, callers)

	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			statuses[i] = o.Refresh(ctx, entity.ShipMineable, keys, true, func(*uexlive.Result) {})
		}()
	}

	// Let every goroutine reach the overlay before releasing the fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	rq.EqualValues(1, fetches.Load())
	for _, st := range statuses {
		rq.Equal(overlay.StatusLive, st)
	}
}

func TestCategoriesAreIndependent(t *testing.T) {
	rq := require.New(t)

	o := overlay.New(clientFunc(func(_ context.Context, keys []string, _ string, _ int) (*uexlive.Result, error) {
		if keys[0] == "hadanite" {
			return nil, errors.New("vehicle endpoint down")
		}
		return liveResult(), nil
	}), "best", 5)

	ctx := context.Background()
	apply := func(*uexlive.Result) {}

	rq.Equal(overlay.StatusLive, o.Refresh(ctx, entity.ShipMineable, []string{"quantainium"}, true, apply))
	rq.Equal(overlay.StatusError, o.Refresh(ctx, entity.VehicleMineable, []string{"hadanite"}, true, apply))

	st, _ := o.State(entity.ShipMineable)
	rq.Equal(overlay.StatusLive, st)
	st, _ = o.State(entity.VehicleMineable)
	rq.Equal(overlay.StatusError, st)
}
