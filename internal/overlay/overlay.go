// Package overlay refreshes live prices onto the static catalogs without
// destroying their fallback data.
package overlay

import (
	"context"
	"sync"
	"time"

	"mining_hub/internal/domain/entity"
	"mining_hub/internal/infrastructure/pricecache"
	"mining_hub/internal/infrastructure/uexlive"
	"mining_hub/pkg/contextx"
	"mining_hub/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Status string

const (
	StatusLocal   Status = "local"   // never fetched or nothing selected
	StatusLoading Status = "loading" // request in flight
	StatusLive    Status = "live"    // last fetch succeeded
	StatusError   Status = "error"   // last fetch failed, static prices remain
)

const DefaultMinInterval = 60 * time.Second

// Client is the live price source. Implemented by infrastructure/uexlive.
type Client interface {
	FetchOres(ctx context.Context, keys []string, prefer string, topN int) (*uexlive.Result, error)
}

// Overlay owns the per-category refresh state: the throttle floor, the
// in-flight dedupe and the last fetch metadata. Merging into a catalog is
// delegated to the caller through an apply callback so catalog locking stays
// with the catalog owner.
type Overlay struct {
	client      Client
	snapshots   *pricecache.Cache
	minInterval time.Duration
	prefer      string
	topN        int
	now         func() time.Time

	mu     sync.Mutex
	states map[entity.Category]*state
}

type state struct {
	lastFetchAt time.Time
	status      Status
	meta        *uexlive.Meta
	inflight    *flight
}

// flight lets concurrent refresh calls attach to the running request instead
// of issuing a second one.
type flight struct {
	done   chan struct{}
	result Status
}

type Option func(*Overlay)

func WithMinInterval(d time.Duration) Option {
	return func(o *Overlay) {
		if d > 0 {
			o.minInterval = d
		}
	}
}

func WithSnapshotCache(c *pricecache.Cache) Option {
	return func(o *Overlay) {
		o.snapshots = c
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *Overlay) {
		o.now = now
	}
}

func New(client Client, prefer string, topN int, opts ...Option) *Overlay {
	o := &Overlay{
		client:      client,
		minInterval: DefaultMinInterval,
		prefer:      prefer,
		topN:        clampTopN(topN),
		now:         time.Now,
		states:      make(map[entity.Category]*state),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Refresh fetches live prices for keys and hands the payload to apply on
// success. Throttled by minInterval unless force; concurrent calls for the
// same category attach to the running request. A failed fetch never touches
// the catalog: the status just flips to error.
func (o *Overlay) Refresh(ctx context.Context, category entity.Category, keys []string, force bool, apply func(*uexlive.Result)) Status {
	if len(keys) == 0 {
		o.mu.Lock()
		st := o.stateLocked(category)
		if st.inflight == nil {
			st.status = StatusLocal
		}
		status := st.status
		o.mu.Unlock()
		return status
	}

	o.mu.Lock()
	st := o.stateLocked(category)

	if f := st.inflight; f != nil {
		o.mu.Unlock()
		select {
		case <-f.done:
			return f.result
		case <-ctx.Done():
			return StatusLoading
		}
	}

	if !force && o.now().Sub(st.lastFetchAt) < o.minInterval {
		status := st.status
		o.mu.Unlock()
		return status
	}

	f := &flight{done: make(chan struct{})}
	st.inflight = f
	st.status = StatusLoading
	o.mu.Unlock()

	status := o.execute(ctx, category, keys, apply)

	o.mu.Lock()
	st.inflight = nil
	st.status = status
	o.mu.Unlock()

	f.result = status
	close(f.done)

	return status
}

func (o *Overlay) execute(ctx context.Context, category entity.Category, keys []string, apply func(*uexlive.Result)) Status {
	result, err := o.client.FetchOres(ctx, keys, o.prefer, o.topN)
	if err != nil {
		// Non-fatal: callers fall back to static display.
		logger(ctx).Warn("live overlay unavailable",
			"category", category.String(), logx.Error(err))
		refreshesTotal.WithLabelValues(category.String(), "error").Inc()
		return StatusError
	}
	if result == nil {
		return StatusLocal
	}

	apply(result)

	now := o.now()

	o.mu.Lock()
	st := o.stateLocked(category)
	st.lastFetchAt = now
	meta := result.Meta
	st.meta = &meta
	o.mu.Unlock()

	refreshesTotal.WithLabelValues(category.String(), "live").Inc()
	lastSuccessTimestamp.WithLabelValues(category.String()).Set(float64(now.Unix()))

	if err := o.snapshots.Store(ctx, category, result); err != nil {
		logger(ctx).Warn("live snapshot store failed", logx.Error(err))
	}

	return StatusLive
}

// WarmFromSnapshot applies the last cached payload, if any. It does not count
// as a fetch: the status stays local until a real refresh succeeds.
func (o *Overlay) WarmFromSnapshot(ctx context.Context, category entity.Category, apply func(*uexlive.Result)) {
	result, err := o.snapshots.Load(ctx, category)
	if err != nil {
		logger(ctx).Warn("live snapshot load failed", logx.Error(err))
		return
	}
	if result == nil {
		return
	}

	apply(result)
	logger(ctx).Info("live prices warmed from snapshot",
		"category", category.String(), "keys", len(result.Ores))
}

// State reports the current status and last fetch metadata for a category.
func (o *Overlay) State(category entity.Category) (Status, *uexlive.Meta) {
	o.mu.Lock()
	defer o.mu.Unlock()

	st := o.stateLocked(category)

	var meta *uexlive.Meta
	if st.meta != nil {
		m := *st.meta
		meta = &m
	}

	return st.status, meta
}

func (o *Overlay) Prefer() string {
	return o.prefer
}

func (o *Overlay) TopN() int {
	return o.topN
}

func (o *Overlay) MinInterval() time.Duration {
	return o.minInterval
}

func (o *Overlay) stateLocked(category entity.Category) *state {
	st, ok := o.states[category]
	if !ok {
		st = &state{status: StatusLocal}
		o.states[category] = st
	}
	return st
}

func clampTopN(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}
