// Package worker runs the periodic live price refresher. It walks the
// categories on an interval and renews live prices for whatever is selected,
// so summaries stay current between user actions.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"mining_hub/internal/domain/entity"
	"mining_hub/internal/engine"
	"mining_hub/internal/overlay"
	"mining_hub/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const defaultTickInterval = 90 * time.Second

type Refresher struct {
	engine *engine.Engine

	tickInterval time.Duration
	lastTick     time.Time

	// Control fields
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewRefresher(e *engine.Engine) *Refresher {
	return &Refresher{
		engine:       e,
		tickInterval: defaultTickInterval,
	}
}

func (w *Refresher) WithTickInterval(d time.Duration) *Refresher {
	if d > 0 {
		w.tickInterval = d
	}
	return w
}

func (w *Refresher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("refresher is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(runCtx).Error("refresher stopped", "error", err)
		}
	}()

	return nil
}

func (w *Refresher) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *Refresher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

func (w *Refresher) run(ctx context.Context) error {
	logger(ctx).Info("live price refresher started", "interval", w.tickInterval.String())

	for {
		if err := w.waitForNextSlot(ctx); err != nil {
			logger(ctx).Info("live price refresher stopped")
			return err
		}

		w.refreshAll(ctx)
	}
}

// waitForNextSlot paces the loop: at most one pass per tick interval, the
// first pass immediate.
func (w *Refresher) waitForNextSlot(ctx context.Context) error {
	if w.lastTick.IsZero() {
		w.lastTick = time.Now()
		return nil
	}

	elapsed := time.Since(w.lastTick)
	if elapsed >= w.tickInterval {
		w.lastTick = time.Now()
		return nil
	}

	select {
	case <-time.After(w.tickInterval - elapsed):
		w.lastTick = time.Now()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Refresher) refreshAll(ctx context.Context) {
	for _, category := range entity.Categories() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if len(w.engine.Basket(category).SelectedKeys()) == 0 {
			continue
		}

		// Unforced: the overlay's own throttle floor still applies, so a
		// user-triggered refresh moments ago is not repeated here.
		if st := w.engine.RefreshLive(ctx, category, false); st == overlay.StatusError {
			logger(ctx).Warn("background refresh failed", "category", category.String())
		}
	}
}
