// Package engine owns the per-category catalog/basket pairs and the live
// overlay state, and exposes the operations the transport layer calls. One
// Engine instance replaces what used to be ambient page state: everything is
// addressed through the category enum.
package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"mining_hub/internal/catalog"
	"mining_hub/internal/domain"
	"mining_hub/internal/domain/entity"
	"mining_hub/internal/domain/service/basket"
	"mining_hub/internal/domain/service/capacity"
	"mining_hub/internal/domain/service/economics"
	"mining_hub/internal/domain/service/units"
	"mining_hub/internal/infrastructure/uexlive"
	"mining_hub/internal/overlay"
	"mining_hub/pkg/contextx"
	"mining_hub/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Engine struct {
	catalogs *catalog.Store
	live     *overlay.Overlay
	advisor  *capacity.Advisor

	// catalogMu serializes catalog price mutation (overlay merges) against
	// reads (summaries, catalog dumps). Baskets carry their own locks.
	catalogMu sync.RWMutex

	baskets map[entity.Category]*basket.Basket
}

func New(catalogs *catalog.Store, live *overlay.Overlay, advisor *capacity.Advisor) *Engine {
	baskets := make(map[entity.Category]*basket.Basket, len(entity.Categories()))
	for _, c := range entity.Categories() {
		baskets[c] = basket.New(c)
	}

	return &Engine{
		catalogs: catalogs,
		live:     live,
		advisor:  advisor,
		baskets:  baskets,
	}
}

// Catalog loads (once) and returns the catalog for a category.
func (e *Engine) Catalog(ctx context.Context, category entity.Category) (*entity.Catalog, error) {
	c, err := e.catalogs.Load(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("catalogs.Load: %w", err)
	}
	return c, nil
}

// CatalogView returns a point-in-time copy of the catalog ores, safe to read
// while live merges keep patching the originals.
func (e *Engine) CatalogView(ctx context.Context, category entity.Category) ([]entity.Ore, error) {
	c, err := e.Catalog(ctx, category)
	if err != nil {
		return nil, err
	}

	e.catalogMu.RLock()
	defer e.catalogMu.RUnlock()

	ores := make([]entity.Ore, 0, len(c.Ores))
	for _, o := range c.Ores {
		ores = append(ores, *o)
	}

	return ores, nil
}

func (e *Engine) Basket(category entity.Category) *basket.Basket {
	return e.baskets[category]
}

// Toggle flips key in the category basket. Adding a key triggers a forced
// live refresh for the new selection, fired in the background: the toggle
// returns immediately and refreshed prices land through the merge callback.
func (e *Engine) Toggle(ctx context.Context, category entity.Category, key string) (basket.Action, error) {
	c, err := e.Catalog(ctx, category)
	if err != nil {
		return "", err
	}
	if !c.Has(key) {
		return "", domain.NewError(errcodes.OreNotFound, fmt.Sprintf("ore %q is not in the %s catalog", key, category))
	}

	action := e.baskets[category].Toggle(key)

	// Detached from the request context so an early client disconnect does
	// not abort the refresh mid-flight.
	refreshCtx := context.WithoutCancel(ctx)
	go e.RefreshLive(refreshCtx, category, true)

	return action, nil
}

func (e *Engine) SetQuantity(ctx context.Context, category entity.Category, key string, value float64) error {
	c, err := e.Catalog(ctx, category)
	if err != nil {
		return err
	}
	if !c.Has(key) {
		return domain.NewError(errcodes.OreNotFound, fmt.Sprintf("ore %q is not in the %s catalog", key, category))
	}

	e.baskets[category].SetQuantity(key, value)
	return nil
}

func (e *Engine) SetActive(category entity.Category, key string) {
	e.baskets[category].SetActive(key)
}

// RefreshLive refreshes live prices for the category's current selection.
// Never returns an error: a failed refresh degrades to static prices and an
// error status.
func (e *Engine) RefreshLive(ctx context.Context, category entity.Category, force bool) overlay.Status {
	c, ok := e.catalogs.Loaded(category)
	if !ok {
		// Nothing to overlay onto yet.
		return overlay.StatusLocal
	}

	keys := e.baskets[category].SelectedKeys()

	return e.live.Refresh(ctx, category, keys, force, func(result *uexlive.Result) {
		e.catalogMu.Lock()
		defer e.catalogMu.Unlock()
		overlay.Merge(c, result)
	})
}

// WarmFromSnapshot overlays the last cached live payload, typically at
// startup, so prices are recent before the first real refresh.
func (e *Engine) WarmFromSnapshot(ctx context.Context, category entity.Category) {
	c, err := e.Catalog(ctx, category)
	if err != nil {
		logger(ctx).Warn("snapshot warm skipped, catalog unavailable", "category", category.String())
		return
	}

	e.live.WarmFromSnapshot(ctx, category, func(result *uexlive.Result) {
		e.catalogMu.Lock()
		defer e.catalogMu.Unlock()
		overlay.Merge(c, result)
	})
}

// LiveStatus reports the overlay status for a category.
func (e *Engine) LiveStatus(category entity.Category) (overlay.Status, *uexlive.Meta) {
	return e.live.State(category)
}

// Summary computes the economics for the current selection plus the capacity
// check for the given loadout.
func (e *Engine) Summary(ctx context.Context, category entity.Category, in economics.Input, loadout capacity.Loadout) (entity.Summary, entity.CapacityCheck, error) {
	c, err := e.Catalog(ctx, category)
	if err != nil {
		return entity.Summary{}, entity.CapacityCheck{}, err
	}

	b := e.baskets[category]

	e.catalogMu.RLock()
	summary := economics.Compute(b.Snapshot(), c, in)
	e.catalogMu.RUnlock()

	check := e.advisor.CheckOverflow(ctx, category, b.TotalDisplayQuantity(), loadout)

	return summary, check, nil
}

// TopSellers returns the best sellers for one ore, prices scaled to the
// category display unit.
func (e *Engine) TopSellers(ctx context.Context, category entity.Category, key string, limit int) (string, []entity.Seller, error) {
	c, err := e.Catalog(ctx, category)
	if err != nil {
		return "", nil, err
	}

	ore, ok := c.Get(key)
	if !ok {
		return "", nil, domain.NewError(errcodes.OreNotFound, fmt.Sprintf("ore %q is not in the %s catalog", key, category))
	}

	e.catalogMu.RLock()
	defer e.catalogMu.RUnlock()

	sellers := make([]entity.Seller, 0, len(ore.Sellers))
	for _, s := range ore.Sellers {
		if s.PriceAuECPerSCU <= 0 {
			continue
		}
		sellers = append(sellers, entity.Seller{
			Name:            s.Name,
			PriceAuECPerSCU: s.PriceAuECPerSCU / unitScale(category),
		})
	}

	sort.SliceStable(sellers, func(i, j int) bool {
		return sellers[i].PriceAuECPerSCU > sellers[j].PriceAuECPerSCU
	})
	if limit > 0 && len(sellers) > limit {
		sellers = sellers[:limit]
	}

	return ore.Name, sellers, nil
}

// Reset clears every basket back to an empty selection.
func (e *Engine) Reset() {
	for _, b := range e.baskets {
		b.Reset()
	}
}

func unitScale(category entity.Category) float64 {
	if category == entity.VehicleMineable {
		return units.SCUToMSCU
	}
	return 1
}
