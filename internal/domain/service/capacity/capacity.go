// Package capacity resolves the mineral storage ceiling for the current
// loadout and flags overflow. Vehicle ceilings are fixed constants; ship
// ceilings come from an external roster collaborator.
package capacity

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"mining_hub/internal/domain/entity"
	"mining_hub/internal/domain/service/units"
	"mining_hub/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Mineral storage per vehicle variant, SCU.
var vehicleCapacitySCU = map[entity.VehicleVariant]float64{ //nolint:gochecknoglobals
	entity.VehicleROC:   1.2,
	entity.VehicleROCDS: 3.4,
}

const (
	lookupCacheTTL     = 5 * time.Minute
	lookupCacheCleanup = 10 * time.Minute
)

// ShipCapacityLookup is the external collaborator resolving a ship's mineral
// storage by name. A nil capacity means the ship is unknown.
type ShipCapacityLookup interface {
	ShipCapacitySCU(ctx context.Context, shipName string) (*float64, error)
}

// Loadout names the capacity source for a summary request.
type Loadout struct {
	ShipName string
	Vehicle  entity.VehicleVariant
}

type Advisor struct {
	ships       ShipCapacityLookup
	lookupCache *cache.Cache
}

func NewAdvisor(ships ShipCapacityLookup) *Advisor {
	return &Advisor{
		ships:       ships,
		lookupCache: cache.New(lookupCacheTTL, lookupCacheCleanup),
	}
}

// CapacitySCU resolves the ceiling in canonical SCU. ok is false when no
// capacity source applies (unknown ship, collaborator failure, empty loadout).
func (a *Advisor) CapacitySCU(ctx context.Context, category entity.Category, loadout Loadout) (float64, bool) {
	if category == entity.VehicleMineable {
		cap, ok := vehicleCapacitySCU[loadout.Vehicle]
		return cap, ok
	}

	if loadout.ShipName == "" || a.ships == nil {
		return 0, false
	}

	if cached, found := a.lookupCache.Get(loadout.ShipName); found {
		cap, ok := cached.(float64)
		return cap, ok
	}

	cap, err := a.ships.ShipCapacitySCU(ctx, loadout.ShipName)
	if err != nil {
		// Non-fatal: capacity hint is simply omitted.
		logger(ctx).Warn("ship capacity lookup failed", "ship", loadout.ShipName, "error", err)
		return 0, false
	}
	if cap == nil || *cap <= 0 {
		a.lookupCache.Set(loadout.ShipName, nil, cache.DefaultExpiration)
		return 0, false
	}

	a.lookupCache.Set(loadout.ShipName, *cap, cache.DefaultExpiration)
	return *cap, true
}

// CheckOverflow compares the basket total against the ceiling in the
// category's display unit. Exceeded only when the total is positive.
func (a *Advisor) CheckOverflow(ctx context.Context, category entity.Category, totalDisplayQty float64, loadout Loadout) entity.CapacityCheck {
	capSCU, ok := a.CapacitySCU(ctx, category, loadout)
	if !ok {
		return entity.CapacityCheck{}
	}

	capDisplay := units.ToDisplay(category, capSCU)

	return entity.CapacityCheck{
		CapacityDisplay: &capDisplay,
		Exceeded:        totalDisplayQty > 0 && totalDisplayQty > capDisplay,
	}
}
