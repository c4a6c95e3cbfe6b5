package capacity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"mining_hub/internal/domain/entity"
	"mining_hub/internal/domain/service/capacity"
)

type lookupFunc func(ctx context.Context, shipName string) (*float64, error)

func (f lookupFunc) ShipCapacitySCU(ctx context.Context, shipName string) (*float64, error) {
	return f(ctx, shipName)
}

func TestVehicleCapacityTable(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	a := capacity.NewAdvisor(nil)

	cap, ok := a.CapacitySCU(ctx, entity.VehicleMineable, capacity.Loadout{Vehicle: entity.VehicleROC})
	rq.True(ok)
	rq.Equal(1.2, cap)

	cap, ok = a.CapacitySCU(ctx, entity.VehicleMineable, capacity.Loadout{Vehicle: entity.VehicleROCDS})
	rq.True(ok)
	rq.Equal(3.4, cap)

	_, ok = a.CapacitySCU(ctx, entity.VehicleMineable, capacity.Loadout{Vehicle: "mule"})
	rq.False(ok)
}

func TestShipCapacityDelegatesAndCaches(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	calls := 0
	a := capacity.NewAdvisor(lookupFunc(func(_ context.Context, shipName string) (*float64, error) {
		calls++
		rq.Equal("Prospector", shipName)
		cap := 32.0
		return &cap, nil
	}))

	for range 3 {
		cap, ok := a.CapacitySCU(ctx, entity.ShipMineable, capacity.Loadout{ShipName: "Prospector"})
		rq.True(ok)
		rq.Equal(32.0, cap)
	}
	rq.Equal(1, calls)
}

func TestShipCapacityUnknownOrFailing(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	_, ok := capacity.NewAdvisor(lookupFunc(func(context.Context, string) (*float64, error) {
		return nil, nil
	})).CapacitySCU(ctx, entity.ShipMineable, capacity.Loadout{ShipName: "Nomad"})
	rq.False(ok)

	_, ok = capacity.NewAdvisor(lookupFunc(func(context.Context, string) (*float64, error) {
		return nil, errors.New("roster down")
	})).CapacitySCU(ctx, entity.ShipMineable, capacity.Loadout{ShipName: "Prospector"})
	rq.False(ok)

	_, ok = capacity.NewAdvisor(nil).CapacitySCU(ctx, entity.ShipMineable, capacity.Loadout{ShipName: "Prospector"})
	rq.False(ok)
}

func TestCheckOverflowVehicleDisplayUnits(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	a := capacity.NewAdvisor(nil)

	// ROC: 1.2 SCU = 1200 mSCU.
	check := a.CheckOverflow(ctx, entity.VehicleMineable, 1000, capacity.Loadout{Vehicle: entity.VehicleROC})
	rq.NotNil(check.CapacityDisplay)
	rq.InDelta(1200, *check.CapacityDisplay, 1e-9)
	rq.False(check.Exceeded)

	check = a.CheckOverflow(ctx, entity.VehicleMineable, 1201, capacity.Loadout{Vehicle: entity.VehicleROC})
	rq.True(check.Exceeded)

	// Zero total never exceeds.
	check = a.CheckOverflow(ctx, entity.VehicleMineable, 0, capacity.Loadout{Vehicle: entity.VehicleROC})
	rq.False(check.Exceeded)
}

func TestCheckOverflowNoCapacitySource(t *testing.T) {
	rq := require.New(t)

	check := capacity.NewAdvisor(nil).CheckOverflow(context.Background(), entity.ShipMineable, 500, capacity.Loadout{})
	rq.Nil(check.CapacityDisplay)
	rq.False(check.Exceeded)
}
