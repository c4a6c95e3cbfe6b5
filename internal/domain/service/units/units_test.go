package units_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mining_hub/internal/domain/entity"
	"mining_hub/internal/domain/service/units"
)

func TestConversionFactor(t *testing.T) {
	rq := require.New(t)

	rq.EqualValues(1000, units.SCUToMSCU)
	rq.InDelta(1, units.ToCanonical(entity.VehicleMineable, 1000), 1e-9)
	rq.InDelta(2000, units.ToDisplay(entity.VehicleMineable, 2), 1e-9)
}

func TestShipIsIdentity(t *testing.T) {
	rq := require.New(t)

	for _, q := range []float64{0, 0.5, 1, 32, 576.25} {
		rq.Equal(q, units.ToCanonical(entity.ShipMineable, q))
		rq.Equal(q, units.ToDisplay(entity.ShipMineable, q))
	}
}

func TestVehicleRoundTrip(t *testing.T) {
	rq := require.New(t)

	for _, q := range []float64{0, 1, 10, 333, 1000, 1234.5, 999999} {
		got := units.ToDisplay(entity.VehicleMineable, units.ToCanonical(entity.VehicleMineable, q))
		rq.InDelta(q, got, 1e-9)
	}
}

func TestDisplayUnitLabel(t *testing.T) {
	rq := require.New(t)

	rq.Equal("SCU", units.DisplayUnitLabel(entity.ShipMineable))
	rq.Equal("mSCU", units.DisplayUnitLabel(entity.VehicleMineable))
}
