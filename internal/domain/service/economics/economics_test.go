package economics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mining_hub/internal/domain/entity"
	"mining_hub/internal/domain/service/basket"
	"mining_hub/internal/domain/service/economics"
)

func price(v float64) *float64 { return &v }

func shipCatalog(unitPrice *float64) *entity.Catalog {
	return entity.NewCatalog(entity.ShipMineable, []*entity.Ore{
		{Key: "quantainium", Name: "Quantainium", UnitPrice: unitPrice},
	})
}

func snapshot(category entity.Category, qty float64) basket.Snapshot {
	b := basket.New(category)
	b.Toggle("quantainium")
	b.SetQuantity("quantainium", qty)
	return b.Snapshot()
}

func TestBelowTargetIsAvoid(t *testing.T) {
	rq := require.New(t)

	// 10 SCU at 500 aUEC over 30 min against an 80k/h target.
	summary := economics.Compute(
		snapshot(entity.ShipMineable, 10),
		shipCatalog(price(500)),
		economics.Input{SessionMinutes: 30, TargetPerHour: 80_000},
	)

	rq.Equal(5_000.0, summary.Total)
	rq.Equal(10_000.0, summary.RatePerHour)
	rq.Equal(entity.VerdictAvoid, summary.Verdict)
	rq.Empty(summary.MissingPrices)
}

func TestExcellentBoundaryInclusive(t *testing.T) {
	rq := require.New(t)

	// 100 SCU at 500 over 30 min = 100k/h; exactly 1.25 x 80k.
	summary := economics.Compute(
		snapshot(entity.ShipMineable, 100),
		shipCatalog(price(500)),
		economics.Input{SessionMinutes: 30, TargetPerHour: 80_000},
	)

	rq.Equal(50_000.0, summary.Total)
	rq.Equal(100_000.0, summary.RatePerHour)
	rq.Equal(entity.VerdictExcellent, summary.Verdict)
	rq.NotNil(summary.DeltaPercent)
	rq.InDelta(25, *summary.DeltaPercent, 1e-9)
	rq.NotNil(summary.TimeToTargetMin)
	rq.InDelta(48, *summary.TimeToTargetMin, 1e-9)
}

func TestVehicleQuantityConverted(t *testing.T) {
	rq := require.New(t)

	catalog := entity.NewCatalog(entity.VehicleMineable, []*entity.Ore{
		{Key: "hadanite", Name: "Hadanite", UnitPrice: price(2000)},
	})

	b := basket.New(entity.VehicleMineable)
	b.Toggle("hadanite")
	b.SetQuantity("hadanite", 1000)

	// 1000 mSCU = 1 SCU at 2000/SCU.
	summary := economics.Compute(
		b.Snapshot(),
		catalog,
		economics.Input{SessionMinutes: 60, TargetPerHour: 0},
	)

	rq.Equal(2_000.0, summary.Total)
	rq.Equal(entity.VerdictInformational, summary.Verdict)
	rq.Nil(summary.DeltaPercent)
}

func TestMissingPriceContributesZero(t *testing.T) {
	rq := require.New(t)

	summary := economics.Compute(
		snapshot(entity.ShipMineable, 10),
		shipCatalog(nil),
		economics.Input{SessionMinutes: 30, TargetPerHour: 80_000},
	)

	rq.Zero(summary.Total)
	rq.Equal(entity.VerdictUndetermined, summary.Verdict)
	rq.Equal([]string{"Quantainium"}, summary.MissingPrices)
}

func TestZeroQuantityIgnored(t *testing.T) {
	rq := require.New(t)

	summary := economics.Compute(
		snapshot(entity.ShipMineable, 0),
		shipCatalog(price(500)),
		economics.Input{SessionMinutes: 30, TargetPerHour: 80_000},
	)

	rq.Zero(summary.Total)
	rq.Equal(entity.VerdictUndetermined, summary.Verdict)
	rq.Empty(summary.MissingPrices)
}

func TestVerdictMonotonicInTotal(t *testing.T) {
	rq := require.New(t)

	catalog := shipCatalog(price(500))
	in := economics.Input{SessionMinutes: 30, TargetPerHour: 80_000}

	prev := entity.VerdictAvoid
	for qty := 1.0; qty <= 200; qty += 1 {
		summary := economics.Compute(snapshot(entity.ShipMineable, qty), catalog, in)
		rq.True(summary.Verdict.AtLeast(prev),
			"verdict regressed at qty=%v: %s -> %s", qty, prev, summary.Verdict)
		prev = summary.Verdict
	}
	rq.Equal(entity.VerdictExcellent, prev)
}

func TestClampInput(t *testing.T) {
	rq := require.New(t)

	in := economics.ClampInput(economics.Input{SessionMinutes: 0, TargetPerHour: -5})
	rq.Equal(economics.MinSessionMinutes, in.SessionMinutes)
	rq.Zero(in.TargetPerHour)

	in = economics.ClampInput(economics.Input{SessionMinutes: 10_000, TargetPerHour: 1e18})
	rq.Equal(economics.MaxSessionMinutes, in.SessionMinutes)
	rq.EqualValues(economics.MaxTargetPerHour, in.TargetPerHour)
}
