package overlay_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mining_hub/internal/domain/entity"
	"mining_hub/internal/infrastructure/uexlive"
	"mining_hub/internal/overlay"
)

func ptr(v float64) *float64 { return &v }

func staticCatalog() *entity.Catalog {
	return entity.NewCatalog(entity.ShipMineable, []*entity.Ore{
		{
			Key:       "quantainium",
			Name:      "Quantainium",
			UnitPrice: ptr(21_000),
			Sellers: []entity.Seller{
				{Name: "Orison TDD", PriceAuECPerSCU: 21_500},
			},
		},
		{
			Key:       "laranite",
			Name:      "Laranite",
			UnitPrice: ptr(2_700),
			Sellers: []entity.Seller{
				{Name: "Area18 TDD", PriceAuECPerSCU: 2_750},
			},
		},
	})
}

func TestMergeOverwritesPositivePrice(t *testing.T) {
	rq := require.New(t)
	catalog := staticCatalog()

	changed := overlay.Merge(catalog, &uexlive.Result{
		Ores: map[string]uexlive.OreEntry{
			"quantainium": {
				PriceAuECPerSCU: ptr(22_345),
				PriceLast:       ptr(22_000),
				PriceAvg:        ptr(21_800),
				PriceField:      "price_sell_avg",
			},
		},
	})

	rq.Equal(1, changed)

	ore, _ := catalog.Get("quantainium")
	rq.Equal(22_345.0, *ore.UnitPrice)
	rq.Equal(22_000.0, *ore.LastPrice)
	rq.Equal(21_800.0, *ore.AvgPrice)
	rq.Equal("price_sell_avg", ore.PriceFieldLabel)
	rq.False(ore.LiveAt.IsZero())
}

func TestMergeIgnoresNonPositivePrice(t *testing.T) {
	rq := require.New(t)
	catalog := staticCatalog()

	overlay.Merge(catalog, &uexlive.Result{
		Ores: map[string]uexlive.OreEntry{
			"quantainium": {PriceAuECPerSCU: ptr(0)},
		},
	})

	ore, _ := catalog.Get("quantainium")
	rq.Equal(21_000.0, *ore.UnitPrice)
}

func TestMergeClearsProvenanceWhenOmitted(t *testing.T) {
	rq := require.New(t)
	catalog := staticCatalog()

	ore, _ := catalog.Get("quantainium")
	ore.LastPrice = ptr(20_000)
	ore.AvgPrice = ptr(20_500)
	ore.PriceFieldLabel = "stale"

	overlay.Merge(catalog, &uexlive.Result{
		Ores: map[string]uexlive.OreEntry{
			"quantainium": {PriceAuECPerSCU: ptr(22_000)},
		},
	})

	rq.Nil(ore.LastPrice)
	rq.Nil(ore.AvgPrice)
	rq.Empty(ore.PriceFieldLabel)
}

func TestMergePreservesSellersWhenLiveHasNone(t *testing.T) {
	rq := require.New(t)
	catalog := staticCatalog()

	overlay.Merge(catalog, &uexlive.Result{
		Ores: map[string]uexlive.OreEntry{
			"quantainium": {PriceAuECPerSCU: ptr(22_000)},
		},
	})

	ore, _ := catalog.Get("quantainium")
	rq.Equal([]entity.Seller{{Name: "Orison TDD", PriceAuECPerSCU: 21_500}}, ore.Sellers)
}

func TestMergeReplacesSellersWhenUsable(t *testing.T) {
	rq := require.New(t)
	catalog := staticCatalog()

	overlay.Merge(catalog, &uexlive.Result{
		Ores: map[string]uexlive.OreEntry{
			"quantainium": {
				PriceAuECPerSCU: ptr(22_000),
				Sellers: []uexlive.SellerDTO{
					{DisplayName: "New Babbage TDD", PriceAuECPerSCU: ptr(22_400)},
					{Name: "Broken", Price: ptr(0)}, // unusable, filtered
				},
			},
		},
	})

	ore, _ := catalog.Get("quantainium")
	rq.Equal([]entity.Seller{{Name: "New Babbage TDD", PriceAuECPerSCU: 22_400}}, ore.Sellers)
}

func TestMergeBestSellFallbackSeller(t *testing.T) {
	rq := require.New(t)
	catalog := staticCatalog()

	overlay.Merge(catalog, &uexlive.Result{
		Ores: map[string]uexlive.OreEntry{
			"quantainium": {
				PriceAuECPerSCU:      ptr(22_000),
				BestSell:             ptr(22_900),
				BestSellTerminalName: "CRU-L1",
			},
		},
	})

	ore, _ := catalog.Get("quantainium")
	rq.Equal([]entity.Seller{{Name: "CRU-L1", PriceAuECPerSCU: 22_900}}, ore.Sellers)
}

func TestMergeLeavesAbsentKeysUntouched(t *testing.T) {
	rq := require.New(t)
	catalog := staticCatalog()

	changed := overlay.Merge(catalog, &uexlive.Result{
		Ores: map[string]uexlive.OreEntry{
			"quantainium": {PriceAuECPerSCU: ptr(22_000)},
		},
	})
	rq.Equal(1, changed)

	laranite, _ := catalog.Get("laranite")
	rq.Equal(2_700.0, *laranite.UnitPrice)
	rq.Equal([]entity.Seller{{Name: "Area18 TDD", PriceAuECPerSCU: 2_750}}, laranite.Sellers)
	rq.True(laranite.LiveAt.IsZero())
}
