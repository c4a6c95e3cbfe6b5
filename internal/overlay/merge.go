package overlay

import (
	"time"

	"mining_hub/internal/domain/entity"
	"mining_hub/internal/infrastructure/uexlive"
)

// Merge patches live prices onto the catalog in place and returns how many
// ores changed. The contract is non-destructive:
//
//   - a positive live price always overwrites the stored unit price;
//   - the provenance fields (last/avg/field) mirror the current live response
//     exactly, so they are cleared when the response omits them;
//   - the seller list is replaced only when the response carries at least one
//     usable seller. An empty live list usually means "not reported", so the
//     static sellers are kept;
//   - catalog keys absent from the response are left untouched.
func Merge(catalog *entity.Catalog, result *uexlive.Result) int {
	if catalog == nil || result == nil {
		return 0
	}

	now := time.Now()
	changed := 0

	for _, ore := range catalog.Ores {
		live, ok := result.Ores[ore.Key]
		if !ok {
			continue
		}

		if live.PriceAuECPerSCU != nil && *live.PriceAuECPerSCU > 0 {
			price := *live.PriceAuECPerSCU
			ore.UnitPrice = &price
		}

		ore.LastPrice = copyFloat(live.PriceLast)
		ore.AvgPrice = copyFloat(live.PriceAvg)
		ore.PriceFieldLabel = live.PriceField

		if sellers := normalizeSellers(live); len(sellers) > 0 {
			ore.Sellers = sellers
		}

		ore.LiveAt = now
		changed++
	}

	return changed
}

func normalizeSellers(live uexlive.OreEntry) []entity.Seller {
	sellers := make([]entity.Seller, 0, len(live.Sellers))
	for _, s := range live.Sellers {
		price := s.UnitPrice()
		if price <= 0 {
			continue
		}
		sellers = append(sellers, entity.Seller{
			Name:            s.SellerName(),
			PriceAuECPerSCU: price,
		})
	}
	if len(sellers) > 0 {
		return sellers
	}

	// Single best-terminal fallback from the compact response shape.
	if live.BestSell != nil && *live.BestSell > 0 {
		name := live.BestSellTerminalName
		if name == "" {
			name = "Best terminal"
		}
		return []entity.Seller{{Name: name, PriceAuECPerSCU: *live.BestSell}}
	}

	return nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
