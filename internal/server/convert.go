package server

import (
	"mining_hub/internal/domain/entity"
	"mining_hub/internal/domain/service/basket"
	"mining_hub/internal/domain/service/units"
	"mining_hub/internal/infrastructure/ships"
	"mining_hub/internal/infrastructure/uexlive"
	"mining_hub/internal/overlay"
	"mining_hub/pkg/lox"
	"mining_hub/pkg/rest"
)

func newRESTSeller(s entity.Seller) rest.Seller {
	return rest.Seller(s)
}

func newRESTCatalog(category entity.Category, ores []entity.Ore) rest.Catalog {
	return rest.Catalog{
		Category: category.String(),
		Unit:     units.DisplayUnitLabel(category),
		Ores:     lox.Map(ores, newRESTOre),
	}
}

func newRESTOre(o entity.Ore) rest.Ore {
	sellers := lox.Map(o.Sellers, newRESTSeller)

	var liveAt int64
	if !o.LiveAt.IsZero() {
		liveAt = o.LiveAt.Unix()
	}

	return rest.Ore{
		Key:             o.Key,
		Name:            o.Name,
		Color:           o.Color,
		PriceAuECPerSCU: o.UnitPrice,
		PriceLast:       o.LastPrice,
		PriceAvg:        o.AvgPrice,
		PriceField:      o.PriceFieldLabel,
		Sellers:         sellers,
		LiveAt:          liveAt,
	}
}

func newRESTBasket(category entity.Category, snap basket.Snapshot) rest.Basket {
	return rest.Basket{
		Category:     category.String(),
		SelectedKeys: snap.SelectedKeys,
		ActiveKey:    snap.ActiveKey,
		Quantities:   snap.Quantities,
		Unit:         units.DisplayUnitLabel(category),
	}
}

func newRESTShip(s ships.Ship) rest.Ship {
	return rest.Ship{
		ID:           s.ID,
		Name:         s.Name,
		Manufacturer: s.Manufacturer,
		SCU:          s.SCU,
	}
}

func newRESTSummary(
	category entity.Category,
	summary entity.Summary,
	check entity.CapacityCheck,
	liveStatus overlay.Status,
) rest.Summary {
	return rest.Summary{
		Category:         category.String(),
		Total:            summary.Total,
		RatePerHour:      summary.RatePerHour,
		DeltaPercent:     summary.DeltaPercent,
		TimeToTargetMin:  summary.TimeToTargetMin,
		Verdict:          string(summary.Verdict),
		MissingPrices:    summary.MissingPrices,
		CapacityDisplay:  check.CapacityDisplay,
		CapacityExceeded: check.Exceeded,
		Unit:             units.DisplayUnitLabel(category),
		LiveStatus:       string(liveStatus),
	}
}

func newRESTLiveStatus(status overlay.Status, meta *uexlive.Meta) rest.LiveStatus {
	out := rest.LiveStatus{Status: string(status)}
	if meta != nil {
		out.UpdatedAt = meta.UpdatedAt
		out.Source = meta.Source
		out.Prefer = meta.Prefer
		out.Top = meta.Top
	}
	return out
}
