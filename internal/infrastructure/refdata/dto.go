package refdata

import "mining_hub/internal/domain/entity"

type oresDocument struct {
	Ores []oreDTO `json:"ores"`
}

type oreDTO struct {
	Key             string      `json:"key"`
	Name            string      `json:"name"`
	Color           string      `json:"color"`
	PriceAuECPerSCU *float64    `json:"price_auEc_per_scu"`
	Sellers         []sellerDTO `json:"sellers"`
}

type sellerDTO struct {
	Name            string  `json:"name"`
	PriceAuECPerSCU float64 `json:"price_auEc_per_scu"`
}

func (d oreDTO) toEntity() *entity.Ore {
	ore := &entity.Ore{
		Key:   d.Key,
		Name:  d.Name,
		Color: d.Color,
	}

	if d.PriceAuECPerSCU != nil && *d.PriceAuECPerSCU > 0 {
		price := *d.PriceAuECPerSCU
		ore.UnitPrice = &price
	}

	for _, s := range d.Sellers {
		if s.Name == "" || s.PriceAuECPerSCU <= 0 {
			continue
		}
		ore.Sellers = append(ore.Sellers, entity.Seller(s))
	}

	return ore
}
