package entity

import "time"

type Seller struct {
	Name            string  `json:"name"`
	PriceAuECPerSCU float64 `json:"price_auEc_per_scu"`
}

// Ore is one catalog entry. Key is immutable after load; UnitPrice and the
// provenance fields may be patched in place by the live overlay.
type Ore struct {
	Key             string   `json:"key"`
	Name            string   `json:"name"`
	Color           string   `json:"color,omitempty"`
	UnitPrice       *float64 `json:"price_auEc_per_scu"` // aUEC per canonical SCU, nil when unknown
	LastPrice       *float64 `json:"price_last,omitempty"`
	AvgPrice        *float64 `json:"price_avg,omitempty"`
	PriceFieldLabel string   `json:"price_field,omitempty"`
	Sellers         []Seller `json:"sellers,omitempty"` // best-first, may be empty
	LiveAt          time.Time `json:"-"`                // last live overlay touch
}

// HasUsablePrice reports whether UnitPrice is a positive finite number.
func (o *Ore) HasUsablePrice() bool {
	return o.UnitPrice != nil && *o.UnitPrice > 0
}

// Catalog is the mutable per-category item container. The key set is fixed
// after load; only price fields change afterwards.
type Catalog struct {
	Category Category
	Ores     []*Ore

	byKey map[string]*Ore
}

func NewCatalog(category Category, ores []*Ore) *Catalog {
	byKey := make(map[string]*Ore, len(ores))
	for _, o := range ores {
		byKey[o.Key] = o
	}

	return &Catalog{
		Category: category,
		Ores:     ores,
		byKey:    byKey,
	}
}

func (c *Catalog) Get(key string) (*Ore, bool) {
	o, ok := c.byKey[key]
	return o, ok
}

func (c *Catalog) Has(key string) bool {
	_, ok := c.byKey[key]
	return ok
}

func (c *Catalog) Len() int {
	return len(c.Ores)
}
