package uexlive

import jsoniter "github.com/json-iterator/go"

// Result is one successful live fetch: entries keyed by ore key plus
// response metadata.
type Result struct {
	Ores map[string]OreEntry
	Meta Meta
}

type Meta struct {
	UpdatedAt int64
	Source    string
	Prefer    string
	Top       int
}

type OreEntry struct {
	PriceAuECPerSCU      *float64    `json:"price_auEc_per_scu"`
	PriceLast            *float64    `json:"price_last"`
	PriceAvg             *float64    `json:"price_avg"`
	PriceField           string      `json:"price_field"`
	Sellers              []SellerDTO `json:"sellers"`
	BestSell             *float64    `json:"best_sell"`
	BestSellTerminalName string      `json:"best_sell_terminal_name"`
}

type SellerDTO struct {
	Name            string   `json:"name"`
	DisplayName     string   `json:"display_name"`
	PriceAuECPerSCU *float64 `json:"price_auEc_per_scu"`
	Price           *float64 `json:"price"`
}

// UnitPrice resolves a seller's price across the field spellings the worker
// has used over time.
func (s SellerDTO) UnitPrice() float64 {
	switch {
	case s.PriceAuECPerSCU != nil:
		return *s.PriceAuECPerSCU
	case s.Price != nil:
		return *s.Price
	default:
		return 0
	}
}

func (s SellerDTO) SellerName() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	if s.Name != "" {
		return s.Name
	}
	return "Terminal"
}

type oresResponse struct {
	Ores      map[string]OreEntry `json:"ores"`
	Data      map[string]OreEntry `json:"data"`
	UpdatedAt flexTime            `json:"updated_at"`
	Source    string              `json:"source"`
	Prefer    string              `json:"prefer"`
	Top       int                 `json:"top"`
	Message   string              `json:"message"`
}

// flexTime accepts unix seconds, unix milliseconds or an ISO string and keeps
// unix seconds.
type flexTime struct {
	seconds int64
}

func (t *flexTime) Unix() int64 {
	return t.seconds
}

func (t *flexTime) UnmarshalJSON(data []byte) error {
	var asNumber float64
	if err := jsoniter.Unmarshal(data, &asNumber); err == nil {
		// seconds vs milliseconds heuristic
		if asNumber > 2e10 {
			asNumber /= 1000
		}
		t.seconds = int64(asNumber)
		return nil
	}

	var asString string
	if err := jsoniter.Unmarshal(data, &asString); err != nil {
		return nil // tolerated: meta field only
	}

	parsed, err := parseISOTime(asString)
	if err == nil {
		t.seconds = parsed
	}
	return nil
}
