// Wire types for the v1 HTTP API.
package rest

type Ore struct {
	Key             string   `json:"key"`
	Name            string   `json:"name"`
	Color           string   `json:"color,omitempty"`
	PriceAuECPerSCU *float64 `json:"price_auEc_per_scu"`
	PriceLast       *float64 `json:"price_last,omitempty"`
	PriceAvg        *float64 `json:"price_avg,omitempty"`
	PriceField      string   `json:"price_field,omitempty"`
	Sellers         []Seller `json:"sellers"`

	// LiveAt is the last live price touch, unix seconds.
	LiveAt int64 `json:"live_at,omitempty"`
}

type Seller struct {
	Name            string  `json:"name"`
	PriceAuECPerSCU float64 `json:"price_auEc_per_scu"`
}

type Catalog struct {
	Category string `json:"category"`
	Unit     string `json:"unit"`
	Ores     []Ore  `json:"ores"`
}

type Ship struct {
	ID           string  `json:"id,omitempty"`
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	SCU          float64 `json:"scu"`
}

type Basket struct {
	Category     string             `json:"category"`
	SelectedKeys []string           `json:"selected_keys"`
	ActiveKey    string             `json:"active_key,omitempty"`
	Quantities   map[string]float64 `json:"quantities"`
	Unit         string             `json:"unit"`
}

type ToggleRequest struct {
	Key string `json:"key" validate:"required"`
}

type ToggleResponse struct {
	Action    string `json:"action"` // add | remove
	ActiveKey string `json:"active_key,omitempty"`
}

type QuantityRequest struct {
	Key   string  `json:"key" validate:"required"`
	Value float64 `json:"value" validate:"gte=0"`
}

type ActiveRequest struct {
	Key string `json:"key" validate:"required"`
}

type Summary struct {
	Category        string   `json:"category"`
	Total           float64  `json:"total"`
	RatePerHour     float64  `json:"rate_per_hour"`
	DeltaPercent    *float64 `json:"delta_percent,omitempty"`
	TimeToTargetMin *float64 `json:"time_to_target_min,omitempty"`
	Verdict         string   `json:"verdict"`
	MissingPrices   []string `json:"missing_prices,omitempty"`

	CapacityDisplay  *float64 `json:"capacity_display,omitempty"`
	CapacityExceeded bool     `json:"capacity_exceeded"`
	Unit             string   `json:"unit"`

	LiveStatus string `json:"live_status"`
}

type LiveStatus struct {
	Status    string `json:"status"` // local | loading | live | error
	UpdatedAt int64  `json:"updated_at,omitempty"`
	Source    string `json:"source,omitempty"`
	Prefer    string `json:"prefer,omitempty"`
	Top       int    `json:"top,omitempty"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string
