package config

import "time"

// Dataset is the static reference catalog source.
type Dataset struct {
	BaseURL         string        `env:"DATASET_BASE_URL,notEmpty"`
	ShipDocument    string        `env:"DATASET_SHIP_DOCUMENT" envDefault:"mining_ores_ship.json"`
	VehicleDocument string        `env:"DATASET_VEHICLE_DOCUMENT" envDefault:"mining_ores_vehicle.json"`
	Timeout         time.Duration `env:"DATASET_TIMEOUT" envDefault:"15s"`
}

// Live is the live price overlay source.
type Live struct {
	BaseURL      string        `env:"LIVE_BASE_URL" envDefault:""`
	Prefer       string        `env:"LIVE_PREFER" envDefault:"best"`
	TopSellers   int           `env:"LIVE_TOP_SELLERS" envDefault:"5"`
	MinInterval  time.Duration `env:"LIVE_MIN_INTERVAL" envDefault:"60s"`
	TickInterval time.Duration `env:"LIVE_TICK_INTERVAL" envDefault:"90s"`
	Timeout      time.Duration `env:"LIVE_TIMEOUT" envDefault:"15s"`
}

// Enabled reports whether a live source is configured at all.
func (l Live) Enabled() bool {
	return l.BaseURL != ""
}

type Ships struct {
	RosterURL string        `env:"SHIPS_ROSTER_URL" envDefault:""`
	Timeout   time.Duration `env:"SHIPS_TIMEOUT" envDefault:"15s"`
}
