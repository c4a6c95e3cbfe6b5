package config

import "time"

// Redis backs the live snapshot cache. Optional: with no address configured
// the application runs without snapshot warm-up.
type Redis struct {
	Address            string        `env:"REDIS_ADDRESS" envDefault:""`
	Username           string        `env:"REDIS_USERNAME" envDefault:""`
	Password           string        `env:"REDIS_PASSWORD" envDefault:"" json:"-"`
	DatabaseNumber     int           `env:"REDIS_DATABASE_NUMBER" envDefault:"0"`
	PoolSize           int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConnections int           `env:"REDIS_MIN_IDLE_CONNECTIONS" envDefault:"1"`
	MaxIdleConnections int           `env:"REDIS_MAX_IDLE_CONNECTIONS" envDefault:"5"`
	SnapshotTTL        time.Duration `env:"REDIS_SNAPSHOT_TTL" envDefault:"24h"`
}

func (r Redis) Enabled() bool {
	return r.Address != ""
}
