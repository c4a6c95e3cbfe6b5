// Package pricecache keeps the last good live price payload per category in
// Redis so a restarted instance can overlay recent prices before its first
// refresh completes.
package pricecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"mining_hub/internal/domain/entity"
	"mining_hub/internal/infrastructure/uexlive"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const keyPrefix = "mining_hub:live_snapshot:"

// Cache is nil-safe: a nil *Cache behaves as a disabled cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}

	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

func (c *Cache) Store(ctx context.Context, category entity.Category, result *uexlive.Result) error {
	if c == nil || result == nil {
		return nil
	}

	b, err := json.Marshal(snapshot{Ores: result.Ores, Meta: result.Meta})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+category.String(), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis.Set: %w", err)
	}

	return nil
}

// Load returns the stored payload or (nil, nil) when absent or disabled.
func (c *Cache) Load(ctx context.Context, category entity.Category) (*uexlive.Result, error) {
	if c == nil {
		return nil, nil
	}

	b, err := c.client.Get(ctx, keyPrefix+category.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis.Get: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return &uexlive.Result{Ores: snap.Ores, Meta: snap.Meta}, nil
}

type snapshot struct {
	Ores map[string]uexlive.OreEntry `json:"ores"`
	Meta uexlive.Meta                `json:"meta"`
}
