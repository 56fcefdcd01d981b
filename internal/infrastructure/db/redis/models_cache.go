package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AmedoFerguson/backend/internal/core/ports"
)

const (
	modelsKey = "laptops:distinct_models"
	modelsTTL = 10 * time.Minute
)

// ModelsCache caches the distinct-models response in Redis. Writes to the
// listings collection invalidate it, so the TTL is only a backstop.
type ModelsCache struct {
	client *redis.Client
}

func NewModelsCache(client *redis.Client) *ModelsCache {
	return &ModelsCache{client: client}
}

// Get returns the cached entries, or (nil, nil) on a cache miss.
func (c *ModelsCache) Get(ctx context.Context) ([]ports.ModelEntry, error) {
	raw, err := c.client.Get(ctx, modelsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("models cache get: %w", err)
	}

	var entries []ports.ModelEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("models cache decode: %w", err)
	}
	return entries, nil
}

func (c *ModelsCache) Set(ctx context.Context, entries []ports.ModelEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("models cache encode: %w", err)
	}
	if err := c.client.Set(ctx, modelsKey, raw, modelsTTL).Err(); err != nil {
		return fmt.Errorf("models cache set: %w", err)
	}
	return nil
}

func (c *ModelsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, modelsKey).Err(); err != nil {
		return fmt.Errorf("models cache del: %w", err)
	}
	return nil
}
