// File: services/scheduling/cache.go
package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"slotify/models"
	"slotify/utils"
)

const freeSlotGenKey = "freeslots:gen"

// FreeSlotCache keeps recent availability responses in Redis. Entries are
// keyed by (generation, start_after, duration); invalidation bumps the
// generation counter instead of scanning for keys, and the old entries age
// out on their TTL. Any Redis failure degrades to a direct store read.
type FreeSlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFreeSlotCache wraps the given Redis client with the configured TTL.
func NewFreeSlotCache(client *redis.Client, ttl time.Duration) *FreeSlotCache {
	return &FreeSlotCache{client: client, ttl: ttl}
}

// Get returns the cached availability response, if any.
func (c *FreeSlotCache) Get(ctx context.Context, startAfter *time.Time, durationMinutes int) ([]models.FreeSlot, bool) {
	data, err := c.client.Get(ctx, c.key(ctx, startAfter, durationMinutes)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			utils.GetLogger().Warn("Free-slot cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var free []models.FreeSlot
	if err := json.Unmarshal(data, &free); err != nil {
		return nil, false
	}
	return free, true
}

// Set stores an availability response under the current generation.
func (c *FreeSlotCache) Set(ctx context.Context, startAfter *time.Time, durationMinutes int, free []models.FreeSlot) {
	data, err := json.Marshal(free)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(ctx, startAfter, durationMinutes), data, c.ttl).Err(); err != nil {
		utils.GetLogger().Warn("Free-slot cache write failed", zap.Error(err))
	}
}

// Invalidate drops all cached availability by advancing the generation.
// Called after every successful slot write.
func (c *FreeSlotCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, freeSlotGenKey).Err(); err != nil {
		utils.GetLogger().Warn("Free-slot cache invalidation failed", zap.Error(err))
	}
}

func (c *FreeSlotCache) key(ctx context.Context, startAfter *time.Time, durationMinutes int) string {
	gen, err := c.client.Get(ctx, freeSlotGenKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		gen = -1 // unknown generation: still a valid (unshared) key
	}
	after := "any"
	if startAfter != nil {
		after = startAfter.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("freeslots:%d:%s:%d", gen, after, durationMinutes)
}
