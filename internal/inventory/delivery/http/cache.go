package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alejandrovrod/ecommerce-inventory/pkg/logger"
)

// AvailabilityCache keeps availability snapshots in Redis for a short
// TTL. Mutations invalidate the product's key, so a stale answer can
// survive at most one TTL window.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAvailabilityCache creates a new availability cache
func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &AvailabilityCache{client: client, ttl: ttl}
}

func availabilityKey(productID uint) string {
	return fmt.Sprintf("inventory:availability:%d", productID)
}

// Get returns the cached snapshot and whether it was present.
func (c *AvailabilityCache) Get(ctx context.Context, productID uint) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, availabilityKey(productID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Logger.Warn().
				Err(err).
				Uint("product_id", productID).
				Msg("Availability cache read failed")
		}
		return nil, false
	}
	return payload, true
}

// Set stores a snapshot. Failures are logged and ignored; the cache is
// an optimization, never a source of truth.
func (c *AvailabilityCache) Set(ctx context.Context, productID uint, payload []byte) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Set(ctx, availabilityKey(productID), payload, c.ttl).Err(); err != nil {
		logger.Logger.Warn().
			Err(err).
			Uint("product_id", productID).
			Msg("Availability cache write failed")
	}
}

// Invalidate drops the product's cached snapshot after a mutation.
func (c *AvailabilityCache) Invalidate(ctx context.Context, productID uint) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, availabilityKey(productID)).Err(); err != nil {
		logger.Logger.Warn().
			Err(err).
			Uint("product_id", productID).
			Msg("Availability cache invalidation failed")
	}
}
