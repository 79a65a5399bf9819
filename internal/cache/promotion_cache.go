package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"retail-backoffice/internal/models"

	"github.com/go-redis/redis/v8"
)

const activePromotionsKey = "promotions:active"

// PromotionCache keeps the active-promotion list in Redis so the
// transaction workflow does not hit the document store on every cart.
// Entries expire on a short TTL and are invalidated on any promotion
// mutation; staleness inside the TTL window is accepted.
type PromotionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewPromotionCache connects to Redis and returns the cache
func NewPromotionCache(addr, password string, db int, ttl time.Duration) (*PromotionCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &PromotionCache{rdb: rdb, ttl: ttl}, nil
}

// GetActivePromotions returns the cached list and whether it was present
func (c *PromotionCache) GetActivePromotions(ctx context.Context) ([]models.Promotion, bool) {
	raw, err := c.rdb.Get(ctx, activePromotionsKey).Bytes()
	if err != nil {
		return nil, false
	}

	var promotions []models.Promotion
	if err := json.Unmarshal(raw, &promotions); err != nil {
		return nil, false
	}
	return promotions, true
}

// SetActivePromotions caches the active-promotion list with the TTL
func (c *PromotionCache) SetActivePromotions(ctx context.Context, promotions []models.Promotion) error {
	raw, err := json.Marshal(promotions)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, activePromotionsKey, raw, c.ttl).Err()
}

// Invalidate drops the cached list after a promotion mutation
func (c *PromotionCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, activePromotionsKey).Err()
}

// Close closes the Redis connection
func (c *PromotionCache) Close() error {
	return c.rdb.Close()
}
