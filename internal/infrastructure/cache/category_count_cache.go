package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/newsroom/backend/internal/application/publishing"
	"github.com/newsroom/backend/internal/application/query"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const categoryCountKey = "query:category_counts"

// RedisCategoryCountCache caches the per-category published article counts
// behind the public category listing. Entries expire after a TTL and are
// invalidated eagerly when the publish state of a post changes.
type RedisCategoryCountCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCategoryCountCache creates a category count cache on an existing client
func NewRedisCategoryCountCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCategoryCountCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCategoryCountCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached counts, or (nil, nil) on a cache miss
func (c *RedisCategoryCountCache) Get(ctx context.Context) (map[uuid.UUID]int64, error) {
	data, err := c.client.Get(ctx, categoryCountKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category counts from cache: %w", err)
	}

	counts := make(map[uuid.UUID]int64)
	if err := json.Unmarshal(data, &counts); err != nil {
		// A corrupt entry is treated as a miss and dropped
		c.logger.Warn("corrupt category count cache entry, dropping", zap.Error(err))
		c.client.Del(ctx, categoryCountKey)
		return nil, nil
	}

	return counts, nil
}

// Set stores the counts with the configured TTL
func (c *RedisCategoryCountCache) Set(ctx context.Context, counts map[uuid.UUID]int64) error {
	data, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("failed to marshal category counts: %w", err)
	}

	if err := c.client.Set(ctx, categoryCountKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache category counts: %w", err)
	}

	return nil
}

// Invalidate drops the cached counts
func (c *RedisCategoryCountCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, categoryCountKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate category counts: %w", err)
	}
	return nil
}

var (
	_ query.CategoryCountCache         = (*RedisCategoryCountCache)(nil)
	_ publishing.CountCacheInvalidator = (*RedisCategoryCountCache)(nil)
)
