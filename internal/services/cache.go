package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"pulse-backend/internal/models"
)

const (
	// dashboardCacheKey is the Redis key holding the cached dashboard listing.
	dashboardCacheKey = "cache:dashboard"
	// dashboardCacheTTL keeps the listing fresh even if invalidation is missed.
	dashboardCacheTTL = time.Minute
)

// DashboardCache caches the ordered dashboard listing in Redis. A nil client
// disables caching: Get always misses and Set/Invalidate are no-ops, so the
// dashboard works without Redis.
type DashboardCache struct {
	client *redis.Client
}

func NewDashboardCache(client *redis.Client) *DashboardCache {
	return &DashboardCache{client: client}
}

// Get returns the cached listing and whether it was present.
func (c *DashboardCache) Get(ctx context.Context) ([]models.FeedbackRecord, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	val, err := c.client.Get(ctx, dashboardCacheKey).Result()
	if err != nil {
		return nil, false // cache miss, not an error
	}

	var records []models.FeedbackRecord
	if err := json.Unmarshal([]byte(val), &records); err != nil {
		return nil, false
	}
	return records, true
}

// Set stores the listing with the default TTL. Errors are swallowed; the
// cache is an optimization, never a source of truth.
func (c *DashboardCache) Set(ctx context.Context, records []models.FeedbackRecord) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(records)
	if err != nil {
		return
	}
	c.client.Set(ctx, dashboardCacheKey, data, dashboardCacheTTL)
}

// Invalidate drops the cached listing. Called after every successful insert.
func (c *DashboardCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, dashboardCacheKey)
}
