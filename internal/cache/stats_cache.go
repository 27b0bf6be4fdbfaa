package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/blood-donation-service/internal/repository"
)

const (
	statsKey = "admin:stats"
	statsTTL = 30 * time.Second
)

// StatsCache keeps the admin dashboard counters in Redis for a short TTL so
// repeated dashboard polls do not hammer the aggregate queries. A missing or
// unreachable Redis degrades to a cache miss.
type StatsCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewStatsCache constructs the cache. client may be nil.
func NewStatsCache(client *redis.Client, logger *zap.Logger) *StatsCache {
	return &StatsCache{client: client, logger: logger}
}

// Get returns cached stats or nil on miss.
func (c *StatsCache) Get(ctx context.Context) *repository.DashboardStats {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("stats cache read failed", zap.Error(err))
		}
		return nil
	}
	var stats repository.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

// Set stores stats with the cache TTL.
func (c *StatsCache) Set(ctx context.Context, stats *repository.DashboardStats) {
	if c == nil || c.client == nil || stats == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey, raw, statsTTL).Err(); err != nil {
		c.logger.Warn("stats cache write failed", zap.Error(err))
	}
}
