package activity

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	activitymetrics "lumina/internal/activity/metrics"
	platformredis "lumina/internal/platform/redis"
)

const statsCacheKey = "activity:stats:dashboard"

// CachedStats serves the default dashboard summary (all actors, fixed window)
// through a short-TTL Redis cache. Any cache trouble degrades to a direct
// store read; staleness is bounded by the TTL. Per-user stats always bypass
// the cache.
type CachedStats struct {
	service *Service
	cache   *platformredis.Client
	logger  *slog.Logger
	metrics *activitymetrics.Metrics
	window  time.Duration
	ttl     time.Duration
}

func NewCachedStats(service *Service, cache *platformredis.Client, logger *slog.Logger,
	metrics *activitymetrics.Metrics, window, ttl time.Duration) *CachedStats {
	return &CachedStats{
		service: service,
		cache:   cache,
		logger:  logger,
		metrics: metrics,
		window:  window,
		ttl:     ttl,
	}
}

// Dashboard returns the trailing-window per-action counts for all actors.
func (c *CachedStats) Dashboard(ctx context.Context) ([]ActionCount, error) {
	if c.cache == nil {
		return c.service.Stats(ctx, nil, c.window)
	}

	if payload, err := c.cache.Get(ctx, statsCacheKey).Bytes(); err == nil {
		var counts []ActionCount
		if err := json.Unmarshal(payload, &counts); err == nil {
			c.metrics.IncrementCacheHit()
			return counts, nil
		}
	}

	c.metrics.IncrementCacheMiss()
	counts, err := c.service.Stats(ctx, nil, c.window)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(counts); err == nil {
		if err := c.cache.Set(ctx, statsCacheKey, payload, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "stats cache write failed", "error", err.Error())
		}
	}
	return counts, nil
}
