// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"quant_backend/internal/feature/timeseries/domain/entity"
	"quant_backend/internal/feature/timeseries/usecase"
)

// CachingReturnsRepository decorates a ReturnsRepository with Redis caching.
// The return views are recomputed on every read; for dashboards polling the
// same series the cached rows are good until the next ingest window.
type CachingReturnsRepository struct {
	inner     usecase.ReturnsRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ReturnsRepository = (*CachingReturnsRepository)(nil)

// NewCachingReturnsRepository decorates a ReturnsRepository with Redis caching.
// If ttl is 0, it defaults to 15 minutes. If namespace is empty, it uses "returns".
func NewCachingReturnsRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ReturnsRepository, namespace string) *CachingReturnsRepository {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if namespace == "" {
		namespace = "returns"
	}
	return &CachingReturnsRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Returns retrieves return rows, checking cache first then falling back to
// the store's view.
func (c *CachingReturnsRepository) Returns(ctx context.Context, provider, symbol string, period entity.Frequency, from, to time.Time) ([]entity.ReturnPoint, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Returns(ctx, provider, symbol, period, from, to)
	}

	key := c.cacheKey(provider, symbol, period, from, to)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.ReturnPoint
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the view
	out, err := c.inner.Returns(ctx, provider, symbol, period, from, to)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific query.
func (c *CachingReturnsRepository) cacheKey(provider, symbol string, period entity.Frequency, from, to time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s:%d:%d",
		c.namespace,
		safe(provider),
		safe(symbol),
		period,
		from.Unix(),
		to.Unix(),
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
