// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stbr_web/internal/feature/search/usecase"
)

// DefaultTickerTTL は銘柄一覧キャッシュのデフォルト有効期間です。
const DefaultTickerTTL = time.Hour

// CachingTickerSource decorates a TickerSource with Redis caching so that
// sessions and processes share one copy of each asset class's ticker list.
type CachingTickerSource struct {
	inner     usecase.TickerSource
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.TickerSource = (*CachingTickerSource)(nil)

// NewCachingTickerSource decorates a TickerSource with Redis caching.
// If ttl is 0, it defaults to DefaultTickerTTL. If namespace is empty, it uses "tickers".
func NewCachingTickerSource(rdb *redis.Client, ttl time.Duration, inner usecase.TickerSource, namespace string) *CachingTickerSource {
	if ttl <= 0 {
		ttl = DefaultTickerTTL
	}
	if namespace == "" {
		namespace = "tickers"
	}
	return &CachingTickerSource{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// AvailableTickers retrieves tickers, checking Redis first then falling back to the backend.
func (c *CachingTickerSource) AvailableTickers(ctx context.Context, assetType string) ([]string, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.AvailableTickers(ctx, assetType)
	}

	key := c.cacheKey(assetType)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []string
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to backend
	out, err := c.inner.AvailableTickers(ctx, assetType)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Invalidate drops the cached list for assetType so the next lookup refetches it.
func (c *CachingTickerSource) Invalidate(ctx context.Context, assetType string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, c.cacheKey(assetType)).Err()
}

// cacheKey generates a cache key for an asset class.
func (c *CachingTickerSource) cacheKey(assetType string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(assetType))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
