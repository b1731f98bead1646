// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	searchadapters "stbr_web/internal/feature/search/adapters"
	"stbr_web/internal/feature/search/usecase"
	"stbr_web/internal/platform/cache"
	"stbr_web/internal/platform/config"
	"stbr_web/internal/platform/externalapi/stbr"
	infrahttp "stbr_web/internal/platform/http"
	infraredis "stbr_web/internal/platform/redis"
	"stbr_web/internal/shared/ratelimiter"
)

// NewBackendClient creates a fully configured STBR backend client with HTTP client.
func NewBackendClient(cfg *config.Config) *stbr.Client {
	httpClient := infrahttp.NewHTTPClient(cfg.Backend.Timeout)
	return stbr.NewClient(cfg.Backend, httpClient)
}

// NewRedis connects to Redis when configured. It returns nil when Redis is
// disabled or unreachable; callers then run without the shared cache.
func NewRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if !cfg.RedisEnabled() {
		return nil
	}
	rdb, err := infraredis.NewRedisClient(ctx, cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		slog.Warn("Redis unavailable. Running without shared ticker cache.", "error", err)
		return nil
	}
	return rdb
}

// NewTickerSource wraps the backend with the Redis ticker tier.
// A nil rdb yields a pass-through source.
func NewTickerSource(cfg *config.Config, client *stbr.Client, rdb *redis.Client) *cache.CachingTickerSource {
	return cache.NewCachingTickerSource(rdb, cfg.TickerCacheTTL, client, "tickers")
}

// NewSearchUsecase builds the ticker cache and search usecase shared by one session.
func NewSearchUsecase(cfg *config.Config, client *stbr.Client, source usecase.TickerSource) (*usecase.TickerCache, *usecase.SearchUsecase) {
	tickers := usecase.NewTickerCache(source)

	var limiter ratelimiter.RateLimiterInterface
	if cfg.SearchRateLimit > 0 {
		limiter = ratelimiter.NewRateLimiter(cfg.SearchRateLimit, time.Minute)
	}

	remote := searchadapters.NewSymbolSearcher(client)
	return tickers, usecase.NewSearchUsecase(remote, tickers, limiter)
}
