package usecase

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"stbr_web/internal/shared/asset"
)

// TickerSource abstracts where the per-class ticker lists come from.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TickerSource interface {
	AvailableTickers(ctx context.Context, assetType string) ([]string, error)
}

// TickerCache は資産クラスごとの銘柄一覧をセッションの間保持します。
// 初回アクセス時に遅延取得し、挿入時にアルファベット順へソートします。
type TickerCache struct {
	source TickerSource

	mu      sync.RWMutex
	tickers map[asset.Class][]string
	group   singleflight.Group
}

// NewTickerCache creates an empty cache backed by source.
func NewTickerCache(source TickerSource) *TickerCache {
	return &TickerCache{
		source:  source,
		tickers: make(map[asset.Class][]string),
	}
}

// Tickers returns the sorted ticker list for class, populating it on first use.
// The cash class resolves locally. A failed population is logged, yields an
// empty list and is retried on the next call. The returned slice must not be modified.
func (c *TickerCache) Tickers(ctx context.Context, class asset.Class) []string {
	if class == asset.Cash {
		return []string{asset.CashSentinel}
	}

	c.mu.RLock()
	cached, ok := c.tickers[class]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	// 同じクラスへの同時アクセスは1回の取得にまとめる。
	// 呼び出し元が離脱しても取得自体は継続させ、結果をキャッシュする。
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(string(class), func() (any, error) {
		tickers, err := c.source.AvailableTickers(fetchCtx, string(class))
		if err != nil {
			return nil, err
		}
		sorted := append([]string(nil), tickers...)
		sort.Strings(sorted)

		c.mu.Lock()
		c.tickers[class] = sorted
		c.mu.Unlock()
		return sorted, nil
	})

	select {
	case <-ctx.Done():
		return nil
	case res := <-ch:
		if res.Err != nil {
			slog.Error("failed to fetch available tickers", "asset_type", class, "error", res.Err)
			return nil
		}
		return res.Val.([]string)
	}
}

// Prefetch populates the cache for the given classes ahead of use.
func (c *TickerCache) Prefetch(ctx context.Context, classes ...asset.Class) {
	for _, class := range classes {
		c.Tickers(ctx, class)
	}
}

// Cached reports whether the list for class has already been populated.
func (c *TickerCache) Cached(class asset.Class) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.tickers[class]
	return ok
}
