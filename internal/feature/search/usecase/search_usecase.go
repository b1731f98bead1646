// Package usecase implements autocomplete search: the ticker cache, search
// resolution and the debounced, cancelable search controller.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"stbr_web/internal/feature/search/domain/entity"
	"stbr_web/internal/shared/asset"
	"stbr_web/internal/shared/ratelimiter"
)

// ErrRateLimited is returned by a SymbolSearcher when the remote search quota is exhausted.
var ErrRateLimited = errors.New("symbol search rate limited")

// SymbolSearcher は銘柄のリモート検索を抽象化します。
type SymbolSearcher interface {
	SearchSymbol(ctx context.Context, keywords string, class asset.Class) ([]entity.Match, error)
}

// SearchUsecase resolves (keywords, asset class) into a bounded list of matches.
// It has no rendering concerns.
type SearchUsecase struct {
	remote  SymbolSearcher
	tickers *TickerCache
	limiter ratelimiter.RateLimiterInterface
}

// NewSearchUsecase creates a SearchUsecase. limiter may be nil.
func NewSearchUsecase(remote SymbolSearcher, tickers *TickerCache, limiter ratelimiter.RateLimiterInterface) *SearchUsecase {
	return &SearchUsecase{remote: remote, tickers: tickers, limiter: limiter}
}

// Search returns at most entity.MaxMatches matches for keywords.
//
// Failures are never surfaced: transport errors, error payloads and rate
// limiting all resolve to an empty list and are only logged. The sole error
// returned is the context's, meaning the search was superseded and its result
// must not be rendered.
func (u *SearchUsecase) Search(ctx context.Context, keywords string, class asset.Class) ([]entity.Match, error) {
	kw := strings.TrimSpace(keywords)
	if kw == "" {
		return nil, nil
	}
	if class.Remote() {
		return u.searchRemote(ctx, kw, class)
	}
	return u.filterLocal(ctx, kw, class)
}

func (u *SearchUsecase) searchRemote(ctx context.Context, kw string, class asset.Class) ([]entity.Match, error) {
	if u.limiter != nil {
		if err := u.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	matches, err := u.remote.SearchSymbol(ctx, kw, class)
	if err != nil {
		if ctx.Err() != nil {
			slog.Debug("symbol search aborted", "keywords", kw)
			return nil, ctx.Err()
		}
		if errors.Is(err, context.Canceled) {
			slog.Debug("symbol search aborted", "keywords", kw)
			return nil, context.Canceled
		}
		if errors.Is(err, ErrRateLimited) {
			slog.Warn("symbol search rate limit likely reached", "keywords", kw, "error", err)
			return nil, nil
		}
		slog.Error("symbol search failed", "keywords", kw, "error", err)
		return nil, nil
	}
	return entity.Cap(matches), nil
}

// filterLocal は大文字小文字を区別しない部分一致でキャッシュ済み銘柄を絞り込みます。
func (u *SearchUsecase) filterLocal(ctx context.Context, kw string, class asset.Class) ([]entity.Match, error) {
	tickers := u.tickers.Tickers(ctx, class)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	upper := strings.ToUpper(kw)
	var out []entity.Match
	for _, t := range tickers {
		if !strings.Contains(strings.ToUpper(t), upper) {
			continue
		}
		out = append(out, entity.Match{Symbol: t})
		if len(out) == entity.MaxMatches {
			break
		}
	}
	return out, nil
}
