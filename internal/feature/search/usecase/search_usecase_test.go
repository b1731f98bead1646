package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stbr_web/internal/feature/search/domain/entity"
	"stbr_web/internal/feature/search/usecase"
	"stbr_web/internal/shared/asset"
)

// mockSymbolSearcher はSymbolSearcherインターフェースのモック実装です。
type mockSymbolSearcher struct {
	SearchSymbolFunc func(ctx context.Context, keywords string, class asset.Class) ([]entity.Match, error)
}

func (m *mockSymbolSearcher) SearchSymbol(ctx context.Context, keywords string, class asset.Class) ([]entity.Match, error) {
	if m.SearchSymbolFunc != nil {
		return m.SearchSymbolFunc(ctx, keywords, class)
	}
	return nil, nil
}

// mockLimiter はRateLimiterInterfaceのモック実装です。
type mockLimiter struct {
	WaitFunc func(ctx context.Context) error
}

func (m *mockLimiter) Wait(ctx context.Context) error {
	if m.WaitFunc != nil {
		return m.WaitFunc(ctx)
	}
	return nil
}

func cryptoCache(tickers ...string) *usecase.TickerCache {
	return usecase.NewTickerCache(&mockTickerSource{
		AvailableTickersFunc: func(ctx context.Context, assetType string) ([]string, error) {
			return tickers, nil
		},
	})
}

func TestSearchUsecase_Search_Remote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		searchFn func(ctx context.Context, keywords string, class asset.Class) ([]entity.Match, error)
		expected []entity.Match
	}{
		{
			name: "success: remote matches returned",
			searchFn: func(ctx context.Context, keywords string, class asset.Class) ([]entity.Match, error) {
				return []entity.Match{{Symbol: "AAPL", Name: "Apple Inc"}}, nil
			},
			expected: []entity.Match{{Symbol: "AAPL", Name: "Apple Inc"}},
		},
		{
			name: "failure: rate limit resolves to empty",
			searchFn: func(ctx context.Context, keywords string, class asset.Class) ([]entity.Match, error) {
				return nil, fmt.Errorf("%w: API limit reached", usecase.ErrRateLimited)
			},
			expected: nil,
		},
		{
			name: "failure: transport error resolves to empty",
			searchFn: func(ctx context.Context, keywords string, class asset.Class) ([]entity.Match, error) {
				return nil, errors.New("dial tcp: connection refused")
			},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := usecase.NewSearchUsecase(&mockSymbolSearcher{SearchSymbolFunc: tt.searchFn}, cryptoCache(), nil)

			matches, err := uc.Search(context.Background(), "AAP", asset.Stock)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, matches)
		})
	}
}

func TestSearchUsecase_Search_RemoteCappedAtTen(t *testing.T) {
	t.Parallel()

	remote := &mockSymbolSearcher{
		SearchSymbolFunc: func(ctx context.Context, keywords string, class asset.Class) ([]entity.Match, error) {
			out := make([]entity.Match, 30)
			for i := range out {
				out[i] = entity.Match{Symbol: fmt.Sprintf("S%02d", i)}
			}
			return out, nil
		},
	}
	uc := usecase.NewSearchUsecase(remote, cryptoCache(), nil)

	matches, err := uc.Search(context.Background(), "S", asset.Stock)
	require.NoError(t, err)
	assert.Len(t, matches, entity.MaxMatches)
	assert.Equal(t, "S00", matches[0].Symbol)
}

// TestSearchUsecase_Search_Canceled はキャンセルがエラーとして返され、空結果として扱われないことを検証します。
func TestSearchUsecase_Search_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	remote := &mockSymbolSearcher{
		SearchSymbolFunc: func(ctx context.Context, keywords string, class asset.Class) ([]entity.Match, error) {
			cancel()
			return nil, fmt.Errorf("Get \"/search_symbol\": %w", context.Canceled)
		},
	}
	uc := usecase.NewSearchUsecase(remote, cryptoCache(), nil)

	matches, err := uc.Search(ctx, "AAP", asset.Stock)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, matches)
}

func TestSearchUsecase_Search_LimiterCanceled(t *testing.T) {
	t.Parallel()

	called := false
	remote := &mockSymbolSearcher{
		SearchSymbolFunc: func(ctx context.Context, keywords string, class asset.Class) ([]entity.Match, error) {
			called = true
			return nil, nil
		},
	}
	limiter := &mockLimiter{WaitFunc: func(ctx context.Context) error { return context.Canceled }}
	uc := usecase.NewSearchUsecase(remote, cryptoCache(), limiter)

	_, err := uc.Search(context.Background(), "AAP", asset.Stock)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called, "remote search must not run when the throttle wait is abandoned")
}

func TestSearchUsecase_Search_Local(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		keywords string
		class    asset.Class
		expected []entity.Match
	}{
		{
			name:     "case-insensitive substring",
			keywords: "tc",
			class:    asset.Crypto,
			expected: []entity.Match{{Symbol: "BTC"}},
		},
		{
			name:     "keywords trimmed",
			keywords: "  eth ",
			class:    asset.Crypto,
			expected: []entity.Match{{Symbol: "ETH"}, {Symbol: "ETHW"}},
		},
		{
			name:     "no match",
			keywords: "zzz",
			class:    asset.Crypto,
			expected: nil,
		},
		{
			name:     "cash resolves locally",
			keywords: "ca",
			class:    asset.Cash,
			expected: []entity.Match{{Symbol: "CASH"}},
		},
		{
			name:     "empty keywords",
			keywords: "   ",
			class:    asset.Crypto,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			remote := &mockSymbolSearcher{
				SearchSymbolFunc: func(ctx context.Context, keywords string, class asset.Class) ([]entity.Match, error) {
					t.Error("remote search must not be used for local classes")
					return nil, nil
				},
			}
			uc := usecase.NewSearchUsecase(remote, cryptoCache("SOL", "ETHW", "BTC", "ETH"), nil)

			matches, err := uc.Search(context.Background(), tt.keywords, tt.class)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, matches)
		})
	}
}

func TestSearchUsecase_Search_LocalCappedAtTen(t *testing.T) {
	t.Parallel()

	tickers := make([]string, 40)
	for i := range tickers {
		tickers[i] = fmt.Sprintf("COIN%02d", i)
	}
	uc := usecase.NewSearchUsecase(&mockSymbolSearcher{}, cryptoCache(tickers...), nil)

	matches, err := uc.Search(context.Background(), "coin", asset.Crypto)
	require.NoError(t, err)
	require.Len(t, matches, entity.MaxMatches)
	assert.Equal(t, "COIN00", matches[0].Symbol)
	assert.Equal(t, "COIN09", matches[9].Symbol)
}
