// Package adapters はsearchフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stbr_web/internal/feature/search/domain/entity"
	"stbr_web/internal/feature/search/usecase"
	"stbr_web/internal/platform/externalapi/stbr"
	"stbr_web/internal/shared/asset"
)

// symbolSearchSTBR はSymbolSearcherインターフェースのSTBRバックエンド実装です。
type symbolSearchSTBR struct {
	client *stbr.Client
}

var _ usecase.SymbolSearcher = (*symbolSearchSTBR)(nil)

// NewSymbolSearcher は指定されたバックエンドクライアントでsymbolSearchSTBRの新しいインスタンスを生成します。
func NewSymbolSearcher(client *stbr.Client) *symbolSearchSTBR {
	return &symbolSearchSTBR{client: client}
}

// SearchSymbol はバックエンドの検索結果をドメインのMatchに変換します。
// レート制限はusecase.ErrRateLimitedとしてラップします。
func (s *symbolSearchSTBR) SearchSymbol(ctx context.Context, keywords string, class asset.Class) ([]entity.Match, error) {
	found, err := s.client.SearchSymbol(ctx, keywords, class.String())
	if err != nil {
		if errors.Is(err, stbr.ErrRateLimited) {
			return nil, fmt.Errorf("%w: %w", usecase.ErrRateLimited, err)
		}
		return nil, err
	}

	out := make([]entity.Match, 0, len(found))
	for _, m := range found {
		symbol := strings.TrimSpace(m.Symbol)
		if symbol == "" {
			continue
		}
		out = append(out, entity.Match{Symbol: symbol, Name: strings.TrimSpace(m.Name)})
	}
	return out, nil
}
