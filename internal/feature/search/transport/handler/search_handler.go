// Package handler はsearchフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stbr_web/internal/feature/search/domain/entity"
	"stbr_web/internal/shared/asset"
	"stbr_web/internal/web"
)

// Searcher は候補検索のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type Searcher interface {
	Search(ctx context.Context, keywords string, class asset.Class) ([]entity.Match, error)
}

// TickerLister は資産クラスごとのキャッシュ済み銘柄一覧を返します。
type TickerLister interface {
	Tickers(ctx context.Context, class asset.Class) []string
}

// SearchHandler は候補検索のHTTPリクエストを処理します。
type SearchHandler struct {
	search  Searcher
	tickers TickerLister
}

// NewSearchHandler は指定されたusecaseでSearchHandlerの新しいインスタンスを生成します。
func NewSearchHandler(search Searcher, tickers TickerLister) *SearchHandler {
	return &SearchHandler{search: search, tickers: tickers}
}

// Suggest は候補リストをHTML断片として返します。候補がなければ空のボディを返します。
//
// エンドポイント例:
// GET /ui/suggest?keywords=AAP&asset_type=stock
func (h *SearchHandler) Suggest(c *gin.Context) {
	class, err := asset.Parse(c.DefaultQuery("asset_type", string(asset.Stock)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matches, err := h.search.Search(c.Request.Context(), c.Query("keywords"), class)
	if err != nil {
		// 呼び出し元が離脱したか後続の入力に置き換えられた。描画しない。
		c.Abort()
		return
	}
	if len(matches) == 0 {
		c.Status(http.StatusOK)
		return
	}
	c.HTML(http.StatusOK, web.SuggestionsTemplate, entity.Cap(matches))
}

// Tickers は資産クラスの銘柄一覧をJSONで返し、同時にキャッシュを温めます。
//
// エンドポイント例:
// GET /ui/tickers?asset_type=crypto
func (h *SearchHandler) Tickers(c *gin.Context) {
	class, err := asset.Parse(c.Query("asset_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tickers := h.tickers.Tickers(c.Request.Context(), class)
	if tickers == nil {
		tickers = []string{}
	}
	c.JSON(http.StatusOK, tickers)
}
