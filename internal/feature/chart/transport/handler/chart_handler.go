// Package handler はchartフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stbr_web/internal/feature/chart/transport/http/dto"
	"stbr_web/internal/feature/chart/usecase"
	"stbr_web/internal/shared/asset"
	"stbr_web/internal/shared/plot"
	"stbr_web/internal/shared/status"
)

const msgUnknownType = "Unknown asset type."

// ChartUsecase はチャート取得のユースケースインターフェースを定義します。
type ChartUsecase interface {
	Load(ctx context.Context, symbol string, class asset.Class) (*plot.Figure, error)
}

// ChartHandler はチャート取得のHTTPリクエストを処理します。
type ChartHandler struct {
	uc ChartUsecase
}

// NewChartHandler は指定されたusecaseでChartHandlerの新しいインスタンスを生成します。
func NewChartHandler(uc ChartUsecase) *ChartHandler {
	return &ChartHandler{uc: uc}
}

// Load はフォームの銘柄と資産クラスからチャートを取得し、ステータスと共に返します。
//
// エンドポイント例:
// POST /ui/chart (form: symbol=BTC&asset_type=crypto)
func (h *ChartHandler) Load(c *gin.Context) {
	var req dto.ChartRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ChartResponse{Status: status.FromError(err)})
		return
	}

	class, err := asset.Parse(req.AssetType)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ChartResponse{
			Status: status.Status{Text: msgUnknownType, Level: status.Error},
		})
		return
	}

	fig, err := h.uc.Load(c.Request.Context(), req.Symbol, class)
	code := http.StatusOK
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrEmptySymbol), errors.Is(err, usecase.ErrCashNotChartable):
		code = http.StatusBadRequest
	default:
		code = http.StatusBadGateway
	}
	c.JSON(code, dto.ChartResponse{Status: usecase.StatusOf(err), Figure: fig})
}
