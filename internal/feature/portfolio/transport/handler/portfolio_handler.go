// Package handler はportfolioフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stbr_web/internal/feature/portfolio/domain"
	"stbr_web/internal/feature/portfolio/domain/entity"
	"stbr_web/internal/feature/portfolio/transport/http/dto"
	"stbr_web/internal/shared/status"
)

const (
	msgComplete   = "Portfolio analysis complete."
	msgFixInputs  = "Please fix errors/warnings in input fields (marked red/orange). Use ticker CASH for Cash type."
	msgNoHoldings = "Please add at least one holding to analyze."
	msgBadRequest = "Invalid request body."
)

// PortfolioUsecase はポートフォリオ分析のユースケースインターフェースを定義します。
type PortfolioUsecase interface {
	Analyze(ctx context.Context, rows []entity.HoldingInput) (*entity.Report, error)
}

// PortfolioHandler はポートフォリオ分析のHTTPリクエストを処理します。
type PortfolioHandler struct {
	uc PortfolioUsecase
}

// NewPortfolioHandler は指定されたusecaseでPortfolioHandlerの新しいインスタンスを生成します。
func NewPortfolioHandler(uc PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

// Analyze は入力行を検証・送信し、整形済みのレポートを返します。
// 入力エラーは422で該当フィールドを、バックエンドの失敗は502でメッセージを返します。
//
// エンドポイント例:
// POST /ui/portfolio {"holdings":[{"asset_type":"crypto","ticker":"BTC","shares":"0.5"}]}
func (h *PortfolioHandler) Analyze(c *gin.Context) {
	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.AnalyzeResponse{
			Status: status.Status{Text: msgBadRequest, Level: status.Error},
		})
		return
	}

	report, err := h.uc.Analyze(c.Request.Context(), req.Inputs())
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusUnprocessableEntity, dto.AnalyzeResponse{
				Status: status.Status{Text: msgFixInputs, Level: status.Warning},
				Issues: verr.Issues,
			})
		case errors.Is(err, domain.ErrNoHoldings):
			c.JSON(http.StatusUnprocessableEntity, dto.AnalyzeResponse{
				Status: status.Status{Text: msgNoHoldings, Level: status.Warning},
			})
		default:
			c.JSON(http.StatusBadGateway, dto.AnalyzeResponse{Status: status.FromError(err)})
		}
		return
	}

	c.JSON(http.StatusOK, dto.AnalyzeResponse{
		Status: status.Status{Text: msgComplete, Level: status.Success},
		Report: dto.NewReportResponse(report),
	})
}
