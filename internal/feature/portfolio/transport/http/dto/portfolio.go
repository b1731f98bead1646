package dto

import (
	"stbr_web/internal/feature/portfolio/domain"
	"stbr_web/internal/feature/portfolio/domain/entity"
	"stbr_web/internal/shared/plot"
	"stbr_web/internal/shared/status"
)

// HoldingRow は入力フォーム1行分のリクエストDTOです。
type HoldingRow struct {
	AssetType string `json:"asset_type"`
	Ticker    string `json:"ticker"`
	Shares    string `json:"shares"`
}

// AnalyzeRequest はポートフォリオ分析のリクエストDTOです。
type AnalyzeRequest struct {
	Holdings []HoldingRow `json:"holdings"`
}

// ReportResponse is the formatted analysis.
type ReportResponse struct {
	Rows           []entity.ReportRow `json:"rows"`
	TotalValue     string             `json:"total_value"`
	RotateOutValue string             `json:"rotate_out_value"`
	ChartState     entity.ChartState  `json:"chart_state"`
	Chart          *plot.Figure       `json:"chart"`
}

// AnalyzeResponse はポートフォリオ分析のレスポンスDTOです。
type AnalyzeResponse struct {
	Status status.Status       `json:"status"`
	Issues []domain.FieldIssue `json:"issues,omitempty"`
	Report *ReportResponse     `json:"report,omitempty"`
}

// Inputs converts the request rows to domain input.
func (r AnalyzeRequest) Inputs() []entity.HoldingInput {
	out := make([]entity.HoldingInput, 0, len(r.Holdings))
	for _, h := range r.Holdings {
		out = append(out, entity.HoldingInput{AssetType: h.AssetType, Ticker: h.Ticker, Shares: h.Shares})
	}
	return out
}

// NewReportResponse converts a domain report.
func NewReportResponse(r *entity.Report) *ReportResponse {
	return &ReportResponse{
		Rows:           r.Rows,
		TotalValue:     r.TotalValue,
		RotateOutValue: r.RotateOutValue,
		ChartState:     r.ChartState,
		Chart:          r.Chart,
	}
}
