package dto

import (
	"stbr_web/internal/shared/plot"
	"stbr_web/internal/shared/status"
)

// ChartRequest はチャート取得フォームのリクエストDTOです。
type ChartRequest struct {
	Symbol    string `form:"symbol"`
	AssetType string `form:"asset_type"`
}

// ChartResponse はチャート取得のレスポンスDTOです。失敗時はFigureを省略します。
type ChartResponse struct {
	Status status.Status `json:"status"`
	Figure *plot.Figure  `json:"figure,omitempty"`
}
