// Package adapters はchartフィーチャーのSTBRバックエンド実装を提供します。
package adapters

import (
	"context"

	"stbr_web/internal/feature/chart/usecase"
	"stbr_web/internal/platform/externalapi/stbr"
	"stbr_web/internal/shared/asset"
	"stbr_web/internal/shared/plot"
)

// chartSTBR はFigureSourceインターフェースのSTBRバックエンド実装です。
type chartSTBR struct {
	client *stbr.Client
}

var _ usecase.FigureSource = (*chartSTBR)(nil)

// NewFigureSource は指定されたバックエンドクライアントでchartSTBRの新しいインスタンスを生成します。
func NewFigureSource(client *stbr.Client) *chartSTBR {
	return &chartSTBR{client: client}
}

// Figure は get_chart_data の応答（JSON文字列）をもう一段デコードしてfigureを返します。
func (c *chartSTBR) Figure(ctx context.Context, symbol string, class asset.Class) (*plot.Figure, error) {
	raw, err := c.client.ChartData(ctx, symbol, class.String())
	if err != nil {
		return nil, err
	}
	return plot.Decode(raw)
}
