// Package adapters はportfolioフィーチャーのSTBRバックエンド実装を提供します。
package adapters

import (
	"context"

	"stbr_web/internal/feature/portfolio/domain/entity"
	"stbr_web/internal/feature/portfolio/usecase"
	"stbr_web/internal/platform/externalapi/stbr"
	"stbr_web/internal/platform/externalapi/stbr/dto"
)

// portfolioSTBR はAnalyzerインターフェースのSTBRバックエンド実装です。
type portfolioSTBR struct {
	client *stbr.Client
}

var _ usecase.Analyzer = (*portfolioSTBR)(nil)

// NewAnalyzer は指定されたバックエンドクライアントでportfolioSTBRの新しいインスタンスを生成します。
func NewAnalyzer(client *stbr.Client) *portfolioSTBR {
	return &portfolioSTBR{client: client}
}

// Analyze は保有データを送信し、応答をドメインのAnalysisに変換します。
func (p *portfolioSTBR) Analyze(ctx context.Context, holdings []entity.Holding) (*entity.Analysis, error) {
	in := make([]dto.Holding, 0, len(holdings))
	for _, h := range holdings {
		in = append(in, dto.Holding{
			Ticker:    h.Ticker,
			Shares:    h.Shares,
			AssetType: h.Class.String(),
		})
	}

	res, err := p.client.AnalyzePortfolio(ctx, in)
	if err != nil {
		return nil, err
	}

	out := &entity.Analysis{
		Rows:           make([]entity.AnalysisRow, 0, len(res.Analysis)),
		TotalValue:     res.TotalValue,
		RotateOutValue: res.RotateOutValue,
		ChartJSON:      res.PortfolioChartJSON,
	}
	for _, r := range res.Analysis {
		out.Rows = append(out.Rows, entity.AnalysisRow{
			Ticker:       r.Ticker,
			AssetType:    r.AssetType,
			Shares:       cell(r.Shares),
			LatestClose:  cell(r.LatestClose),
			HoldingValue: cell(r.HoldingValue),
			LatestSTBR:   cell(r.LatestSTBR),
			Category:     r.Category,
			Signal:       r.Signal,
			Error:        r.Error,
		})
	}
	return out, nil
}

func cell(c dto.Cell) *string {
	if !c.Valid {
		return nil
	}
	v := c.Value
	return &v
}
