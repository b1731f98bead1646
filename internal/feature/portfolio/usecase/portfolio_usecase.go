// Package usecase はポートフォリオ分析のビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"

	"stbr_web/internal/feature/portfolio/domain/entity"
)

// Analyzer はポートフォリオ分析の依頼先を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Analyzer interface {
	Analyze(ctx context.Context, holdings []entity.Holding) (*entity.Analysis, error)
}

// PortfolioUsecase はポートフォリオ分析のユースケースです。
type PortfolioUsecase struct {
	analyzer Analyzer
}

// NewPortfolioUsecase はPortfolioUsecaseの新しいインスタンスを生成します。
func NewPortfolioUsecase(analyzer Analyzer) *PortfolioUsecase {
	return &PortfolioUsecase{analyzer: analyzer}
}

// Analyze validates rows, submits them in one request and formats the answer.
// Any error aborts the whole report; there is no retry and no partial result.
func (u *PortfolioUsecase) Analyze(ctx context.Context, rows []entity.HoldingInput) (*entity.Report, error) {
	holdings, err := Validate(rows)
	if err != nil {
		return nil, err
	}

	analysis, err := u.analyzer.Analyze(ctx, holdings)
	if err != nil {
		if ctx.Err() == nil {
			slog.Error("portfolio analysis failed", "holdings", len(holdings), "error", err)
		}
		return nil, err
	}

	slog.Info("portfolio analyzed", "holdings", len(holdings), "rows", len(analysis.Rows))
	return entity.NewReport(analysis), nil
}
