// Package usecase は単一銘柄チャート取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"stbr_web/internal/shared/asset"
	"stbr_web/internal/shared/plot"
	"stbr_web/internal/shared/status"
)

var (
	// ErrEmptySymbol is returned when no symbol was entered.
	ErrEmptySymbol = errors.New("symbol is required")
	// ErrCashNotChartable is returned for the cash sentinel, which has no price history.
	ErrCashNotChartable = errors.New("cash cannot be charted directly")
)

// 画面に表示するメッセージ
const (
	MsgLoaded    = "Chart loaded successfully."
	MsgNoSymbol  = "Please enter a symbol."
	MsgCashChart = "Cannot analyze CASH directly. Add it to your portfolio instead."
)

// FigureSource はチャートfigureの取得元を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type FigureSource interface {
	Figure(ctx context.Context, symbol string, class asset.Class) (*plot.Figure, error)
}

// ChartUsecase はチャート取得のユースケースです。
type ChartUsecase struct {
	source FigureSource
}

// NewChartUsecase はChartUsecaseの新しいインスタンスを生成します。
func NewChartUsecase(source FigureSource) *ChartUsecase {
	return &ChartUsecase{source: source}
}

// Load validates the request and fetches the chart for symbol.
// Validation failures are returned before any network call is made.
// Backend errors are returned unwrapped so their message can be shown as is.
func (u *ChartUsecase) Load(ctx context.Context, symbol string, class asset.Class) (*plot.Figure, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return nil, ErrEmptySymbol
	}
	if class == asset.Cash && s == asset.CashSentinel {
		return nil, ErrCashNotChartable
	}

	fig, err := u.source.Figure(ctx, s, class)
	if err != nil {
		if ctx.Err() == nil {
			slog.Error("failed to load chart", "symbol", s, "asset_type", class, "error", err)
		}
		return nil, err
	}
	return fig, nil
}

// StatusOf maps the outcome of Load to the status line shown to the user.
func StatusOf(err error) status.Status {
	switch {
	case err == nil:
		return status.Status{Text: MsgLoaded, Level: status.Success}
	case errors.Is(err, ErrEmptySymbol):
		return status.Status{Text: MsgNoSymbol, Level: status.Warning}
	case errors.Is(err, ErrCashNotChartable):
		return status.Status{Text: MsgCashChart, Level: status.Warning}
	default:
		return status.FromError(err)
	}
}
