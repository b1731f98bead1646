package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stbr_web/internal/feature/chart/usecase"
	"stbr_web/internal/shared/asset"
	"stbr_web/internal/shared/plot"
	"stbr_web/internal/shared/status"
)

// mockFigureSource はFigureSourceインターフェースのモック実装です。
type mockFigureSource struct {
	FigureFunc func(ctx context.Context, symbol string, class asset.Class) (*plot.Figure, error)
	Calls      int
}

func (m *mockFigureSource) Figure(ctx context.Context, symbol string, class asset.Class) (*plot.Figure, error) {
	m.Calls++
	if m.FigureFunc != nil {
		return m.FigureFunc(ctx, symbol, class)
	}
	return nil, errors.New("FigureFunc is not implemented")
}

func TestChartUsecase_Load(t *testing.T) {
	t.Parallel()

	fig := &plot.Figure{Data: []byte(`[]`), Layout: []byte(`{}`)}
	backendErr := errors.New("No data found for symbol XYZ")

	tests := []struct {
		name        string
		symbol      string
		class       asset.Class
		figureFn    func(ctx context.Context, symbol string, class asset.Class) (*plot.Figure, error)
		expectedErr error
		wantCalls   int
	}{
		{
			name:   "success: symbol normalized",
			symbol: "  btc ",
			class:  asset.Crypto,
			figureFn: func(ctx context.Context, symbol string, class asset.Class) (*plot.Figure, error) {
				assert.Equal(t, "BTC", symbol)
				assert.Equal(t, asset.Crypto, class)
				return fig, nil
			},
			wantCalls: 1,
		},
		{
			name:        "failure: empty symbol",
			symbol:      "   ",
			class:       asset.Stock,
			expectedErr: usecase.ErrEmptySymbol,
		},
		{
			name:        "failure: cash sentinel",
			symbol:      "cash",
			class:       asset.Cash,
			expectedErr: usecase.ErrCashNotChartable,
		},
		{
			name:   "failure: backend error passed through",
			symbol: "XYZ",
			class:  asset.Stock,
			figureFn: func(ctx context.Context, symbol string, class asset.Class) (*plot.Figure, error) {
				return nil, backendErr
			},
			expectedErr: backendErr,
			wantCalls:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &mockFigureSource{FigureFunc: tt.figureFn}
			uc := usecase.NewChartUsecase(src)

			got, err := uc.Load(context.Background(), tt.symbol, tt.class)
			assert.Equal(t, tt.wantCalls, src.Calls)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Same(t, fig, got)
		})
	}
}

func TestStatusOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected status.Status
	}{
		{"loaded", nil, status.Status{Text: usecase.MsgLoaded, Level: status.Success}},
		{"empty symbol", usecase.ErrEmptySymbol, status.Status{Text: usecase.MsgNoSymbol, Level: status.Warning}},
		{"cash", usecase.ErrCashNotChartable, status.Status{Text: "Cannot analyze CASH directly. Add it to your portfolio instead.", Level: status.Warning}},
		{"backend", errors.New("HTTP error 500"), status.Status{Text: "Error: HTTP error 500", Level: status.Error}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, usecase.StatusOf(tt.err))
		})
	}
}
