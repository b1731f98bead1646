package stbr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stbr_web/internal/platform/externalapi/stbr/dto"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	return NewClient(Config{BaseURL: server.URL + "/"}, server.Client())
}

func TestNewClient_TrimsBaseURL(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{BaseURL: "http://backend:5001///", Timeout: time.Second}, &http.Client{})
	assert.Equal(t, "http://backend:5001", c.cfg.BaseURL)
}

func TestClient_AvailableTickers(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get_available_tickers", r.URL.Path)
		assert.Equal(t, "crypto", r.URL.Query().Get("asset_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["ETH","BTC"]`))
	})

	tickers, err := c.AvailableTickers(context.Background(), "crypto")
	require.NoError(t, err)
	assert.Equal(t, []string{"ETH", "BTC"}, tickers)
}

func TestClient_AvailableTickers_HTTPError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.AvailableTickers(context.Background(), "crypto")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.EqualError(t, err, "HTTP error 500")
}

func TestClient_SearchSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		status        int
		body          string
		expected      []dto.SymbolMatch
		wantRateLimit bool
		wantAPIError  string
	}{
		{
			name:   "success: best matches decoded",
			status: http.StatusOK,
			body:   `{"bestMatches":[{"1. symbol":"AAPL","2. name":"Apple Inc"}]}`,
			expected: []dto.SymbolMatch{
				{Symbol: "AAPL", Name: "Apple Inc"},
			},
		},
		{
			name:     "success: missing bestMatches is empty",
			status:   http.StatusOK,
			body:     `{}`,
			expected: nil,
		},
		{
			name:          "failure: 503 is rate limit",
			status:        http.StatusServiceUnavailable,
			body:          `{"bestMatches":[],"error":"API limit reached"}`,
			wantRateLimit: true,
		},
		{
			name:          "failure: 503 without body is rate limit",
			status:        http.StatusServiceUnavailable,
			wantRateLimit: true,
		},
		{
			name:         "failure: explicit error payload",
			status:       http.StatusOK,
			body:         `{"error":"Invalid API call"}`,
			wantAPIError: "Invalid API call",
		},
		{
			name:         "failure: 500 with error body",
			status:       http.StatusInternalServerError,
			body:         `{"error":"Failed to contact symbol search service"}`,
			wantAPIError: "Failed to contact symbol search service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/search_symbol", r.URL.Path)
				assert.Equal(t, "AAP L", r.URL.Query().Get("keywords"))
				assert.Equal(t, "stock", r.URL.Query().Get("asset_type"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			matches, err := c.SearchSymbol(context.Background(), "AAP L", "stock")

			switch {
			case tt.wantRateLimit:
				assert.ErrorIs(t, err, ErrRateLimited)
			case tt.wantAPIError != "":
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.wantAPIError, apiErr.Message)
				assert.False(t, errors.Is(err, ErrRateLimited))
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expected, matches)
			}
		})
	}
}

func TestClient_SearchSymbol_ContextCancellation(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := c.SearchSymbol(ctx, "AAPL", "stock")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_ChartData(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/get_chart_data", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "BTC", r.PostForm.Get("symbol"))
		assert.Equal(t, "crypto", r.PostForm.Get("asset_type"))

		figure := `{"data":[{"type":"scatter"}],"layout":{"title":"BTC"}}`
		_ = json.NewEncoder(w).Encode(figure)
	})

	figure, err := c.ChartData(context.Background(), "BTC", "crypto")
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[{"type":"scatter"}],"layout":{"title":"BTC"}}`, figure)
}

func TestClient_ChartData_BackendError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Not enough historical data (need > 140 days) to calculate STBR."}`))
	})

	_, err := c.ChartData(context.Background(), "NEW", "crypto")
	require.Error(t, err)
	assert.EqualError(t, err, "Not enough historical data (need > 140 days) to calculate STBR.")
}

func TestClient_AnalyzePortfolio(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze_portfolio", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req dto.AnalyzeRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []dto.Holding{
			{Ticker: "BTC", Shares: "0.5", AssetType: "crypto"},
			{Ticker: "CASH", Shares: "1000", AssetType: "cash"},
		}, req.Holdings)

		_, _ = w.Write([]byte(`{
			"portfolio_analysis": [
				{"ticker":"BTC","asset_type":"crypto","shares":"0.5","latest_close":"60000.00","holding_value":"30000.00","latest_stbr":"1.234","stbr_category":"1.2-1.4","signal":"Hold"},
				{"ticker":"CASH","asset_type":"Cash","shares":"1000.00","latest_close":"1.00","holding_value":"1000.00","latest_stbr":"N/A","stbr_category":"Cash","signal":"Cash"},
				{"ticker":"XYZ","asset_type":"crypto","shares":2,"error":"Failed to fetch price data for XYZ."}
			],
			"total_value": 31000.0,
			"rotate_out_value": 0,
			"portfolio_chart_json": null
		}`))
	})

	res, err := c.AnalyzePortfolio(context.Background(), []dto.Holding{
		{Ticker: "BTC", Shares: "0.5", AssetType: "crypto"},
		{Ticker: "CASH", Shares: "1000", AssetType: "cash"},
	})
	require.NoError(t, err)
	require.Len(t, res.Analysis, 3)
	assert.Equal(t, "30000.00", res.Analysis[0].HoldingValue.Value)
	assert.Equal(t, "2", res.Analysis[2].Shares.Value)
	assert.False(t, res.Analysis[2].LatestClose.Valid)
	require.NotNil(t, res.TotalValue)
	assert.InDelta(t, 31000.0, *res.TotalValue, 1e-9)
	assert.Nil(t, res.PortfolioChartJSON)
}

func TestClient_AnalyzePortfolio_BadRequest(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Invalid input: Missing holdings data."}`))
	})

	_, err := c.AnalyzePortfolio(context.Background(), nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Invalid input: Missing holdings data.", apiErr.Message)
}

func TestClient_InvalidJSON(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{invalid json`))
	})

	_, err := c.AvailableTickers(context.Background(), "stock")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode /get_available_tickers response")
}
