package stbr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"stbr_web/internal/platform/externalapi/stbr/dto"
)

// maxErrorBody はエラーレスポンスから読み込む最大バイト数です。
const maxErrorBody = 64 << 10

// ErrRateLimited is returned when the symbol search endpoint answers 503,
// which the backend uses when its upstream search quota is exhausted.
var ErrRateLimited = errors.New("stbr: search rate limit reached")

// APIError is a backend-reported application error: either a non-2xx status
// or an explicit "error" field in an otherwise successful payload.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error %d", e.Status)
	}
	return e.Message
}

// Client はSTBRバックエンドの4つのエンドポイントを呼び出すHTTPクライアントです。
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, client: client}
}

// AvailableTickers は指定された資産クラスの銘柄一覧を取得します。
//
// GET /get_available_tickers?asset_type=<class>
func (c *Client) AvailableTickers(ctx context.Context, assetType string) ([]string, error) {
	q := url.Values{}
	q.Set("asset_type", assetType)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/get_available_tickers?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var tickers []string
	if err := c.do(req, &tickers); err != nil {
		return nil, err
	}
	return tickers, nil
}

// SearchSymbol はキーワードで銘柄をリモート検索します。
// 503はErrRateLimited、error フィールド付きのレスポンスは *APIError として返します。
//
// GET /search_symbol?keywords=<kw>&asset_type=<class>
func (c *Client) SearchSymbol(ctx context.Context, keywords, assetType string) ([]dto.SymbolMatch, error) {
	q := url.Values{}
	q.Set("keywords", keywords)
	q.Set("asset_type", assetType)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/search_symbol?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var body dto.SearchResponse
	if err := c.do(req, &body); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusServiceUnavailable {
			return nil, fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Error())
		}
		return nil, err
	}
	if body.Error != "" {
		return nil, &APIError{Status: http.StatusOK, Message: body.Error}
	}
	return body.BestMatches, nil
}

// ChartData は単一銘柄のチャートを取得します。
// バックエンドはfigureをJSON文字列として返すため、デコード済みの文字列をそのまま返します。
//
// POST /get_chart_data (form: symbol, asset_type)
func (c *Client) ChartData(ctx context.Context, symbol, assetType string) (string, error) {
	form := url.Values{}
	form.Set("symbol", symbol)
	form.Set("asset_type", assetType)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/get_chart_data", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var figure string
	if err := c.do(req, &figure); err != nil {
		return "", err
	}
	return figure, nil
}

// AnalyzePortfolio はポートフォリオ分析を依頼します。
//
// POST /analyze_portfolio (JSON: {"holdings": [...]})
func (c *Client) AnalyzePortfolio(ctx context.Context, holdings []dto.Holding) (*dto.AnalyzeResponse, error) {
	payload, err := json.Marshal(dto.AnalyzeRequest{Holdings: holdings})
	if err != nil {
		return nil, fmt.Errorf("encode holdings: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/analyze_portfolio", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var body dto.AnalyzeResponse
	if err := c.do(req, &body); err != nil {
		return nil, err
	}
	if body.Error != "" {
		return nil, &APIError{Status: http.StatusOK, Message: body.Error}
	}
	return &body, nil
}

// do はリクエストを実行し、2xxであればJSONをoutへデコードします。
// それ以外のステータスはbodyの error フィールドを読み取って *APIError に変換します。
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := &APIError{Status: res.StatusCode}
		var body dto.ErrorResponse
		if b, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBody)); err == nil && json.Unmarshal(b, &body) == nil {
			apiErr.Message = body.Error
		}
		return apiErr
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}
