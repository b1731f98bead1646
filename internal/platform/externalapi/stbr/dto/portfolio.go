package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Holding はanalyze_portfolioへ送信する1行分の保有データです。
type Holding struct {
	Ticker    string `json:"ticker"`
	Shares    string `json:"shares"` // バックエンド側でパースするため文字列のまま送る
	AssetType string `json:"asset_type"`
}

// AnalyzeRequest is the analyze_portfolio request body.
type AnalyzeRequest struct {
	Holdings []Holding `json:"holdings"`
}

// AnalysisRow is one row of portfolio_analysis. Numeric cells arrive either as
// preformatted strings or as raw numbers depending on the row, so they are Cells.
type AnalysisRow struct {
	Ticker       string `json:"ticker"`
	AssetType    string `json:"asset_type"`
	Shares       Cell   `json:"shares"`
	LatestClose  Cell   `json:"latest_close"`
	HoldingValue Cell   `json:"holding_value"`
	LatestSTBR   Cell   `json:"latest_stbr"`
	Category     string `json:"stbr_category"`
	Signal       string `json:"signal"`
	Error        string `json:"error"`
}

// AnalyzeResponse represents the JSON response from the analyze_portfolio endpoint.
type AnalyzeResponse struct {
	Analysis           []AnalysisRow `json:"portfolio_analysis"`
	TotalValue         *float64      `json:"total_value"`
	RotateOutValue     *float64      `json:"rotate_out_value"`
	PortfolioChartJSON *string       `json:"portfolio_chart_json"`
	Error              string        `json:"error,omitempty"`
}

// Cell holds a table value that may be a JSON string, number or null.
type Cell struct {
	Value string
	Valid bool
}

// UnmarshalJSON accepts strings, numbers and null.
func (c *Cell) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = Cell{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Cell{Value: s, Valid: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = Cell{Value: n.String(), Valid: true}
	return nil
}

// MarshalJSON writes the cell back as a string or null.
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// Float parses the cell as a number, ignoring thousands separators.
func (c Cell) Float() (float64, bool) {
	if !c.Valid {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(c.Value, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
