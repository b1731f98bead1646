package entity

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"stbr_web/internal/shared/asset"
	"stbr_web/internal/shared/plot"
)

// NotAvailable is shown for missing cells.
const NotAvailable = "N/A"

// Signal values sent by the backend.
const (
	SignalRotateOut = "Rotate Out"
	SignalRotateIn  = "Rotate In"
)

// Tone decides how a table row is highlighted.
type Tone string

const (
	ToneError     Tone = "error"
	ToneCash      Tone = "cash"
	ToneRotateOut Tone = "rotate-out"
	ToneRotateIn  Tone = "rotate-in"
	ToneHold      Tone = "hold"
)

// ChartState describes what the portfolio chart area shows.
type ChartState string

const (
	ChartOK    ChartState = "ok"    // figure decoded
	ChartError ChartState = "error" // figure present but undecodable
	ChartEmpty ChartState = "empty" // no figure and nothing worth charting
	ChartNone  ChartState = "none"
)

// ReportRow は表示用に整形済みの1行です。
type ReportRow struct {
	Ticker       string `json:"ticker"`
	AssetType    string `json:"asset_type"`
	Shares       string `json:"shares"`
	LatestClose  string `json:"latest_close"`
	HoldingValue string `json:"holding_value"`
	LatestSTBR   string `json:"latest_stbr"`
	Category     string `json:"stbr_category"`
	Signal       string `json:"signal"`
	Error        string `json:"error"`
	Tone         Tone   `json:"tone"`
}

// Report is a display-ready portfolio analysis.
type Report struct {
	Rows           []ReportRow
	TotalValue     string
	RotateOutValue string
	Chart          *plot.Figure
	ChartState     ChartState
}

// NewReport formats an Analysis for display.
func NewReport(a *Analysis) *Report {
	r := &Report{
		Rows:           make([]ReportRow, 0, len(a.Rows)),
		TotalValue:     money(a.TotalValue),
		RotateOutValue: money(a.RotateOutValue),
		ChartState:     ChartNone,
	}

	for _, row := range a.Rows {
		r.Rows = append(r.Rows, newReportRow(row))
	}

	switch {
	case a.ChartJSON != nil && *a.ChartJSON != "":
		fig, err := plot.Decode(*a.ChartJSON)
		if err != nil {
			slog.Error("failed to decode portfolio chart", "error", err)
			r.ChartState = ChartError
			break
		}
		r.Chart = fig
		r.ChartState = ChartOK
	case !hasChartableRow(a.Rows):
		r.ChartState = ChartEmpty
	}
	return r
}

func newReportRow(row AnalysisRow) ReportRow {
	cash := isCash(row)

	out := ReportRow{
		Ticker:       orNA(row.Ticker),
		AssetType:    orNA(row.AssetType),
		Shares:       cellOrNA(row.Shares),
		LatestClose:  cellOrNA(row.LatestClose),
		HoldingValue: cellOrNA(row.HoldingValue),
		LatestSTBR:   cellOrNA(row.LatestSTBR),
		Category:     orNA(row.Category),
		Signal:       orNA(row.Signal),
		Error:        row.Error,
	}
	if cash {
		out.LatestClose = NotAvailable
		out.LatestSTBR = NotAvailable
	}

	switch {
	case row.Error != "":
		out.Tone = ToneError
	case cash:
		out.Tone = ToneCash
	case row.Signal == SignalRotateOut:
		out.Tone = ToneRotateOut
	case row.Signal == SignalRotateIn:
		out.Tone = ToneRotateIn
	default:
		out.Tone = ToneHold
	}
	return out
}

// isCash はバックエンドが返すasset_type（"Cash"など大文字混じり）を区別せずに判定します。
func isCash(row AnalysisRow) bool {
	return row.Ticker == asset.CashSentinel && strings.EqualFold(row.AssetType, string(asset.Cash))
}

// hasChartableRow reports whether any error-free row has a positive holding value.
func hasChartableRow(rows []AnalysisRow) bool {
	for _, row := range rows {
		if row.Error != "" || row.HoldingValue == nil {
			continue
		}
		v, err := decimal.NewFromString(strings.ReplaceAll(*row.HoldingValue, ",", ""))
		if err == nil && v.IsPositive() {
			return true
		}
	}
	return false
}

func money(v *float64) string {
	if v == nil {
		return "0.00"
	}
	return decimal.NewFromFloat(*v).StringFixed(2)
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

func cellOrNA(s *string) string {
	if s == nil {
		return NotAvailable
	}
	return *s
}
