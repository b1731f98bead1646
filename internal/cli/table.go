// Package cli は運用コマンド（stbrctl）のサブコマンドを実装します。
package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"stbr_web/internal/feature/portfolio/domain/entity"
)

var reportHeader = table.Row{
	"Ticker", "Type", "Shares", "Latest Close", "Holding Value",
	"Latest STBR", "STBR Category", "Signal", "Error",
}

// toneColors は行のトーンごとの端末色です。
var toneColors = map[entity.Tone]text.Colors{
	entity.ToneError:     {text.FgRed},
	entity.ToneCash:      {text.FgHiBlack},
	entity.ToneRotateOut: {text.FgYellow},
	entity.ToneRotateIn:  {text.FgGreen},
}

// RenderReport draws the analysis table with totals in the footer.
// colored enables ANSI colors per row tone.
func RenderReport(r *entity.Report, colored bool) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(reportHeader)

	for _, row := range r.Rows {
		cells := table.Row{
			row.Ticker, row.AssetType, row.Shares, row.LatestClose, row.HoldingValue,
			row.LatestSTBR, row.Category, row.Signal, row.Error,
		}
		if c, ok := toneColors[row.Tone]; ok && colored {
			for i, v := range cells {
				cells[i] = c.Sprint(v)
			}
		}
		t.AppendRow(cells)
	}

	t.AppendFooter(table.Row{"Total", "", "", "", r.TotalValue, "", "", "", ""})
	t.AppendFooter(table.Row{"Rotate Out", "", "", "", r.RotateOutValue, "", "", "", ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	return t.Render()
}
