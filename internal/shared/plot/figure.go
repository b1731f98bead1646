// Package plot はバックエンドが返すPlotly形式のfigureを扱います。
// 描画そのものはフロントエンド側のライブラリに委ね、ここでは構造の検証と要約のみを行います。
package plot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidFigure is returned when a figure payload cannot be decoded.
var ErrInvalidFigure = errors.New("invalid chart figure")

// Figure is a plotting figure: a list of traces plus a layout, both kept opaque.
type Figure struct {
	Data   json.RawMessage `json:"data"`
	Layout json.RawMessage `json:"layout"`
}

// Decode parses a JSON-encoded figure. The backend double-encodes figures,
// so raw is the already unwrapped inner document.
func Decode(raw string) (*Figure, error) {
	var f Figure
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFigure, err)
	}
	if isNull(f.Data) {
		return nil, fmt.Errorf("%w: missing data", ErrInvalidFigure)
	}
	if isNull(f.Layout) {
		f.Layout = json.RawMessage(`{}`)
	}
	return &f, nil
}

// TraceCount returns the number of traces, or 0 if data is not an array.
func (f *Figure) TraceCount() int {
	var traces []json.RawMessage
	if err := json.Unmarshal(f.Data, &traces); err != nil {
		return 0
	}
	return len(traces)
}

// Title returns layout.title, which Plotly allows as a plain string or as {"text": ...}.
func (f *Figure) Title() string {
	var layout struct {
		Title json.RawMessage `json:"title"`
	}
	if err := json.Unmarshal(f.Layout, &layout); err != nil || isNull(layout.Title) {
		return ""
	}

	var s string
	if err := json.Unmarshal(layout.Title, &s); err == nil {
		return s
	}
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(layout.Title, &obj); err == nil {
		return obj.Text
	}
	return ""
}

func isNull(b json.RawMessage) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}
