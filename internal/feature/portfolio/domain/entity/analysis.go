package entity

// AnalysisRow is one holding as analyzed by the backend. Numeric cells are
// kept as the text the backend sent; nil means the cell was absent.
type AnalysisRow struct {
	Ticker       string
	AssetType    string
	Shares       *string
	LatestClose  *string
	HoldingValue *string
	LatestSTBR   *string
	Category     string
	Signal       string
	Error        string
}

// Analysis is the backend's answer for a whole portfolio.
type Analysis struct {
	Rows           []AnalysisRow
	TotalValue     *float64
	RotateOutValue *float64
	ChartJSON      *string
}
