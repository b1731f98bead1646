// Package domain はportfolioフィーチャーのドメインエラーを定義します。
package domain

import (
	"errors"
	"fmt"
)

// ErrNoHoldings is returned when there is nothing to analyze.
var ErrNoHoldings = errors.New("no holdings to analyze")

// Severity distinguishes hard input errors from asset-class mismatches.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Field names reported in a FieldIssue.
const (
	FieldAssetType = "asset_type"
	FieldTicker    = "ticker"
	FieldShares    = "shares"
)

// FieldIssue marks one input field of one row.
type FieldIssue struct {
	Row      int      `json:"row"`
	Field    string   `json:"field"`
	Severity Severity `json:"severity"`
}

// ValidationError lists every field that blocked submission.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid holdings: %d field issue(s)", len(e.Issues))
}
