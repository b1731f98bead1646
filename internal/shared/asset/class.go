// Package asset defines the asset classes shared by every feature.
package asset

import (
	"fmt"
	"strings"
)

// Class is the holding category that decides which data source and
// validation rules apply to a ticker.
type Class string

const (
	Stock  Class = "stock"
	Crypto Class = "crypto"
	Cash   Class = "cash"
)

// CashSentinel is the only ticker accepted for the cash asset class.
const CashSentinel = "CASH"

// Classes lists every class in the order the UI offers them.
var Classes = []Class{Crypto, Stock, Cash}

// Parse は入力文字列をClassに変換します。大文字小文字と前後の空白は無視します。
func Parse(s string) (Class, error) {
	c := Class(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case Stock, Crypto, Cash:
		return c, nil
	}
	return "", fmt.Errorf("unknown asset class %q", s)
}

// Remote reports whether suggestions for the class come from the remote search endpoint.
func (c Class) Remote() bool {
	return c == Stock
}

// Next returns the class following c in Classes, wrapping around.
func (c Class) Next() Class {
	for i, ac := range Classes {
		if ac == c {
			return Classes[(i+1)%len(Classes)]
		}
	}
	return Classes[0]
}

func (c Class) String() string { return string(c) }
