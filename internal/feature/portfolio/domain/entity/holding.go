// Package entity はportfolioフィーチャーのドメインエンティティを定義します。
package entity

import "stbr_web/internal/shared/asset"

// HoldingInput は利用者が入力したままの1行分の保有データです。
type HoldingInput struct {
	AssetType string
	Ticker    string
	Shares    string
}

// Holding is a validated holding ready for submission.
// Shares is the trimmed text as typed and already checked to be a non-negative decimal.
type Holding struct {
	Class  asset.Class
	Ticker string
	Shares string
}
