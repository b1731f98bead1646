package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"stbr_web/internal/feature/portfolio/domain/entity"
	"stbr_web/internal/feature/portfolio/transport/http/dto"
)

// ParseHolding parses one TYPE:TICKER:SHARES argument, e.g. "crypto:BTC:0.5".
// Values are passed through untouched; validation happens in the usecase.
func ParseHolding(arg string) (entity.HoldingInput, error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 3 {
		return entity.HoldingInput{}, fmt.Errorf("holding %q: want TYPE:TICKER:SHARES", arg)
	}
	return entity.HoldingInput{AssetType: parts[0], Ticker: parts[1], Shares: parts[2]}, nil
}

// ReadHoldings decodes a holdings file in the same JSON shape the web form posts.
func ReadHoldings(r io.Reader) ([]entity.HoldingInput, error) {
	var req dto.AnalyzeRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("decode holdings: %w", err)
	}
	return req.Inputs(), nil
}
