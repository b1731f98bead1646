package usecase

import (
	"strings"

	"github.com/shopspring/decimal"

	"stbr_web/internal/feature/portfolio/domain"
	"stbr_web/internal/feature/portfolio/domain/entity"
	"stbr_web/internal/shared/asset"
)

// Validate checks every row and returns the holdings to submit.
// All rows are checked so that every offending field is reported at once;
// if any issue is found nothing is returned.
func Validate(rows []entity.HoldingInput) ([]entity.Holding, error) {
	var issues []domain.FieldIssue
	holdings := make([]entity.Holding, 0, len(rows))

	for i, row := range rows {
		before := len(issues)
		issue := func(field string, sev domain.Severity) {
			issues = append(issues, domain.FieldIssue{Row: i, Field: field, Severity: sev})
		}

		class, err := asset.Parse(row.AssetType)
		if err != nil {
			issue(domain.FieldAssetType, domain.SeverityError)
		}

		ticker := strings.ToUpper(strings.TrimSpace(row.Ticker))
		switch {
		case ticker == "":
			issue(domain.FieldTicker, domain.SeverityError)
		case err != nil:
		case class == asset.Cash && ticker != asset.CashSentinel:
			issue(domain.FieldTicker, domain.SeverityWarning)
		case class != asset.Cash && ticker == asset.CashSentinel:
			issue(domain.FieldTicker, domain.SeverityWarning)
		}

		// 0は許可、負数と数値以外は不可
		shares := strings.TrimSpace(row.Shares)
		amount, perr := decimal.NewFromString(shares)
		if shares == "" || perr != nil || amount.IsNegative() {
			issue(domain.FieldShares, domain.SeverityError)
		}

		if len(issues) == before {
			holdings = append(holdings, entity.Holding{
				Class:  class,
				Ticker: ticker,
				Shares: shares,
			})
		}
	}

	if len(issues) > 0 {
		return nil, &domain.ValidationError{Issues: issues}
	}
	if len(holdings) == 0 {
		return nil, domain.ErrNoHoldings
	}
	return holdings, nil
}
