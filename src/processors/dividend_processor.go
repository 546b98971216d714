package processors

import (
	"github.com/shopspring/decimal"

	"github.com/username/depotfolio/backend/src/models"
)

// dividendProcessorImpl implements the DividendProcessor interface.
type dividendProcessorImpl struct{}

// NewDividendProcessor creates a new instance of DividendProcessor.
func NewDividendProcessor() DividendProcessor {
	return &dividendProcessorImpl{}
}

// CalculateTaxSummary aggregates dividend activities for tax reporting,
// grouped by year and by the country of the issuing security.
// Aggregation runs on decimals; amounts become float64 only in the final
// summary structs.
func (p *dividendProcessorImpl) CalculateTaxSummary(activities []models.StoredActivity) models.DividendTaxResult {
	type accumulator struct {
		gross decimal.Decimal
		taxed decimal.Decimal
	}
	acc := make(map[string]map[string]*accumulator)

	for _, a := range activities {
		if a.Type != models.ActivityDividend {
			continue
		}
		if len(a.Date) < 4 {
			continue
		}
		year := a.Date[:4] // Date is ISO formatted, "YYYY-MM-DD"

		country := a.CountryCode
		if country == "" {
			country = "Unknown"
		}

		if _, ok := acc[year]; !ok {
			acc[year] = make(map[string]*accumulator)
		}
		entry, ok := acc[year][country]
		if !ok {
			entry = &accumulator{}
			acc[year][country] = entry
		}

		// Amount and Tax are already in the account currency, the parsing
		// layer applied any foreign-exchange conversion.
		entry.gross = entry.gross.Add(a.Amount)
		entry.taxed = entry.taxed.Add(a.Tax)
	}

	result := make(models.DividendTaxResult)
	for year, countries := range acc {
		result[year] = make(map[string]models.DividendCountrySummary)
		for country, entry := range countries {
			result[year][country] = models.DividendCountrySummary{
				GrossAmt: entry.gross.Round(2).InexactFloat64(),
				TaxedAmt: entry.taxed.Round(2).InexactFloat64(),
			}
		}
	}

	return result
}
