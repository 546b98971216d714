package processors

import (
	"github.com/shopspring/decimal"

	"github.com/username/depotfolio/backend/src/models"
)

// purchaseProcessorImpl implements the PurchaseProcessor interface.
type purchaseProcessorImpl struct{}

// NewPurchaseProcessor creates a new instance of PurchaseProcessor.
func NewPurchaseProcessor() PurchaseProcessor {
	return &purchaseProcessorImpl{}
}

// CalculateYearSummary aggregates buy activities per year. Fees are
// summed separately from the gross amount so the caller can report
// transaction costs on their own.
func (p *purchaseProcessorImpl) CalculateYearSummary(activities []models.StoredActivity) models.PurchaseSummaryResult {
	type accumulator struct {
		total decimal.Decimal
		fees  decimal.Decimal
		count int
	}
	acc := make(map[string]*accumulator)

	for _, a := range activities {
		if a.Type != models.ActivityBuy {
			continue
		}
		if len(a.Date) < 4 {
			continue
		}
		year := a.Date[:4] // Date is ISO formatted, "YYYY-MM-DD"

		entry, ok := acc[year]
		if !ok {
			entry = &accumulator{}
			acc[year] = entry
		}

		entry.total = entry.total.Add(a.Amount)
		entry.fees = entry.fees.Add(a.Fee)
		entry.count++
	}

	result := make(models.PurchaseSummaryResult)
	for year, entry := range acc {
		result[year] = models.PurchaseYearSummary{
			TotalAmt: entry.total.Round(2).InexactFloat64(),
			FeeAmt:   entry.fees.Round(2).InexactFloat64(),
			Count:    entry.count,
		}
	}

	return result
}
