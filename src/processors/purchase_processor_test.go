package processors

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/depotfolio/backend/src/models"
)

func storedBuy(date, amount, fee string) models.StoredActivity {
	return models.StoredActivity{
		Type:   models.ActivityBuy,
		Date:   date,
		Amount: decimal.RequireFromString(amount),
		Fee:    decimal.RequireFromString(fee),
	}
}

func TestCalculateYearSummaryGroupsByYear(t *testing.T) {
	p := NewPurchaseProcessor()

	activities := []models.StoredActivity{
		storedBuy("2020-06-05", "1019.70", "22.35"),
		storedBuy("2020-12-30", "500.00", "9.99"),
		storedBuy("2021-03-15", "170496.83", "701.80"),
		{
			// Dividends never contribute to the purchase summary.
			Type:   models.ActivityDividend,
			Date:   "2020-06-05",
			Amount: decimal.RequireFromString("14.47"),
		},
	}

	result := p.CalculateYearSummary(activities)
	require.Len(t, result, 2)

	y2020 := result["2020"]
	assert.InDelta(t, 1519.70, y2020.TotalAmt, 0.001)
	assert.InDelta(t, 32.34, y2020.FeeAmt, 0.001)
	assert.Equal(t, 2, y2020.Count)

	y2021 := result["2021"]
	assert.InDelta(t, 170496.83, y2021.TotalAmt, 0.001)
	assert.InDelta(t, 701.80, y2021.FeeAmt, 0.001)
	assert.Equal(t, 1, y2021.Count)
}

func TestCalculateYearSummaryRoundsToCents(t *testing.T) {
	p := NewPurchaseProcessor()

	// 1000 GBP at 0.8567 is 1167.2697..., which must surface as 1167.27.
	amount := decimal.RequireFromString("1000.00").Div(decimal.RequireFromString("0.8567"))
	activities := []models.StoredActivity{
		{
			Type:   models.ActivityBuy,
			Date:   "2021-03-15",
			Amount: amount,
			Fee:    decimal.Zero,
		},
	}

	result := p.CalculateYearSummary(activities)
	assert.InDelta(t, 1167.27, result["2021"].TotalAmt, 0.0001)
}

func TestCalculateYearSummaryEmptyInput(t *testing.T) {
	p := NewPurchaseProcessor()
	assert.Empty(t, p.CalculateYearSummary(nil))
}
