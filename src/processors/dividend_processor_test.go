package processors

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/depotfolio/backend/src/models"
)

func storedDividend(date, country, amount, tax string) models.StoredActivity {
	return models.StoredActivity{
		Type:        models.ActivityDividend,
		Date:        date,
		CountryCode: country,
		Amount:      decimal.RequireFromString(amount),
		Tax:         decimal.RequireFromString(tax),
	}
}

func TestCalculateTaxSummaryGroupsByYearAndCountry(t *testing.T) {
	p := NewDividendProcessor()

	activities := []models.StoredActivity{
		storedDividend("2020-06-05", "840 - United States of America", "10.50", "2.00"),
		storedDividend("2020-12-30", "840 - United States of America", "5.25", "1.00"),
		storedDividend("2020-03-15", "040 - Austria", "96.00", "26.40"),
		storedDividend("2021-03-15", "040 - Austria", "100.00", "27.50"),
		{
			// Buys never contribute to the dividend summary.
			Type:        models.ActivityBuy,
			Date:        "2020-06-05",
			CountryCode: "040 - Austria",
			Amount:      decimal.RequireFromString("1019.70"),
		},
	}

	result := p.CalculateTaxSummary(activities)
	require.Len(t, result, 2)

	us2020 := result["2020"]["840 - United States of America"]
	assert.InDelta(t, 15.75, us2020.GrossAmt, 0.001)
	assert.InDelta(t, 3.00, us2020.TaxedAmt, 0.001)

	at2020 := result["2020"]["040 - Austria"]
	assert.InDelta(t, 96.00, at2020.GrossAmt, 0.001)
	assert.InDelta(t, 26.40, at2020.TaxedAmt, 0.001)

	at2021 := result["2021"]["040 - Austria"]
	assert.InDelta(t, 100.00, at2021.GrossAmt, 0.001)
	assert.InDelta(t, 27.50, at2021.TaxedAmt, 0.001)
}

func TestCalculateTaxSummaryRoundsToCents(t *testing.T) {
	p := NewDividendProcessor()

	// 16.40 USD at 1.1330 is 14.4748..., which must surface as 14.47.
	gross := decimal.RequireFromString("16.40").Div(decimal.RequireFromString("1.1330"))
	activities := []models.StoredActivity{
		{
			Type:        models.ActivityDividend,
			Date:        "2020-06-05",
			CountryCode: "840 - United States of America",
			Amount:      gross,
			Tax:         decimal.Zero,
		},
	}

	result := p.CalculateTaxSummary(activities)
	summary := result["2020"]["840 - United States of America"]
	assert.InDelta(t, 14.47, summary.GrossAmt, 0.0001)
}

func TestCalculateTaxSummaryFallsBackToUnknownCountry(t *testing.T) {
	p := NewDividendProcessor()

	activities := []models.StoredActivity{
		storedDividend("2020-06-05", "", "10.00", "1.00"),
	}

	result := p.CalculateTaxSummary(activities)
	require.Contains(t, result, "2020")
	assert.Contains(t, result["2020"], "Unknown")
}

func TestCalculateTaxSummaryEmptyInput(t *testing.T) {
	p := NewDividendProcessor()
	assert.Empty(t, p.CalculateTaxSummary(nil))
}
