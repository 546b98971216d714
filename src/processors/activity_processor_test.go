package processors

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/depotfolio/backend/src/models"
)

func sampleActivity() models.Activity {
	return models.Activity{
		Broker:   "erstebank",
		Type:     models.ActivityBuy,
		ISIN:     "AT0000APOST4",
		Company:  "OESTERREICHISCHE POST AG",
		Shares:   decimal.NewFromInt(33),
		Price:    decimal.RequireFromString("30.9"),
		Amount:   decimal.RequireFromString("1019.70"),
		Fee:      decimal.RequireFromString("22.35"),
		Date:     "2020-06-05",
		DateTime: time.Date(2020, 6, 5, 9, 54, 50, 0, time.UTC),
	}
}

func TestProcessEnrichesActivities(t *testing.T) {
	p := NewActivityProcessor()

	stored := p.Process(42, []models.Activity{sampleActivity()})
	require.Len(t, stored, 1)

	s := stored[0]
	assert.Equal(t, int64(42), s.UserID)
	assert.Equal(t, "erstebank", s.Broker)
	assert.Equal(t, "040 - Austria", s.CountryCode)
	assert.Len(t, s.HashID, 64)
	assert.False(t, s.ImportedAt.IsZero())
	assert.True(t, s.Amount.Equal(decimal.RequireFromString("1019.70")))
}

func TestProcessEmptyInput(t *testing.T) {
	p := NewActivityProcessor()
	assert.Empty(t, p.Process(1, nil))
}

func TestGenerateHashIsStable(t *testing.T) {
	a := sampleActivity()
	assert.Equal(t, generateHash(a), generateHash(a))
}

func TestGenerateHashDistinguishesSourceFields(t *testing.T) {
	base := sampleActivity()

	changedAmount := base
	changedAmount.Amount = decimal.RequireFromString("1019.71")
	assert.NotEqual(t, generateHash(base), generateHash(changedAmount))

	changedDate := base
	changedDate.DateTime = base.DateTime.Add(time.Second)
	assert.NotEqual(t, generateHash(base), generateHash(changedDate))

	changedType := base
	changedType.Type = models.ActivityDividend
	assert.NotEqual(t, generateHash(base), generateHash(changedType))

	changedISIN := base
	changedISIN.ISIN = "US0378331005"
	assert.NotEqual(t, generateHash(base), generateHash(changedISIN))
}

func TestGenerateHashIgnoresDerivedFields(t *testing.T) {
	// Country code and import time are enrichment, not source identity;
	// re-importing the same statement must dedupe regardless of them.
	a := sampleActivity()
	b := a
	b.Company = "RENAMED ISSUER"
	b.Fee = decimal.RequireFromString("0.01")
	assert.Equal(t, generateHash(a), generateHash(b))
}
