package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/depotfolio/backend/src/database"
)

func TestRateCacheInsertAndBatchLookup(t *testing.T) {
	entries := []FXRateCacheEntry{
		{Currency: "USD", RateDate: "2022-01-03", Rate: decimal.RequireFromString("1.1355")},
		{Currency: "USD", RateDate: "2022-01-04", Rate: decimal.RequireFromString("1.1279")},
		{Currency: "GBP", RateDate: "2022-01-03", Rate: decimal.RequireFromString("0.8391")},
	}
	for _, e := range entries {
		require.NoError(t, InsertRate(database.DB, e))
	}

	rates, err := GetCachedRates(database.DB, "USD", []string{"2022-01-03", "2022-01-04", "2022-01-05"})
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.True(t, rates["2022-01-03"].Equal(decimal.RequireFromString("1.1355")))
	assert.True(t, rates["2022-01-04"].Equal(decimal.RequireFromString("1.1279")))
	_, found := rates["2022-01-05"]
	assert.False(t, found)

	// The GBP row must not leak into USD lookups.
	gbp, err := GetCachedRates(database.DB, "GBP", []string{"2022-01-03"})
	require.NoError(t, err)
	require.Len(t, gbp, 1)
}

func TestRateCacheReplacesOnConflict(t *testing.T) {
	entry := FXRateCacheEntry{Currency: "CHF", RateDate: "2022-01-03", Rate: decimal.RequireFromString("1.0331")}
	require.NoError(t, InsertRate(database.DB, entry))

	entry.Rate = decimal.RequireFromString("1.0340")
	entry.FetchedAt = time.Now()
	require.NoError(t, InsertRate(database.DB, entry))

	rates, err := GetCachedRates(database.DB, "CHF", []string{"2022-01-03"})
	require.NoError(t, err)
	assert.True(t, rates["2022-01-03"].Equal(decimal.RequireFromString("1.0340")))
}

func TestGetCachedRatesEmptyDateList(t *testing.T) {
	rates, err := GetCachedRates(database.DB, "USD", nil)
	require.NoError(t, err)
	assert.Empty(t, rates)
}
