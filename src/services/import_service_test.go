package services

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/depotfolio/backend/src/database"
	"github.com/username/depotfolio/backend/src/logger"
	"github.com/username/depotfolio/backend/src/models"
	"github.com/username/depotfolio/backend/src/processors"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")

	dir, err := os.MkdirTemp("", "depotfolio-test-*")
	if err != nil {
		logger.L.Error("temp dir creation failed", "error", err)
		os.Exit(1)
	}
	database.InitDB(filepath.Join(dir, "test.db"))

	code := m.Run()
	database.DB.Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

func newTestService() ImportService {
	return NewImportService(
		processors.NewActivityProcessor(),
		processors.NewDividendProcessor(),
		processors.NewPurchaseProcessor(),
		cache.New(DefaultCacheExpiration, CacheCleanupInterval),
	)
}

// insertStoredActivity writes a row the same way ImportStatement does.
func insertStoredActivity(t *testing.T, a models.StoredActivity) {
	t.Helper()
	var fxCurrency, fxRate sql.NullString
	if a.FX != nil {
		fxCurrency = sql.NullString{String: a.FX.Currency, Valid: true}
		fxRate = sql.NullString{String: a.FX.Rate.String(), Valid: true}
	}
	_, err := database.DB.Exec(`INSERT INTO activities (user_id, broker, activity_type, isin, wkn, company, shares, price, amount, fee, tax, activity_date, activity_datetime, foreign_currency, fx_rate, country_code, hash_id, imported_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.UserID, a.Broker, string(a.Type), a.ISIN, a.WKN, a.Company,
		a.Shares.String(), a.Price.String(), a.Amount.String(), a.Fee.String(), a.Tax.String(),
		a.Date, a.DateTime, fxCurrency, fxRate, a.CountryCode, a.HashID, a.ImportedAt)
	require.NoError(t, err)
}

func testStoredActivity(userID int64, hashID string) models.StoredActivity {
	return models.StoredActivity{
		UserID:      userID,
		Broker:      "erstebank",
		Type:        models.ActivityBuy,
		ISIN:        "AT0000APOST4",
		WKN:         "A0JML5",
		Company:     "OESTERREICHISCHE POST AG",
		Shares:      decimal.NewFromInt(33),
		Price:       decimal.RequireFromString("30.9"),
		Amount:      decimal.RequireFromString("1019.70"),
		Fee:         decimal.RequireFromString("22.35"),
		Tax:         decimal.Zero,
		Date:        "2020-06-05",
		DateTime:    time.Date(2020, 6, 5, 9, 54, 50, 0, time.UTC),
		CountryCode: "040 - Austria",
		HashID:      hashID,
		ImportedAt:  time.Date(2020, 6, 6, 12, 0, 0, 0, time.UTC),
	}
}

func TestGetActivitiesRoundTripsDecimalsAndFX(t *testing.T) {
	const userID int64 = 101
	svc := newTestService()

	buy := testStoredActivity(userID, "hash-roundtrip-buy")
	insertStoredActivity(t, buy)

	dividend := testStoredActivity(userID, "hash-roundtrip-div")
	dividend.Type = models.ActivityDividend
	dividend.ISIN = "US0378331005"
	dividend.WKN = ""
	dividend.Company = "APPLE INC."
	dividend.Shares = decimal.NewFromInt(20)
	dividend.Amount = decimal.RequireFromString("14.4748")
	dividend.Price = decimal.RequireFromString("0.72374")
	dividend.Fee = decimal.Zero
	dividend.Tax = decimal.RequireFromString("3.8748")
	dividend.DateTime = time.Date(2020, 6, 5, 0, 0, 0, 0, time.UTC)
	dividend.CountryCode = "840 - United States of America"
	dividend.FX = &models.ForeignExchange{
		Currency: "USD",
		Rate:     decimal.RequireFromString("1.1330"),
	}
	insertStoredActivity(t, dividend)

	activities, err := svc.GetActivities(userID)
	require.NoError(t, err)
	require.Len(t, activities, 2)

	// Same datetime day; the buy has the later timestamp so it sorts second.
	got := activities[1]
	assert.Equal(t, "erstebank", got.Broker)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("1019.70")), "amount %s", got.Amount)
	assert.True(t, got.Shares.Equal(decimal.NewFromInt(33)))
	assert.Equal(t, "A0JML5", got.WKN)
	assert.Nil(t, got.FX)

	gotDiv := activities[0]
	require.NotNil(t, gotDiv.FX)
	assert.Equal(t, "USD", gotDiv.FX.Currency)
	assert.True(t, gotDiv.FX.Rate.Equal(decimal.RequireFromString("1.1330")))
	assert.True(t, gotDiv.Tax.Equal(decimal.RequireFromString("3.8748")))
}

func TestGetActivitiesCachesUntilInvalidated(t *testing.T) {
	const userID int64 = 102
	svc := newTestService()

	insertStoredActivity(t, testStoredActivity(userID, "hash-cache-1"))

	first, err := svc.GetActivities(userID)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A row written behind the cache's back stays invisible until the
	// cache is invalidated.
	insertStoredActivity(t, testStoredActivity(userID, "hash-cache-2"))

	cached, err := svc.GetActivities(userID)
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	svc.InvalidateUserCache(userID)

	fresh, err := svc.GetActivities(userID)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestGetDividendActivitiesFiltersType(t *testing.T) {
	const userID int64 = 103
	svc := newTestService()

	insertStoredActivity(t, testStoredActivity(userID, "hash-filter-buy"))

	dividend := testStoredActivity(userID, "hash-filter-div")
	dividend.Type = models.ActivityDividend
	insertStoredActivity(t, dividend)

	dividends, err := svc.GetDividendActivities(userID)
	require.NoError(t, err)
	require.Len(t, dividends, 1)
	assert.Equal(t, models.ActivityDividend, dividends[0].Type)
}

func TestGetDividendTaxSummary(t *testing.T) {
	const userID int64 = 104
	svc := newTestService()

	dividend := testStoredActivity(userID, "hash-summary-div")
	dividend.Type = models.ActivityDividend
	dividend.Amount = decimal.RequireFromString("96.00")
	dividend.Tax = decimal.RequireFromString("24.96")
	insertStoredActivity(t, dividend)

	summary, err := svc.GetDividendTaxSummary(userID)
	require.NoError(t, err)
	require.Contains(t, summary, "2020")
	entry := summary["2020"]["040 - Austria"]
	assert.InDelta(t, 96.00, entry.GrossAmt, 0.001)
	assert.InDelta(t, 24.96, entry.TaxedAmt, 0.001)
}

func TestGetPurchaseSummary(t *testing.T) {
	const userID int64 = 107
	svc := newTestService()

	insertStoredActivity(t, testStoredActivity(userID, "hash-purchase-1"))

	second := testStoredActivity(userID, "hash-purchase-2")
	second.Amount = decimal.RequireFromString("500.00")
	second.Fee = decimal.RequireFromString("9.99")
	insertStoredActivity(t, second)

	// Dividends stay out of the purchase totals.
	dividend := testStoredActivity(userID, "hash-purchase-div")
	dividend.Type = models.ActivityDividend
	insertStoredActivity(t, dividend)

	summary, err := svc.GetPurchaseSummary(userID)
	require.NoError(t, err)
	require.Contains(t, summary, "2020")
	entry := summary["2020"]
	assert.InDelta(t, 1519.70, entry.TotalAmt, 0.001)
	assert.InDelta(t, 32.34, entry.FeeAmt, 0.001)
	assert.Equal(t, 2, entry.Count)
}

func TestDeleteUserActivities(t *testing.T) {
	const userID int64 = 105
	svc := newTestService()

	insertStoredActivity(t, testStoredActivity(userID, "hash-delete-1"))
	insertStoredActivity(t, testStoredActivity(userID, "hash-delete-2"))

	before, err := svc.GetActivities(userID)
	require.NoError(t, err)
	require.Len(t, before, 2)

	require.NoError(t, svc.DeleteUserActivities(userID))

	after, err := svc.GetActivities(userID)
	require.NoError(t, err)
	assert.Empty(t, after)
}

func TestDuplicateHashViolatesUniqueConstraint(t *testing.T) {
	const userID int64 = 106

	a := testStoredActivity(userID, "hash-duplicate")
	insertStoredActivity(t, a)

	// Re-inserting the same (user_id, hash_id) pair must fail with the
	// constraint error the import loop detects duplicates by.
	_, err := database.DB.Exec(`INSERT INTO activities (user_id, broker, activity_type, isin, wkn, company, shares, price, amount, fee, tax, activity_date, activity_datetime, foreign_currency, fx_rate, country_code, hash_id, imported_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.UserID, a.Broker, string(a.Type), a.ISIN, a.WKN, a.Company,
		a.Shares.String(), a.Price.String(), a.Amount.String(), a.Fee.String(), a.Tax.String(),
		a.Date, a.DateTime, nil, nil, a.CountryCode, a.HashID, a.ImportedAt)
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "unique constraint failed")

	// The same hash under a different user is not a duplicate.
	other := testStoredActivity(107, "hash-duplicate")
	insertStoredActivity(t, other)
}
