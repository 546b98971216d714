package services

import (
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/username/depotfolio/backend/src/database"
	"github.com/username/depotfolio/backend/src/logger"
	"github.com/username/depotfolio/backend/src/models"
	"github.com/username/depotfolio/backend/src/parsers"
	"github.com/username/depotfolio/backend/src/pdftext"
	"github.com/username/depotfolio/backend/src/processors"
)

const (
	ckUserActivities  = "res_activities_user_%d"
	ckDividendSummary = "agg_dividend_summary_user_%d"
	ckPurchaseSummary = "agg_purchase_summary_user_%d"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type importServiceImpl struct {
	activityProcessor processors.ActivityProcessor
	dividendProcessor processors.DividendProcessor
	purchaseProcessor processors.PurchaseProcessor
	reportCache       *cache.Cache
}

func NewImportService(
	activityProcessor processors.ActivityProcessor,
	dividendProcessor processors.DividendProcessor,
	purchaseProcessor processors.PurchaseProcessor,
	reportCache *cache.Cache,
) ImportService {
	return &importServiceImpl{
		activityProcessor: activityProcessor,
		dividendProcessor: dividendProcessor,
		purchaseProcessor: purchaseProcessor,
		reportCache:       reportCache,
	}
}

func (s *importServiceImpl) ImportStatement(file io.ReaderAt, size int64, userID int64) (*ImportResult, error) {
	overallStartTime := time.Now()
	logger.L.Info("ImportStatement START", "userID", userID, "sizeBytes", size)

	doc, err := pdftext.ExtractReader(file, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	outcome, err := parsers.ParseDocument(doc, "pdf")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	if !outcome.Recognized() {
		return nil, ErrUnsupportedDocument
	}

	stored := s.activityProcessor.Process(userID, outcome.Activities)

	dbTx, err := database.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`INSERT INTO activities (user_id, broker, activity_type, isin, wkn, company, shares, price, amount, fee, tax, activity_date, activity_datetime, foreign_currency, fx_rate, country_code, hash_id, imported_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	imported, duplicates := 0, 0
	for _, a := range stored {
		var fxCurrency, fxRate sql.NullString
		if a.FX != nil {
			fxCurrency = sql.NullString{String: a.FX.Currency, Valid: true}
			fxRate = sql.NullString{String: a.FX.Rate.String(), Valid: true}
		}
		_, err := stmt.Exec(a.UserID, a.Broker, string(a.Type), a.ISIN, a.WKN, a.Company,
			a.Shares.String(), a.Price.String(), a.Amount.String(), a.Fee.String(), a.Tax.String(),
			a.Date, a.DateTime, fxCurrency, fxRate, a.CountryCode, a.HashID, a.ImportedAt)
		if err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
				logger.L.Debug("Skipping duplicate activity on import", "userID", userID, "hash_id", a.HashID)
				duplicates++
				continue
			}
			return nil, fmt.Errorf("error inserting activity (ISIN: %s): %w", a.ISIN, err)
		}
		imported++
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing activities: %w", err)
	}

	// Invalidate rather than patch cached aggregates. The next request
	// triggers a full, correct recalculation.
	s.InvalidateUserCache(userID)

	logger.L.Info("ImportStatement END", "userID", userID, "imported", imported, "duplicates", duplicates, "duration", time.Since(overallStartTime))
	return &ImportResult{Activities: stored, Imported: imported, Duplicates: duplicates}, nil
}

// InvalidateUserCache clears all cached data for a user, forcing a complete rebuild on the next request.
func (s *importServiceImpl) InvalidateUserCache(userID int64) {
	keysToDelete := []string{
		fmt.Sprintf(ckUserActivities, userID),
		fmt.Sprintf(ckDividendSummary, userID),
		fmt.Sprintf(ckPurchaseSummary, userID),
	}
	for _, key := range keysToDelete {
		s.reportCache.Delete(key)
	}
	logger.L.Info("Invalidated all caches for user", "userID", userID)
}

func (s *importServiceImpl) GetActivities(userID int64) ([]models.StoredActivity, error) {
	cacheKey := fmt.Sprintf(ckUserActivities, userID)
	if cached, found := s.reportCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for GetActivities", "userID", userID)
		return cached.([]models.StoredActivity), nil
	}

	activities, err := fetchUserActivities(userID)
	if err != nil {
		return nil, err
	}
	s.reportCache.Set(cacheKey, activities, DefaultCacheExpiration)
	return activities, nil
}

func (s *importServiceImpl) GetDividendActivities(userID int64) ([]models.StoredActivity, error) {
	activities, err := s.GetActivities(userID)
	if err != nil {
		return nil, err
	}
	var dividends []models.StoredActivity
	for _, a := range activities {
		if a.Type == models.ActivityDividend {
			dividends = append(dividends, a)
		}
	}
	return dividends, nil
}

func (s *importServiceImpl) GetDividendTaxSummary(userID int64) (models.DividendTaxResult, error) {
	cacheKey := fmt.Sprintf(ckDividendSummary, userID)
	if data, found := s.reportCache.Get(cacheKey); found {
		return data.(models.DividendTaxResult), nil
	}
	activities, err := s.GetActivities(userID)
	if err != nil {
		return nil, err
	}
	summary := s.dividendProcessor.CalculateTaxSummary(activities)
	s.reportCache.Set(cacheKey, summary, DefaultCacheExpiration)
	return summary, nil
}

func (s *importServiceImpl) GetPurchaseSummary(userID int64) (models.PurchaseSummaryResult, error) {
	cacheKey := fmt.Sprintf(ckPurchaseSummary, userID)
	if data, found := s.reportCache.Get(cacheKey); found {
		return data.(models.PurchaseSummaryResult), nil
	}
	activities, err := s.GetActivities(userID)
	if err != nil {
		return nil, err
	}
	summary := s.purchaseProcessor.CalculateYearSummary(activities)
	s.reportCache.Set(cacheKey, summary, DefaultCacheExpiration)
	return summary, nil
}

func (s *importServiceImpl) DeleteUserActivities(userID int64) error {
	_, err := database.DB.Exec(`DELETE FROM activities WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("error deleting activities for userID %d: %w", userID, err)
	}
	s.InvalidateUserCache(userID)
	return nil
}

func fetchUserActivities(userID int64) ([]models.StoredActivity, error) {
	logger.L.Debug("Fetching activities from DB", "userID", userID)
	rows, err := database.DB.Query(`SELECT id, user_id, broker, activity_type, isin, wkn, company, shares, price, amount, fee, tax, activity_date, activity_datetime, foreign_currency, fx_rate, country_code, hash_id, imported_at FROM activities WHERE user_id = ? ORDER BY activity_datetime ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying activities for userID %d: %w", userID, err)
	}
	defer rows.Close()

	var activities []models.StoredActivity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning activity row for userID %d: %w", userID, err)
		}
		activities = append(activities, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over activity rows for userID %d: %w", userID, err)
	}
	logger.L.Info("DB fetch complete.", "userID", userID, "activityCount", len(activities))
	return activities, nil
}

func scanActivity(rows *sql.Rows) (models.StoredActivity, error) {
	var a models.StoredActivity
	var activityType string
	var wkn, countryCode, fxCurrency, fxRate sql.NullString
	var shares, price, amount, fee, tax string

	err := rows.Scan(&a.ID, &a.UserID, &a.Broker, &activityType, &a.ISIN, &wkn, &a.Company,
		&shares, &price, &amount, &fee, &tax,
		&a.Date, &a.DateTime, &fxCurrency, &fxRate, &countryCode, &a.HashID, &a.ImportedAt)
	if err != nil {
		return a, err
	}

	a.Type = models.ActivityType(activityType)
	a.WKN = wkn.String
	a.CountryCode = countryCode.String

	for _, f := range []struct {
		dst *decimal.Decimal
		src string
	}{
		{&a.Shares, shares}, {&a.Price, price}, {&a.Amount, amount}, {&a.Fee, fee}, {&a.Tax, tax},
	} {
		d, err := decimal.NewFromString(f.src)
		if err != nil {
			return a, fmt.Errorf("invalid stored decimal %q: %w", f.src, err)
		}
		*f.dst = d
	}

	// The fx columns are written together or not at all; a row with only one
	// of them set is corrupt.
	if fxCurrency.Valid != fxRate.Valid {
		return a, fmt.Errorf("inconsistent fx columns for activity %d", a.ID)
	}
	if fxCurrency.Valid {
		rate, err := decimal.NewFromString(fxRate.String)
		if err != nil {
			return a, fmt.Errorf("invalid stored fx rate %q: %w", fxRate.String, err)
		}
		a.FX = &models.ForeignExchange{Currency: fxCurrency.String, Rate: rate}
	}
	return a, nil
}
