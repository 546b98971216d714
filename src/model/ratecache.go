package model

import (
	"database/sql"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FXRateCacheEntry represents a row in the fx_rate_cache table.
// It caches a EUR reference rate for a currency on a given date so
// repeated imports do not hit the ECB API again.
type FXRateCacheEntry struct {
	Currency  string
	RateDate  string // ISO date, e.g. "2020-06-05"
	Rate      decimal.Decimal
	FetchedAt time.Time
}

// GetCachedRates retrieves cached rates for one currency over multiple dates
// in a single query. It returns a map keyed by date for easy lookup.
func GetCachedRates(db *sql.DB, currency string, dates []string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal)
	if len(dates) == 0 {
		return rates, nil
	}

	query := `SELECT rate_date, rate FROM fx_rate_cache WHERE currency = ? AND rate_date IN (?` +
		strings.Repeat(",?", len(dates)-1) + `)`

	args := make([]interface{}, 0, len(dates)+1)
	args = append(args, currency)
	for _, d := range dates {
		args = append(args, d)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rateDate, rateStr string
		if err := rows.Scan(&rateDate, &rateStr); err != nil {
			return nil, err
		}
		rate, err := decimal.NewFromString(rateStr)
		if err != nil {
			return nil, err
		}
		rates[rateDate] = rate
	}

	return rates, rows.Err()
}

// InsertRate inserts a single cached rate. Conflicting rows are replaced so a
// refreshed rate wins over a stale one.
func InsertRate(db *sql.DB, entry FXRateCacheEntry) error {
	query := `
		INSERT OR REPLACE INTO fx_rate_cache (currency, rate_date, rate, fetched_at)
		VALUES (?, ?, ?, ?)`

	_, err := db.Exec(query, entry.Currency, entry.RateDate, entry.Rate.String(), time.Now())
	return err
}
