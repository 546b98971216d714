package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/net/publicsuffix"

	"github.com/username/depotfolio/backend/src/database"
	"github.com/username/depotfolio/backend/src/logger"
	"github.com/username/depotfolio/backend/src/model"
	"github.com/username/depotfolio/backend/src/models"
	"github.com/username/depotfolio/backend/src/processors"
)

// RateService resolves EUR reference rates for a currency and date. It is
// used to cross-check statement FX rates and to convert aggregates for
// reporting; parsing itself always uses the rate printed on the statement.
type RateService interface {
	GetRate(currency string, date time.Time) (decimal.Decimal, error)
}

const ecbDataAPIBase = "https://data-api.ecb.europa.eu/service/data/EXR"

type rateServiceImpl struct {
	httpClient http.Client
}

// NewRateService creates a new instance of the rate service. The HTTP client
// carries a cookie jar so the ECB data portal's session cookies survive
// across requests.
func NewRateService() RateService {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		logger.L.Error("Failed to create cookie jar", "error", err)
	}

	return &rateServiceImpl{
		httpClient: http.Client{
			Jar:     jar,
			Timeout: 20 * time.Second,
		},
	}
}

// GetRate resolves the EUR reference rate for a currency on a date.
// Lookup order: the historical rates file, the database cache, and finally
// the ECB data portal API, whose answers are cached for the next call.
func (s *rateServiceImpl) GetRate(currency string, date time.Time) (decimal.Decimal, error) {
	if currency == "EUR" {
		return decimal.NewFromInt(1), nil
	}
	dateStr := date.Format("2006-01-02")

	if rate, err := processors.GetExchangeRate(currency, date); err == nil {
		return rate, nil
	}

	cached, err := model.GetCachedRates(database.DB, currency, []string{dateStr})
	if err != nil {
		logger.L.Warn("FX rate cache lookup failed", "currency", currency, "date", dateStr, "error", err)
	} else if rate, ok := cached[dateStr]; ok {
		return rate, nil
	}

	rate, err := s.fetchRateFromECB(currency, dateStr)
	if err != nil {
		return decimal.Zero, err
	}

	entry := model.FXRateCacheEntry{Currency: currency, RateDate: dateStr, Rate: rate}
	if err := model.InsertRate(database.DB, entry); err != nil {
		logger.L.Warn("Failed to cache FX rate", "currency", currency, "date", dateStr, "error", err)
	}
	return rate, nil
}

// fetchRateFromECB queries the ECB data portal for the daily reference rate.
func (s *rateServiceImpl) fetchRateFromECB(currency, dateStr string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/D.%s.EUR.SP00.A?startPeriod=%s&endPeriod=%s&format=jsondata",
		ecbDataAPIBase, currency, dateStr, dateStr)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to call ECB data API for %s on %s: %w", currency, dateStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("ECB data API returned non-OK status %d for %s on %s", resp.StatusCode, currency, dateStr)
	}

	var ecbData models.ECBResponse
	if err := json.NewDecoder(resp.Body).Decode(&ecbData); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode ECB response for %s on %s: %w", currency, dateStr, err)
	}

	if len(ecbData.DataSets) == 0 {
		return decimal.Zero, fmt.Errorf("ECB data API returned no data sets for %s on %s", currency, dateStr)
	}
	for _, series := range ecbData.DataSets[0].Series {
		for _, observation := range series.Observations {
			if len(observation) == 0 {
				continue
			}
			rate := decimal.NewFromFloat(observation[0])
			if !rate.IsPositive() {
				return decimal.Zero, fmt.Errorf("ECB data API returned non-positive rate for %s on %s", currency, dateStr)
			}
			logger.L.Info("Fetched FX rate from ECB", "currency", currency, "date", dateStr, "rate", rate)
			return rate, nil
		}
	}
	return decimal.Zero, fmt.Errorf("no observation found for %s on %s", currency, dateStr)
}
