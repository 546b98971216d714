// backend/src/models/activity.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityType is the closed set of normalized transaction kinds the engine
// produces. Each broker module maps its own document sub-types onto these.
type ActivityType string

const (
	ActivityBuy      ActivityType = "Buy"
	ActivityDividend ActivityType = "Dividend"
)

// ForeignExchange carries the foreign-currency side of an activity. It is
// deliberately a single optional struct: the currency and the rate are either
// both present or both absent, and modelling the pair as one value enforces
// that by type rather than by a truthiness check.
type ForeignExchange struct {
	Currency string          `json:"foreignCurrency"`
	Rate     decimal.Decimal `json:"fxRate"`
}

// Activity is the canonical output record of a statement parse. All monetary
// fields are exact decimals; Amount and Price are always expressed in the
// account currency, after any foreign-exchange conversion.
type Activity struct {
	Broker   string           `json:"broker"`
	Type     ActivityType     `json:"type"`
	ISIN     string           `json:"isin"`
	WKN      string           `json:"wkn,omitempty"`
	Company  string           `json:"company"`
	Shares   decimal.Decimal  `json:"shares"`
	Price    decimal.Decimal  `json:"price"`
	Amount   decimal.Decimal  `json:"amount"`
	Fee      decimal.Decimal  `json:"fee"`
	Tax      decimal.Decimal  `json:"tax"`
	Date     string           `json:"date"`
	DateTime time.Time        `json:"datetime"`
	FX       *ForeignExchange `json:"fx,omitempty"`
}

// ParseOutcome status codes. Status 5 mirrors the classifier contract: the
// document is not recognized by the module (or by any module, at dispatch
// level). Anything else that goes wrong during extraction is an error, not a
// status code.
const (
	StatusOK            = 0
	StatusNotRecognized = 5
)

// ParseOutcome is the result of running one broker module over one document.
// On success Activities holds at least one record and Status is StatusOK; on
// a negative classification Activities is nil and Status is
// StatusNotRecognized.
type ParseOutcome struct {
	Activities []Activity `json:"activities,omitempty"`
	Status     int        `json:"status"`
}

// Recognized reports whether the outcome carries parsed activities.
func (o ParseOutcome) Recognized() bool {
	return o.Status == StatusOK
}
