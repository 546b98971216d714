// backend/src/parsing/assemble.go
package parsing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/username/depotfolio/backend/src/models"
)

// RawFields is the broker/sub-type-specific intermediate bag handed to
// Assemble. It exists only for the duration of one parse call. Amount is the
// gross amount as printed on the statement, still in the foreign currency
// when FX is set.
type RawFields struct {
	Broker   string
	Type     models.ActivityType
	ISIN     string
	WKN      string
	Company  string
	Shares   decimal.Decimal
	Amount   decimal.Decimal
	Fee      decimal.Decimal
	Tax      decimal.Decimal
	FX       *models.ForeignExchange
	DateTime time.Time
}

// assembleTolerance bounds the amount == price * shares round-trip check.
// Price is produced by decimal division at decimal.DivisionPrecision digits
// and the rounding error grows with the share count when it multiplies back,
// so the bound sits well above that noise but far below cent precision.
var assembleTolerance = decimal.New(1, -8)

// ConvertToAccountCurrency converts a statement amount into the account
// currency by dividing by the foreign-exchange rate. With no FX pair present
// the amount passes through untouched; it must never be divided by a default
// rate.
func ConvertToAccountCurrency(amount decimal.Decimal, fx *models.ForeignExchange) decimal.Decimal {
	if fx == nil {
		return amount
	}
	return amount.Div(fx.Rate)
}

// Assemble merges extracted raw fields into a validated Activity. The
// foreign-exchange conversion happens before the price is computed, so the
// price is always expressed in the account currency.
func Assemble(raw RawFields) (models.Activity, error) {
	if raw.FX != nil && !raw.FX.Rate.IsPositive() {
		return models.Activity{}, &ValidationError{Field: "fxRate", Reason: "must be greater than zero"}
	}
	if !raw.Shares.IsPositive() {
		return models.Activity{}, &ValidationError{Field: "shares", Reason: "must be greater than zero"}
	}

	amount := ConvertToAccountCurrency(raw.Amount, raw.FX)
	price := amount.Div(raw.Shares)

	activity := models.Activity{
		Broker:   raw.Broker,
		Type:     raw.Type,
		ISIN:     raw.ISIN,
		WKN:      raw.WKN,
		Company:  raw.Company,
		Shares:   raw.Shares,
		Price:    price,
		Amount:   amount,
		Fee:      raw.Fee,
		Tax:      raw.Tax,
		Date:     raw.DateTime.Format(ISODateLayout),
		DateTime: raw.DateTime,
		FX:       raw.FX,
	}
	if err := Validate(activity); err != nil {
		return models.Activity{}, err
	}
	return activity, nil
}

// Validate checks the assembled record against the domain invariants and
// reports the first failing field. A zero fee or tax is legitimate; a
// negative one never is.
func Validate(a models.Activity) error {
	switch {
	case a.Broker == "":
		return &ValidationError{Field: "broker", Reason: "missing"}
	case a.Type == "":
		return &ValidationError{Field: "type", Reason: "missing"}
	case len(a.ISIN) != 12:
		return &ValidationError{Field: "isin", Reason: "must be 12 characters"}
	case a.Company == "":
		return &ValidationError{Field: "company", Reason: "missing"}
	case !a.Shares.IsPositive():
		return &ValidationError{Field: "shares", Reason: "must be greater than zero"}
	case !a.Amount.IsPositive():
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	case a.Fee.IsNegative():
		return &ValidationError{Field: "fee", Reason: "must not be negative"}
	case a.Tax.IsNegative():
		return &ValidationError{Field: "tax", Reason: "must not be negative"}
	case a.DateTime.IsZero():
		return &ValidationError{Field: "datetime", Reason: "missing"}
	case a.Date == "":
		return &ValidationError{Field: "date", Reason: "missing"}
	}
	if a.FX != nil {
		if a.FX.Currency == "" {
			return &ValidationError{Field: "foreignCurrency", Reason: "missing while fxRate is present"}
		}
		if !a.FX.Rate.IsPositive() {
			return &ValidationError{Field: "fxRate", Reason: "must be greater than zero"}
		}
	}
	if diff := a.Amount.Sub(a.Price.Mul(a.Shares)).Abs(); diff.GreaterThan(assembleTolerance) {
		return &ValidationError{Field: "price", Reason: "amount does not equal price times shares"}
	}
	return nil
}
