package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoredActivity is an Activity persisted for a user, enriched with the
// country of the issuing security and a content hash used for import
// deduplication.
type StoredActivity struct {
	ID          int64            `json:"id"`
	UserID      int64            `json:"user_id"`
	Broker      string           `json:"broker"`
	Type        ActivityType     `json:"activityType"`
	ISIN        string           `json:"isin"`
	WKN         string           `json:"wkn,omitempty"`
	Company     string           `json:"company"`
	Shares      decimal.Decimal  `json:"shares"`
	Price       decimal.Decimal  `json:"price"`
	Amount      decimal.Decimal  `json:"amount"`
	Fee         decimal.Decimal  `json:"fee"`
	Tax         decimal.Decimal  `json:"tax"`
	Date        string           `json:"date"`
	DateTime    time.Time        `json:"datetime"`
	FX          *ForeignExchange `json:"fx,omitempty"`
	CountryCode string           `json:"country_code,omitempty"`
	HashID      string           `json:"-"`
	ImportedAt  time.Time        `json:"imported_at"`
}

// Activity strips the persistence fields back off.
func (s *StoredActivity) Activity() Activity {
	return Activity{
		Broker:   s.Broker,
		Type:     s.Type,
		ISIN:     s.ISIN,
		WKN:      s.WKN,
		Company:  s.Company,
		Shares:   s.Shares,
		Price:    s.Price,
		Amount:   s.Amount,
		Fee:      s.Fee,
		Tax:      s.Tax,
		Date:     s.Date,
		DateTime: s.DateTime,
		FX:       s.FX,
	}
}
