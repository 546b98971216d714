// backend/src/parsers/erstebank/buy.go
package erstebank

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/username/depotfolio/backend/src/models"
	"github.com/username/depotfolio/backend/src/parsing"
)

// extractBuy pulls the fields of a buy confirmation out of the line segment
// starting at the ISIN anchor. The gross amount sits under the Kurswert
// label; on the 2017 forms the Kurswert still includes the order fees, so
// the net order amount is Kurswert minus fee there.
func extractBuy(seg []string, gen generation) (parsing.RawFields, error) {
	lay := gen.layout()

	sec, err := extractSecurity(seg, lay)
	if err != nil {
		return parsing.RawFields{}, err
	}

	kwIdx, ok := parsing.FindAnchor(seg, "Kurswert")
	if !ok {
		return parsing.RawFields{}, fmt.Errorf("Kurswert: %w", parsing.ErrAnchorNotFound)
	}
	gross, err := parsing.ParseGermanDecimalAt(seg, kwIdx, lay.valueOffset)
	if err != nil {
		return parsing.RawFields{}, fmt.Errorf("Kurswert: %w", err)
	}

	fee, err := extractFee(seg, lay)
	if err != nil {
		return parsing.RawFields{}, err
	}

	fx, err := extractFX(seg)
	if err != nil {
		return parsing.RawFields{}, err
	}

	amount := gross
	if lay.grossIncludesFee {
		amount = gross.Sub(fee)
	}

	executedAt, err := buyDateTime(seg)
	if err != nil {
		return parsing.RawFields{}, err
	}

	return parsing.RawFields{
		Broker:   brokerName,
		Type:     models.ActivityBuy,
		ISIN:     sec.isin,
		WKN:      sec.wkn,
		Company:  sec.company,
		Shares:   sec.shares,
		Amount:   amount,
		Fee:      fee,
		Tax:      decimal.Zero,
		FX:       fx,
		DateTime: executedAt,
	}, nil
}
