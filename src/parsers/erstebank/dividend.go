// backend/src/parsers/erstebank/dividend.go
package erstebank

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/username/depotfolio/backend/src/models"
	"github.com/username/depotfolio/backend/src/parsing"
)

// taxComponentAnchors are the independently optional tax lines a payout
// note may carry when it lacks a net payout figure. Two withholding-tax
// spellings exist across the form generations.
var taxComponentAnchors = []string{
	"Quellensteuer",
	"QESt",
	"Kapitalertragsteuer",
	"Solidaritätszuschlag",
}

// extractDividend pulls the fields of a dividend or fund payout note. The
// gross payout is read from the first matching anchor of the priority list;
// it is printed in the foreign currency when the note carries a Devisenkurs
// block. Tax reconciliation prefers gross-minus-net (exact to the cent) and
// falls back to summing the optional tax component lines, where an absent
// component contributes zero by design.
func extractDividend(seg []string, gen generation) (parsing.RawFields, error) {
	lay := gen.layout()

	sec, err := extractSecurity(seg, lay)
	if err != nil {
		return parsing.RawFields{}, err
	}

	grossIdx, grossLabel, ok := parsing.FindAnyAnchor(seg, dividendGrossAnchors...)
	if !ok {
		return parsing.RawFields{}, fmt.Errorf("gross payout: %w", parsing.ErrAnchorNotFound)
	}
	gross, err := parsing.ParseGermanDecimalAt(seg, grossIdx, lay.valueOffset)
	if err != nil {
		return parsing.RawFields{}, fmt.Errorf("%s: %w", grossLabel, err)
	}

	fx, err := extractFX(seg)
	if err != nil {
		return parsing.RawFields{}, err
	}
	grossConverted := parsing.ConvertToAccountCurrency(gross, fx)

	tax, err := extractDividendTax(seg, lay, grossConverted)
	if err != nil {
		return parsing.RawFields{}, err
	}

	paidAt, err := dividendDateTime(seg)
	if err != nil {
		return parsing.RawFields{}, err
	}

	return parsing.RawFields{
		Broker:   brokerName,
		Type:     models.ActivityDividend,
		ISIN:     sec.isin,
		WKN:      sec.wkn,
		Company:  sec.company,
		Shares:   sec.shares,
		Amount:   gross,
		Fee:      decimal.Zero,
		Tax:      tax,
		FX:       fx,
		DateTime: paidAt,
	}, nil
}

func extractDividendTax(seg []string, lay layout, grossConverted decimal.Decimal) (decimal.Decimal, error) {
	// Net payout figures are always printed in the account currency.
	if netIdx, ok := parsing.FindAnchor(seg, "Auszahlungsbetrag"); ok {
		net, err := parsing.ParseGermanDecimalAt(seg, netIdx, lay.valueOffset)
		if err != nil {
			return decimal.Zero, fmt.Errorf("Auszahlungsbetrag: %w", err)
		}
		return grossConverted.Sub(net), nil
	}

	tax := decimal.Zero
	for _, label := range taxComponentAnchors {
		idx, ok := parsing.FindAnchor(seg, label)
		if !ok {
			continue
		}
		component, err := parsing.ParseGermanDecimalAt(seg, idx, lay.valueOffset)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s: %w", label, err)
		}
		tax = tax.Add(component)
	}
	return tax, nil
}
