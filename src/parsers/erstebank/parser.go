// backend/src/parsers/erstebank/parser.go
//
// Broker module for Erste Bank / Sparkassen (Austria) securities
// confirmations: buy orders and dividend/fund payout notes, across the
// 2017, 2019 and 2020 form generations, including foreign-currency trades.
package erstebank

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/username/depotfolio/backend/src/models"
	"github.com/username/depotfolio/backend/src/parsing"
)

const brokerName = "erstebank"

type Parser struct{}

func New() *Parser { return &Parser{} }

func (p *Parser) Name() string { return brokerName }

// CanParse reports whether the document is an Erste Bank statement of a
// sub-type and form generation this module implements. Only textual,
// page-oriented sources are supported, so anything that is not a PDF text
// extraction is rejected up front.
func (p *Parser) CanParse(doc parsing.Document, extension string) bool {
	if extension != "pdf" || len(doc) == 0 {
		return false
	}
	_, _, ok := classify(doc[0])
	return ok
}

// Parse runs classify, extract, assemble and validate over one document.
// A document that no longer classifies (it slipped past CanParse) yields a
// StatusNotRecognized outcome; failures after a positive classification are
// format drift and propagate as errors.
func (p *Parser) Parse(doc parsing.Document) (models.ParseOutcome, error) {
	if len(doc) == 0 {
		return models.ParseOutcome{Status: models.StatusNotRecognized}, nil
	}
	docType, gen, ok := classify(doc[0])
	if !ok {
		return models.ParseOutcome{Status: models.StatusNotRecognized}, nil
	}

	// Everything before the first ISIN label is masthead and boilerplate;
	// data fields never appear there.
	lines := parsing.Flatten(doc)
	isinIdx, found := parsing.FindAnchor(lines, "ISIN")
	if !found {
		return models.ParseOutcome{}, fmt.Errorf("erstebank: ISIN: %w", parsing.ErrAnchorNotFound)
	}
	seg := lines[isinIdx:]

	var raw parsing.RawFields
	var err error
	switch docType {
	case typeBuy:
		raw, err = extractBuy(seg, gen)
	case typeDividend:
		raw, err = extractDividend(seg, gen)
	}
	if err != nil {
		return models.ParseOutcome{}, fmt.Errorf("erstebank: %w", err)
	}

	activity, err := parsing.Assemble(raw)
	if err != nil {
		return models.ParseOutcome{}, fmt.Errorf("erstebank: %w", err)
	}
	return models.ParseOutcome{
		Activities: []models.Activity{activity},
		Status:     models.StatusOK,
	}, nil
}

// security holds the fields of the instrument block every sub-type shares.
type security struct {
	isin    string
	wkn     string
	company string
	shares  decimal.Decimal
}

// extractSecurity reads the instrument block: ISIN value, optional WKN, the
// company name as the ordered join of the lines between the Wertpapier label
// and the shares label, and the share count.
func extractSecurity(seg []string, lay layout) (security, error) {
	var sec security

	isin, err := parsing.LineAt(seg, 0, 1)
	if err != nil {
		return sec, fmt.Errorf("ISIN value: %w", err)
	}
	sec.isin = strings.TrimSpace(isin)

	if idx, ok := parsing.FindAnchor(seg, "WKN"); ok {
		wkn, err := parsing.LineAt(seg, idx, 1)
		if err != nil {
			return sec, fmt.Errorf("WKN value: %w", err)
		}
		sec.wkn = strings.TrimSpace(wkn)
	}

	wpIdx, ok := parsing.FindAnchor(seg, "Wertpapier")
	if !ok {
		return sec, fmt.Errorf("Wertpapier: %w", parsing.ErrAnchorNotFound)
	}
	sharesIdx, ok := parsing.FindAnchor(seg, lay.sharesLabel)
	if !ok {
		return sec, fmt.Errorf("%s: %w", lay.sharesLabel, parsing.ErrAnchorNotFound)
	}
	if sharesIdx <= wpIdx {
		return sec, fmt.Errorf("Wertpapier block: %w", parsing.ErrOffsetOutOfRange)
	}

	nameLines := make([]string, 0, sharesIdx-wpIdx-1)
	for _, line := range seg[wpIdx+1 : sharesIdx] {
		nameLines = append(nameLines, strings.TrimSpace(line))
	}
	sec.company = strings.Join(nameLines, " ")

	sec.shares, err = parsing.ParseGermanDecimalAt(seg, sharesIdx, 1)
	if err != nil {
		return sec, fmt.Errorf("shares: %w", err)
	}
	return sec, nil
}

// extractFX reads the optional foreign-currency block. When the Devisenkurs
// anchor is absent both currency and rate are absent, and no amount may be
// divided by any rate downstream.
func extractFX(seg []string) (*models.ForeignExchange, error) {
	idx, ok := parsing.FindAnchor(seg, "Devisenkurs")
	if !ok {
		return nil, nil
	}
	rate, err := parsing.ParseGermanDecimalAt(seg, idx, 1)
	if err != nil {
		return nil, fmt.Errorf("Devisenkurs rate: %w", err)
	}
	currency, err := parsing.LineAt(seg, idx, 2)
	if err != nil {
		return nil, fmt.Errorf("Devisenkurs currency: %w", err)
	}
	return &models.ForeignExchange{
		Currency: strings.TrimSpace(currency),
		Rate:     rate,
	}, nil
}

var feeAnchors = []string{"Provision", "Spesen"}

// extractFee reads the order fee. When a percentage-of-value annotation sits
// immediately after the label the actual value moves one line further down;
// reading with a fixed offset there would silently take the percentage
// string as the fee amount.
func extractFee(seg []string, lay layout) (decimal.Decimal, error) {
	idx, label, ok := parsing.FindAnyAnchor(seg, feeAnchors...)
	if !ok {
		return decimal.Zero, fmt.Errorf("fee (%s): %w", strings.Join(feeAnchors, "/"), parsing.ErrAnchorNotFound)
	}
	offset := lay.valueOffset
	if next, err := parsing.LineAt(seg, idx, 1); err == nil && strings.Contains(next, "%") {
		offset++
	}
	fee, err := parsing.ParseGermanDecimalAt(seg, idx, offset)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fee (%s): %w", label, err)
	}
	return fee, nil
}

// buyDateTime resolves the execution timestamp from the anchor priority
// list. Only the combined Schlusstag/-Zeit form carries a time of day; the
// date-only anchors fall back to the midnight sentinel.
func buyDateTime(seg []string) (time.Time, error) {
	if idx, ok := parsing.FindAnchor(seg, "Schlusstag/-Zeit"); ok {
		dateStr, err := parsing.LineAt(seg, idx, 1)
		if err != nil {
			return time.Time{}, fmt.Errorf("Schlusstag/-Zeit date: %w", err)
		}
		timeStr, err := parsing.LineAt(seg, idx, 2)
		if err != nil {
			return time.Time{}, fmt.Errorf("Schlusstag/-Zeit time: %w", err)
		}
		ts, _, err := parsing.NormalizeDateTime(dateStr, timeStr)
		return ts, err
	}
	idx, label, ok := parsing.FindAnyAnchor(seg, "Schlusstag", "Handelstag")
	if !ok {
		return time.Time{}, fmt.Errorf("trade date: %w", parsing.ErrAnchorNotFound)
	}
	dateStr, err := parsing.LineAt(seg, idx, 1)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s date: %w", label, err)
	}
	ts, _, err := parsing.NormalizeDateTime(dateStr, "")
	return ts, err
}

// dividendDateTime resolves the payout date. Payout notes never carry an
// execution time, so the timestamp is always midnight UTC.
func dividendDateTime(seg []string) (time.Time, error) {
	idx, label, ok := parsing.FindAnyAnchor(seg, "Zahltag", "Valuta")
	if !ok {
		return time.Time{}, fmt.Errorf("payout date: %w", parsing.ErrAnchorNotFound)
	}
	dateStr, err := parsing.LineAt(seg, idx, 1)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s date: %w", label, err)
	}
	ts, _, err := parsing.NormalizeDateTime(dateStr, "")
	return ts, err
}
