// backend/src/parsing/decimal.go
package parsing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseGermanDecimal parses a number in German statement notation (dot as
// thousands separator, comma as decimal separator) into an exact decimal.
// All monetary arithmetic downstream stays in decimal.Decimal; a float64
// conversion happens only at the output boundary, because shares/amount
// ratios and multi-step tax sums must reproduce exact cent-level figures.
func ParseGermanDecimal(s string) (decimal.Decimal, error) {
	normalized := strings.TrimSpace(s)
	normalized = strings.ReplaceAll(normalized, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	if normalized == "" {
		return decimal.Zero, &NumericFormatError{Input: s}
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, &NumericFormatError{Input: s}
	}
	return d, nil
}

// ParseGermanDecimalAt locates the line at base+offset and parses it as a
// German-formatted decimal. This is the common "value sits N lines after the
// label" read used by every field extractor.
func ParseGermanDecimalAt(lines []string, base, offset int) (decimal.Decimal, error) {
	line, err := LineAt(lines, base, offset)
	if err != nil {
		return decimal.Zero, err
	}
	return ParseGermanDecimal(line)
}
