package parsing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAnchorFirstOccurrenceWins(t *testing.T) {
	lines := []string{
		"Wertpapierabrechnung",
		"Kurswert",
		"1.019,70",
		"Kurswert gesamt",
		"2.039,40",
	}

	idx, ok := FindAnchor(lines, "Kurswert")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestFindAnchorMatchesSubstring(t *testing.T) {
	lines := []string{"Schlusstag/-Zeit: siehe unten"}

	_, ok := FindAnchor(lines, "Schlusstag/-Zeit")
	assert.True(t, ok)
}

func TestFindAnchorAbsenceIsNotAnError(t *testing.T) {
	lines := []string{"Provision", "22,35"}

	idx, ok := FindAnchor(lines, "Devisenkurs")
	assert.False(t, ok)
	assert.Equal(t, 0, idx)
}

func TestFindAnyAnchorPriorityOrder(t *testing.T) {
	lines := []string{
		"Ertragsgutschrift",
		"12,00",
		"Dividendengutschrift",
		"34,00",
	}

	// Dividendengutschrift is listed first, so it wins even though the
	// Ertragsgutschrift line comes earlier in the document.
	idx, label, ok := FindAnyAnchor(lines, "Dividendengutschrift", "Ertragsgutschrift")
	require.True(t, ok)
	assert.Equal(t, "Dividendengutschrift", label)
	assert.Equal(t, 2, idx)
}

func TestFindAnyAnchorNoMatch(t *testing.T) {
	_, _, ok := FindAnyAnchor([]string{"Provision"}, "Zahltag", "Valuta")
	assert.False(t, ok)
}

func TestLineAt(t *testing.T) {
	lines := []string{"Provision", "EUR", "22,35"}

	line, err := LineAt(lines, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, "22,35", line)
}

func TestLineAtOutOfRange(t *testing.T) {
	lines := []string{"Provision", "22,35"}

	_, err := LineAt(lines, 1, 1)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)

	_, err = LineAt(lines, 0, -1)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)
}

func TestFlattenPreservesOrder(t *testing.T) {
	doc := Document{
		Page{"a", "b"},
		Page{},
		Page{"c"},
	}

	assert.Equal(t, []string{"a", "b", "c"}, Flatten(doc))
}

func TestNumericFormatErrorMessage(t *testing.T) {
	var numErr *NumericFormatError
	_, err := ParseGermanDecimal("abc")
	require.True(t, errors.As(err, &numErr))
	assert.Equal(t, "abc", numErr.Input)
}
