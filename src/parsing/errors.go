// backend/src/parsing/errors.go
package parsing

import (
	"errors"
	"fmt"
)

// ErrAnchorNotFound reports that a label required by a broker format is
// missing from the line sequence. It indicates an unhandled format variant,
// not a malformed document, and must surface to the caller.
var ErrAnchorNotFound = errors.New("required anchor not found")

// ErrOffsetOutOfRange reports that a fixed offset relative to a located
// anchor resolved outside the line sequence. Always a hard failure.
var ErrOffsetOutOfRange = errors.New("line offset out of range")

// NumericFormatError reports that a located field's text is not a valid
// locale-formatted number. It usually means the layout drifted and an anchor
// offset now points at the wrong line.
type NumericFormatError struct {
	Input string
}

func (e *NumericFormatError) Error() string {
	return fmt.Sprintf("invalid decimal number %q", e.Input)
}

// DateFormatError reports that a date or time field could not be parsed
// with the layout declared for the broker format.
type DateFormatError struct {
	Input  string
	Layout string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date/time %q for layout %q", e.Input, e.Layout)
}

// ValidationError reports the first domain invariant an assembled activity
// failed. A validation failure fails the whole document parse; no partial
// activity list is ever returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("activity validation failed on %s: %s", e.Field, e.Reason)
}
