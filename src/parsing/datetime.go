// backend/src/parsing/datetime.go
package parsing

import (
	"strings"
	"time"
)

const (
	// GermanDateLayout is the date notation used on the supported statements.
	GermanDateLayout = "02.01.2006"
	germanTimeLayout = "15:04:05"

	// ISODateLayout is the calendar-date form carried on every Activity.
	ISODateLayout = "2006-01-02"
)

// NormalizeDateTime combines a German-formatted date string and an optional
// time string into a canonical UTC timestamp plus an ISO calendar date.
//
// When only a date is available the time defaults to midnight UTC. That is a
// documented precision loss, not an error: date-only documents (dividend
// payout notes) simply do not carry an execution time.
func NormalizeDateTime(dateStr, timeStr string) (time.Time, string, error) {
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)

	layout := GermanDateLayout
	input := dateStr
	if timeStr != "" {
		layout = GermanDateLayout + " " + germanTimeLayout
		input = dateStr + " " + timeStr
	}

	ts, err := time.ParseInLocation(layout, input, time.UTC)
	if err != nil {
		return time.Time{}, "", &DateFormatError{Input: input, Layout: layout}
	}
	return ts, ts.Format(ISODateLayout), nil
}
