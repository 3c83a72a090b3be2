// Package datetime holds the single wire format used for every date field:
// dd-mm-yyyy HH:MM:SS, read and written as a naive wall-clock value.
package datetime

import (
	"errors"
	"fmt"
	"time"
)

const (
	Layout  = "02-01-2006 15:04:05"
	Pattern = "dd-mm-yyyy HH:MM:SS"
)

var ErrInvalidFormat = errors.New("invalid datetime format")

type FormatError struct {
	Input    string
	Expected string
	Err      error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("Invalid DateTime format. Expected format is '%s'", e.Expected)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Parse reads text in Layout. Anything that is not exactly two-digit day,
// two-digit month, four-digit year and a zero padded 24h time is rejected, as
// are impossible dates such as 31-02-2020.
func Parse(text string) (time.Time, error) {
	if !hasShape(text) {
		return time.Time{}, &FormatError{Input: text, Expected: Pattern}
	}
	t, err := time.Parse(Layout, text)
	if err != nil {
		return time.Time{}, &FormatError{Input: text, Expected: Pattern, Err: err}
	}
	return t, nil
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// Naive drops the zone of t keeping its wall clock, and truncates to seconds.
// All timestamps in the service are kept in this form.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// DayBounds returns 00:00:00 and 23:59:59 of the day now falls on.
func DayBounds(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}

func hasShape(text string) bool {
	if len(text) != len(Layout) {
		return false
	}
	for i := 0; i < len(Layout); i++ {
		want, got := Layout[i], text[i]
		if want >= '0' && want <= '9' {
			if got < '0' || got > '9' {
				return false
			}
			continue
		}
		if got != want {
			return false
		}
	}
	return true
}
