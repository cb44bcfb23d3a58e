// Package dates holds the calendar arithmetic shared by the lease calculator and
// the document namer. All values are normalized to a UTC calendar day.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-module/carbon/v2"
)

// ErrEmpty is returned by Parse for blank input.
var ErrEmpty = errors.New("date is required")

// Display is the human-readable layout used in resolved documents.
const Display = "January 2, 2006"

// layouts accepted by Parse, tried in order.
var layouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"01/02/2006",
	"1/2/2006",
}

// Parse reads a calendar date from any of the supported textual forms and returns
// midnight UTC of that day. It never falls back to the current time.
func Parse(s string) (time.Time, error) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return time.Time{}, ErrEmpty
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Day truncates t to its calendar day in UTC, keeping the wall-clock date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonths moves t forward by n calendar months. The day of month is kept
// unless the target month is shorter, in which case it is clamped to the
// target month's last day (Jan 31 + 1 month = Feb 28 or 29).
func AddMonths(t time.Time, n int) time.Time {
	return Day(carbon.CreateFromStdTime(Day(t), carbon.UTC).AddMonthsNoOverflow(n).StdTime())
}

// DaysBetween returns the whole calendar days from a to b (negative when b is earlier).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// MonthsBetween returns the whole calendar months from a to b, ignoring a
// trailing partial month.
func MonthsBetween(a, b time.Time) int {
	a, b = Day(a), Day(b)
	n := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if n > 0 && AddMonths(a, n).After(b) {
		n--
	}
	return n
}
