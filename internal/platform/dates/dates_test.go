package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse_Layouts(t *testing.T) {
	want := day(2024, time.January, 15)
	inputs := []string{
		"2024-01-15",
		"2024-01-15T10:30:00Z",
		"Jan 15, 2024",
		"January 15, 2024",
		"  Jan   15,  2024 ",
		"15 Jan 2024",
		"01/15/2024",
		"1/15/2024",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			got, err := Parse(in)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Parse("next tuesday")
	assert.Error(t, err)

	_, err = Parse("2024-02-30")
	assert.Error(t, err)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{"plain", day(2024, time.March, 15), 12, day(2025, time.March, 15)},
		{"year rollover", day(2024, time.October, 15), 6, day(2025, time.April, 15)},
		{"clamp leap", day(2024, time.January, 31), 1, day(2024, time.February, 29)},
		{"clamp non-leap", day(2025, time.January, 31), 1, day(2025, time.February, 28)},
		{"clamp 30-day month", day(2024, time.August, 31), 18, day(2026, time.February, 28)},
		{"two years", day(2024, time.February, 29), 24, day(2026, time.February, 28)},
		{"offset input keeps wall date", time.Date(2024, time.December, 31, 23, 0, 0, 0, time.FixedZone("EST", -5*3600)), 2, day(2025, time.February, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(tt.start, tt.n)
			assert.True(t, tt.want.Equal(got), "AddMonths(%s, %d) = %s, want %s", tt.start, tt.n, got, tt.want)
		})
	}
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 30, DaysBetween(day(2025, time.June, 1), day(2025, time.July, 1)))
	assert.Equal(t, -1, DaysBetween(day(2025, time.June, 1), day(2025, time.May, 31)))
	assert.Equal(t, 0, DaysBetween(day(2025, time.June, 1), time.Date(2025, time.June, 1, 23, 0, 0, 0, time.UTC)))
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 12, MonthsBetween(day(2024, time.January, 15), day(2025, time.January, 15)))
	assert.Equal(t, 11, MonthsBetween(day(2024, time.January, 15), day(2025, time.January, 14)))
	assert.Equal(t, 1, MonthsBetween(day(2024, time.January, 31), day(2024, time.February, 29)))
	assert.Equal(t, 0, MonthsBetween(day(2024, time.January, 15), day(2024, time.January, 20)))
}
