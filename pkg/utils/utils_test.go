package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAdvanceOneMonth(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "day preserved",
			input:    date(2025, time.January, 15),
			expected: date(2025, time.February, 15),
		},
		{
			name:     "jan 31 clamps to feb 28 in non-leap year",
			input:    date(2025, time.January, 31),
			expected: date(2025, time.February, 28),
		},
		{
			name:     "jan 31 clamps to feb 29 in leap year",
			input:    date(2024, time.January, 31),
			expected: date(2024, time.February, 29),
		},
		{
			name:     "feb 28 keeps day in march",
			input:    date(2025, time.February, 28),
			expected: date(2025, time.March, 28),
		},
		{
			name:     "feb 29 keeps day in march",
			input:    date(2024, time.February, 29),
			expected: date(2024, time.March, 29),
		},
		{
			name:     "31st into 30-day month",
			input:    date(2025, time.March, 31),
			expected: date(2025, time.April, 30),
		},
		{
			name:     "december rolls into next year",
			input:    date(2025, time.December, 31),
			expected: date(2026, time.January, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AdvanceOneMonth(tt.input))
		})
	}
}

func TestAddMonths_NoDriftFromAnchor(t *testing.T) {
	anchor := date(2025, time.January, 31)

	assert.Equal(t, date(2025, time.February, 28), AddMonths(anchor, 1))
	assert.Equal(t, date(2025, time.March, 31), AddMonths(anchor, 2))
	assert.Equal(t, date(2025, time.April, 30), AddMonths(anchor, 3))
	assert.Equal(t, date(2026, time.January, 31), AddMonths(anchor, 12))
	assert.Equal(t, anchor, AddMonths(anchor, 0))
}

func TestAddMonths_StripsTimeOfDay(t *testing.T) {
	in := time.Date(2025, time.May, 10, 23, 59, 0, 0, time.FixedZone("X", 3600))
	assert.Equal(t, date(2025, time.June, 10), AddMonths(in, 1))
}

func TestLastDayOfMonth(t *testing.T) {
	assert.Equal(t, 31, LastDayOfMonth(2025, time.January))
	assert.Equal(t, 28, LastDayOfMonth(2025, time.February))
	assert.Equal(t, 29, LastDayOfMonth(2024, time.February))
	assert.Equal(t, 30, LastDayOfMonth(2025, time.November))
}

func TestMonthHelpers(t *testing.T) {
	d := date(2025, time.June, 10)

	assert.Equal(t, date(2025, time.June, 1), FirstOfMonth(d))
	assert.Equal(t, date(2025, time.July, 1), FirstOfNextMonth(d))
	assert.Equal(t, date(2026, time.January, 1), FirstOfNextMonth(date(2025, time.December, 31)))
	assert.True(t, SameMonth(d, date(2025, time.June, 30)))
	assert.False(t, SameMonth(d, date(2024, time.June, 10)))
	assert.Equal(t, "2025-06", MonthKey(d))
	assert.Equal(t, "2025-06-10", DateKey(d))
}

func TestParseDateKey(t *testing.T) {
	got, err := ParseDateKey("2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.January, 15), got)

	_, err = ParseDateKey("2025-02-30")
	assert.Error(t, err)

	_, err = ParseDateKey("15/01/2025")
	assert.Error(t, err)

	m, err := ParseMonthKey("2025-03")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 1), m)
}

func TestDecimalHelpers(t *testing.T) {
	assert.True(t, MinDecimal(decimal.NewFromInt(5), decimal.NewFromInt(3)).Equal(decimal.NewFromInt(3)))
	assert.True(t, FloorZero(decimal.NewFromInt(-2)).Equal(decimal.Zero))
	assert.True(t, FloorZero(decimal.NewFromInt(2)).Equal(decimal.NewFromInt(2)))
}
