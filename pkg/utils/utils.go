package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DateKeyLayout is the wire format of a calendar date
	DateKeyLayout = "2006-01-02"

	// MonthKeyLayout is the wire format of a calendar month
	MonthKeyLayout = "2006-01"
)

// NormalizeDate drops the time-of-day and location, keeping the calendar date
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LastDayOfMonth returns the number of days in the given month
func LastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths advances anchor by n calendar months.
// The anchor's day-of-month is kept when the target month has it, otherwise
// the result is clamped to the target month's last day. Callers stepping a
// schedule should always pass the original anchor so clamping never compounds.
func AddMonths(anchor time.Time, n int) time.Time {
	y, m, d := anchor.Date()

	// Normalise month overflow without touching the day
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	ty, tm, _ := first.Date()

	if last := LastDayOfMonth(ty, tm); d > last {
		d = last
	}

	return time.Date(ty, tm, d, 0, 0, 0, 0, time.UTC)
}

// AdvanceOneMonth steps a date forward by one calendar month with clamping
func AdvanceOneMonth(date time.Time) time.Time {
	return AddMonths(date, 1)
}

// FirstOfMonth returns the first day of the month containing t
func FirstOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// FirstOfNextMonth returns the first day of the month after the one containing t
func FirstOfNextMonth(t time.Time) time.Time {
	return AddMonths(FirstOfMonth(t), 1)
}

// SameMonth reports whether a and b fall in the same calendar month
func SameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}

// DateKey formats t as YYYY-MM-DD
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// MonthKey formats t as YYYY-MM
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD string into a normalised date
func ParseDateKey(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// ParseMonthKey parses a YYYY-MM string into the first day of that month
func ParseMonthKey(s string) (time.Time, error) {
	t, err := time.ParseInLocation(MonthKeyLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// MinDecimal returns the smaller of a and b
func MinDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// FloorZero clamps negative amounts to zero
func FloorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
