package util

import (
	"fmt"
	"time"

	"github.com/dafibh/spendboard/internal/domain"
)

const (
	monthKeyLayout = "2006-01"
	dateLayout     = "2006-01-02"
)

// PreviousMonth returns the year and month for the previous month
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// MonthPeriod returns the period for a calendar year and month
func MonthPeriod(year int, month time.Month) domain.Period {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the next month is the last day of this one
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return domain.Period{
		Key:   first.Format(monthKeyLayout),
		Year:  first.Year(),
		Month: first.Month(),
		First: first,
		Last:  last,
	}
}

// ResolveMonth returns the period of the month containing ref. The calendar date is
// taken in ref's own location.
func ResolveMonth(ref time.Time) domain.Period {
	return MonthPeriod(ref.Year(), ref.Month())
}

// ShiftMonth returns the period delta months away from p
func ShiftMonth(p domain.Period, delta int) domain.Period {
	return MonthPeriod(p.Year, p.Month+time.Month(delta))
}

// FormatMonthLabel returns a display label such as "March 2024"
func FormatMonthLabel(p domain.Period) string {
	return fmt.Sprintf("%s %d", p.Month.String(), p.Year)
}

// ParseMonthKey parses a YYYY-MM key
func ParseMonthKey(key string) (domain.Period, error) {
	t, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return domain.Period{}, domain.ErrInvalidMonthFormat
	}
	return MonthPeriod(t.Year(), t.Month()), nil
}

// ParseDate parses a calendar date. Full RFC 3339 timestamps are accepted and
// truncated to their date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDateFormat
	}
	return TruncateToDate(t), nil
}

// TruncateToDate drops the time of day, keeping the calendar date as UTC midnight
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate formats a calendar date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
