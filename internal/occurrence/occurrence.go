// Package occurrence turns yearly-recurring month-day pairs into concrete
// calendar dates relative to a reference day.
//
// All arithmetic is done on calendar days: the wall-clock time and the
// location of the inputs only matter for deciding which calendar day "today"
// is. A 29 February month-day falls on 1 March in non-leap years.
package occurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidMonthDay = errors.New("invalid_month_day")
	ErrInvalidDate     = errors.New("invalid_date")
)

// MonthDay is a calendar date with the year stripped.
type MonthDay struct {
	Month time.Month
	Day   int
}

// ParseMonthDay parses "DD.MM" (one or two digits per part). 29.02 is accepted.
func ParseMonthDay(s string) (MonthDay, error) {
	value := strings.TrimSpace(s)
	if value == "" {
		return MonthDay{}, ErrInvalidMonthDay
	}
	// 2000 is a leap year, so 29.02 parses while 30.02 does not.
	t, err := time.Parse("2.1.2006", value+".2000")
	if err != nil {
		return MonthDay{}, fmt.Errorf("%w: %q", ErrInvalidMonthDay, s)
	}
	return MonthDay{Month: t.Month(), Day: t.Day()}, nil
}

// ParseDate parses "DD.MM.YYYY" into a UTC midnight date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2.1.2006", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FromDate drops the year of t.
func FromDate(t time.Time) MonthDay {
	return MonthDay{Month: t.Month(), Day: t.Day()}
}

func (md MonthDay) String() string {
	return fmt.Sprintf("%02d.%02d", md.Day, int(md.Month))
}

func (md MonthDay) IsLeapDay() bool {
	return md.Month == time.February && md.Day == 29
}

// In places md in year as a UTC midnight date. time.Date normalizes 29.02 of
// a non-leap year to 1 March.
func (md MonthDay) In(year int) time.Time {
	return time.Date(year, md.Month, md.Day, 0, 0, 0, 0, time.UTC)
}

// StorageYear returns the year to persist md with so that the month-day
// survives a round trip: year itself, or the closest earlier leap year for 29.02.
func (md MonthDay) StorageYear(year int) int {
	if !md.IsLeapDay() {
		return year
	}
	for !IsLeap(year) {
		year--
	}
	return year
}

func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Day truncates t to its calendar day, expressed as UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b (negative when
// b is before a).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// Next returns the first date on or after today's calendar day on which md falls.
func Next(md MonthDay, today time.Time) time.Time {
	day := Day(today)
	next := md.In(day.Year())
	if next.Before(day) {
		next = md.In(day.Year() + 1)
	}
	return next
}

// DaysUntil returns the number of days from today to the next occurrence of md,
// in [0, 366).
func DaysUntil(md MonthDay, today time.Time) int {
	return DaysBetween(today, Next(md, today))
}
