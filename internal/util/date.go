package util

import (
	"fmt"
	"time"
)

// Day truncates t to UTC midnight. All bucketing and membership checks
// operate on day-truncated times.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the Monday of t's week at UTC midnight.
func StartOfWeek(t time.Time) time.Time {
	d := Day(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// EndOfWeek returns the Sunday of t's week at UTC midnight.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// StartOfMonth returns the first day of t's month at UTC midnight.
func StartOfMonth(t time.Time) time.Time {
	d := Day(t)
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of t's month at UTC midnight.
// Day zero of the following month is the last day of this one.
func EndOfMonth(t time.Time) time.Time {
	d := Day(t)
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// StartOfYear returns January 1st of t's year at UTC midnight.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// EndOfYear returns December 31st of t's year at UTC midnight.
func EndOfYear(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
}

// frenchMonths are the abbreviated French month names used in chart labels.
var frenchMonths = [12]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// FrenchMonth returns the abbreviated French name of m.
func FrenchMonth(m time.Month) string {
	return frenchMonths[int(m)-1]
}

// FormatDayLabel renders a day as "2 janv.".
func FormatDayLabel(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), FrenchMonth(t.Month()))
}

// FormatWeekLabel renders a week interval as "2 janv. - 8 janv.".
func FormatWeekLabel(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", FormatDayLabel(start), FormatDayLabel(end))
}

// FormatMonthLabel renders a month as "janv. 2025".
func FormatMonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", FrenchMonth(t.Month()), t.Year())
}

// FormatYearLabel renders a year as "2025".
func FormatYearLabel(t time.Time) string {
	return fmt.Sprintf("%d", t.Year())
}
