// Package types implements special types for the budget backend.
package types

import (
	"fmt"
	"time"
)

// Month is a calendar month in a specific year.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs in that time's location.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, t.Location()))
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// Name returns the month's display name, e.g. "November 2024".
func (m Month) Name() string {
	return time.Time(m).Format("January 2006")
}

// Year returns the year of the month.
func (m Month) Year() int {
	return time.Time(m).Year()
}

// Number returns the month number, 1 through 12.
func (m Month) Number() int {
	return int(time.Time(m).Month())
}

// FirstDay returns the first day of the month.
func (m Month) FirstDay() Date {
	return Date(time.Time(m))
}

// LastDay returns the last day of the month.
func (m Month) LastDay() Date {
	return Date(time.Time(m).AddDate(0, 1, -1))
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// Next returns the chronologically following month.
func (m Month) Next() Month {
	return m.AddDate(0, 1)
}

// Before reports whether the month instant m is before n.
func (m Month) Before(n Month) bool {
	return time.Time(m).Before(time.Time(n))
}

// After reports whether the month instant m is after n.
func (m Month) After(n Month) bool {
	return time.Time(m).After(time.Time(n))
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == time.Time(m).Year() && t.Month() == time.Time(m).Month()
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}
