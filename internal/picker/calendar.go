package picker

import (
	"strings"
	"time"

	"datepick-cli/internal/model"
)

const (
	minYear = 0
	maxYear = 9999

	// GridWeeks is the number of week rows MonthGrid always returns.
	GridWeeks = 6
)

// DaysInMonth returns the last day of a 0-based month.
func DaysInMonth(year, month int) int {
	// Day 0 of next month is last day of this month.
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the Sunday-indexed weekday (0-6) of day 1.
func FirstWeekday(year, month int) int {
	return int(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// IsDisabled reports whether the date falls strictly outside bounds.
// Bounds are compared by calendar date; a bound that does not parse is ignored.
func IsDisabled(year, month, day int, b model.Bounds) bool {
	d := time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
	if lo, ok := boundDate(b.Min); ok && d.Before(lo) {
		return true
	}
	if hi, ok := boundDate(b.Max); ok && d.After(hi) {
		return true
	}
	return false
}

// Today returns the current calendar date.
func Today(clock model.Clock) model.Date {
	now := clock.Now()
	return model.Date{Year: now.Year(), Month: int(now.Month()) - 1, Day: now.Day()}
}

// MonthGrid lays a month out in Sunday-first weeks; blank cells are 0.
func MonthGrid(year, month int) [GridWeeks][7]int {
	var grid [GridWeeks][7]int
	offset := FirstWeekday(year, month)
	n := DaysInMonth(year, month)
	for day := 1; day <= n; day++ {
		idx := offset + day - 1
		grid[idx/7][idx%7] = day
	}
	return grid
}

// ShiftMonth moves a cursor by delta months, rolling the year over.
func ShiftMonth(c model.Cursor, delta int) model.Cursor {
	total := c.Year*12 + c.Month + delta
	y, m := total/12, total%12
	if m < 0 {
		m += 12
		y--
	}
	return model.Cursor{Year: clampYear(y), Month: m}
}

func clampYear(y int) int {
	if y < minYear {
		return minYear
	}
	if y > maxYear {
		return maxYear
	}
	return y
}

func boundDate(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	datePart, _, _ := cutDateTime(v)
	d, ok := parseDate(datePart)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, 0, 0, 0, 0, time.UTC), true
}

func cutDateTime(v string) (datePart, timePart string, hasTime bool) {
	i := strings.IndexAny(v, "T ")
	if i < 0 {
		return v, "", false
	}
	return v[:i], v[i+1:], true
}
