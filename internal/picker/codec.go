package picker

import (
	"strings"
	"time"

	"datepick-cli/internal/model"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02T15:04"
)

// Parse decodes an external value into a fully populated record.
//
// Empty or malformed input yields the current date at 12:00. The time part is
// only read in datetime mode; when it is missing or unreadable the record keeps 00:00.
func Parse(value string, mode model.Mode, clock model.Clock) model.Record {
	value = strings.TrimSpace(value)
	if value == "" {
		return nowRecord(clock)
	}

	datePart, timePart, hasTime := cutDateTime(value)
	d, ok := parseDate(datePart)
	if !ok {
		return nowRecord(clock)
	}

	rec := model.Record{Year: d.Year, Month: d.Month, Day: d.Day}
	if mode.HasTime() && hasTime {
		if h, mi, ok := parseClock(timePart); ok {
			rec.Hour, rec.Minute = h, mi
		}
	}
	return rec
}

// Format encodes a record as "YYYY-MM-DD" or "YYYY-MM-DDTHH:mm".
// Out-of-range fields roll over the way time.Date normalizes them.
func Format(rec model.Record, mode model.Mode) string {
	year := clampYear(rec.Year)
	if mode.HasTime() {
		t := time.Date(year, time.Month(rec.Month+1), rec.Day, rec.Hour, rec.Minute, 0, 0, time.UTC)
		return t.Format(layoutDateTime)
	}
	t := time.Date(year, time.Month(rec.Month+1), rec.Day, 0, 0, 0, 0, time.UTC)
	return t.Format(layoutDate)
}

// Valid reports whether value is exactly a serialized value of the given mode.
// The empty string (no selection) is valid in both modes.
func Valid(value string, mode model.Mode) bool {
	if value == "" {
		return true
	}
	layout := layoutDate
	if mode.HasTime() {
		layout = layoutDateTime
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return false
	}
	return t.Format(layout) == value
}

func nowRecord(clock model.Clock) model.Record {
	now := clock.Now()
	return model.Record{
		Year:   now.Year(),
		Month:  int(now.Month()) - 1,
		Day:    now.Day(),
		Hour:   12,
		Minute: 0,
	}
}

func parseDate(s string) (model.Date, bool) {
	t, err := time.Parse(layoutDate, strings.TrimSpace(s))
	if err != nil {
		return model.Date{}, false
	}
	return model.Date{Year: t.Year(), Month: int(t.Month()) - 1, Day: t.Day()}, true
}

func parseClock(s string) (h int, mi int, ok bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour(), t.Minute(), true
		}
	}
	return 0, 0, false
}
