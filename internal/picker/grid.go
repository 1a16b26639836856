package picker

import "datepick-cli/internal/model"

type DayCell struct {
	Day      int  `json:"day"`
	Weekday  int  `json:"weekday"`
	Disabled bool `json:"disabled,omitempty"`
	Today    bool `json:"today,omitempty"`
	Selected bool `json:"selected,omitempty"`
}

type MonthCell struct {
	Month    int    `json:"month"`
	Name     string `json:"name"`
	Selected bool   `json:"selected,omitempty"`
}

type TimeCell struct {
	Value    int  `json:"value"`
	Selected bool `json:"selected,omitempty"`
}

// DayGrid builds the calendar for cursor. Blank cells have Day == 0.
// selected may be nil when nothing is committed.
func DayGrid(cursor model.Cursor, bounds model.Bounds, today model.Date, selected *model.Date) [GridWeeks][7]DayCell {
	var out [GridWeeks][7]DayCell
	days := MonthGrid(cursor.Year, cursor.Month)
	for w := range days {
		for wd, day := range days[w] {
			cell := DayCell{Day: day, Weekday: wd}
			if day != 0 {
				d := model.Date{Year: cursor.Year, Month: cursor.Month, Day: day}
				cell.Disabled = IsDisabled(d.Year, d.Month, d.Day, bounds)
				cell.Today = d == today
				cell.Selected = selected != nil && d == *selected
			}
			out[w][wd] = cell
		}
	}
	return out
}

// Days is the calendar grid for the visible month.
func (c *Controller) Days() [GridWeeks][7]DayCell {
	return DayGrid(c.view.Cursor, c.bounds, Today(c.clock), c.selectedDate())
}

// Months is the month grid; the cursor's month is marked selected.
func (c *Controller) Months() []MonthCell {
	out := make([]MonthCell, 12)
	for m := range out {
		out[m] = MonthCell{Month: m, Name: c.locale.ShortMonths[m], Selected: m == c.view.Cursor.Month}
	}
	return out
}

func (c *Controller) Hours() []TimeCell {
	out := make([]TimeCell, 24)
	for h := range out {
		out[h] = TimeCell{Value: h, Selected: h == c.view.Time.Hour}
	}
	return out
}

// Minutes steps by the configured minute step. A staged minute that is off
// the step still shows as a selected cell in order.
func (c *Controller) Minutes() []TimeCell {
	out := make([]TimeCell, 0, 60/c.minuteStep+1)
	staged := c.view.Time.Minute
	for m := 0; m < 60; m += c.minuteStep {
		if staged > m-c.minuteStep && staged < m && staged%c.minuteStep != 0 {
			out = append(out, TimeCell{Value: staged, Selected: true})
		}
		out = append(out, TimeCell{Value: m, Selected: m == staged})
	}
	if staged > 60-c.minuteStep && staged%c.minuteStep != 0 {
		out = append(out, TimeCell{Value: staged, Selected: true})
	}
	return out
}

func (c *Controller) selectedDate() *model.Date {
	if c.value == "" {
		return nil
	}
	datePart, _, _ := cutDateTime(c.value)
	d, ok := parseDate(datePart)
	if !ok {
		return nil
	}
	return &d
}
