package picker

import "datepick-cli/internal/model"

// View is the navigation state of a popover: which grid is shown, the month
// on screen and the staged time. It never commits values; the Controller does.
type View struct {
	State  model.ViewState
	Cursor model.Cursor
	Time   model.TimeOfDay

	mode model.Mode
}

func NewView(mode model.Mode, rec model.Record) View {
	v := View{State: model.ViewCalendar, mode: mode}
	v.Sync(rec)
	return v
}

// Sync moves the cursor and staged time to match rec. The active grid is kept.
func (v *View) Sync(rec model.Record) {
	v.Cursor = model.Cursor{Year: clampYear(rec.Year), Month: rec.Month}
	v.Time = model.TimeOfDay{Hour: rec.Hour, Minute: rec.Minute}
}

func (v *View) Reset() { v.State = model.ViewCalendar }

// ShowMonths handles a tap on the month/year header.
func (v *View) ShowMonths() bool {
	if v.State != model.ViewCalendar {
		return false
	}
	v.State = model.ViewMonthSelect
	return true
}

// SelectMonth picks a month cell and returns to the calendar.
func (v *View) SelectMonth(month int) bool {
	if v.State != model.ViewMonthSelect || month < 0 || month > 11 {
		return false
	}
	v.Cursor.Month = month
	v.State = model.ViewCalendar
	return true
}

// StepYear moves the year stepper shown in the month grid.
func (v *View) StepYear(delta int) bool {
	if v.State != model.ViewMonthSelect {
		return false
	}
	y := clampYear(v.Cursor.Year + delta)
	if y == v.Cursor.Year {
		return false
	}
	v.Cursor.Year = y
	return true
}

// ShiftMonth is the calendar's prev/next arrows.
func (v *View) ShiftMonth(delta int) bool {
	if v.State != model.ViewCalendar || delta == 0 {
		return false
	}
	v.Cursor = ShiftMonth(v.Cursor, delta)
	return true
}

// Back returns to the calendar from the month or time grid.
func (v *View) Back() bool {
	if v.State == model.ViewCalendar {
		return false
	}
	v.State = model.ViewCalendar
	return true
}

// DaySelected applies the calendar's day-tap transition. It reports whether
// the popover should close (date-only mode).
func (v *View) DaySelected() (closePopover bool) {
	if v.mode.HasTime() {
		v.State = model.ViewTimeSelect
		return false
	}
	v.State = model.ViewCalendar
	return true
}

func (v *View) SetHour(h int) bool {
	if v.State != model.ViewTimeSelect || h < 0 || h > 23 {
		return false
	}
	v.Time.Hour = h
	return true
}

func (v *View) SetMinute(m int) bool {
	if v.State != model.ViewTimeSelect || m < 0 || m > 59 {
		return false
	}
	v.Time.Minute = m
	return true
}
