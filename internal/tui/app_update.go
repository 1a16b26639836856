package tui

import (
	"fmt"
	"strings"
	"time"

	"datepick-cli/internal/model"
	"datepick-cli/internal/picker"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m formModel) Init() tea.Cmd { return nil }

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.screen.width, m.screen.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		// Anchors move with the layout; treat a resize like a scroll.
		m.host.scroll()
		return m, nil
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.form.Force) {
			return m.quit()
		}
		*m.flash = ""
		switch {
		case m.showHelp:
			return m.updateHelp(msg)
		case m.editing:
			return m.updateEditing(msg)
		}
		if f := m.openField(); f != nil {
			switch f.ctl.State() {
			case model.ViewMonthSelect:
				m.updateMonths(f, msg)
			case model.ViewTimeSelect:
				m.updateTime(f, msg)
			default:
				m.updateCalendar(f, msg)
			}
			return m, nil
		}
		return m.updateForm(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m formModel) quit() (tea.Model, tea.Cmd) {
	for _, f := range m.fields {
		f.ctl.Teardown()
	}
	return m, tea.Quit
}

func (m formModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys.form
	switch {
	case key.Matches(msg, k.Quit):
		return m.quit()
	case key.Matches(msg, k.Help):
		m.showHelp = true
	case key.Matches(msg, k.Up):
		if m.focus > 0 {
			m.focus--
		}
	case key.Matches(msg, k.Down):
		if m.focus < len(m.fields)-1 {
			m.focus++
		}
	case key.Matches(msg, k.Open):
		m.open(m.focus)
	case key.Matches(msg, k.Edit):
		return m.startEditing()
	}
	return m, nil
}

// open shows field i's popover, closing any other.
func (m *formModel) open(i int) {
	if i < 0 || i >= len(m.fields) {
		return
	}
	for j, f := range m.fields {
		if j != i {
			f.ctl.Close()
		}
	}
	f := m.fields[i]
	if f.ctl.Disabled() {
		*m.flash = fmt.Sprintf("%s is disabled", fieldLabel(f.spec))
		return
	}
	if !f.ctl.Open(float64(m.viewportHeight()), float64(popoverHeight(f.ctl))) {
		*m.flash = "field is not on screen"
		return
	}
	m.focus = i
	m.pf = focusFor(f.ctl, m.clock)
}

func (m formModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q", "enter":
		m.showHelp = false
	}
	return m, nil
}

func (m formModel) startEditing() (tea.Model, tea.Cmd) {
	f := m.focused()
	if f == nil {
		return m, nil
	}
	if f.ctl.Disabled() {
		*m.flash = fmt.Sprintf("%s is disabled", fieldLabel(f.spec))
		return m, nil
	}
	m.editing = true
	m.input.SetValue(f.ctl.Value())
	m.input.CursorEnd()
	m.input.Placeholder = placeholderFor(f.ctl.Mode())
	return m, m.input.Focus()
}

func placeholderFor(mode model.Mode) string {
	if mode.HasTime() {
		return "YYYY-MM-DDTHH:mm"
	}
	return "YYYY-MM-DD"
}

// updateEditing applies a typed value only when it decodes for the field's mode.
func (m formModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	case "enter":
		f := m.focused()
		if f == nil {
			m.editing = false
			return m, nil
		}
		v := strings.TrimSpace(m.input.Value())
		if !picker.Valid(v, f.ctl.Mode()) {
			*m.flash = fmt.Sprintf("invalid %s value %q (expected %s)", f.ctl.Mode(), v, placeholderFor(f.ctl.Mode()))
			return m, nil
		}
		m.editing = false
		m.input.Blur()
		f.ctl.SetValue(v)
		m.persist(f.spec.Name, v)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *formModel) updateCalendar(f *formField, msg tea.KeyMsg) {
	k := m.keys.calendar
	switch {
	case key.Matches(msg, k.Close):
		f.ctl.Close()
	case key.Matches(msg, k.Left):
		m.moveDay(f, -1)
	case key.Matches(msg, k.Right):
		m.moveDay(f, 1)
	case key.Matches(msg, k.Up):
		m.moveDay(f, -7)
	case key.Matches(msg, k.Down):
		m.moveDay(f, 7)
	case key.Matches(msg, k.Prev):
		f.ctl.PrevMonth()
		m.clampFocusDay(f)
	case key.Matches(msg, k.Next):
		f.ctl.NextMonth()
		m.clampFocusDay(f)
	case key.Matches(msg, k.Select):
		m.selectDay(f, m.pf.day)
	case key.Matches(msg, k.Months):
		if f.ctl.ShowMonths() {
			m.pf.month = f.ctl.Cursor().Month
		}
	case key.Matches(msg, k.Today):
		if f.ctl.SelectToday() {
			m.afterDaySelected(f)
		}
		m.pf.day = picker.Today(m.clock).Day
	case key.Matches(msg, k.Clear):
		f.ctl.Clear()
	}
}

func (m *formModel) updateMonths(f *formField, msg tea.KeyMsg) {
	k := m.keys.months
	switch {
	case key.Matches(msg, k.Back):
		f.ctl.Back()
	case key.Matches(msg, k.Left):
		m.pf.month = clampInt(m.pf.month-1, 0, 11)
	case key.Matches(msg, k.Right):
		m.pf.month = clampInt(m.pf.month+1, 0, 11)
	case key.Matches(msg, k.Up):
		m.pf.month = clampInt(m.pf.month-monthCols, 0, 11)
	case key.Matches(msg, k.Down):
		m.pf.month = clampInt(m.pf.month+monthCols, 0, 11)
	case key.Matches(msg, k.PrevYear):
		f.ctl.StepYear(-1)
	case key.Matches(msg, k.NextYear):
		f.ctl.StepYear(1)
	case key.Matches(msg, k.Select):
		if f.ctl.SelectMonth(m.pf.month) {
			m.clampFocusDay(f)
		}
	}
}

func (m *formModel) updateTime(f *formField, msg tea.KeyMsg) {
	k := m.keys.time
	switch {
	case key.Matches(msg, k.Back):
		f.ctl.Back()
	case key.Matches(msg, k.Done):
		f.ctl.Done()
	case key.Matches(msg, k.Section):
		m.pf.minutes = !m.pf.minutes
	case key.Matches(msg, k.Left):
		m.moveTime(f, -1)
	case key.Matches(msg, k.Right):
		m.moveTime(f, 1)
	case key.Matches(msg, k.Up):
		m.moveTime(f, -timeColumns)
	case key.Matches(msg, k.Down):
		m.moveTime(f, timeColumns)
	case key.Matches(msg, k.Select):
		if m.pf.minutes {
			f.ctl.SelectMinute(m.pf.minute)
		} else {
			f.ctl.SelectHour(m.pf.hour)
		}
	}
}

// moveDay moves the day highlight, paging the calendar when it crosses a month edge.
func (m *formModel) moveDay(f *formField, delta int) {
	cur := f.ctl.Cursor()
	t := time.Date(cur.Year, time.Month(cur.Month+1), m.pf.day+delta, 0, 0, 0, 0, time.UTC)
	target := model.Cursor{Year: t.Year(), Month: int(t.Month()) - 1}
	if target != cur {
		if target.Year*12+target.Month < cur.Year*12+cur.Month {
			f.ctl.PrevMonth()
		} else {
			f.ctl.NextMonth()
		}
		if f.ctl.Cursor() != target {
			return
		}
	}
	m.pf.day = t.Day()
}

func (m *formModel) clampFocusDay(f *formField) {
	cur := f.ctl.Cursor()
	m.pf.day = clampInt(m.pf.day, 1, picker.DaysInMonth(cur.Year, cur.Month))
}

func (m *formModel) selectDay(f *formField, day int) {
	if f.ctl.SelectDay(day) {
		m.pf.day = day
		m.afterDaySelected(f)
	}
}

// afterDaySelected moves the highlight onto the staged time when the time grid appears.
func (m *formModel) afterDaySelected(f *formField) {
	if f.ctl.IsOpen() && f.ctl.State() == model.ViewTimeSelect {
		t := f.ctl.StagedTime()
		m.pf.hour, m.pf.minute, m.pf.minutes = t.Hour, t.Minute, false
	}
}

// moveTime moves within the hour grid or along the minute cells.
func (m *formModel) moveTime(f *formField, delta int) {
	if !m.pf.minutes {
		m.pf.hour = clampInt(m.pf.hour+delta, 0, 23)
		return
	}
	cells := f.ctl.Minutes()
	idx := 0
	for i, c := range cells {
		if c.Value <= m.pf.minute {
			idx = i
		}
	}
	m.pf.minute = cells[clampInt(idx+delta, 0, len(cells)-1)].Value
}

func (m formModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.editing || m.showHelp {
		return m, nil
	}
	if tea.MouseEvent(msg).IsWheel() {
		m.host.scroll()
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	*m.flash = ""

	// Outside presses close the open popover before anything else sees them.
	m.host.pointerDown(msg.X, msg.Y)

	if f := m.openField(); f != nil {
		if z, ok := m.popoverHit(f, msg.X, msg.Y); ok {
			m.applyHit(f, z)
			return m, nil
		}
		// A press on the open field's own anchor toggles it shut.
		for i, g := range m.fields {
			if g != f {
				continue
			}
			if r, ok := m.anchorRect(i); ok && r.Contains(float64(msg.X), float64(msg.Y)) {
				f.ctl.Close()
			}
		}
		return m, nil
	}

	for i := range m.fields {
		if r, ok := m.anchorRect(i); ok && r.Contains(float64(msg.X), float64(msg.Y)) {
			m.focus = i
			m.open(i)
			break
		}
	}
	return m, nil
}

// popoverOrigin is the screen cell of the popover's top-left border corner.
func (m formModel) popoverOrigin(f *formField, height int) (col, row int) {
	p := f.ctl.Placement()
	col = int(p.Left)
	row = int(p.TopFor(float64(m.viewportHeight()), float64(height)))
	if row < 0 {
		row = 0
	}
	return col, row
}

func (m formModel) popoverHit(f *formField, x, y int) (hitZone, bool) {
	box, pc := renderPopoverBox(f.ctl, m.pf)
	col, row := m.popoverOrigin(f, boxHeight(box))
	return pc.hit(y-row-1, x-col-popoverChromeW/2)
}

func (m *formModel) applyHit(f *formField, z hitZone) {
	switch z.kind {
	case hitDay:
		m.selectDay(f, z.value)
	case hitPrevMonth:
		f.ctl.PrevMonth()
		m.clampFocusDay(f)
	case hitNextMonth:
		f.ctl.NextMonth()
		m.clampFocusDay(f)
	case hitMonthTitle:
		if f.ctl.ShowMonths() {
			m.pf.month = f.ctl.Cursor().Month
		}
	case hitToday:
		if f.ctl.SelectToday() {
			m.afterDaySelected(f)
		}
	case hitClear:
		f.ctl.Clear()
	case hitMonth:
		if f.ctl.SelectMonth(z.value) {
			m.pf.month = z.value
			m.clampFocusDay(f)
		}
	case hitPrevYear:
		f.ctl.StepYear(-1)
	case hitNextYear:
		f.ctl.StepYear(1)
	case hitHour:
		if f.ctl.SelectHour(z.value) {
			m.pf.hour, m.pf.minutes = z.value, false
		}
	case hitMinute:
		if f.ctl.SelectMinute(z.value) {
			m.pf.minute, m.pf.minutes = z.value, true
		}
	case hitDone:
		f.ctl.Done()
	case hitBack:
		f.ctl.Back()
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
