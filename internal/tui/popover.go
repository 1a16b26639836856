package tui

import (
	"fmt"
	"strings"

	"datepick-cli/internal/model"
	"datepick-cli/internal/picker"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Terminal geometry of the popover, in cells.
const (
	popoverMinWidth = 26
	popoverChromeW  = 4 // border + padding, both sides
	popoverChromeH  = 2 // border, top and bottom

	dayCellW    = 3
	timeCellW   = 3
	timeColumns = 6
	monthCols   = 3
)

type hitKind int

const (
	hitDay hitKind = iota + 1
	hitPrevMonth
	hitNextMonth
	hitMonthTitle
	hitToday
	hitClear
	hitMonth
	hitPrevYear
	hitNextYear
	hitHour
	hitMinute
	hitDone
	hitBack
)

// hitZone is a clickable span on one content row of the popover.
type hitZone struct {
	row, col, width int
	kind            hitKind
	value           int
}

// popoverFocus is the keyboard highlight inside the popover.
type popoverFocus struct {
	day     int
	month   int
	minutes bool // time view: minute grid has focus instead of hours
	hour    int
	minute  int
}

// popoverContent is the popover body before the border is drawn.
type popoverContent struct {
	lines []string
	zones []hitZone
}

func (p *popoverContent) add(line string) int {
	p.lines = append(p.lines, line)
	return len(p.lines) - 1
}

func (p *popoverContent) zone(row, col, width int, kind hitKind, value int) {
	p.zones = append(p.zones, hitZone{row: row, col: col, width: width, kind: kind, value: value})
}

func (p popoverContent) hit(row, col int) (hitZone, bool) {
	for _, z := range p.zones {
		if z.row == row && col >= z.col && col < z.col+z.width {
			return z, true
		}
	}
	return hitZone{}, false
}

// popoverWidth is the outer width for an open placement.
func popoverWidth(ctl *picker.Controller) int {
	w := int(ctl.Placement().Width)
	if w < popoverMinWidth {
		w = popoverMinWidth
	}
	return w
}

// popoverHeight is the tallest the popover gets for ctl's mode, so one
// placement fits every view reachable during an open.
func popoverHeight(ctl *picker.Controller) int {
	h := 10 // calendar
	if ctl.Mode().HasTime() {
		// One spare cell for a staged minute that is off the step.
		rows := (len(ctl.Minutes()) + timeColumns) / timeColumns
		if t := 9 + rows; t > h {
			h = t
		}
	}
	return h + popoverChromeH
}

func renderPopoverContent(ctl *picker.Controller, f popoverFocus, inner int) popoverContent {
	switch ctl.State() {
	case model.ViewMonthSelect:
		return renderMonthView(ctl, f, inner)
	case model.ViewTimeSelect:
		return renderTimeView(ctl, f, inner)
	default:
		return renderCalendarView(ctl, f, inner)
	}
}

// renderPopoverBox draws the bordered popover and returns it with its content.
func renderPopoverBox(ctl *picker.Controller, f popoverFocus) (string, popoverContent) {
	outer := popoverWidth(ctl)
	inner := outer - popoverChromeW
	pc := renderPopoverContent(ctl, f, inner)
	body := make([]string, len(pc.lines))
	for i, ln := range pc.lines {
		body[i] = padRight(ln, inner)
	}
	box := stylePopover().Width(outer - 2).Render(strings.Join(body, "\n"))
	return box, pc
}

func surface(s string) string {
	return lipgloss.NewStyle().Background(colorSurfaceBg).Foreground(colorSurfaceFg).Render(s)
}

func padRight(s string, width int) string {
	w := xansi.StringWidth(s)
	if w > width {
		return xansi.Truncate(s, width, "")
	}
	return s + surface(strings.Repeat(" ", width-w))
}

// header renders "‹  title  ›" across inner columns.
func header(p *popoverContent, inner int, title string, prev, next, titleKind hitKind) {
	title = xansi.Truncate(title, inner-4, "…")
	tw := xansi.StringWidth(title)
	start := (inner - tw) / 2
	if start < 2 {
		start = 2
	}
	gap := inner - 1 - start - tw
	if gap < 1 {
		gap = 1
	}
	line := surface(glyphPrev()+strings.Repeat(" ", start-1)) +
		lipgloss.NewStyle().Background(colorSurfaceBg).Bold(true).Render(title) +
		surface(strings.Repeat(" ", gap)+glyphNext())
	row := p.add(line)
	p.zone(row, 0, 1, prev, 0)
	if titleKind != 0 {
		p.zone(row, start, tw, titleKind, 0)
	}
	p.zone(row, inner-1, 1, next, 0)
}

// footer renders two buttons, left and right aligned.
func footer(p *popoverContent, inner int, left string, leftKind hitKind, right string, rightKind hitKind) {
	lw, rw := xansi.StringWidth(left), xansi.StringWidth(right)
	gap := inner - lw - rw
	if gap < 1 {
		gap = 1
	}
	btn := lipgloss.NewStyle().Background(colorSurfaceBg).Foreground(colorAccent)
	row := p.add(btn.Render(left) + surface(strings.Repeat(" ", gap)) + btn.Render(right))
	p.zone(row, 0, lw, leftKind, 0)
	p.zone(row, lw+gap, rw, rightKind, 0)
}

func renderCalendarView(ctl *picker.Controller, f popoverFocus, inner int) popoverContent {
	var p popoverContent
	loc := ctl.Locale()
	header(&p, inner, loc.MonthTitle(ctl.Cursor()), hitPrevMonth, hitNextMonth, hitMonthTitle)

	gridW := 7*dayCellW - 1
	off := (inner - gridW) / 2
	if off < 0 {
		off = 0
	}
	margin := surface(strings.Repeat(" ", off))

	var wd strings.Builder
	wd.WriteString(margin)
	for i, name := range loc.Weekdays {
		if i > 0 {
			wd.WriteString(surface(" "))
		}
		wd.WriteString(styleMuted().Background(colorSurfaceBg).Render(padCell(name, 2)))
	}
	p.add(wd.String())

	for _, week := range ctl.Days() {
		var b strings.Builder
		b.WriteString(margin)
		row := len(p.lines)
		for i, cell := range week {
			if i > 0 {
				b.WriteString(surface(" "))
			}
			if cell.Day == 0 {
				b.WriteString(surface("  "))
				continue
			}
			st := styleCell(cell.Day == f.day, cell.Selected, cell.Today, cell.Disabled)
			b.WriteString(st.Render(fmt.Sprintf("%2d", cell.Day)))
			p.zone(row, off+i*dayCellW, 2, hitDay, cell.Day)
		}
		p.add(b.String())
	}

	p.add("")
	footer(&p, inner, "Today", hitToday, "Clear", hitClear)
	return p
}

func renderMonthView(ctl *picker.Controller, f popoverFocus, inner int) popoverContent {
	var p popoverContent
	header(&p, inner, fmt.Sprintf("%04d", ctl.Cursor().Year), hitPrevYear, hitNextYear, 0)
	p.add("")

	colW := inner / monthCols
	months := ctl.Months()
	for r := 0; r < len(months)/monthCols; r++ {
		var b strings.Builder
		row := len(p.lines)
		for c := 0; c < monthCols; c++ {
			cell := months[r*monthCols+c]
			name := padCell(cell.Name, colW-1)
			b.WriteString(styleCell(cell.Month == f.month, cell.Selected, false, false).Render(name))
			b.WriteString(surface(" "))
			p.zone(row, c*colW, colW-1, hitMonth, cell.Month)
		}
		p.add(b.String())
	}

	p.add("")
	footer(&p, inner, "Back", hitBack, "", 0)
	return p
}

func renderTimeView(ctl *picker.Controller, f popoverFocus, inner int) popoverContent {
	var p popoverContent
	title := lipgloss.NewStyle().Background(colorSurfaceBg).Bold(true).Render(xansi.Truncate(ctl.Label(), inner, "…"))
	p.add(title)

	gridW := timeColumns*timeCellW - 1
	off := (inner - gridW) / 2
	if off < 0 {
		off = 0
	}

	section := func(label string, active bool, cells []picker.TimeCell, focusValue int, kind hitKind) {
		st := styleMuted().Background(colorSurfaceBg)
		if active {
			st = lipgloss.NewStyle().Background(colorSurfaceBg).Bold(true)
		}
		p.add(st.Render(label))
		for start := 0; start < len(cells); start += timeColumns {
			var b strings.Builder
			b.WriteString(surface(strings.Repeat(" ", off)))
			row := len(p.lines)
			for i := start; i < start+timeColumns && i < len(cells); i++ {
				if i > start {
					b.WriteString(surface(" "))
				}
				cell := cells[i]
				cst := styleCell(active && cell.Value == focusValue, cell.Selected, false, false)
				b.WriteString(cst.Render(fmt.Sprintf("%02d", cell.Value)))
				p.zone(row, off+(i-start)*timeCellW, 2, kind, cell.Value)
			}
			p.add(b.String())
		}
	}
	section("Hour", !f.minutes, ctl.Hours(), f.hour, hitHour)
	section("Minute", f.minutes, ctl.Minutes(), f.minute, hitMinute)

	p.add("")
	footer(&p, inner, "Back", hitBack, "Done", hitDone)
	return p
}

// padCell truncates or pads s to exactly w columns.
func padCell(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = xansi.Truncate(s, w, "")
	if sw := xansi.StringWidth(s); sw < w {
		s += strings.Repeat(" ", w-sw)
	}
	return s
}
