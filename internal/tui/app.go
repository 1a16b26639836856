package tui

import (
	"strconv"
	"strings"

	"datepick-cli/internal/docs"
	"datepick-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m formModel) View() string {
	w, h := m.screen.width, m.screen.height
	if w <= 0 || h <= 0 {
		return ""
	}

	out := normalizePane(m.renderBase(w, h), w, h)
	switch {
	case m.showHelp:
		out = overlayAt(out, m.renderHelpBox(w, h), formMarginLeft, 1)
	case m.openField() != nil:
		f := m.openField()
		box, _ := renderPopoverBox(f.ctl, m.pf)
		col, row := m.popoverOrigin(f, boxHeight(box))
		out = overlayAt(out, box, col, row)
	}
	return out
}

func (m formModel) renderBase(w, h int) string {
	lines := make([]string, h)
	lines[0] = strings.Repeat(" ", formMarginLeft) + styleTitle().Render("datepick") +
		styleMuted().Render("  "+glyphHRule()+" "+countLabel(len(m.fields)))

	for i, f := range m.fields {
		row := fieldRow(i)
		if row >= h-1 {
			break
		}
		focused := i == m.focus
		label := styleFieldLabel(focused).Render(padCell(fieldLabel(f.spec), m.labelW))
		box := m.renderFieldBox(f, focused)
		if focused && m.editing {
			box = renderInputLine(fieldWidth, m.input.View())
		}
		lines[row] = strings.Repeat(" ", formMarginLeft) + label + box
	}

	lines[h-1] = m.renderStatusLine(w)
	return strings.Join(lines, "\n")
}

func (m formModel) renderFieldBox(f *formField, focused bool) string {
	text := f.ctl.Label()
	empty := f.ctl.Value() == ""
	if f.ctl.Disabled() {
		return styleMuted().Render(padCell(" "+text, fieldWidth))
	}
	caret := glyphCaret()
	body := padCell(" "+xansi.Truncate(text, fieldWidth-4, "…"), fieldWidth-2)
	return styleFieldValue(focused, empty).Render(body + caret + " ")
}

func (m formModel) renderStatusLine(w int) string {
	if msg := *m.flash; msg != "" {
		return styleFlashError().Render(xansi.Truncate(" "+msg, w, "…"))
	}
	if f := m.openField(); f != nil {
		return " " + m.help.ShortHelpView(m.keys.shortHelp(true, f.ctl.State()))
	}
	return " " + m.help.ShortHelpView(m.keys.shortHelp(false, model.ViewCalendar))
}

func (m formModel) renderHelpBox(w, h int) string {
	body, _ := docs.Get("keys")
	inner := w - 2*formMarginLeft - popoverChromeW
	if inner > 72 {
		inner = 72
	}
	md := renderMarkdown(body, inner)
	if lines := strings.Split(md, "\n"); len(lines) > h-4 && h > 4 {
		md = strings.Join(lines[:h-4], "\n")
	}
	return lipgloss.NewStyle().
		Border(popoverBorder()).
		BorderForeground(colorFocusBorder).
		Padding(0, 1).
		Render(md)
}

func boxHeight(box string) int {
	return strings.Count(box, "\n") + 1
}

func countLabel(n int) string {
	if n == 1 {
		return "1 field"
	}
	return strconv.Itoa(n) + " fields"
}
