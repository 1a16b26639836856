package tui

import (
	"io"
	"log/slog"

	"datepick-cli/internal/model"
	"datepick-cli/internal/picker"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
)

// Form geometry, in cells.
const (
	formMarginLeft = 2
	formFirstRow   = 2
	formRowStep    = 2
	fieldWidth     = 28
)

// FieldSpec describes one picker on the form.
type FieldSpec struct {
	Name        string
	Label       string
	Mode        model.Mode
	Value       string
	Bounds      model.Bounds
	Placeholder string
	Disabled    bool
}

type Options struct {
	Fields     []FieldSpec
	Locale     string
	MinuteStep int
	// Theme and Glyphs are config fallbacks for DATEPICK_TUI_THEME / DATEPICK_TUI_GLYPHS.
	Theme  string
	Glyphs string

	// OnChange persists a committed value. A returned error is flashed on the
	// status line; the picker keeps the committed value either way.
	OnChange func(field, value string) error

	Clock  model.Clock
	Logger *slog.Logger
}

type formField struct {
	spec FieldSpec
	ctl  *picker.Controller
}

// screen is shared by the model copies bubbletea passes around; anchor
// measurement reads it at open and pointer-down time.
type screen struct {
	width  int
	height int
}

type formModel struct {
	fields []*formField
	focus  int
	labelW int

	screen *screen
	host   *listenerHost
	flash  *string

	keys keyMap
	help help.Model

	pf popoverFocus

	editing bool
	input   textinput.Model

	showHelp bool

	onChange func(field, value string) error
	clock    model.Clock
	log      *slog.Logger
}

func newFormModel(opts Options) formModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := formModel{
		screen:   &screen{},
		host:     newListenerHost(),
		flash:    new(string),
		keys:     defaultKeyMap(),
		help:     newHelp(),
		onChange: opts.OnChange,
		clock:    opts.Clock,
		log:      logger,
	}
	for _, spec := range opts.Fields {
		if w := len([]rune(fieldLabel(spec))); w > m.labelW {
			m.labelW = w
		}
	}
	m.labelW += 2

	engine := picker.PositionEngine{Gap: 0, MinWidth: popoverMinWidth}
	for i, spec := range opts.Fields {
		f := &formField{spec: spec}
		idx := i
		name := spec.Name
		f.ctl = picker.NewController(picker.Options{
			Mode:        spec.Mode,
			Value:       spec.Value,
			Bounds:      spec.Bounds,
			Locale:      opts.Locale,
			Placeholder: spec.Placeholder,
			Disabled:    spec.Disabled,
			MinuteStep:  opts.MinuteStep,
			OnChange:    func(v string) { m.persist(name, v) },
			Anchor:      picker.AnchorFunc(func() (model.Rect, bool) { return m.anchorRect(idx) }),
			Listeners:   m.host,
			Position:    &engine,
			Clock:       opts.Clock,
			Logger:      logger.With("field", name),
		})
		m.fields = append(m.fields, f)
	}

	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.CharLimit = len("YYYY-MM-DDTHH:mm:ss")
	m.input.Width = fieldWidth - 4
	return m
}

func fieldLabel(spec FieldSpec) string {
	if spec.Label != "" {
		return spec.Label
	}
	return spec.Name
}

func fieldRow(i int) int { return formFirstRow + i*formRowStep }

// anchorRect is the field box on screen. Rows hidden behind the status line
// (or before the first window size) are not measurable.
func (m formModel) anchorRect(i int) (model.Rect, bool) {
	row := fieldRow(i)
	if m.screen.width <= 0 || m.screen.height <= 0 || row >= m.viewportHeight() {
		return model.Rect{}, false
	}
	return model.Rect{
		Left:   float64(formMarginLeft + m.labelW),
		Top:    float64(row),
		Width:  fieldWidth,
		Height: 1,
	}, true
}

// viewportHeight excludes the status line.
func (m formModel) viewportHeight() int {
	return m.screen.height - 1
}

func (m formModel) persist(name, value string) {
	*m.flash = ""
	if m.onChange == nil {
		return
	}
	if err := m.onChange(name, value); err != nil {
		m.log.Error("persist failed", "field", name, "err", err)
		*m.flash = err.Error()
	}
}

// openField returns the field whose popover is showing, if any.
func (m formModel) openField() *formField {
	for _, f := range m.fields {
		if f.ctl.IsOpen() {
			return f
		}
	}
	return nil
}

func (m formModel) focused() *formField {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	return m.fields[m.focus]
}

// Values returns the current value of every field by name.
func (m formModel) Values() map[string]string {
	out := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		out[f.spec.Name] = f.ctl.Value()
	}
	return out
}

// focusFor places the keyboard highlight on the committed day (when it is in
// the visible month), else today, else the 1st; and on the staged time.
func focusFor(ctl *picker.Controller, clock model.Clock) popoverFocus {
	cur := ctl.Cursor()
	f := popoverFocus{day: 1, month: cur.Month, hour: ctl.StagedTime().Hour, minute: ctl.StagedTime().Minute}
	rec := ctl.Record()
	today := picker.Today(clock)
	switch {
	case ctl.Value() != "" && rec.Year == cur.Year && rec.Month == cur.Month:
		f.day = rec.Day
	case today.Year == cur.Year && today.Month == cur.Month:
		f.day = today.Day
	}
	return f
}
