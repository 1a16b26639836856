package picker

import (
	"io"
	"log/slog"

	"datepick-cli/internal/model"
)

const defaultMinuteStep = 5

// Anchor measures the on-screen trigger element.
// ok is false when the element is not laid out (unmounted, hidden).
type Anchor interface {
	Measure() (r model.Rect, ok bool)
}

type AnchorFunc func() (model.Rect, bool)

func (f AnchorFunc) Measure() (model.Rect, bool) { return f() }

// Listener receives global pointer-down and scroll events while a popover is open.
type Listener interface {
	PointerDown(x, y float64)
	Scroll()
}

// ListenerHost registers global listeners. The returned func removes the registration.
type ListenerHost interface {
	Listen(l Listener) (cancel func())
}

type Options struct {
	Mode        model.Mode
	Value       string
	Bounds      model.Bounds
	Locale      string
	Placeholder string
	Disabled    bool
	// MinuteStep sizes the minute grid (default 5).
	MinuteStep int

	// OnChange receives every committed value.
	OnChange func(value string)

	Anchor    Anchor
	Listeners ListenerHost
	Position  *PositionEngine
	Clock     model.Clock
	Logger    *slog.Logger
}

// Controller owns one picker instance: open/closed state, the navigation
// view, and commits through OnChange. It is not safe for concurrent use.
type Controller struct {
	mode        model.Mode
	bounds      model.Bounds
	locale      Locale
	placeholder string
	disabled    bool
	minuteStep  int

	onChange  func(string)
	anchor    Anchor
	listeners ListenerHost
	engine    PositionEngine
	clock     model.Clock
	log       *slog.Logger

	value string
	view  View

	open           bool
	torndown       bool
	placement      model.Placement
	anchorRect     model.Rect
	popoverRect    model.Rect
	cancelListener func()
}

func NewController(opts Options) *Controller {
	mode := opts.Mode
	if mode == "" {
		mode = model.ModeDate
	}
	step := opts.MinuteStep
	if step <= 0 || step > 30 {
		step = defaultMinuteStep
	}
	engine := DefaultPosition
	if opts.Position != nil {
		engine = *opts.Position
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Controller{
		mode:        mode,
		bounds:      opts.Bounds,
		locale:      LocaleFor(opts.Locale),
		placeholder: opts.Placeholder,
		disabled:    opts.Disabled,
		minuteStep:  step,
		onChange:    opts.OnChange,
		anchor:      opts.Anchor,
		listeners:   opts.Listeners,
		engine:      engine,
		clock:       opts.Clock,
		log:         logger,
	}
	c.value = opts.Value
	c.view = NewView(mode, Parse(opts.Value, mode, c.clock))
	return c
}

func (c *Controller) Mode() model.Mode            { return c.mode }
func (c *Controller) Value() string               { return c.value }
func (c *Controller) IsOpen() bool                { return c.open }
func (c *Controller) State() model.ViewState      { return c.view.State }
func (c *Controller) Cursor() model.Cursor        { return c.view.Cursor }
func (c *Controller) StagedTime() model.TimeOfDay { return c.view.Time }
func (c *Controller) Placement() model.Placement  { return c.placement }
func (c *Controller) Locale() Locale              { return c.locale }
func (c *Controller) Bounds() model.Bounds        { return c.bounds }
func (c *Controller) PopoverRect() model.Rect     { return c.popoverRect }
func (c *Controller) Label() string               { return Label(c.value, c.mode, c.locale, c.placeholder) }
func (c *Controller) Disabled() bool              { return c.disabled }
func (c *Controller) Record() model.Record        { return Parse(c.value, c.mode, c.clock) }
func (c *Controller) SetDisabled(disabled bool)   { c.disabled = disabled }
func (c *Controller) SetBounds(b model.Bounds)    { c.bounds = b }
func (c *Controller) SetOnChange(fn func(string)) { c.onChange = fn }

// SetValue is the external value changing. It always wins: the cursor and
// staged time are re-derived even mid-interaction.
func (c *Controller) SetValue(value string) {
	c.value = value
	c.view.Sync(Parse(value, c.mode, c.clock))
}

// Open measures the anchor, places the popover and shows the calendar grid.
// It declines (returns false) when disabled, torn down, or the anchor cannot be measured.
func (c *Controller) Open(viewportHeight, popoverHeight float64) bool {
	if c.disabled || c.torndown {
		c.log.Debug("picker open declined", "disabled", c.disabled, "torndown", c.torndown)
		return false
	}
	if c.anchor == nil {
		c.log.Debug("picker open declined", "reason", "no anchor")
		return false
	}
	rect, ok := c.anchor.Measure()
	if !ok || !measurable(rect) || viewportHeight <= 0 {
		c.log.Debug("picker open declined", "reason", "anchor not measurable", "rect", rect, "viewport", viewportHeight)
		return false
	}

	c.anchorRect = rect
	c.placement = c.engine.Compute(rect, viewportHeight, popoverHeight)
	c.popoverRect = PopoverRect(c.placement, viewportHeight, popoverHeight)
	c.view.Reset()
	c.view.Sync(Parse(c.value, c.mode, c.clock))
	c.open = true

	if c.cancelListener == nil && c.listeners != nil {
		c.cancelListener = c.listeners.Listen(dismissListener{c: c})
	}
	c.log.Debug("picker opened", "side", c.placement.Side, "left", c.placement.Left, "top", c.placement.Top, "bottom", c.placement.Bottom, "width", c.placement.Width)
	return true
}

// Close hides the popover. Cursor and staged time are left alone.
func (c *Controller) Close() {
	if c.cancelListener != nil {
		c.cancelListener()
		c.cancelListener = nil
	}
	if !c.open {
		return
	}
	c.open = false
	c.log.Debug("picker closed")
}

// Teardown closes the popover and refuses further opens.
func (c *Controller) Teardown() {
	c.Close()
	c.torndown = true
}

// OnOutsideInteraction dismisses the popover unconditionally.
func (c *Controller) OnOutsideInteraction() {
	if !c.open {
		return
	}
	c.log.Debug("picker dismissed")
	c.Close()
}

// SelectDay is a tap on a calendar day of the visible month.
// Disabled or out-of-range days are a no-op.
func (c *Controller) SelectDay(day int) bool {
	if !c.open || c.view.State != model.ViewCalendar {
		return false
	}
	cur := c.view.Cursor
	if day < 1 || day > DaysInMonth(cur.Year, cur.Month) {
		return false
	}
	if IsDisabled(cur.Year, cur.Month, day, c.bounds) {
		return false
	}
	rec := model.Record{Year: cur.Year, Month: cur.Month, Day: day}
	if c.mode.HasTime() {
		rec.Hour, rec.Minute = c.view.Time.Hour, c.view.Time.Minute
	}
	closePopover := c.view.DaySelected()
	c.commit(Format(rec, c.mode))
	if closePopover {
		c.Close()
	}
	return true
}

// SelectToday moves the calendar to today and selects it.
// When today is outside bounds only the cursor moves.
func (c *Controller) SelectToday() bool {
	if !c.open {
		return false
	}
	t := Today(c.clock)
	c.view.Reset()
	c.view.Cursor = model.Cursor{Year: t.Year, Month: t.Month}
	return c.SelectDay(t.Day)
}

// Clear commits the empty value and closes.
func (c *Controller) Clear() bool {
	if !c.open {
		return false
	}
	c.view.Reset()
	c.commit("")
	c.Close()
	return true
}

func (c *Controller) ShowMonths() bool {
	return c.open && c.view.ShowMonths()
}

func (c *Controller) SelectMonth(month int) bool {
	return c.open && c.view.SelectMonth(month)
}

func (c *Controller) StepYear(delta int) bool {
	return c.open && c.view.StepYear(delta)
}

func (c *Controller) PrevMonth() bool {
	return c.open && c.view.ShiftMonth(-1)
}

func (c *Controller) NextMonth() bool {
	return c.open && c.view.ShiftMonth(1)
}

// Back leaves the month or time grid for the calendar.
func (c *Controller) Back() bool {
	return c.open && c.view.Back()
}

// SelectHour stages an hour and, when a date is already committed, re-commits with it.
func (c *Controller) SelectHour(h int) bool {
	if !c.open || !c.view.SetHour(h) {
		return false
	}
	c.recommitTime()
	return true
}

// SelectMinute stages a minute and, when a date is already committed, re-commits with it.
func (c *Controller) SelectMinute(m int) bool {
	if !c.open || !c.view.SetMinute(m) {
		return false
	}
	c.recommitTime()
	return true
}

// Done leaves the time grid and closes the popover.
func (c *Controller) Done() bool {
	if !c.open || c.view.State != model.ViewTimeSelect {
		return false
	}
	c.view.Back()
	c.Close()
	return true
}

func (c *Controller) recommitTime() {
	if c.value == "" {
		return
	}
	rec := Parse(c.value, c.mode, c.clock)
	rec.Hour, rec.Minute = c.view.Time.Hour, c.view.Time.Minute
	c.commit(Format(rec, c.mode))
}

// commit records value as the latest known external value and emits it.
// A callback that feeds a different value back via SetValue wins.
func (c *Controller) commit(value string) {
	c.value = value
	c.view.Sync(Parse(value, c.mode, c.clock))
	c.log.Debug("picker commit", "value", value)
	if c.onChange != nil {
		c.onChange(value)
	}
}

type dismissListener struct{ c *Controller }

func (d dismissListener) PointerDown(x, y float64) {
	c := d.c
	if !c.open {
		return
	}
	anchor := c.anchorRect
	if c.anchor != nil {
		if r, ok := c.anchor.Measure(); ok && measurable(r) {
			anchor = r
		}
	}
	if anchor.Contains(x, y) || c.popoverRect.Contains(x, y) {
		return
	}
	c.OnOutsideInteraction()
}

func (d dismissListener) Scroll() { d.c.OnOutsideInteraction() }
