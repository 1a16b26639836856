package model

import "time"

// Mode controls the serialized form of a value and whether the time grid is reachable.
type Mode string

const (
	ModeDate     Mode = "date"
	ModeDateTime Mode = "datetime"
)

func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "date":
		return ModeDate, true
	case "datetime", "date-time", "datetime-local":
		return ModeDateTime, true
	default:
		return "", false
	}
}

func (m Mode) HasTime() bool { return m == ModeDateTime }

// ViewState is the grid rendered inside an open popover.
type ViewState int

const (
	ViewCalendar ViewState = iota
	ViewMonthSelect
	ViewTimeSelect
)

func (v ViewState) String() string {
	switch v {
	case ViewCalendar:
		return "calendar"
	case ViewMonthSelect:
		return "month"
	case ViewTimeSelect:
		return "time"
	default:
		return "unknown"
	}
}

// Record is a fully populated calendar date plus time of day.
// Month is 0-based (0 = January).
type Record struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Cursor is the month shown in the calendar grid.
type Cursor struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// TimeOfDay is the staged hour/minute in the time grid.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Date is a calendar date without time; Month is 0-based.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Bounds constrains selectable days. Empty strings mean "unbounded".
type Bounds struct {
	Min string `json:"min,omitempty"`
	Max string `json:"max,omitempty"`
}

// Rect is a screen-space box. Units are host-defined (pixels, terminal cells).
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Bottom() float64 { return r.Top + r.Height }
func (r Rect) Right() float64  { return r.Left + r.Width }

func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

type Side string

const (
	SideBelow Side = "below"
	SideAbove Side = "above"
)

// Placement is where the popover goes for one open.
//
// Top is set when Side is SideBelow; Bottom (distance from the viewport's
// bottom edge) is set when Side is SideAbove.
type Placement struct {
	Side   Side    `json:"side"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
}

// TopFor converts a placement to a top coordinate for hosts that only position by top.
func (p Placement) TopFor(viewportHeight, popoverHeight float64) float64 {
	if p.Side == SideAbove {
		return viewportHeight - p.Bottom - popoverHeight
	}
	return p.Top
}

// Clock returns the current wall-clock time.
type Clock func() time.Time

func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
