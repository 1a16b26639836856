package picker

import (
	"math"

	"datepick-cli/internal/model"
)

// PositionEngine places the popover relative to its anchor.
//
// It only flips vertically. Horizontal position is pinned to the anchor's
// left edge even when the popover would overflow on the right.
type PositionEngine struct {
	// Gap separates the popover from the anchor edge.
	Gap float64
	// MinWidth is the narrowest popover; wider anchors widen it.
	MinWidth float64
}

// DefaultPosition uses pixel units.
var DefaultPosition = PositionEngine{Gap: 4, MinWidth: 280}

// Compute opens below the anchor unless there is not enough room below and
// there is enough room above.
func (e PositionEngine) Compute(anchor model.Rect, viewportHeight, popoverHeight float64) model.Placement {
	p := model.Placement{
		Side:  model.SideBelow,
		Left:  anchor.Left,
		Top:   anchor.Bottom() + e.Gap,
		Width: math.Max(anchor.Width, e.MinWidth),
	}
	spaceBelow := viewportHeight - anchor.Bottom()
	if spaceBelow < popoverHeight && anchor.Top > popoverHeight {
		p.Side = model.SideAbove
		p.Top = 0
		p.Bottom = viewportHeight - anchor.Top + e.Gap
	}
	return p
}

// PopoverRect is the screen box a placement occupies for a given height.
func PopoverRect(p model.Placement, viewportHeight, popoverHeight float64) model.Rect {
	return model.Rect{
		Left:   p.Left,
		Top:    p.TopFor(viewportHeight, popoverHeight),
		Width:  p.Width,
		Height: popoverHeight,
	}
}

// measurable reports whether an anchor measurement can be positioned against.
func measurable(r model.Rect) bool {
	for _, f := range []float64{r.Left, r.Top, r.Width, r.Height} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	if r.Width < 0 || r.Height < 0 {
		return false
	}
	return r.Width > 0 || r.Height > 0
}
