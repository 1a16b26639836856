package tui

import (
	"testing"

	"datepick-cli/internal/model"
	"datepick-cli/internal/picker"
)

func openTestPicker(t *testing.T, mode model.Mode, value string, step int) *picker.Controller {
	t.Helper()
	ctl := picker.NewController(picker.Options{
		Mode:       mode,
		Value:      value,
		MinuteStep: step,
		Clock:      model.FixedClock(testNow),
		Position:   &picker.PositionEngine{MinWidth: popoverMinWidth},
		Anchor: picker.AnchorFunc(func() (model.Rect, bool) {
			return model.Rect{Left: 10, Top: 2, Width: fieldWidth, Height: 1}, true
		}),
	})
	if !ctl.Open(40, float64(popoverHeight(ctl))) {
		t.Fatalf("expected picker to open")
	}
	return ctl
}

func TestPopoverHeight(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		mode model.Mode
		step int
		want int
	}{
		{name: "date", mode: model.ModeDate, step: 5, want: 12},
		{name: "datetime step 5", mode: model.ModeDateTime, step: 5, want: 14},
		{name: "datetime step 1", mode: model.ModeDateTime, step: 1, want: 22},
		{name: "datetime step 30", mode: model.ModeDateTime, step: 30, want: 12},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctl := openTestPicker(t, tc.mode, "", tc.step)
			if got := popoverHeight(ctl); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestRenderedHeightFitsEstimate(t *testing.T) {
	t.Parallel()

	ctl := openTestPicker(t, model.ModeDateTime, "2025-01-10T09:07", 5)
	limit := popoverHeight(ctl)

	box, _ := renderPopoverBox(ctl, focusFor(ctl, nil))
	if h := boxHeight(box); h > limit {
		t.Fatalf("calendar height %d exceeds estimate %d", h, limit)
	}
	ctl.SelectDay(10)
	box, _ = renderPopoverBox(ctl, focusFor(ctl, nil))
	if h := boxHeight(box); h > limit {
		t.Fatalf("time height %d exceeds estimate %d", h, limit)
	}
}

func TestCalendarZones(t *testing.T) {
	t.Parallel()

	// March 2025 starts on a Saturday.
	ctl := openTestPicker(t, model.ModeDate, "2025-03-05", 5)
	pc := renderCalendarView(ctl, popoverFocus{day: 5}, popoverMinWidth-popoverChromeW)

	if len(pc.lines) != 10 {
		t.Fatalf("expected 10 calendar lines, got %d", len(pc.lines))
	}
	first, ok := findZone(pc, hitDay, 1)
	if !ok {
		t.Fatalf("expected a zone for day 1")
	}
	second, _ := findZone(pc, hitDay, 2)
	if first.row != 2 || second.row != 3 {
		t.Fatalf("expected day 1 on the first week row and day 2 on the next, got %d and %d", first.row, second.row)
	}
	if first.col-second.col != 6*dayCellW {
		t.Fatalf("expected day 1 in the Saturday column, got cols %d/%d", first.col, second.col)
	}

	z, ok := pc.hit(first.row, first.col+1)
	if !ok || z.kind != hitDay || z.value != 1 {
		t.Fatalf("expected hit on day 1, got %+v ok=%v", z, ok)
	}
	if _, ok := pc.hit(first.row, first.col+2); ok {
		t.Fatalf("expected the gap between cells to miss")
	}
	for _, k := range []hitKind{hitPrevMonth, hitNextMonth, hitMonthTitle, hitToday, hitClear} {
		if _, ok := findZone(pc, k, 0); !ok {
			t.Fatalf("expected zone kind %d", k)
		}
	}
}

func TestMonthZonesCoverAllMonths(t *testing.T) {
	t.Parallel()

	ctl := openTestPicker(t, model.ModeDate, "2025-03-05", 5)
	ctl.ShowMonths()
	pc := renderPopoverContent(ctl, popoverFocus{month: 2}, popoverMinWidth-popoverChromeW)
	for month := 0; month < 12; month++ {
		z, ok := findZone(pc, hitMonth, month)
		if !ok {
			t.Fatalf("expected zone for month %d", month)
		}
		if z.row != 2+month/monthCols {
			t.Fatalf("month %d on unexpected row %d", month, z.row)
		}
	}
}

func TestTimeZonesIncludeOffStepMinute(t *testing.T) {
	t.Parallel()

	ctl := openTestPicker(t, model.ModeDateTime, "2025-01-10T09:07", 5)
	ctl.SelectDay(10)
	pc := renderPopoverContent(ctl, popoverFocus{hour: 9, minute: 7}, popoverMinWidth-popoverChromeW)
	if _, ok := findZone(pc, hitMinute, 7); !ok {
		t.Fatalf("expected a zone for the staged minute 7")
	}
	if _, ok := findZone(pc, hitHour, 23); !ok {
		t.Fatalf("expected a zone for hour 23")
	}
	if _, ok := findZone(pc, hitDone, 0); !ok {
		t.Fatalf("expected a done button")
	}
}

func findZone(pc popoverContent, kind hitKind, value int) (hitZone, bool) {
	for _, z := range pc.zones {
		if z.kind == kind && z.value == value {
			return z, true
		}
	}
	return hitZone{}, false
}
