package tui

import (
	"datepick-cli/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// formKeys apply while no popover is open.
type formKeys struct {
	Up    key.Binding
	Down  key.Binding
	Open  key.Binding
	Edit  key.Binding
	Help  key.Binding
	Quit  key.Binding
	Force key.Binding
}

// calendarKeys apply while the day grid is showing.
type calendarKeys struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Prev   key.Binding
	Next   key.Binding
	Months key.Binding
	Today  key.Binding
	Clear  key.Binding
	Close  key.Binding
}

type monthKeys struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	PrevYear key.Binding
	NextYear key.Binding
	Back     key.Binding
}

type timeKeys struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Section key.Binding
	Select  key.Binding
	Done    key.Binding
	Back    key.Binding
}

type keyMap struct {
	form     formKeys
	calendar calendarKeys
	months   monthKeys
	time     timeKeys
}

func defaultKeyMap() keyMap {
	return keyMap{
		form: formKeys{
			Up:    key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑/k", "prev field")),
			Down:  key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "next field")),
			Open:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open picker")),
			Edit:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "type value")),
			Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
			Quit:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
			Force: key.NewBinding(key.WithKeys("ctrl+c")),
		},
		calendar: calendarKeys{
			Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "day")),
			Right:  key.NewBinding(key.WithKeys("right", "l")),
			Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "week")),
			Down:   key.NewBinding(key.WithKeys("down", "j")),
			Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
			Prev:   key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[/]", "month")),
			Next:   key.NewBinding(key.WithKeys("]", "pgdown")),
			Months: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "months")),
			Today:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
			Clear:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
			Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		},
		months: monthKeys{
			Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→/↑/↓", "month")),
			Right:    key.NewBinding(key.WithKeys("right", "l")),
			Up:       key.NewBinding(key.WithKeys("up", "k")),
			Down:     key.NewBinding(key.WithKeys("down", "j")),
			Select:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
			PrevYear: key.NewBinding(key.WithKeys("-", "["), key.WithHelp("-/+", "year")),
			NextYear: key.NewBinding(key.WithKeys("+", "=", "]")),
			Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		},
		time: timeKeys{
			Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→/↑/↓", "move")),
			Right:   key.NewBinding(key.WithKeys("right", "l")),
			Up:      key.NewBinding(key.WithKeys("up", "k")),
			Down:    key.NewBinding(key.WithKeys("down", "j")),
			Section: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "hour/minute")),
			Select:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "set")),
			Done:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "done")),
			Back:    key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		},
	}
}

// shortHelp lists the bindings relevant to the current popover state (or the form).
func (k keyMap) shortHelp(open bool, state model.ViewState) []key.Binding {
	if !open {
		return []key.Binding{k.form.Down, k.form.Open, k.form.Edit, k.form.Help, k.form.Quit}
	}
	switch state {
	case model.ViewMonthSelect:
		return []key.Binding{k.months.Left, k.months.Select, k.months.PrevYear, k.months.Back}
	case model.ViewTimeSelect:
		return []key.Binding{k.time.Left, k.time.Section, k.time.Select, k.time.Done, k.time.Back}
	default:
		return []key.Binding{k.calendar.Left, k.calendar.Up, k.calendar.Select, k.calendar.Prev, k.calendar.Months, k.calendar.Today, k.calendar.Clear, k.calendar.Close}
	}
}

func newHelp() help.Model {
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = styleTitle()
	h.Styles.ShortDesc = styleMuted()
	h.Styles.ShortSeparator = styleMuted()
	return h
}
