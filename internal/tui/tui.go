package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows an interactive form with one picker per field and returns every
// field's value when the user quits. Committed values reach opts.OnChange as
// they happen.
func Run(opts Options) (map[string]string, error) {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	applyGlyphPreference(opts.Glyphs)

	if opts.Logger == nil {
		logger, closer := debugLogger()
		defer closer.Close()
		opts.Logger = logger
	}

	m := newFormModel(opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return nil, err
	}
	if fm, ok := final.(formModel); ok {
		return fm.Values(), nil
	}
	return m.Values(), nil
}
