package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestApplyThemePreference(t *testing.T) {
	prev := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(prev) })

	cases := []struct {
		name       string
		env        string
		configured string
		darkbg     string
		colorfgbg  string
		want       bool
	}{
		{name: "env light", env: "light", configured: "dark", want: false},
		{name: "env dark", env: "dark", want: true},
		{name: "config light", env: "auto", configured: "light", want: false},
		{name: "darkbg flag", darkbg: "true", want: true},
		{name: "colorfgbg light bg", colorfgbg: "0;15", want: false},
		{name: "colorfgbg dark bg", colorfgbg: "15;0", want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DATEPICK_TUI_THEME", tc.env)
			t.Setenv("DATEPICK_TUI_DARKBG", tc.darkbg)
			t.Setenv("COLORFGBG", tc.colorfgbg)
			lipgloss.SetHasDarkBackground(!tc.want)

			applyThemePreference(tc.configured)
			if got := lipgloss.HasDarkBackground(); got != tc.want {
				t.Fatalf("expected dark=%v, got %v", tc.want, got)
			}
		})
	}
}

func TestRenderMarkdown_UsesForcedStyle(t *testing.T) {
	t.Setenv("DATEPICK_TUI_MD_STYLE", "notty")

	out := renderMarkdown("# Keys\n\nPress `?` for help.", 40)
	if out == "" {
		t.Fatalf("expected rendered markdown")
	}
	if got := markdownStyle(); got != "notty" {
		t.Fatalf("expected notty style, got %q", got)
	}
}
