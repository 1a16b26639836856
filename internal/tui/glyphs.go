package tui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Terminal apps can't change the user's font. Instead, we choose between
// Unicode and ASCII glyph sets for the popover chrome (borders, arrows, markers).

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference reads DATEPICK_TUI_GLYPHS, falling back to the configured value.
func applyGlyphPreference(configured string) {
	v := strings.TrimSpace(os.Getenv("DATEPICK_TUI_GLYPHS"))
	if v == "" {
		v = configured
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphPrev() string {
	if glyphs() == glyphSetASCII {
		return "<"
	}
	return "‹"
}

func glyphNext() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "›"
}

func glyphCaret() string {
	if glyphs() == glyphSetASCII {
		return "v"
	}
	return "▾"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

func popoverBorder() lipgloss.Border {
	if glyphs() == glyphSetASCII {
		return lipgloss.ASCIIBorder()
	}
	return lipgloss.RoundedBorder()
}
