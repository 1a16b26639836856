package tui

import "testing"

func TestGlyphs_FromEnvAndConfig(t *testing.T) {
	t.Setenv("DATEPICK_TUI_GLYPHS", "")
	setGlyphs(glyphSetUnicode)
	applyGlyphPreference("")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs by default; got %v", got)
	}

	applyGlyphPreference("ascii")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected configured ascii glyphs; got %v", got)
	}
	if glyphPrev() != "<" || glyphNext() != ">" {
		t.Fatalf("expected ascii arrows, got %q %q", glyphPrev(), glyphNext())
	}

	t.Setenv("DATEPICK_TUI_GLYPHS", "unicode")
	applyGlyphPreference("ascii")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected env to win over config; got %v", got)
	}

	// Unknown values are ignored (keep current).
	setGlyphs(glyphSetASCII)
	t.Setenv("DATEPICK_TUI_GLYPHS", "bogus")
	applyGlyphPreference("")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown to be ignored; got %v", got)
	}
	setGlyphs(glyphSetUnicode)
}
