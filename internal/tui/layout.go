package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall. Overlay compositing relies on every base line having the same width.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")

	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i := range lines {
		ln := lines[i]
		w := xansi.StringWidth(ln)
		if w > width {
			switch {
			case width <= 0:
				ln = ""
			case width == 1:
				ln = xansi.Cut(ln, 0, 1)
			default:
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}

	return strings.Join(lines, "\n")
}

// overlayAt paints box over base with its top-left corner at (col, row).
// base must already be normalized; parts of box outside base are clipped.
func overlayAt(base, box string, col, row int) string {
	baseLines := strings.Split(base, "\n")
	if len(baseLines) == 0 {
		return base
	}
	width := xansi.StringWidth(baseLines[0])
	if col < 0 {
		col = 0
	}

	for i, bl := range strings.Split(box, "\n") {
		y := row + i
		if y < 0 || y >= len(baseLines) || col >= width {
			continue
		}
		bw := xansi.StringWidth(bl)
		if col+bw > width {
			bl = xansi.Cut(bl, 0, width-col)
			bw = width - col
		}
		line := baseLines[y]
		// Reset styling at each seam so neither side bleeds into the other.
		baseLines[y] = xansi.Cut(line, 0, col) + "\x1b[0m" + bl + "\x1b[0m" + xansi.Cut(line, col+bw, width)
	}
	return strings.Join(baseLines, "\n")
}
