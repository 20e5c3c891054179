package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawText writes s from (x, y) clipped to maxWidth columns, returns the columns used
func drawText(screen tcell.Screen, x, y, maxWidth int, s string, style tcell.Style) int {
	if maxWidth <= 0 {
		return 0
	}
	s = runewidth.Truncate(s, maxWidth, "")
	col := 0
	for _, r := range s {
		screen.SetContent(x+col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
	return col
}

// drawCentered writes s centered in the width columns starting at x
func drawCentered(screen tcell.Screen, x, y, width int, s string, style tcell.Style) {
	w := runewidth.StringWidth(s)
	if w > width {
		w = width
	}
	drawText(screen, x+(width-w)/2, y, width, s, style)
}

// padRight pads s with spaces to width columns
func padRight(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, ""), width)
}
