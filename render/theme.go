package render

import (
	"strings"

	"github.com/lixenwraith/blockfall/constants"
	"github.com/lixenwraith/blockfall/core"
)

// Theme holds the resolved colors of the display
type Theme struct {
	Background RGB // Empty cells and screen
	GridShade  RGB // Checker tint on alternating empty cells
	Frame      RGB
	Text       RGB
	Accent     RGB // Mode indicator background

	GridAlpha   float64
	AutoplayDim float64 // Blend factor of block colors towards Background in autoplay

	pieces map[string]pieceColors
}

type pieceColors struct {
	fg, bg RGB
}

// DefaultTheme resolves the color constants and the piece catalog
func DefaultTheme() *Theme {
	t := &Theme{
		Background:  MustParseColor(constants.BoardBackground),
		GridShade:   MustParseColor(constants.BoardGridShade),
		Frame:       MustParseColor(constants.FrameColor),
		Text:        RGBWhite,
		Accent:      MustParseColor("#a000f0"),
		GridAlpha:   0.25,
		AutoplayDim: constants.AutoplayDim,
		pieces:      make(map[string]pieceColors),
	}
	for _, p := range core.Catalog() {
		t.pieces[p.Class] = pieceColors{
			fg: MustParseColor(p.Foreground),
			bg: MustParseColor(p.Background),
		}
	}
	return t
}

// PieceColors returns the colors of a catalog piece
func (t *Theme) PieceColors(p *core.Piece) (fg, bg RGB) {
	pc, ok := t.pieces[p.Class]
	if !ok {
		return t.Text, t.Background
	}
	return pc.fg, pc.bg
}

// CellColors resolves the colors of a cell visual
// Classes pick the piece colors, explicit foreground and background override them
func (t *Theme) CellColors(v core.VisualState, x, y int) (fg, bg RGB) {
	fg, bg = t.Text, t.emptyBackground(x, y)
	for _, class := range strings.Fields(v.Class) {
		if pc, ok := t.pieces[class]; ok {
			fg, bg = pc.fg, pc.bg
		}
	}
	if c, ok := ParseColor(v.Foreground); ok {
		fg = c
	}
	if c, ok := ParseColor(v.Background); ok {
		bg = c
	}
	return fg, bg
}

func (t *Theme) emptyBackground(x, y int) RGB {
	if (x+y)%2 == 1 {
		return t.Background.Blend(t.GridShade, t.GridAlpha)
	}
	return t.Background
}

// Dim fades a color towards the background
func (t *Theme) Dim(c RGB) RGB {
	return c.Blend(t.Background, t.AutoplayDim)
}
