package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/blockfall/constants"
	"github.com/lixenwraith/blockfall/core"
	"github.com/lixenwraith/blockfall/modes"
)

// BoardRenderer keeps the visual state of every board cell and paints it
// It is the VisualFactory of the board: cells push attribute changes into its grid
type BoardRenderer struct {
	theme   *Theme
	palette *Palette
	width   int
	height  int
	grid    []core.VisualState
	handles int
}

// NewBoardRenderer creates a renderer for a width x height board
func NewBoardRenderer(theme *Theme, palette *Palette, width, height int) *BoardRenderer {
	grid := make([]core.VisualState, width*height)
	for i := range grid {
		grid[i] = core.EmptyState.Visual()
	}
	return &BoardRenderer{
		theme:   theme,
		palette: palette,
		width:   width,
		height:  height,
		grid:    grid,
	}
}

// NewVisual implements core.VisualFactory
func (r *BoardRenderer) NewVisual(x, y int) core.VisualHandle {
	r.handles++
	return &cellHandle{state: &r.grid[y*r.width+x]}
}

// Handles returns the number of visuals created
func (r *BoardRenderer) Handles() int {
	return r.handles
}

// VisualAt returns the painted state of cell (x, y)
func (r *BoardRenderer) VisualAt(x, y int) core.VisualState {
	return r.grid[y*r.width+x]
}

// Render paints the cells, constants.CellWidth columns each
func (r *BoardRenderer) Render(ctx RenderContext, screen tcell.Screen) {
	dim := ctx.Mode == modes.ModeAutoplay
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			v := r.grid[y*r.width+x]
			fg, bg := r.theme.CellColors(v, x, y)
			if dim && v.Class != "" {
				fg, bg = r.theme.Dim(fg), r.theme.Dim(bg)
			}
			sx, sy := ctx.CellOrigin(x, y)
			r.paintCell(screen, sx, sy, v.Text, r.palette.Style(fg, bg))
		}
	}
}

func (r *BoardRenderer) paintCell(screen tcell.Screen, sx, sy int, text string, style tcell.Style) {
	ch := ' '
	for _, c := range text {
		ch = c
		break
	}
	screen.SetContent(sx, sy, ch, nil, style)
	if runewidth.RuneWidth(ch) < constants.CellWidth {
		for col := 1; col < constants.CellWidth; col++ {
			screen.SetContent(sx+col, sy, ' ', nil, style)
		}
	}
}

// cellHandle writes into one grid slot
type cellHandle struct {
	state *core.VisualState
}

func (h *cellHandle) SetClass(class string)      { h.state.Class = class }
func (h *cellHandle) SetForeground(color string) { h.state.Foreground = color }
func (h *cellHandle) SetBackground(color string) { h.state.Background = color }
func (h *cellHandle) SetText(text string)        { h.state.Text = text }

// FrameRenderer draws the border around the board
type FrameRenderer struct {
	theme   *Theme
	palette *Palette
}

// NewFrameRenderer creates the board border renderer
func NewFrameRenderer(theme *Theme, palette *Palette) *FrameRenderer {
	return &FrameRenderer{theme: theme, palette: palette}
}

// Render draws a single-line box around the board cells
func (f *FrameRenderer) Render(ctx RenderContext, screen tcell.Screen) {
	style := f.palette.Style(f.theme.Frame, f.theme.Background)
	w, h := ctx.FrameSize()
	x0, y0 := ctx.FrameX, ctx.FrameY
	x1, y1 := x0+w-1, y0+h-1

	for x := x0 + 1; x < x1; x++ {
		screen.SetContent(x, y0, tcell.RuneHLine, nil, style)
		screen.SetContent(x, y1, tcell.RuneHLine, nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		screen.SetContent(x0, y, tcell.RuneVLine, nil, style)
		screen.SetContent(x1, y, tcell.RuneVLine, nil, style)
	}
	screen.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
	screen.SetContent(x1, y0, tcell.RuneURCorner, nil, style)
	screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, style)
	screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)
}
