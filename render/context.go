package render

import (
	"github.com/lixenwraith/blockfall/constants"
)

// RenderContext provides frame state for renderers, passed by value
type RenderContext struct {
	// Page state
	Mode       string
	IntervalMs int64
	Paused     bool

	// Board dimensions in cells
	BoardWidth  int
	BoardHeight int

	// Screen dimensions (terminal size)
	ScreenWidth  int
	ScreenHeight int

	// Top-left of the board frame, the first cell sits one row and column inside
	FrameX int
	FrameY int

	// Top-left of the side panel
	PanelX int
	PanelY int
}

// NewRenderContext centers the board frame and the side panel on the screen
func NewRenderContext(screenW, screenH, boardW, boardH int) RenderContext {
	frameW := boardW*constants.CellWidth + 2
	frameH := boardH + 2
	total := frameW + constants.PanelGap + constants.PanelWidth

	frameX := max(0, (screenW-total)/2)
	frameY := max(0, (screenH-frameH)/2)

	return RenderContext{
		BoardWidth:   boardW,
		BoardHeight:  boardH,
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
		FrameX:       frameX,
		FrameY:       frameY,
		PanelX:       frameX + frameW + constants.PanelGap,
		PanelY:       frameY,
	}
}

// CellOrigin returns the screen position of board cell (x, y)
func (ctx RenderContext) CellOrigin(x, y int) (int, int) {
	return ctx.FrameX + 1 + x*constants.CellWidth, ctx.FrameY + 1 + y
}

// FrameSize returns the outer size of the board frame
func (ctx RenderContext) FrameSize() (int, int) {
	return ctx.BoardWidth*constants.CellWidth + 2, ctx.BoardHeight + 2
}
