package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blockfall/constants"
	"github.com/lixenwraith/blockfall/core"
	"github.com/lixenwraith/blockfall/modes"
	"github.com/lixenwraith/blockfall/status"
)

// NextPieceFunc reports the piece queued for the next insertion
type NextPieceFunc func() *core.Piece

// panelMetric is one labelled line of the panel
type panelMetric struct {
	label  string
	format func() string
}

// PanelRenderer draws the side panel: mode, next piece and the counters
type PanelRenderer struct {
	theme   *Theme
	palette *Palette
	next    NextPieceFunc
	metrics []panelMetric
}

// NewPanelRenderer caches the metric pointers read every frame
func NewPanelRenderer(theme *Theme, palette *Palette, stats *status.Registry, next NextPieceFunc) *PanelRenderer {
	ints := func(key string) func() string {
		p := stats.Ints.Get(key)
		return func() string { return fmt.Sprintf("%d", p.Load()) }
	}
	fill := stats.Floats.Get(status.KeyFill)
	result := stats.Strings.Get(status.KeyLastResult)

	return &PanelRenderer{
		theme:   theme,
		palette: palette,
		next:    next,
		metrics: []panelMetric{
			{"Pieces", ints(status.KeyPieces)},
			{"Rows", ints(status.KeyRows)},
			{"Height", ints(status.KeyMaxHeight)},
			{"Fill", func() string { return fmt.Sprintf("%.0f%%", fill.Get()*100) }},
			{"Result", result.Load},
			{"Games", ints(status.KeyGames)},
			{"Game rows", ints(status.KeyGameRows)},
			{"Best", ints(status.KeyBestRows)},
		},
	}
}

// IsVisible hides the panel when the terminal is too narrow for it
func (p *PanelRenderer) IsVisible(ctx RenderContext) bool {
	return ctx.PanelX < ctx.ScreenWidth
}

// Render draws the panel rows top to bottom
func (p *PanelRenderer) Render(ctx RenderContext, screen tcell.Screen) {
	text := p.palette.Style(p.theme.Text, p.theme.Background)
	label := p.palette.Style(p.theme.Frame, p.theme.Background)
	x, y := ctx.PanelX, ctx.PanelY
	width := min(constants.PanelWidth, ctx.ScreenWidth-x)

	drawText(screen, x, y, width, constants.SplashTitle, text.Bold(true))
	y += 2

	indicator := p.palette.Style(p.theme.Background, p.theme.Accent).Bold(true)
	drawText(screen, x, y, width, modeText(ctx.Mode), indicator)
	y += 2

	speed := fmt.Sprintf("%dms", ctx.IntervalMs)
	if ctx.Paused {
		speed += " paused"
	}
	p.drawMetric(screen, x, y, width, "Speed", speed, label, text)
	y += 2

	drawText(screen, x, y, width, "Next", label)
	y++
	if p.next != nil {
		if piece := p.next(); piece != nil {
			p.drawPreview(screen, x, y, piece)
		}
	}
	y += 5

	for _, m := range p.metrics {
		p.drawMetric(screen, x, y, width, m.label, m.format(), label, text)
		y++
	}
}

func (p *PanelRenderer) drawMetric(screen tcell.Screen, x, y, width int, name, value string, label, text tcell.Style) {
	const labelWidth = 10
	used := drawText(screen, x, y, width, padRight(name, labelWidth), label)
	drawText(screen, x+used, y, width-used, value, text)
}

// drawPreview draws the piece shape in its initial rotation
func (p *PanelRenderer) drawPreview(screen tcell.Screen, x, y int, piece *core.Piece) {
	fg, bg := p.theme.PieceColors(piece)
	style := p.palette.Style(fg, bg)
	for row, cols := range piece.Shape {
		for col, filled := range cols {
			if !filled {
				continue
			}
			for c := 0; c < constants.CellWidth; c++ {
				screen.SetContent(x+col*constants.CellWidth+c, y+row, ' ', nil, style)
			}
		}
	}
}

func modeText(mode string) string {
	switch mode {
	case modes.ModeAutoplay:
		return constants.ModeTextAutoplay
	case modes.ModeGame:
		return constants.ModeTextGame
	}
	return constants.ModeTextIdle
}

var (
	_ SystemRenderer     = (*BoardRenderer)(nil)
	_ SystemRenderer     = (*FrameRenderer)(nil)
	_ VisibilityToggle   = (*PanelRenderer)(nil)
	_ VisibilityToggle   = (*SplashRenderer)(nil)
	_ core.VisualFactory = (*BoardRenderer)(nil)
)
