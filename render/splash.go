package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blockfall/constants"
	"github.com/lixenwraith/blockfall/modes"
)

// SplashRenderer covers the board with the title until the page is started
type SplashRenderer struct {
	theme   *Theme
	palette *Palette
	banner  string
}

// NewSplashRenderer creates the idle overlay, banner is shown below the hint
func NewSplashRenderer(theme *Theme, palette *Palette, banner string) *SplashRenderer {
	return &SplashRenderer{theme: theme, palette: palette, banner: banner}
}

// IsVisible reports the idle mode
func (s *SplashRenderer) IsVisible(ctx RenderContext) bool {
	return ctx.Mode == "" || ctx.Mode == modes.ModeIdle
}

// Render centers the title, the hint and the banner over the board
func (s *SplashRenderer) Render(ctx RenderContext, screen tcell.Screen) {
	w, h := ctx.FrameSize()
	x := ctx.FrameX + 1
	width := w - 2
	y := ctx.FrameY + h/2 - 2

	title := s.palette.Style(s.theme.Accent, s.theme.Background).Bold(true)
	hint := s.palette.Style(s.theme.Frame, s.theme.Background)

	drawCentered(screen, x, y, width, constants.SplashTitle, title)
	drawCentered(screen, x, y+2, width, constants.SplashHint, hint)
	if s.banner != "" {
		drawCentered(screen, x, y+4, width, s.banner, hint)
	}
}
