package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/blockfall/core"
	"github.com/lixenwraith/blockfall/modes"
	"github.com/lixenwraith/blockfall/status"
)

type renderFixture struct {
	screen tcell.SimulationScreen
	stats  *status.Registry
	theme  *Theme
	pal    *Palette
	board  *core.Board
	cells  *BoardRenderer
	orch   *RenderOrchestrator
	next   *core.Piece
}

// newRenderFixture lays out a 10x20 board on a 60x24 screen: frame at (6,1), first cell at (7,2), panel at (31,1)
func newRenderFixture(t *testing.T) *renderFixture {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(60, 24)

	f := &renderFixture{
		screen: screen,
		stats:  status.NewRegistry(),
		theme:  DefaultTheme(),
		pal:    NewPalette("truecolor"),
		board:  core.NewBoard(10, 20),
	}
	f.next, _ = core.PieceByName("O")
	f.cells = NewBoardRenderer(f.theme, f.pal, 10, 20)
	f.board.CreateVisuals(f.cells)

	f.orch = NewRenderOrchestrator(screen, f.theme, f.pal, f.stats, 10, 20)
	f.orch.Register(f.cells, PriorityBoard)
	f.orch.Register(NewFrameRenderer(f.theme, f.pal), PriorityFrame)
	f.orch.Register(NewPanelRenderer(f.theme, f.pal, f.stats, func() *core.Piece { return f.next }), PriorityPanel)
	f.orch.Register(NewSplashRenderer(f.theme, f.pal, "ABC"), PrioritySplash)
	return f
}

func (f *renderFixture) setMode(mode string) {
	f.stats.Strings.Get(status.KeyMode).Store(mode)
}

func (f *renderFixture) row(x, y, n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		r, _, _, _ := f.screen.GetContent(x+i, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func (f *renderFixture) background(x, y int) tcell.Color {
	_, _, style, _ := f.screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func rgbColor(c RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// TestRenderContextLayout verifies the frame and panel are centered together
func TestRenderContextLayout(t *testing.T) {
	ctx := NewRenderContext(60, 24, 10, 20)
	assert.Equal(t, 6, ctx.FrameX)
	assert.Equal(t, 1, ctx.FrameY)
	assert.Equal(t, 31, ctx.PanelX)

	x, y := ctx.CellOrigin(3, 19)
	assert.Equal(t, 13, x)
	assert.Equal(t, 21, y)

	small := NewRenderContext(10, 5, 10, 20)
	assert.Zero(t, small.FrameX, "layout never goes negative")
	assert.Zero(t, small.FrameY)
}

// TestBoardRendererPaintsCells verifies cell text and piece colors reach the screen
func TestBoardRendererPaintsCells(t *testing.T) {
	f := newRenderFixture(t)
	assert.Equal(t, 200, f.cells.Handles())

	f.board.Cell(3, 19).SetState(core.CellState{Class: "block blockT", Text: "H"}).Flush()
	assert.Equal(t, "block blockT", f.cells.VisualAt(3, 19).Class)

	f.setMode(modes.ModeGame)
	f.orch.RenderFrame()

	assert.Equal(t, "H ", f.row(13, 21, 2))
	purple := rgbColor(MustParseColor("#a000f0"))
	assert.Equal(t, purple, f.background(13, 21))
	assert.Equal(t, purple, f.background(14, 21), "a cell spans two columns")
	assert.Equal(t, rgbColor(f.theme.Background), f.background(7, 2))
	assert.NotEqual(t, rgbColor(f.theme.Background), f.background(9, 2), "alternate empty cells are shaded")

	assert.Equal(t, "┌", f.row(6, 1, 1))
	assert.Equal(t, "┐", f.row(27, 1, 1))
	assert.Equal(t, "┘", f.row(27, 22, 1))
	assert.Equal(t, int64(1), f.stats.Ints.Get(status.KeyFrames).Load())
}

// TestBoardRendererExplicitColors verifies explicit colors override the class colors
func TestBoardRendererExplicitColors(t *testing.T) {
	f := newRenderFixture(t)
	f.board.Cell(0, 0).SetState(core.CellState{Class: "block blockI", Background: "#123456"}).Flush()

	f.setMode(modes.ModeGame)
	f.orch.RenderFrame()

	assert.Equal(t, tcell.NewRGBColor(0x12, 0x34, 0x56), f.background(7, 2))
}

// TestBoardRendererDimsAutoplay verifies blocks are faded while autoplay runs
func TestBoardRendererDimsAutoplay(t *testing.T) {
	f := newRenderFixture(t)
	f.board.Cell(3, 19).SetState(core.CellState{Class: "block blockT", Text: "H"}).Flush()

	f.setMode(modes.ModeAutoplay)
	f.orch.RenderFrame()

	purple := MustParseColor("#a000f0")
	assert.Equal(t, rgbColor(f.theme.Dim(purple)), f.background(13, 21))
	assert.NotEqual(t, rgbColor(purple), f.background(13, 21))
}

// TestSplashOnlyWhileIdle verifies the title covers the board until the page starts
func TestSplashOnlyWhileIdle(t *testing.T) {
	f := newRenderFixture(t)

	f.setMode(modes.ModeIdle)
	f.orch.RenderFrame()
	assert.Equal(t, "Happy Birthday", f.row(10, 10, 14))
	assert.Equal(t, "ABC", f.row(15, 14, 3))

	f.setMode(modes.ModeGame)
	f.orch.RenderFrame()
	assert.NotContains(t, f.row(7, 10, 20), "Happy")
}

// TestPanelShowsState verifies mode, speed, next piece and counters
func TestPanelShowsState(t *testing.T) {
	f := newRenderFixture(t)
	f.setMode(modes.ModeGame)
	f.stats.Ints.Get(status.KeyInterval).Store(250)
	f.stats.Bools.Get(status.KeyTimerPaused).Store(true)
	f.stats.Ints.Get(status.KeyRows).Store(7)

	f.orch.RenderFrame()

	assert.Equal(t, "Happy Birthday", f.row(31, 1, 14))
	assert.Equal(t, "   GAME   ", f.row(31, 3, 10))
	assert.Equal(t, "Speed     250ms paused", f.row(31, 5, 22))
	assert.Equal(t, "Next", f.row(31, 7, 4))

	yellow := rgbColor(MustParseColor("#f0f000"))
	for x := 31; x < 35; x++ {
		assert.Equal(t, yellow, f.background(x, 8))
		assert.Equal(t, yellow, f.background(x, 9))
	}
	assert.NotEqual(t, yellow, f.background(35, 8))

	assert.Equal(t, "Rows      7", f.row(31, 14, 11))
}

// TestPanelHiddenOnNarrowScreen verifies the panel is skipped when it does not fit
func TestPanelHiddenOnNarrowScreen(t *testing.T) {
	p := NewPanelRenderer(DefaultTheme(), NewPalette("auto"), status.NewRegistry(), nil)
	assert.True(t, p.IsVisible(NewRenderContext(60, 24, 10, 20)))
	assert.False(t, p.IsVisible(NewRenderContext(24, 24, 10, 20)))
}

type orderRenderer struct {
	name string
	log  *[]string
}

func (r orderRenderer) Render(RenderContext, tcell.Screen) {
	*r.log = append(*r.log, r.name)
}

// TestOrchestratorOrder verifies renderers run by priority then registration order
func TestOrchestratorOrder(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	var log []string
	o := NewRenderOrchestrator(screen, DefaultTheme(), NewPalette("auto"), status.NewRegistry(), 4, 4)
	o.Register(orderRenderer{"panel", &log}, PriorityPanel)
	o.Register(orderRenderer{"board", &log}, PriorityBoard)
	o.Register(orderRenderer{"panel2", &log}, PriorityPanel)
	o.Register(orderRenderer{"frame", &log}, PriorityFrame)

	o.AfterDispatch(true)
	assert.Equal(t, []string{"board", "frame", "panel", "panel2"}, log)
}
