package render

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blockfall/status"
)

type rendererEntry struct {
	renderer SystemRenderer
	priority RenderPriority
	index    int // registration order for stable sort
}

// RenderOrchestrator coordinates the render pipeline
// It runs on the dispatch goroutine, after each dispatch cycle
type RenderOrchestrator struct {
	screen    tcell.Screen
	theme     *Theme
	palette   *Palette
	renderers []rendererEntry
	regCount  int

	boardWidth  int
	boardHeight int

	statMode     *status.AtomicString
	statInterval *atomic.Int64
	statPaused   *atomic.Bool
	statFrames   *atomic.Int64
}

// NewRenderOrchestrator creates an orchestrator drawing a board of the given size onto screen
func NewRenderOrchestrator(screen tcell.Screen, theme *Theme, palette *Palette, stats *status.Registry, boardWidth, boardHeight int) *RenderOrchestrator {
	return &RenderOrchestrator{
		screen:       screen,
		theme:        theme,
		palette:      palette,
		renderers:    make([]rendererEntry, 0, 4),
		boardWidth:   boardWidth,
		boardHeight:  boardHeight,
		statMode:     stats.Strings.Get(status.KeyMode),
		statInterval: stats.Ints.Get(status.KeyInterval),
		statPaused:   stats.Bools.Get(status.KeyTimerPaused),
		statFrames:   stats.Ints.Get(status.KeyFrames),
	}
}

// Register adds a renderer at the specified priority. Maintains sorted order via insertion sort
func (o *RenderOrchestrator) Register(r SystemRenderer, priority RenderPriority) {
	entry := rendererEntry{
		renderer: r,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.renderers)
	for i, e := range o.renderers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.renderers = append(o.renderers, rendererEntry{})
	copy(o.renderers[pos+1:], o.renderers[pos:])
	o.renderers[pos] = entry
}

// Context snapshots the page state and the layout for one frame
func (o *RenderOrchestrator) Context() RenderContext {
	w, h := o.screen.Size()
	ctx := NewRenderContext(w, h, o.boardWidth, o.boardHeight)
	ctx.Mode = o.statMode.Load()
	ctx.IntervalMs = o.statInterval.Load()
	ctx.Paused = o.statPaused.Load()
	return ctx
}

// RenderFrame executes the render pipeline: clear, render all, show
func (o *RenderOrchestrator) RenderFrame() {
	ctx := o.Context()
	o.screen.Fill(' ', o.palette.Style(o.theme.Text, o.theme.Background))

	for _, entry := range o.renderers {
		if vt, ok := entry.renderer.(VisibilityToggle); ok && !vt.IsVisible(ctx) {
			continue
		}
		entry.renderer.Render(ctx, o.screen)
	}

	o.screen.Show()
	o.statFrames.Add(1)
}

// Resize resynchronizes the terminal after a size change
func (o *RenderOrchestrator) Resize() {
	o.screen.Sync()
}

// AfterDispatch is installed as the dispatch hook: redraw after every cycle, resync on resize
func (o *RenderOrchestrator) AfterDispatch(redraw bool) {
	if redraw {
		o.Resize()
	}
	o.RenderFrame()
}
