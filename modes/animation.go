package modes

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/blockfall/constants"
	"github.com/lixenwraith/blockfall/core"
	"github.com/lixenwraith/blockfall/engine"
	"github.com/lixenwraith/blockfall/events"
	"github.com/lixenwraith/blockfall/status"
)

// Animation is a control mode driving the shared piece from dispatch events
type Animation interface {
	Name() string
	Start(d *events.Dispatch) error
	Stop()
	Done()
	Running() bool
}

// SoundPlayer receives gameplay cues, implementations must not block
type SoundPlayer interface {
	PlayLanded()
	PlayRowsCleared(rows int)
	PlayGameOver()
	PlayModeSwitch()
}

type silentSound struct{}

func (silentSound) PlayLanded()         {}
func (silentSound) PlayRowsCleared(int) {}
func (silentSound) PlayGameOver()       {}
func (silentSound) PlayModeSwitch()     {}

// Deps are the collaborators shared by the animations
type Deps struct {
	Board *core.Board
	Piece *engine.PieceController

	// Optional
	Sound          SoundPlayer
	Stats          *status.Registry
	Interval       time.Duration
	AutoplayHeight int
}

func (d *Deps) normalize() {
	if d.Sound == nil {
		d.Sound = silentSound{}
	}
	if d.Stats == nil {
		d.Stats = status.NewRegistry()
	}
	if d.Interval <= 0 {
		d.Interval = constants.TickInterval
	}
	if d.AutoplayHeight <= 0 {
		d.AutoplayHeight = constants.AutoplayHeight
	}
}

// animation is the shared state machine runner
// step is the pending state; it returns whether the event was consumed
type animation struct {
	name     string
	board    *core.Board
	piece    *engine.PieceController
	sound    SoundPlayer
	interval time.Duration
	onDone   func()

	handler *events.Handler
	step    func() bool

	statPieces    *atomic.Int64
	statRows      *atomic.Int64
	statMaxHeight *atomic.Int64
	statFill      *status.AtomicFloat
	statResult    *status.AtomicString
}

func newAnimation(name string, deps Deps, onDone func()) animation {
	deps.normalize()
	if onDone == nil {
		onDone = func() {}
	}
	return animation{
		name:          name,
		board:         deps.Board,
		piece:         deps.Piece,
		sound:         deps.Sound,
		interval:      deps.Interval,
		onDone:        onDone,
		statPieces:    deps.Stats.Ints.Get(status.KeyPieces),
		statRows:      deps.Stats.Ints.Get(status.KeyRows),
		statMaxHeight: deps.Stats.Ints.Get(status.KeyMaxHeight),
		statFill:      deps.Stats.Floats.Get(status.KeyFill),
		statResult:    deps.Stats.Strings.Get(status.KeyLastResult),
	}
}

// Name returns the animation name
func (a *animation) Name() string {
	return a.name
}

// Running reports whether the handler is registered with a dispatch
func (a *animation) Running() bool {
	return a.handler.Dispatch() != nil
}

// Handler exposes the event handler, used by tests and the page
func (a *animation) Handler() *events.Handler {
	return a.handler
}

func (a *animation) start(d *events.Dispatch, first func() bool) error {
	if err := a.handler.RegisterDispatch(d); err != nil {
		return fmt.Errorf("start %s: %w", a.name, err)
	}
	if err := a.handler.Retime(a.interval); err != nil {
		return fmt.Errorf("start %s: %w", a.name, err)
	}
	a.step = first
	log.Printf("[%s] start", a.name)
	return nil
}

// Stop unregisters the handler, no-op when not running
func (a *animation) Stop() {
	if !a.Running() {
		return
	}
	log.Printf("[%s] stop", a.name)
	a.handler.UnregisterDispatch()
}

// Done hands control back to the owner
func (a *animation) Done() {
	log.Printf("[%s] done", a.name)
	a.onDone()
}

func (a *animation) tick() bool {
	if a.step == nil {
		return false
	}
	consumed := a.step()
	a.record()
	return consumed
}

// record publishes board metrics after a step
func (a *animation) record() {
	a.statMaxHeight.Store(int64(a.board.MaxHeight()))
	a.statFill.SetRatio(a.board.SettledCount(), a.board.Width()*a.board.Height())
}

// result records a transform outcome and returns it
func (a *animation) result(r core.TransformResult) core.TransformResult {
	a.statResult.Store(r.String())
	if r == core.ResultSuccess {
		return r
	}
	log.Printf("[%s] %s", a.name, r.Message())
	return r
}

// removeFullRows clears completed rows and reports whether any were found
func (a *animation) removeFullRows() bool {
	rows := a.board.RemoveFullRows()
	if rows == 0 {
		return false
	}
	a.statRows.Add(int64(rows))
	a.sound.PlayRowsCleared(rows)
	log.Printf("[%s] removed %d rows", a.name, rows)
	return true
}

// land releases the piece onto the stack
func (a *animation) land() {
	a.piece.Release()
	a.statPieces.Add(1)
	a.sound.PlayLanded()
}
