package modes

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/blockfall/events"
	"github.com/lixenwraith/blockfall/status"
)

// Autoplay fills the board on its own and keeps it from overflowing
// Pieces drop into the lowest column; once the stack reaches the autoplay height
// the board alternates fall-down passes with row removal and shifting down
// Any key or click ends it
type Autoplay struct {
	animation

	height      int
	nextFalling bool

	statTicks *atomic.Int64
}

// NewAutoplay creates an autoplay animation, onDone runs when input ends it
func NewAutoplay(deps Deps, onDone func()) *Autoplay {
	deps.normalize()
	a := &Autoplay{
		animation: newAnimation("autoplay", deps, onDone),
		height:    deps.AutoplayHeight,
		statTicks: deps.Stats.Ints.Get(status.KeyAutoTicks),
	}
	a.handler = events.NewHandler("autoplay", events.Callbacks{
		Timed: a.handleTimed,
		Mouse: func(ev events.MouseEvent) bool { return a.handleExit("click") },
		Key:   func(ev events.KeyEvent) bool { return a.handleExit(ev.Key) },
	})
	return a
}

// Start registers with d and begins with a move step
func (a *Autoplay) Start(d *events.Dispatch) error {
	return a.start(d, a.moveDown)
}

func (a *Autoplay) handleTimed() bool {
	a.statTicks.Add(1)
	return a.tick()
}

func (a *Autoplay) handleExit(what string) bool {
	log.Printf("[autoplay] exit on %s", what)
	a.Done()
	return true
}

func (a *Autoplay) moveDown() bool {
	if !a.piece.Active() {
		a.step = a.ensureFreeSpace
		return a.step()
	}
	if a.result(a.piece.MoveDown()).Success() {
		return true
	}
	a.nextFalling = true
	a.step = a.ensureFreeSpace
	a.land()
	if a.removeFullRows() {
		return true
	}
	return a.step()
}

func (a *Autoplay) ensureFreeSpace() bool {
	if a.board.MaxHeight() < a.height {
		a.step = a.insertPiece
		return a.step()
	}
	if a.nextFalling && a.board.FallDown(a.board.Height()) {
		a.nextFalling = false
		return true
	}
	a.nextFalling = true
	if a.removeFullRows() {
		return true
	}
	a.board.ShiftDown(a.board.Height())
	return true
}

func (a *Autoplay) insertPiece() bool {
	if a.removeFullRows() {
		return true
	}
	if a.result(a.piece.InsertRandom(a.board.FindLowColumn())).Success() {
		a.step = a.moveDown
		return true
	}
	a.board.ShiftDown(a.board.Height())
	return true
}
