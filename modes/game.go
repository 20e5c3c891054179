package modes

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/blockfall/core"
	"github.com/lixenwraith/blockfall/events"
	"github.com/lixenwraith/blockfall/status"
)

// GameAction is a player command on the falling piece
type GameAction uint8

const (
	ActionNone GameAction = iota
	ActionMoveRight
	ActionMoveLeft
	ActionMoveDown
	ActionRotateRight
	ActionRotateLeft
	ActionQuit
)

// GameBindings maps physical key codes to actions
type GameBindings map[string]GameAction

// DefaultGameBindings returns arrows plus WASD, Q/E for rotation and Escape to leave
func DefaultGameBindings() GameBindings {
	return GameBindings{
		"ArrowRight": ActionMoveRight,
		"KeyD":       ActionMoveRight,
		"ArrowLeft":  ActionMoveLeft,
		"KeyA":       ActionMoveLeft,
		"ArrowDown":  ActionMoveDown,
		"KeyS":       ActionMoveDown,
		"ArrowUp":    ActionRotateRight,
		"KeyW":       ActionRotateRight,
		"KeyE":       ActionRotateRight,
		"KeyQ":       ActionRotateLeft,
		"Escape":     ActionQuit,
	}
}

// Game lets the player steer the piece; the piece still falls one row per tick
// A failed insertion ends the game
type Game struct {
	animation

	bindings GameBindings
	rows     int64 // Rows cleared in the current game

	statGames    *atomic.Int64
	statGameRows *atomic.Int64
	stats        *status.Registry
}

// NewGame creates a game animation, onDone runs on game over or Escape
func NewGame(deps Deps, onDone func()) *Game {
	deps.normalize()
	g := &Game{
		animation:    newAnimation("game", deps, onDone),
		bindings:     DefaultGameBindings(),
		statGames:    deps.Stats.Ints.Get(status.KeyGames),
		statGameRows: deps.Stats.Ints.Get(status.KeyGameRows),
		stats:        deps.Stats,
	}
	g.handler = events.NewHandler("game", events.Callbacks{
		Timed: g.tick,
		Key:   g.handleKey,
	})
	return g
}

// Start registers with d and begins a new game
func (g *Game) Start(d *events.Dispatch) error {
	if err := g.start(d, g.moveDown); err != nil {
		return err
	}
	g.rows = 0
	g.statGameRows.Store(0)
	g.statGames.Add(1)
	return nil
}

// handleKey applies a binding while a piece is controlled
func (g *Game) handleKey(ev events.KeyEvent) bool {
	if !g.piece.Active() {
		return false
	}
	action, ok := g.bindings[ev.Code]
	if !ok {
		return false
	}
	g.Apply(action)
	return true
}

// Apply performs action on the active piece
func (g *Game) Apply(action GameAction) core.TransformResult {
	switch action {
	case ActionMoveRight:
		return g.result(g.piece.MoveRight())
	case ActionMoveLeft:
		return g.result(g.piece.MoveLeft())
	case ActionMoveDown:
		return g.result(g.piece.MoveDown())
	case ActionRotateRight:
		return g.result(g.piece.RotateRight())
	case ActionRotateLeft:
		return g.result(g.piece.RotateLeft())
	case ActionQuit:
		g.Done()
	}
	return core.ResultSuccess
}

// Rows returns the rows cleared in the current game
func (g *Game) Rows() int64 {
	return g.rows
}

func (g *Game) removeFullRows() bool {
	before := g.statRows.Load()
	if !g.animation.removeFullRows() {
		return false
	}
	g.rows += g.statRows.Load() - before
	g.statGameRows.Store(g.rows)
	g.stats.RecordMax(status.KeyBestRows, g.rows)
	return true
}

func (g *Game) moveDown() bool {
	if !g.piece.Active() {
		g.step = g.insertPiece
		return g.step()
	}
	if g.result(g.piece.MoveDown()).Success() {
		return true
	}
	g.step = g.insertPiece
	g.land()
	return g.step()
}

func (g *Game) insertPiece() bool {
	if g.removeFullRows() {
		return true
	}
	if g.result(g.piece.InsertRandom(g.board.InsertX())).Success() {
		g.step = g.moveDown
		return true
	}
	log.Printf("[game] game over after %d rows", g.rows)
	g.sound.PlayGameOver()
	g.Done()
	return true
}
