package modes

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/blockfall/constants"
	"github.com/lixenwraith/blockfall/core"
	"github.com/lixenwraith/blockfall/engine"
	"github.com/lixenwraith/blockfall/events"
	"github.com/lixenwraith/blockfall/status"
)

// Mode names published under status.KeyMode
const (
	ModeIdle     = "idle"
	ModeAutoplay = "autoplay"
	ModeGame     = "game"
)

// PageOptions configures a Page
type PageOptions struct {
	Factory core.VisualFactory // Nil keeps the board headless

	Sound          SoundPlayer
	Stats          *status.Registry
	Interval       time.Duration
	AutoplayHeight int
}

// Page owns the board, both animations and the page-level keys
// It starts idle and waits for any key or click
type Page struct {
	board    *core.Board
	piece    *engine.PieceController
	dispatch *events.Dispatch
	factory  core.VisualFactory
	sound    SoundPlayer

	startHandler   *events.Handler
	controlHandler *events.Handler

	autoplayMode bool
	autoplay     *Autoplay
	game         *Game

	altCommands      map[string]func() string
	altShiftCommands map[string]func() string

	statMode     *status.AtomicString
	statInterval *atomic.Int64
	statPaused   *atomic.Bool
	statFill     *status.AtomicFloat
	statHeight   *atomic.Int64
}

// NewPage wires the animations to a shared piece controller
func NewPage(board *core.Board, piece *engine.PieceController, dispatch *events.Dispatch, opts PageOptions) *Page {
	if opts.Sound == nil {
		opts.Sound = silentSound{}
	}
	if opts.Stats == nil {
		opts.Stats = status.NewRegistry()
	}
	if opts.Interval <= 0 {
		opts.Interval = constants.TickInterval
	}

	p := &Page{
		board:        board,
		piece:        piece,
		dispatch:     dispatch,
		factory:      opts.Factory,
		sound:        opts.Sound,
		autoplayMode: true,
		statMode:     opts.Stats.Strings.Get(status.KeyMode),
		statInterval: opts.Stats.Ints.Get(status.KeyInterval),
		statPaused:   opts.Stats.Bools.Get(status.KeyTimerPaused),
		statFill:     opts.Stats.Floats.Get(status.KeyFill),
		statHeight:   opts.Stats.Ints.Get(status.KeyMaxHeight),
	}

	// Autoplay runs silently, it loops for as long as nobody plays
	p.autoplay = NewAutoplay(Deps{
		Board:          board,
		Piece:          piece,
		Stats:          opts.Stats,
		Interval:       opts.Interval,
		AutoplayHeight: opts.AutoplayHeight,
	}, p.ToggleMode)
	p.game = NewGame(Deps{
		Board:    board,
		Piece:    piece,
		Sound:    opts.Sound,
		Stats:    opts.Stats,
		Interval: opts.Interval,
	}, p.ToggleMode)

	p.startHandler = events.NewHandler("page-start", events.Callbacks{
		Mouse: func(events.MouseEvent) bool { return p.handleStart() },
		Key:   func(events.KeyEvent) bool { return p.handleStart() },
	})
	p.controlHandler = events.NewHandler("page-control", events.Callbacks{
		Key: p.handleKey,
	})
	p.altCommands = p.debugCommands()
	p.altShiftCommands = p.dispatchCommands()

	p.statMode.Store(ModeIdle)
	p.statInterval.Store(opts.Interval.Milliseconds())
	return p
}

// Autoplay returns the autoplay animation
func (p *Page) Autoplay() *Autoplay {
	return p.autoplay
}

// Game returns the game animation
func (p *Page) Game() *Game {
	return p.game
}

// Mode returns the published mode name
func (p *Page) Mode() string {
	return p.statMode.Load()
}

// Initialize starts the dispatch and waits for the first event
func (p *Page) Initialize() error {
	p.dispatch.Start()
	if err := p.startHandler.RegisterDispatch(p.dispatch); err != nil {
		return fmt.Errorf("page initialize: %w", err)
	}
	log.Printf("[page] waiting for start")
	return nil
}

// Start leaves the idle state, creates the cell visuals and runs the current mode
func (p *Page) Start() error {
	log.Printf("[page] start")
	p.startHandler.UnregisterDispatch()
	if err := p.controlHandler.RegisterDispatch(p.dispatch); err != nil {
		return fmt.Errorf("page start: %w", err)
	}
	if p.factory != nil {
		p.board.CreateVisuals(p.factory)
	}
	return p.updateMode()
}

// Stop halts both animations and returns to idle
func (p *Page) Stop() {
	p.game.Stop()
	p.autoplay.Stop()
	p.controlHandler.UnregisterDispatch()
	if err := p.startHandler.RegisterDispatch(p.dispatch); err != nil {
		log.Printf("[page] stop: %v", err)
	}
	p.statMode.Store(ModeIdle)
	log.Printf("[page] stop")
}

// ToggleMode flips between autoplay and game
func (p *Page) ToggleMode() {
	p.autoplayMode = !p.autoplayMode
	p.sound.PlayModeSwitch()
	if err := p.updateMode(); err != nil {
		log.Printf("[page] toggle mode: %v", err)
	}
}

// updateMode stops the inactive animation and starts the active one, which retimes the dispatch
func (p *Page) updateMode() error {
	var err error
	if p.autoplayMode {
		p.game.Stop()
		p.statMode.Store(ModeAutoplay)
		err = p.autoplay.Start(p.dispatch)
	} else {
		p.autoplay.Stop()
		p.statMode.Store(ModeGame)
		err = p.game.Start(p.dispatch)
	}
	p.statInterval.Store(p.dispatch.Interval().Milliseconds())
	p.statPaused.Store(!p.dispatch.TimerArmed())
	return err
}

func (p *Page) handleStart() bool {
	if err := p.Start(); err != nil {
		log.Printf("[page] %v", err)
	}
	return true
}

// SlowDown lengthens the tick interval one step on the speed ladder
func (p *Page) SlowDown() time.Duration {
	iv := p.dispatch.Interval()
	switch {
	case iv >= constants.SlowestFineInterval:
		iv += constants.SpeedCoarseStep
	case iv >= constants.MinSlowInterval:
		iv += constants.SpeedFineStep
	default:
		iv = constants.MinSlowInterval
	}
	return p.setInterval(iv, "speed lowered")
}

// SpeedUp shortens the tick interval one step on the speed ladder
func (p *Page) SpeedUp() time.Duration {
	iv := p.dispatch.Interval()
	switch {
	case iv >= constants.FastestCoarseInterval:
		iv -= constants.SpeedCoarseStep
	case iv >= constants.MinFineInterval:
		iv -= constants.SpeedFineStep
	default:
		iv = constants.MaxSpeedInterval
	}
	return p.setInterval(iv, "speed increased")
}

// setInterval takes effect on the next tick
func (p *Page) setInterval(iv time.Duration, what string) time.Duration {
	p.dispatch.SetInterval(iv)
	p.statInterval.Store(iv.Milliseconds())
	log.Printf("[page] %s, current interval: %v", what, iv)
	return iv
}

func (p *Page) handleKey(ev events.KeyEvent) bool {
	switch ev.Key {
	case "-":
		p.SlowDown()
		return true
	case "+":
		p.SpeedUp()
		return true
	}
	if !ev.Alt {
		return false
	}

	commands := p.altCommands
	if ev.Shift {
		commands = p.altShiftCommands
	}
	cmd, ok := commands[ev.Code]
	if !ok {
		return false
	}
	log.Printf("[page] %s", cmd())
	p.refreshBoardStats()
	return true
}

func (p *Page) refreshBoardStats() {
	p.statHeight.Store(int64(p.board.MaxHeight()))
	p.statFill.SetRatio(p.board.SettledCount(), p.board.Width()*p.board.Height())
}

// debugCommands are the Alt key board manipulations
func (p *Page) debugCommands() map[string]func() string {
	cmds := map[string]func() string{
		"KeyF": func() string {
			return fmt.Sprintf("fall down: %v", p.board.FallDown(p.board.Height()))
		},
		"KeyD": func() string {
			return fmt.Sprintf("shift down: %v", p.board.ShiftDown(p.board.Height()))
		},
		"KeyR": func() string {
			return fmt.Sprintf("remove full rows: %d", p.board.RemoveFullRows())
		},
	}

	moveUp := func() string {
		if !p.piece.Active() {
			return "cannot move piece up: no piece is being controlled"
		}
		return fmt.Sprintf("move piece up: %s", p.piece.MoveUp())
	}
	cmds["KeyU"] = moveUp
	cmds["KeyW"] = moveUp

	for _, piece := range core.Catalog() {
		cmds["Key"+strings.ToUpper(piece.Name)] = func() string {
			p.piece.SetNext(piece)
			return "next piece will be " + piece.Name
		}
	}

	reset := func() string {
		p.piece.Release()
		p.board.Clear(p.board.Height())
		return "reset all"
	}
	cmds["KeyC"] = reset
	cmds["KeyQ"] = reset
	return cmds
}

// dispatchCommands are the Alt+Shift keys controlling the dispatch itself
func (p *Page) dispatchCommands() map[string]func() string {
	return map[string]func() string{
		"KeyD": func() string {
			p.piece.Release()
			return "drop piece"
		},
		"KeyK": func() string {
			p.dispatch.Stop()
			p.dispatch.Start()
			p.statPaused.Store(true)
			return "restart event dispatch"
		},
		"KeyS": func() string {
			p.dispatch.Stop()
			p.statPaused.Store(true)
			return "stop event dispatch"
		},
		"KeyC": func() string {
			p.dispatch.Start()
			return "continue event dispatch"
		},
		"KeyP": func() string {
			p.dispatch.StopTimed()
			p.statPaused.Store(true)
			return "pause timed dispatch"
		},
		"KeyR": func() string {
			p.dispatch.Retime(0)
			p.statPaused.Store(false)
			return "resume timed dispatch"
		},
		"KeyM": func() string {
			p.ToggleMode()
			return "toggle mode"
		},
	}
}
