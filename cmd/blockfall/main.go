package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/lixenwraith/blockfall/audio"
	"github.com/lixenwraith/blockfall/core"
	"github.com/lixenwraith/blockfall/engine"
	"github.com/lixenwraith/blockfall/events"
	"github.com/lixenwraith/blockfall/input"
	"github.com/lixenwraith/blockfall/modes"
	"github.com/lixenwraith/blockfall/render"
	"github.com/lixenwraith/blockfall/status"
)

var (
	widthFlag    = flag.Int("width", 0, "Board columns (0 keeps BLOCKFALL_WIDTH or the default)")
	heightFlag   = flag.Int("height", 0, "Board rows (0 keeps BLOCKFALL_HEIGHT or the default)")
	tickFlag     = flag.Duration("tick", 0, "Tick interval, e.g. 500ms")
	autoplayFlag = flag.Int("autoplay-height", 0, "Stack height at which autoplay makes room")
	seedFlag     = flag.Uint64("seed", 0, "Piece RNG seed (0 is random)")
	bannerFlag   = flag.String("banner", "", "Text painted onto falling pieces")
	colorFlag    = flag.String("color", "", "Color mode: auto, truecolor, 256")
	muteFlag     = flag.Bool("mute", false, "Start without sound")
	debugFlag    = flag.Bool("debug", false, "Write logs to logs/blockfall.log")
)

func main() {
	defer func() {
		handleCrash("BLOCKFALL CRASHED", recover())
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg := engine.LoadConfig()
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "blockfall: %v\n", err)
		os.Exit(2)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "blockfall: stdout is not a terminal")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "blockfall: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags lets explicit flags override the environment
// A smaller board pulls the autoplay height down unless it was given explicitly
func applyFlags(cfg *engine.Config) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *widthFlag > 0 {
		cfg.Width = *widthFlag
	}
	if *heightFlag > 0 {
		cfg.Height = *heightFlag
	}
	if *tickFlag > 0 {
		cfg.TickInterval = *tickFlag
	}
	if *seedFlag > 0 {
		cfg.Seed = *seedFlag
	}
	if set["banner"] {
		cfg.Banner = *bannerFlag
	}
	if *colorFlag != "" {
		cfg.ColorMode = *colorFlag
	}
	if *autoplayFlag > 0 {
		cfg.AutoplayHeight = *autoplayFlag
	} else if cfg.AutoplayHeight >= cfg.Height {
		cfg.AutoplayHeight = max(1, cfg.Height*3/4)
	}
}

func run(cfg *engine.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	registerCrashScreen(screen)
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	sound := audio.NewSoundManager(audio.LoadAudioConfig())
	if err := sound.Initialize(); err != nil {
		log.Printf("[main] %v, continuing without audio", err)
	}
	defer sound.Cleanup()
	if *muteFlag {
		sound.ToggleMute()
	}

	stats := status.NewRegistry()
	board := core.NewBoard(cfg.Width, cfg.Height)
	piece := engine.NewPieceController(board, cfg.NewRand(), cfg.Banner)
	dispatch := events.NewDispatch(cfg.TickInterval)

	theme := render.DefaultTheme()
	palette := render.NewPalette(cfg.ColorMode)
	cells := render.NewBoardRenderer(theme, palette, cfg.Width, cfg.Height)
	orchestrator := render.NewRenderOrchestrator(screen, theme, palette, stats, cfg.Width, cfg.Height)

	type rendererDef struct {
		renderer render.SystemRenderer
		priority render.RenderPriority
	}
	rendererList := []rendererDef{
		{cells, render.PriorityBoard},
		{render.NewFrameRenderer(theme, palette), render.PriorityFrame},
		{render.NewPanelRenderer(theme, palette, stats, piece.Next), render.PriorityPanel},
		{render.NewSplashRenderer(theme, palette, cfg.Banner), render.PrioritySplash},
	}
	for _, def := range rendererList {
		orchestrator.Register(def.renderer, def.priority)
	}

	page := modes.NewPage(board, piece, dispatch, modes.PageOptions{
		Factory:        cells,
		Sound:          sound,
		Stats:          stats,
		Interval:       cfg.TickInterval,
		AutoplayHeight: cfg.AutoplayHeight,
	})
	if err := page.Initialize(); err != nil {
		return err
	}
	dispatch.SetAfterDispatch(orchestrator.AfterDispatch)
	orchestrator.RenderFrame()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	goSafe("EVENT POLLER CRASHED", func() {
		pollEvents(screen, dispatch, cancel)
	})

	log.Printf("[main] board %dx%d, tick %v, seed %d", cfg.Width, cfg.Height, cfg.TickInterval, cfg.Seed)
	start := time.Now()
	err = dispatch.Run(ctx)
	page.Stop()
	log.Printf("[main] stopped after %v", time.Since(start).Round(time.Second))
	logStats(stats)
	log.Printf("[main] %d sounds played, audio enabled %v", sound.Played(), sound.Enabled())

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pollEvents translates terminal events and posts them to the dispatch loop
// It returns when the screen is finalized or a quit key is pressed
func pollEvents(screen tcell.Screen, dispatch *events.Dispatch, quit context.CancelFunc) {
	translator := input.NewTranslator(nil)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		iev, intent := translator.Translate(ev)
		switch intent {
		case input.IntentQuit:
			quit()
			return
		case input.IntentEvent:
			dispatch.Post(iev)
		}
	}
}

// logStats writes the final counters to the debug log
func logStats(stats *status.Registry) {
	for key, v := range stats.Ints.All() {
		log.Printf("[main] %s=%d", key, v.Load())
	}
	for key, v := range stats.Floats.All() {
		log.Printf("[main] %s=%.3f", key, v.Get())
	}
}
