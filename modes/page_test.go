package modes

import (
	"testing"
	"time"

	"github.com/lixenwraith/blockfall/core"
	"github.com/lixenwraith/blockfall/events"
	"github.com/lixenwraith/blockfall/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFactory struct {
	created int
}

func (f *countingFactory) NewVisual(x, y int) core.VisualHandle {
	f.created++
	return nil
}

func newTestPage(t *testing.T, f *fixture, factory core.VisualFactory) *Page {
	t.Helper()
	p := NewPage(f.board, f.piece, f.dispatch, PageOptions{
		Factory:  factory,
		Sound:    f.sound,
		Stats:    f.stats,
		Interval: time.Hour,
	})
	require.NoError(t, p.Initialize())
	return p
}

func key(k, code string) events.KeyEvent {
	return events.KeyEvent{Key: k, Code: code}
}

func alt(code string) events.KeyEvent {
	return events.KeyEvent{Key: code[len(code)-1:], Code: code, Alt: true}
}

func altShift(code string) events.KeyEvent {
	return events.KeyEvent{Key: code[len(code)-1:], Code: code, Alt: true, Shift: true}
}

// TestPageStartsIdle verifies the first event starts autoplay and creates visuals
func TestPageStartsIdle(t *testing.T) {
	f := newFixture(10, 20)
	factory := &countingFactory{}
	p := newTestPage(t, f, factory)

	assert.Equal(t, ModeIdle, p.Mode())
	assert.Zero(t, factory.created)

	f.dispatch.HandleMouse(events.MouseEvent{Button: events.MousePrimary})

	assert.Equal(t, ModeAutoplay, p.Mode())
	assert.Equal(t, 200, factory.created)
	assert.True(t, p.Autoplay().Running())
	assert.False(t, p.Game().Running())
	assert.True(t, f.dispatch.TimerArmed())
}

// TestPageModeToggle verifies input ends autoplay and Escape ends the game
func TestPageModeToggle(t *testing.T) {
	f := newFixture(10, 20)
	p := newTestPage(t, f, nil)
	f.dispatch.HandleKey(key("x", "KeyX"))
	require.Equal(t, ModeAutoplay, p.Mode())

	f.dispatch.HandleKey(key("x", "KeyX"))
	assert.Equal(t, ModeGame, p.Mode())
	assert.True(t, p.Game().Running())
	assert.False(t, p.Autoplay().Running())
	assert.Equal(t, 1, f.sound.count("mode"))

	f.dispatch.HandleTimed()
	require.True(t, f.piece.Active())
	f.dispatch.HandleKey(key("Escape", "Escape"))
	assert.Equal(t, ModeAutoplay, p.Mode())

	f.dispatch.HandleKey(altShift("KeyM"))
	assert.Equal(t, ModeGame, p.Mode())
}

// TestPageStop verifies stop returns to idle and waits for a new start
func TestPageStop(t *testing.T) {
	f := newFixture(10, 20)
	p := newTestPage(t, f, nil)
	f.dispatch.HandleKey(key("x", "KeyX"))

	p.Stop()
	assert.Equal(t, ModeIdle, p.Mode())
	assert.False(t, p.Autoplay().Running())
	assert.False(t, p.Game().Running())

	f.dispatch.HandleKey(key("y", "KeyY"))
	assert.Equal(t, ModeAutoplay, p.Mode())
}

// TestPageSpeedLadder verifies the interval steps of the speed keys
func TestPageSpeedLadder(t *testing.T) {
	f := newFixture(10, 20)
	p := newTestPage(t, f, nil)
	ms := time.Millisecond

	slower := []struct{ from, to time.Duration }{
		{1000 * ms, 1100 * ms},
		{100 * ms, 200 * ms},
		{90 * ms, 100 * ms},
		{20 * ms, 30 * ms},
		{15 * ms, 20 * ms},
	}
	for _, tt := range slower {
		f.dispatch.SetInterval(tt.from)
		assert.Equal(t, tt.to, p.SlowDown(), "slow down from %v", tt.from)
	}

	faster := []struct{ from, to time.Duration }{
		{1000 * ms, 900 * ms},
		{200 * ms, 100 * ms},
		{150 * ms, 140 * ms},
		{30 * ms, 20 * ms},
		{25 * ms, 10 * ms},
		{10 * ms, 10 * ms},
	}
	for _, tt := range faster {
		f.dispatch.SetInterval(tt.from)
		assert.Equal(t, tt.to, p.SpeedUp(), "speed up from %v", tt.from)
	}

	f.dispatch.HandleKey(key("x", "KeyX"))
	f.dispatch.SetInterval(500 * ms)
	f.dispatch.HandleKey(key("+", "Equal"))
	assert.Equal(t, 400*ms, f.dispatch.Interval())
	f.dispatch.HandleKey(key("-", "Minus"))
	assert.Equal(t, 500*ms, f.dispatch.Interval())
	assert.Equal(t, int64(500), f.stats.Ints.Get(status.KeyInterval).Load())
	assert.Equal(t, ModeAutoplay, p.Mode(), "speed keys do not end autoplay")
}

// TestPageAltCommands verifies the board manipulation keys
func TestPageAltCommands(t *testing.T) {
	f := newFixture(10, 20)
	p := newTestPage(t, f, nil)
	f.dispatch.HandleKey(key("x", "KeyX"))
	require.Equal(t, ModeAutoplay, p.Mode())

	f.dispatch.HandleKey(alt("KeyZ"))
	assert.Equal(t, "Z", f.piece.Next().Name)
	f.dispatch.HandleKey(alt("KeyI"))
	assert.Equal(t, "I", f.piece.Next().Name)

	f.dispatch.HandleTimed()
	require.True(t, f.piece.Active())
	assert.Equal(t, "I", f.piece.Piece().Name)

	f.dispatch.HandleTimed()
	y := f.piece.Pivot().Y
	f.dispatch.HandleKey(alt("KeyU"))
	assert.Equal(t, y-1, f.piece.Pivot().Y)

	f.settle(0, 19)
	f.settle(3, 10)
	f.dispatch.HandleKey(alt("KeyF"))
	assert.True(t, f.board.Cell(3, 11).IsSettled())

	f.dispatch.HandleKey(alt("KeyD"))
	assert.True(t, f.board.Cell(3, 12).IsSettled())
	assert.True(t, f.board.Cell(0, 19).IsEmpty(), "shift down drops the floor row")

	f.dispatch.HandleKey(alt("KeyC"))
	assert.False(t, f.piece.Active())
	assert.Zero(t, f.board.SettledCount())
	assert.Zero(t, controlled(f.board))
	assert.Equal(t, ModeAutoplay, p.Mode(), "handled alt keys do not end autoplay")

	f.dispatch.HandleKey(alt("KeyX"))
	assert.Equal(t, ModeGame, p.Mode(), "unknown alt keys fall through")
}

// TestPageDispatchCommands verifies the Alt+Shift dispatch controls
func TestPageDispatchCommands(t *testing.T) {
	f := newFixture(10, 20)
	p := newTestPage(t, f, nil)
	f.dispatch.HandleKey(key("x", "KeyX"))
	paused := f.stats.Bools.Get(status.KeyTimerPaused)
	require.False(t, paused.Load())

	f.dispatch.HandleKey(altShift("KeyP"))
	assert.False(t, f.dispatch.TimerArmed())
	assert.True(t, paused.Load())

	f.dispatch.HandleKey(altShift("KeyR"))
	assert.True(t, f.dispatch.TimerArmed())
	assert.False(t, paused.Load())

	f.dispatch.HandleTimed()
	require.True(t, f.piece.Active())
	f.dispatch.HandleKey(altShift("KeyD"))
	assert.False(t, f.piece.Active())
	assert.Equal(t, 4, f.board.SettledCount())

	f.dispatch.HandleKey(altShift("KeyK"))
	assert.True(t, f.dispatch.Listening())
	assert.False(t, f.dispatch.TimerArmed())

	f.dispatch.HandleKey(altShift("KeyS"))
	assert.False(t, f.dispatch.Listening())
	f.dispatch.HandleKey(altShift("KeyC"))
	assert.False(t, f.dispatch.Listening(), "input stays detached after stop")
	assert.Equal(t, ModeAutoplay, p.Mode())
}
