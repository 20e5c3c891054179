package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects callback invocations in order
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	r.calls = append(r.calls, s)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func keyHandler(rec *recorder, name string, consume bool) *Handler {
	return NewHandler(name, Callbacks{
		Key: func(ev KeyEvent) bool {
			rec.add(name + ":" + ev.Key)
			return consume
		},
	})
}

// TestDispatchShortCircuit verifies handlers run in order until one returns true
func TestDispatchShortCircuit(t *testing.T) {
	d := NewDispatch(time.Hour)
	d.Start()
	rec := &recorder{}

	require.NoError(t, d.Register(keyHandler(rec, "a", false)))
	require.NoError(t, d.Register(keyHandler(rec, "b", true)))
	require.NoError(t, d.Register(keyHandler(rec, "c", false)))

	d.HandleKey(KeyEvent{Key: "x", Code: "KeyX"})

	assert.Equal(t, []string{"a:x", "b:x"}, rec.snapshot())
}

// TestDispatchIgnoresModifierKeys verifies bare modifier presses never reach handlers
func TestDispatchIgnoresModifierKeys(t *testing.T) {
	d := NewDispatch(time.Hour)
	d.Start()
	rec := &recorder{}
	require.NoError(t, d.Register(keyHandler(rec, "a", false)))

	for _, k := range []string{"Alt", "Control", "Meta", "Shift"} {
		d.HandleKey(KeyEvent{Key: k})
	}
	d.HandleKey(KeyEvent{Key: "q", Alt: true})

	assert.Equal(t, []string{"a:q"}, rec.snapshot())
}

// TestDispatchStopDetachesInput verifies input is dropped between Stop and Start
func TestDispatchStopDetachesInput(t *testing.T) {
	d := NewDispatch(time.Hour)
	rec := &recorder{}
	require.NoError(t, d.Register(keyHandler(rec, "a", false)))

	d.HandleKey(KeyEvent{Key: "1"})
	d.Start()
	d.HandleKey(KeyEvent{Key: "2"})
	d.Retime(0)
	require.True(t, d.TimerArmed())

	d.Stop()
	assert.False(t, d.TimerArmed())
	assert.False(t, d.Listening())
	d.HandleKey(KeyEvent{Key: "3"})

	d.Start()
	d.HandleKey(KeyEvent{Key: "4"})

	assert.Equal(t, []string{"a:2", "a:4"}, rec.snapshot())
}

// TestDispatchTimedRearms verifies a timed event re-arms the single timer
func TestDispatchTimedRearms(t *testing.T) {
	d := NewDispatch(time.Hour)
	ticks := 0
	require.NoError(t, d.Register(NewHandler("tick", Callbacks{
		Timed: func() bool {
			ticks++
			return true
		},
	})))

	assert.False(t, d.TimerArmed())
	d.HandleTimed()
	assert.Equal(t, 1, ticks)
	assert.True(t, d.TimerArmed())

	d.StopTimed()
	assert.False(t, d.TimerArmed())

	d.Retime(2 * time.Hour)
	assert.True(t, d.TimerArmed())
	assert.Equal(t, 2*time.Hour, d.Interval())

	d.Retime(0)
	assert.Equal(t, 2*time.Hour, d.Interval(), "zero keeps the interval")
	d.StopTimed()
}

// TestDispatchStopInsideTimed verifies a handler stopping the dispatch suppresses the re-arm
func TestDispatchStopInsideTimed(t *testing.T) {
	d := NewDispatch(time.Hour)
	d.Start()
	require.NoError(t, d.Register(NewHandler("stopper", Callbacks{
		Timed: func() bool {
			d.Stop()
			return true
		},
	})))

	d.HandleTimed()
	assert.False(t, d.TimerArmed())
}

// TestDispatchMouse verifies clicks reach mouse handlers only
func TestDispatchMouse(t *testing.T) {
	d := NewDispatch(time.Hour)
	d.Start()
	rec := &recorder{}
	require.NoError(t, d.Register(keyHandler(rec, "key", true)))
	require.NoError(t, d.Register(NewHandler("mouse", Callbacks{
		Mouse: func(ev MouseEvent) bool {
			rec.add("mouse")
			assert.Equal(t, MousePrimary, ev.Button)
			return true
		},
	})))

	d.HandleMouse(MouseEvent{X: 3, Y: 4, Button: MousePrimary})
	assert.Equal(t, []string{"mouse"}, rec.snapshot())
}

// TestDispatchHandlerRemovedDuringFanOut verifies unregistering mid-dispatch is safe
func TestDispatchHandlerRemovedDuringFanOut(t *testing.T) {
	d := NewDispatch(time.Hour)
	d.Start()
	rec := &recorder{}
	second := keyHandler(rec, "second", false)
	first := NewHandler("first", Callbacks{
		Key: func(ev KeyEvent) bool {
			rec.add("first")
			second.UnregisterDispatch()
			return false
		},
	})
	require.NoError(t, d.Register(first))
	require.NoError(t, d.Register(second))

	d.HandleKey(KeyEvent{Key: "k"})
	d.HandleKey(KeyEvent{Key: "k"})

	assert.Equal(t, []string{"first", "second:k", "first"}, rec.snapshot())
}

// TestDispatchRunLoop verifies posted input and ticks are handled on the loop goroutine
func TestDispatchRunLoop(t *testing.T) {
	d := NewDispatch(5 * time.Millisecond)
	d.Start()
	rec := &recorder{}
	require.NoError(t, d.Register(keyHandler(rec, "k", true)))

	tickCh := make(chan struct{}, 16)
	require.NoError(t, d.Register(NewHandler("t", Callbacks{
		Timed: func() bool {
			select {
			case tickCh <- struct{}{}:
			default:
			}
			return true
		},
	})))

	redraws := make(chan bool, 16)
	d.SetAfterDispatch(func(redraw bool) {
		if redraw {
			redraws <- true
		}
	})

	d.Retime(0)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	d.Post(InputEvent{Kind: EventKey, Key: KeyEvent{Key: "a"}})
	d.Post(InputEvent{Kind: EventRedraw})

	select {
	case <-tickCh:
	case <-time.After(2 * time.Second):
		t.Fatal("no tick delivered")
	}
	select {
	case <-redraws:
	case <-time.After(2 * time.Second):
		t.Fatal("no redraw delivered")
	}

	cancel()
	err := <-done
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Contains(t, rec.snapshot(), "k:a")
}
