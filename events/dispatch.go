package events

import (
	"context"
	"log"
	"slices"
	"time"

	"github.com/lixenwraith/blockfall/constants"
)

// Dispatch owns the single tick timer and fans key/mouse input out to handlers
//
// Architecture:
//   - Single-threaded dispatch, all handlers run on the Run goroutine
//   - Handlers are invoked in registration order, first true return stops the fan-out
//   - At most one outstanding timer, re-armed after every timed event
//   - Input is posted from any goroutine through a lock-free queue
type Dispatch struct {
	interval time.Duration
	timer    *time.Timer
	armed    bool

	listening bool
	stopped   bool // Set by Stop, cleared by Start and Retime; suppresses the post-tick re-arm

	timed []*Handler
	mouse []*Handler
	key   []*Handler

	queue *InputQueue

	afterDispatch func(redraw bool)
}

// NewDispatch creates a dispatch with the given tick interval
// Input is not delivered until Start
func NewDispatch(interval time.Duration) *Dispatch {
	if interval <= 0 {
		interval = constants.TickInterval
	}
	return &Dispatch{
		interval: interval,
		queue:    NewInputQueue(),
	}
}

// Register binds h to d, see Handler.RegisterDispatch
func (d *Dispatch) Register(h *Handler) error {
	return h.RegisterDispatch(d)
}

// Unregister removes h if it is bound to d
func (d *Dispatch) Unregister(h *Handler) {
	if h.dispatch == d {
		h.UnregisterDispatch()
	}
}

// update reconciles each list with the presence of the matching callback
func (d *Dispatch) update(h *Handler) {
	d.timed = reconcile(d.timed, h, h.callbacks.Timed != nil)
	d.mouse = reconcile(d.mouse, h, h.callbacks.Mouse != nil)
	d.key = reconcile(d.key, h, h.callbacks.Key != nil)
}

func (d *Dispatch) remove(h *Handler) {
	d.timed = reconcile(d.timed, h, false)
	d.mouse = reconcile(d.mouse, h, false)
	d.key = reconcile(d.key, h, false)
}

// reconcile appends h when wanted and missing, removes it when present and unwanted
func reconcile(list []*Handler, h *Handler, want bool) []*Handler {
	idx := slices.Index(list, h)
	switch {
	case idx == -1 && want:
		return append(list, h)
	case idx != -1 && !want:
		return slices.Delete(list, idx, idx+1)
	}
	return list
}

// Registered reports whether h currently sits in any list
func (d *Dispatch) Registered(h *Handler) bool {
	return slices.Contains(d.timed, h) || slices.Contains(d.mouse, h) || slices.Contains(d.key, h)
}

// HandlerCounts returns the sizes of the timed, mouse and key lists
func (d *Dispatch) HandlerCounts() (timed, mouse, key int) {
	return len(d.timed), len(d.mouse), len(d.key)
}

// Start attaches input delivery, idempotent
func (d *Dispatch) Start() {
	if d.listening {
		return
	}
	d.listening = true
	d.stopped = false
	log.Printf("[dispatch] started")
}

// Stop cancels the timer and detaches input until the next Start
func (d *Dispatch) Stop() {
	d.disarm()
	d.listening = false
	d.stopped = true
	log.Printf("[dispatch] stopped")
}

// Listening reports whether input is delivered
func (d *Dispatch) Listening() bool {
	return d.listening
}

// StopTimed cancels the outstanding timer, input keeps flowing
func (d *Dispatch) StopTimed() {
	d.disarm()
}

// Retime cancels the outstanding timer and arms a new one
// A non-positive interval keeps the current one
func (d *Dispatch) Retime(interval time.Duration) {
	if interval > 0 {
		d.interval = interval
	}
	d.stopped = false
	d.arm()
}

// Interval returns the tick interval
func (d *Dispatch) Interval() time.Duration {
	return d.interval
}

// SetInterval changes the tick interval used by the next arm, the running timer is untouched
func (d *Dispatch) SetInterval(interval time.Duration) {
	if interval > 0 {
		d.interval = interval
	}
}

// TimerArmed reports whether a timed event is outstanding
func (d *Dispatch) TimerArmed() bool {
	return d.armed
}

func (d *Dispatch) arm() {
	if d.timer == nil {
		d.timer = time.NewTimer(d.interval)
	} else {
		d.timer.Reset(d.interval)
	}
	d.armed = true
}

func (d *Dispatch) disarm() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.armed = false
}

// timerC is nil while disarmed so the select in Run ignores it
func (d *Dispatch) timerC() <-chan time.Time {
	if !d.armed {
		return nil
	}
	return d.timer.C
}

// HandleTimed runs the timed handlers and re-arms the timer
func (d *Dispatch) HandleTimed() {
	d.disarm()
	for _, h := range slices.Clone(d.timed) {
		if fn := h.callbacks.Timed; fn != nil && fn() {
			break
		}
	}
	if !d.stopped {
		d.arm()
	}
}

// HandleKey delivers a key press, modifier-only presses are dropped
func (d *Dispatch) HandleKey(ev KeyEvent) {
	if !d.listening || slices.Contains(modifierKeys[:], ev.Key) {
		return
	}
	for _, h := range slices.Clone(d.key) {
		if fn := h.callbacks.Key; fn != nil && fn(ev) {
			break
		}
	}
}

// HandleMouse delivers a click
func (d *Dispatch) HandleMouse(ev MouseEvent) {
	if !d.listening {
		return
	}
	for _, h := range slices.Clone(d.mouse) {
		if fn := h.callbacks.Mouse; fn != nil && fn(ev) {
			break
		}
	}
}

// Post queues an input event for the Run loop, safe from any goroutine
func (d *Dispatch) Post(ev InputEvent) {
	d.queue.Push(ev)
}

// SetAfterDispatch installs a hook run on the loop goroutine after each dispatch cycle
// redraw is true when the cycle carried an EventRedraw
func (d *Dispatch) SetAfterDispatch(fn func(redraw bool)) {
	d.afterDispatch = fn
}

func (d *Dispatch) handle(ev InputEvent) bool {
	switch ev.Kind {
	case EventKey:
		d.HandleKey(ev.Key)
	case EventMouse:
		d.HandleMouse(ev.Mouse)
	case EventRedraw:
		return true
	}
	return false
}

// Drain handles every queued input event, returns whether a redraw was requested
func (d *Dispatch) Drain() bool {
	redraw := false
	for _, ev := range d.queue.Consume() {
		if d.handle(ev) {
			redraw = true
		}
	}
	return redraw
}

func (d *Dispatch) after(redraw bool) {
	if d.afterDispatch != nil {
		d.afterDispatch(redraw)
	}
}

// Run is the event loop, returns when ctx is done
func (d *Dispatch) Run(ctx context.Context) error {
	defer d.disarm()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.timerC():
			d.HandleTimed()
			d.after(false)
		case <-d.queue.Notify():
			d.after(d.Drain())
		}
	}
}
