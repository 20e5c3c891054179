package events

// KeyEvent is a keyboard event in DOM naming
// Key is the produced value ("a", "A", "-", "Escape"), Code the physical key ("KeyA", "Minus")
type KeyEvent struct {
	Key   string
	Code  string
	Alt   bool
	Shift bool
	Ctrl  bool
}

// MouseButton identifies the pressed mouse button
type MouseButton uint8

const (
	MouseNone MouseButton = iota
	MousePrimary
	MouseSecondary
	MouseMiddle
)

// MouseEvent is a click at terminal coordinates
type MouseEvent struct {
	X, Y   int
	Button MouseButton
}

// TimedFunc handles a timer tick; returning true stops later handlers
type TimedFunc func() bool

// MouseFunc handles a click; returning true stops later handlers
type MouseFunc func(ev MouseEvent) bool

// KeyFunc handles a key press; returning true stops later handlers
type KeyFunc func(ev KeyEvent) bool

// Callbacks is the optional set of handler slots
// A nil slot means the handler does not listen for that kind of event
type Callbacks struct {
	Timed TimedFunc
	Mouse MouseFunc
	Key   KeyFunc
}

// modifierKeys are dropped before dispatch
var modifierKeys = [...]string{"Alt", "Control", "Meta", "Shift"}

// EventKind tags an InputEvent
type EventKind uint8

const (
	EventKey EventKind = iota
	EventMouse
	EventRedraw // Screen resize or expose, no handler runs
)

func (k EventKind) String() string {
	switch k {
	case EventKey:
		return "key"
	case EventMouse:
		return "mouse"
	case EventRedraw:
		return "redraw"
	}
	return "unknown"
}

// InputEvent is the unit posted from the poll goroutine to the dispatch loop
type InputEvent struct {
	Kind  EventKind
	Key   KeyEvent
	Mouse MouseEvent
}
