package core

import "fmt"

// CellState is the logical state of a board cell
type CellState struct {
	Class      string
	Foreground string
	Background string
	Text       string
	Controlled bool // Occupied by the falling piece, never settled content
	Empty      bool
}

// EmptyState is the at-rest state of a blank cell
var EmptyState = CellState{Empty: true}

// Visual returns the rendered subset of the state
func (s CellState) Visual() VisualState {
	return VisualState{
		Class:      s.Class,
		Foreground: s.Foreground,
		Background: s.Background,
		Text:       s.Text,
	}
}

// VisualState is what a VisualHandle currently displays
type VisualState struct {
	Class      string
	Foreground string
	Background string
	Text       string
}

// VisualHandle receives attribute updates for one cell
// Implemented by the renderer; nil handles are allowed for headless boards
type VisualHandle interface {
	SetClass(class string)
	SetForeground(color string)
	SetBackground(color string)
	SetText(text string)
}

// VisualFactory creates the visual handle of a cell
type VisualFactory interface {
	NewVisual(x, y int) VisualHandle
}

// Cell is a single board position
// Only the logical state mutates; cells live as long as their board
type Cell struct {
	X, Y int

	defaultState CellState
	state        CellState

	// Last state pushed to the handle
	visual VisualState
	synced bool
	dirty  bool

	handle VisualHandle
}

func newCell(x, y int, defaultState CellState) Cell {
	return Cell{
		X:            x,
		Y:            y,
		defaultState: defaultState,
		state:        defaultState,
		visual:       defaultState.Visual(),
		synced:       true,
	}
}

// ID returns a stable identifier for the cell
func (c *Cell) ID() string {
	return fmt.Sprintf("cell%dx%d", c.X, c.Y)
}

// State returns a copy of the current logical state
func (c *Cell) State() CellState {
	return c.state
}

// DefaultState returns a copy of the default state
func (c *Cell) DefaultState() CellState {
	return c.defaultState
}

// Visual returns the last state pushed to the handle
func (c *Cell) Visual() VisualState {
	return c.visual
}

// IsEmpty reports whether the cell holds no content
func (c *Cell) IsEmpty() bool {
	return c.state.Empty
}

// IsControlled reports whether the cell belongs to the falling piece
func (c *Cell) IsControlled() bool {
	return c.state.Controlled
}

// IsSettled reports whether the cell holds non-controlled content
func (c *Cell) IsSettled() bool {
	return !c.state.Controlled && !c.state.Empty
}

// IsDirty reports whether the state changed since the last flush
func (c *Cell) IsDirty() bool {
	return c.dirty
}

// SetState replaces the logical state and marks the cell dirty
func (c *Cell) SetState(s CellState) *Cell {
	c.state = s
	c.dirty = true
	return c
}

// UpdateState mutates the logical state in place and marks the cell dirty
func (c *Cell) UpdateState(fn func(s *CellState)) *Cell {
	fn(&c.state)
	c.dirty = true
	return c
}

// UpdateDefaultState mutates the state used by ResetState
func (c *Cell) UpdateDefaultState(fn func(s *CellState)) *Cell {
	fn(&c.defaultState)
	return c
}

// ResetState restores the default state
func (c *Cell) ResetState() *Cell {
	return c.SetState(c.defaultState)
}

// TransferState moves this cell's state into to and resets this cell
func (c *Cell) TransferState(to *Cell) *Cell {
	to.SetState(c.state)
	c.ResetState()
	return c
}

// CreateVisual attaches a handle from factory and paints it once
func (c *Cell) CreateVisual(factory VisualFactory) VisualHandle {
	c.handle = factory.NewVisual(c.X, c.Y)
	c.synced = false
	c.dirty = true
	c.Flush()
	return c.handle
}

// Flush pushes changed attributes to the handle
// Returns whether anything visible changed
func (c *Cell) Flush() bool {
	if !c.dirty {
		return false
	}
	c.dirty = false

	next := c.state.Visual()
	changed := false
	if !c.synced || c.visual.Class != next.Class {
		if c.handle != nil {
			c.handle.SetClass(next.Class)
		}
		changed = true
	}
	if !c.synced || c.visual.Foreground != next.Foreground {
		if c.handle != nil {
			c.handle.SetForeground(next.Foreground)
		}
		changed = true
	}
	if !c.synced || c.visual.Background != next.Background {
		if c.handle != nil {
			c.handle.SetBackground(next.Background)
		}
		changed = true
	}
	if !c.synced || c.visual.Text != next.Text {
		if c.handle != nil {
			c.handle.SetText(next.Text)
		}
		changed = true
	}
	c.visual = next
	c.synced = true
	return changed
}
