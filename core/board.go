package core

import (
	"log"

	"github.com/lixenwraith/blockfall/vmath"
)

// Board is a fixed grid of cells
// y = 0 is the insertion row at the top, y grows towards the floor
// Cells live in one backing slice; row and column views compute indices
type Board struct {
	width   int
	height  int
	insertX int
	cells   []Cell
}

// NewBoard creates a width x height board of empty cells
func NewBoard(width, height int) *Board {
	return NewBoardWithDefault(width, height, EmptyState)
}

// NewBoardWithDefault creates a board whose cells rest in defaultState
func NewBoardWithDefault(width, height int, defaultState CellState) *Board {
	if width <= 0 || height <= 0 {
		panic("assertion failed: Board: dimensions must be positive")
	}
	b := &Board{
		width:   width,
		height:  height,
		insertX: width / 2,
		cells:   make([]Cell, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b.cells[y*width+x] = newCell(x, y, defaultState)
		}
	}
	return b
}

// Width returns the number of columns
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows
func (b *Board) Height() int {
	return b.height
}

// InsertX returns the default insertion column
func (b *Board) InsertX() int {
	return b.insertX
}

// Cell returns the cell at x, y or nil if out of range
func (b *Board) Cell(x, y int) *Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return nil
	}
	return &b.cells[y*b.width+x]
}

// CellByTransform returns the cell at base + R(rotation) * offset or nil
func (b *Board) CellByTransform(baseX, baseY, offsetX, offsetY, rotation int) *Cell {
	return b.Cell(vmath.Transform(baseX, baseY, offsetX, offsetY, rotation))
}

// Row returns the cells of row y, left to right
func (b *Board) Row(y int) []*Cell {
	if y < 0 || y >= b.height {
		return nil
	}
	row := make([]*Cell, b.width)
	for x := range row {
		row[x] = &b.cells[y*b.width+x]
	}
	return row
}

// Column returns the cells of column x, floor first
func (b *Board) Column(x int) []*Cell {
	if x < 0 || x >= b.width {
		return nil
	}
	col := make([]*Cell, b.height)
	for i := range col {
		col[i] = &b.cells[(b.height-1-i)*b.width+x]
	}
	return col
}

// CreateVisuals attaches a handle to every cell, top row first
func (b *Board) CreateVisuals(factory VisualFactory) {
	for i := range b.cells {
		b.cells[i].CreateVisual(factory)
	}
}

// Flush pushes all pending cell changes
func (b *Board) Flush() bool {
	changed := false
	for i := range b.cells {
		if b.cells[i].Flush() {
			changed = true
		}
	}
	return changed
}

// Clear resets every non-controlled cell above row aboveY
func (b *Board) Clear(aboveY int) bool {
	changed := false
	for i := range b.cells {
		cell := &b.cells[i]
		if cell.IsControlled() || cell.Y >= aboveY {
			continue
		}
		if cell.ResetState().Flush() {
			changed = true
		}
	}
	log.Printf("[board] clear above %d: %v", aboveY, changed)
	return changed
}

// ShiftDown moves every non-controlled cell above row aboveY down one row
// The floor cell of each column loses its content; controlled cells are skipped
func (b *Board) ShiftDown(aboveY int) bool {
	changed := b.scanColumns(aboveY, func(cell, below *Cell) bool {
		if cell.IsEmpty() {
			return false
		}
		if below != nil {
			cell.TransferState(below)
		} else {
			cell.ResetState()
		}
		return true
	})
	log.Printf("[board] shift down above %d: %v", aboveY, changed)
	return changed
}

// FallDown moves every non-controlled cell above row aboveY into an empty cell below
// One pass only; repeated calls compact a column
func (b *Board) FallDown(aboveY int) bool {
	changed := b.scanColumns(aboveY, func(cell, below *Cell) bool {
		if cell.IsEmpty() || below == nil || !below.IsEmpty() {
			return false
		}
		cell.TransferState(below)
		return true
	})
	log.Printf("[board] fall down above %d: %v", aboveY, changed)
	return changed
}

// scanColumns walks each column floor-up, skipping controlled cells
// below is the previously visited non-controlled cell, nil at the floor
func (b *Board) scanColumns(aboveY int, move func(cell, below *Cell) bool) bool {
	changed := false
	for x := 0; x < b.width; x++ {
		var below *Cell
		for y := b.height - 1; y >= 0; y-- {
			cell := &b.cells[y*b.width+x]
			if cell.IsControlled() {
				continue
			}
			if cell.Y < aboveY {
				if move(cell, below) {
					changed = true
				}
				if below != nil {
					below.Flush()
				}
			}
			below = cell
		}
		if below != nil {
			below.Flush()
		}
	}
	return changed
}

// RemoveFullRows clears complete rows floor-up and lets the content above fall
// Returns the number of rows removed
func (b *Board) RemoveFullRows() int {
	found := 0
	for y := b.height - 1; y >= 0; y-- {
		row := b.Row(y)
		for isFull(row) {
			for _, cell := range row {
				cell.ResetState()
			}
			b.FallDown(y)
			for _, cell := range row {
				cell.Flush()
			}
			found++
		}
	}
	return found
}

func isFull(row []*Cell) bool {
	for _, cell := range row {
		if cell.IsControlled() || cell.IsEmpty() {
			return false
		}
	}
	return true
}

// columnHeight returns the floor-based height of the top settled cell of x, -1 if none
func (b *Board) columnHeight(x int) int {
	height := -1
	for i, cell := range b.Column(x) {
		if cell.IsSettled() {
			height = i
		}
	}
	return height
}

// SettledCount returns the number of cells holding settled content
func (b *Board) SettledCount() int {
	n := 0
	for i := range b.cells {
		if b.cells[i].IsSettled() {
			n++
		}
	}
	return n
}

// MaxHeight returns the floor-based height of the highest settled cell, 0 if none
func (b *Board) MaxHeight() int {
	ret := 0
	for x := 0; x < b.width; x++ {
		if h := b.columnHeight(x); ret < h {
			ret = h
		}
	}
	return ret
}

// FindLowColumn returns a column whose top settled cell is lowest
// Ties go to later columns up to InsertX
func (b *Board) FindLowColumn() int {
	lowestX := 0
	lowestY := b.height
	for x := 0; x < b.width; x++ {
		curY := b.columnHeight(x)
		if curY < lowestY || (curY == lowestY && x <= b.insertX) {
			lowestX = x
			lowestY = curY
		}
	}
	return lowestX
}
