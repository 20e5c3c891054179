package engine

import (
	"log"
	"math/rand/v2"

	"github.com/lixenwraith/blockfall/constants"
	"github.com/lixenwraith/blockfall/core"
	"github.com/lixenwraith/blockfall/vmath"
)

// PieceController owns the falling piece on a board
// Cells of the piece are marked controlled; every change is flushed as one transaction
type PieceController struct {
	board *core.Board
	rng   *rand.Rand

	piece    *core.Piece
	pivot    vmath.Point
	rotation int
	cells    []*core.Cell

	// Touched cells in first-touch order, flushed together
	transaction []*core.Cell
	inTx        map[*core.Cell]struct{}

	next    *core.Piece
	catalog []*core.Piece

	banner     []rune
	textIndex  int
	textChars  []string
	insertions int
}

// NewPieceController creates a controller with an empty look-ahead slot filled
// A nil rng uses a randomly seeded source
func NewPieceController(board *core.Board, rng *rand.Rand, banner string) *PieceController {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	pc := &PieceController{
		board:   board,
		rng:     rng,
		inTx:    make(map[*core.Cell]struct{}),
		catalog: core.Catalog(),
		banner:  []rune(banner),
	}
	pc.SelectNextPiece()
	return pc
}

// Board returns the controlled board
func (pc *PieceController) Board() *core.Board {
	return pc.board
}

// Active reports whether a piece is controlled
func (pc *PieceController) Active() bool {
	return pc.piece != nil
}

// Piece returns the controlled piece or nil
func (pc *PieceController) Piece() *core.Piece {
	return pc.piece
}

// Pivot returns the board position of the piece pivot
func (pc *PieceController) Pivot() vmath.Point {
	return pc.pivot
}

// Rotation returns the accumulated quarter-turns of the piece
func (pc *PieceController) Rotation() int {
	return pc.rotation
}

// Cells returns a copy of the cells occupied by the piece
func (pc *PieceController) Cells() []*core.Cell {
	out := make([]*core.Cell, len(pc.cells))
	copy(out, pc.cells)
	return out
}

// Next peeks at the queued piece
func (pc *PieceController) Next() *core.Piece {
	return pc.next
}

// SetNext replaces the queued piece
func (pc *PieceController) SetNext(p *core.Piece) {
	if p != nil {
		pc.next = p
	}
}

// Insertions returns the number of successful insertions
func (pc *PieceController) Insertions() int {
	return pc.insertions
}

// SelectNextPiece returns the queued piece and queues a uniformly random one
// Nil only before the first queue is filled
func (pc *PieceController) SelectNextPiece() *core.Piece {
	ret := pc.next
	pc.next = pc.catalog[pc.rng.IntN(len(pc.catalog))]
	return ret
}

// Release drops control of the piece, its cells keep their content as settled blocks
func (pc *PieceController) Release() {
	for _, cell := range pc.cells {
		cell.UpdateState(func(s *core.CellState) { s.Controlled = false })
	}
	pc.cells = nil
	pc.clearTransaction()
	pc.textChars = pc.textChars[:0]
	pc.piece = nil
	pc.pivot = vmath.Point{}
	pc.rotation = 0
}

// textChar returns the banner character of the piece cell at index, drawing new ones as needed
func (pc *PieceController) textChar(index int) string {
	if len(pc.banner) == 0 {
		return ""
	}
	for len(pc.textChars) <= index {
		pc.textChars = append(pc.textChars, string(pc.banner[pc.textIndex]))
		pc.textIndex = (pc.textIndex + 1) % len(pc.banner)
	}
	return pc.textChars[index]
}

// OccupiedCells returns the cells the piece would cover after the offset
// ok is false when a cell leaves the board or a rotation is asked of a fixed piece
func (pc *PieceController) OccupiedCells(offsetX, offsetY, offsetRotation int) ([]*core.Cell, bool) {
	if pc.piece == nil {
		panic("assertion failed: PieceController.OccupiedCells: no piece is being controlled")
	}
	if offsetRotation != 0 && !pc.piece.RotationEnabled {
		return nil, false
	}
	baseX := pc.pivot.X + offsetX
	baseY := pc.pivot.Y + offsetY
	rotation := pc.rotation + offsetRotation

	offsets := pc.piece.Offsets()
	result := make([]*core.Cell, 0, len(offsets))
	for _, off := range offsets {
		cell := pc.board.CellByTransform(baseX, baseY, off.X, off.Y, rotation)
		if cell == nil {
			return nil, false
		}
		result = append(result, cell)
	}
	return result, true
}

func (pc *PieceController) touch(cell *core.Cell) {
	if _, ok := pc.inTx[cell]; ok {
		return
	}
	pc.inTx[cell] = struct{}{}
	pc.transaction = append(pc.transaction, cell)
}

func (pc *PieceController) clearTransaction() {
	pc.transaction = pc.transaction[:0]
	clear(pc.inTx)
}

// flush pushes every touched cell to its visual handle
func (pc *PieceController) flush() {
	for _, cell := range pc.transaction {
		cell.Flush()
	}
	pc.clearTransaction()
}

// draw paints the piece into its cells
func (pc *PieceController) draw() {
	class := pc.piece.BlockClass()
	for i, cell := range pc.cells {
		if !cell.IsEmpty() {
			panic("assertion failed: PieceController.draw: refusing to draw over full cells")
		}
		text := pc.textChar(i)
		cell.UpdateState(func(s *core.CellState) {
			s.Class = class
			s.Text = text
			s.Controlled = true
			s.Empty = false
		})
		pc.touch(cell)
	}
}

func (pc *PieceController) erase() {
	for _, cell := range pc.cells {
		cell.ResetState()
		pc.touch(cell)
	}
}

// Insert places piece near column nearX on the top rows and takes control of it
// Probes that leave the board nudge the pivot inwards or downwards and retry
func (pc *PieceController) Insert(piece *core.Piece, nearX int) core.TransformResult {
	if pc.piece != nil {
		panic("assertion failed: PieceController.Insert: a piece is already being controlled")
	}
	nearY := 0
	offsets := piece.Offsets()

	for i := 0; i < constants.InsertionTries; i++ {
		cells := make([]*core.Cell, 0, len(offsets))
		collision := false
		done := true

		for _, off := range offsets {
			p := vmath.TransformPoint(vmath.Point{X: nearX, Y: nearY}, off, piece.Rotation)
			if p.X < 0 || p.X >= pc.board.Width() || p.Y < 0 {
				if p.X < 0 {
					nearX++
				} else if p.X >= pc.board.Width() {
					nearX--
				}
				if p.Y < 0 {
					nearY++
				}
				done = false
				break
			}
			cell := pc.board.Cell(p.X, p.Y)
			if cell == nil {
				log.Printf("[piece] %s does not fit the board height", piece.Name)
				return core.ResultOutOfBounds
			}
			if cell.IsEmpty() {
				cells = append(cells, cell)
			} else {
				collision = true
			}
		}

		if !done {
			continue
		}
		if collision {
			log.Printf("[piece] collision on insert of %s at %d,%d", piece.Name, nearX, nearY)
			return core.ResultCollision
		}

		pc.piece = piece
		pc.pivot = vmath.Point{X: nearX, Y: nearY}
		pc.rotation = piece.Rotation
		pc.cells = cells
		pc.draw()
		pc.flush()
		pc.insertions++
		return core.ResultSuccess
	}
	log.Printf("[piece] out of tries while inserting %s", piece.Name)
	return core.ResultOutOfTries
}

// InsertAt places piece at the default insertion column
func (pc *PieceController) InsertAt(piece *core.Piece) core.TransformResult {
	return pc.Insert(piece, pc.board.InsertX())
}

// InsertRandom takes the queued piece and inserts it near nearX
func (pc *PieceController) InsertRandom(nearX int) core.TransformResult {
	return pc.Insert(pc.SelectNextPiece(), nearX)
}

// Transform moves and rotates the piece if the target cells are free
// A failed transform leaves the board untouched
func (pc *PieceController) Transform(offsetX, offsetY, offsetRotation int) core.TransformResult {
	if pc.piece == nil {
		panic("assertion failed: PieceController.Transform: no piece is being controlled")
	}
	if offsetRotation != 0 && !pc.piece.RotationEnabled {
		return core.ResultInvalidRotation
	}
	next, ok := pc.OccupiedCells(offsetX, offsetY, offsetRotation)
	if !ok {
		return core.ResultOutOfBounds
	}
	for _, cell := range next {
		if !cell.IsEmpty() && !pc.owns(cell) {
			return core.ResultCollision
		}
	}

	pc.erase()
	pc.cells = next
	pc.draw()
	pc.flush()

	pc.pivot = pc.pivot.Add(vmath.Point{X: offsetX, Y: offsetY})
	pc.rotation += offsetRotation
	return core.ResultSuccess
}

func (pc *PieceController) owns(cell *core.Cell) bool {
	for _, c := range pc.cells {
		if c == cell {
			return true
		}
	}
	return false
}

// MoveDown moves the piece one row towards the floor
func (pc *PieceController) MoveDown() core.TransformResult {
	return pc.Transform(0, 1, 0)
}

// MoveUp moves the piece one row towards the top
func (pc *PieceController) MoveUp() core.TransformResult {
	return pc.Transform(0, -1, 0)
}

// MoveRight moves the piece one column right
func (pc *PieceController) MoveRight() core.TransformResult {
	return pc.Transform(1, 0, 0)
}

// MoveLeft moves the piece one column left
func (pc *PieceController) MoveLeft() core.TransformResult {
	return pc.Transform(-1, 0, 0)
}

// RotateRight turns the piece a quarter clockwise on screen
func (pc *PieceController) RotateRight() core.TransformResult {
	return pc.Transform(0, 0, 1)
}

// RotateLeft turns the piece a quarter counter-clockwise on screen
func (pc *PieceController) RotateLeft() core.TransformResult {
	return pc.Transform(0, 0, -1)
}
