package core

import "github.com/lixenwraith/blockfall/vmath"

// Piece is an immutable catalog entry
type Piece struct {
	Name            string
	Class           string
	Foreground      string
	Background      string
	Pivot           vmath.Point // Rotation origin within Shape, x = column, y = row
	Rotation        int         // Initial quarter-turns
	RotationEnabled bool
	Shape           [][]bool // Row 0 is the top row
}

// CellCount returns the number of occupied shape entries
func (p *Piece) CellCount() int {
	n := 0
	for _, row := range p.Shape {
		for _, filled := range row {
			if filled {
				n++
			}
		}
	}
	return n
}

// Offsets returns the occupied shape entries relative to the pivot, row-major
func (p *Piece) Offsets() []vmath.Point {
	offsets := make([]vmath.Point, 0, 4)
	for rowIndex, row := range p.Shape {
		for colIndex, filled := range row {
			if filled {
				offsets = append(offsets, vmath.Point{X: colIndex - p.Pivot.X, Y: rowIndex - p.Pivot.Y})
			}
		}
	}
	return offsets
}

// BlockClass is the visual class painted onto cells of this piece
func (p *Piece) BlockClass() string {
	return "block " + p.Class
}

var catalog = []*Piece{
	{
		Name: "I", Class: "blockI", Foreground: "black", Background: "#00f0f0",
		Pivot: vmath.Point{X: 1, Y: 0}, RotationEnabled: true,
		Shape: [][]bool{
			{true, true, true, true},
		},
	},
	{
		Name: "J", Class: "blockJ", Foreground: "white", Background: "#0000f0",
		Pivot: vmath.Point{X: 1, Y: 1}, RotationEnabled: true,
		Shape: [][]bool{
			{false, true},
			{false, true},
			{true, true},
		},
	},
	{
		Name: "L", Class: "blockL", Foreground: "black", Background: "#f0a000",
		Pivot: vmath.Point{X: 0, Y: 1}, RotationEnabled: true,
		Shape: [][]bool{
			{true, false},
			{true, false},
			{true, true},
		},
	},
	{
		Name: "O", Class: "blockO", Foreground: "black", Background: "#f0f000",
		Pivot: vmath.Point{X: 0, Y: 0}, RotationEnabled: false,
		Shape: [][]bool{
			{true, true},
			{true, true},
		},
	},
	{
		Name: "S", Class: "blockS", Foreground: "black", Background: "#00f000",
		Pivot: vmath.Point{X: 1, Y: 0}, RotationEnabled: true,
		Shape: [][]bool{
			{false, true, true},
			{true, true, false},
		},
	},
	{
		Name: "T", Class: "blockT", Foreground: "white", Background: "#a000f0",
		Pivot: vmath.Point{X: 1, Y: 1}, RotationEnabled: true,
		Shape: [][]bool{
			{false, true, false},
			{true, true, true},
		},
	},
	{
		Name: "Z", Class: "blockZ", Foreground: "black", Background: "#f00000",
		Pivot: vmath.Point{X: 1, Y: 0}, RotationEnabled: true,
		Shape: [][]bool{
			{true, true, false},
			{false, true, true},
		},
	},
}

// Catalog returns the fixed piece set
func Catalog() []*Piece {
	out := make([]*Piece, len(catalog))
	copy(out, catalog)
	return out
}

// PieceByName looks up a catalog entry
func PieceByName(name string) (*Piece, bool) {
	for _, p := range catalog {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// PieceByClass looks up a catalog entry by its visual class
func PieceByClass(class string) (*Piece, bool) {
	for _, p := range catalog {
		if p.Class == class {
			return p, true
		}
	}
	return nil, false
}
