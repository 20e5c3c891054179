package vmath

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRotation is returned for rotations that are not whole quarter-turns
var ErrInvalidRotation = errors.New("invalid rotation")

// Point is an integer grid coordinate
type Point struct {
	X, Y int
}

// Add returns p + q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Mod returns x mod y, always in [0, y) for positive y
func Mod(x, y int) int {
	return ((x % y) + y) % y
}

// SinRotation returns the exact sine of rotation quarter-turns
func SinRotation(rotation int) int {
	switch Mod(rotation, 4) {
	case 1:
		return 1
	case 3:
		return -1
	default:
		return 0
	}
}

// CosRotation returns the exact cosine of rotation quarter-turns
func CosRotation(rotation int) int {
	switch Mod(rotation, 4) {
	case 0:
		return 1
	case 2:
		return -1
	default:
		return 0
	}
}

// RotationFromFloat converts a quarter-turn count given as float
// Fails with ErrInvalidRotation unless f is a finite whole number
func RotationFromFloat(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRotation, f)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%w: %v out of range", ErrInvalidRotation, f)
	}
	return int(f), nil
}

// TransformPoint returns base + R(rotation) * offset
func TransformPoint(base, offset Point, rotation int) Point {
	sin, cos := SinRotation(rotation), CosRotation(rotation)
	return Point{
		X: base.X + cos*offset.X - sin*offset.Y,
		Y: base.Y + sin*offset.X + cos*offset.Y,
	}
}

// Transform is TransformPoint on scalar coordinates
func Transform(baseX, baseY, offsetX, offsetY, rotation int) (int, int) {
	p := TransformPoint(Point{X: baseX, Y: baseY}, Point{X: offsetX, Y: offsetY}, rotation)
	return p.X, p.Y
}
