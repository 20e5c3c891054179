package vmath

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRotationMatchesFloatTrig verifies integer sin/cos against rounded float trig
func TestRotationMatchesFloatTrig(t *testing.T) {
	for r := -128; r <= 128; r++ {
		rad := float64(r) * math.Pi / 2
		assert.Equal(t, int(math.Round(math.Sin(rad))), SinRotation(r), "sin r=%d", r)
		assert.Equal(t, int(math.Round(math.Cos(rad))), CosRotation(r), "cos r=%d", r)
	}
}

func TestMod(t *testing.T) {
	assert.Equal(t, 0, Mod(0, 4))
	assert.Equal(t, 3, Mod(-1, 4))
	assert.Equal(t, 1, Mod(5, 4))
	assert.Equal(t, 0, Mod(-8, 4))
}

func TestRotationFromFloat(t *testing.T) {
	r, err := RotationFromFloat(3)
	require.NoError(t, err)
	assert.Equal(t, 3, r)

	r, err = RotationFromFloat(-2)
	require.NoError(t, err)
	assert.Equal(t, -2, r)

	for _, bad := range []float64{0.5, -1.25, math.NaN(), math.Inf(1)} {
		_, err := RotationFromFloat(bad)
		assert.True(t, errors.Is(err, ErrInvalidRotation), "value %v", bad)
	}
}

// TestTransformPointQuarterTurns verifies a full revolution returns to the start
func TestTransformPointQuarterTurns(t *testing.T) {
	base := Point{X: 5, Y: 5}
	offset := Point{X: 2, Y: 0}

	assert.Equal(t, Point{X: 7, Y: 5}, TransformPoint(base, offset, 0))
	assert.Equal(t, Point{X: 5, Y: 7}, TransformPoint(base, offset, 1))
	assert.Equal(t, Point{X: 3, Y: 5}, TransformPoint(base, offset, 2))
	assert.Equal(t, Point{X: 5, Y: 3}, TransformPoint(base, offset, 3))
	assert.Equal(t, TransformPoint(base, offset, 0), TransformPoint(base, offset, 4))
	assert.Equal(t, TransformPoint(base, offset, 3), TransformPoint(base, offset, -1))

	x, y := Transform(1, 1, 0, 1, 1)
	assert.Equal(t, 0, x)
	assert.Equal(t, 1, y)
}
