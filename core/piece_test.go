package core

import (
	"testing"

	"github.com/lixenwraith/blockfall/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCatalog verifies the seven tetrominoes and their rotation flags
func TestCatalog(t *testing.T) {
	pieces := Catalog()
	require.Len(t, pieces, 7)

	for _, p := range pieces {
		assert.Equal(t, 4, p.CellCount(), "piece %s", p.Name)
		assert.Equal(t, p.Name != "O", p.RotationEnabled, "piece %s", p.Name)
		assert.Equal(t, 0, p.Rotation, "piece %s", p.Name)
		assert.Equal(t, "block "+p.Class, p.BlockClass())

		byName, ok := PieceByName(p.Name)
		require.True(t, ok)
		assert.Same(t, p, byName)

		byClass, ok := PieceByClass(p.Class)
		require.True(t, ok)
		assert.Same(t, p, byClass)
	}

	_, ok := PieceByName("X")
	assert.False(t, ok)
}

// TestCatalogIsCopied verifies callers cannot reorder the shared catalog
func TestCatalogIsCopied(t *testing.T) {
	a := Catalog()
	a[0] = nil
	b := Catalog()
	assert.NotNil(t, b[0])
}

func TestPieceOffsets(t *testing.T) {
	j, _ := PieceByName("J")
	assert.Equal(t, []vmath.Point{
		{X: 0, Y: -1},
		{X: 0, Y: 0},
		{X: -1, Y: 1},
		{X: 0, Y: 1},
	}, j.Offsets())
}

func TestTransformResult(t *testing.T) {
	assert.True(t, ResultSuccess.Success())
	for _, r := range []TransformResult{ResultCollision, ResultInvalidRotation, ResultOutOfBounds, ResultOutOfTries} {
		assert.False(t, r.Success())
		assert.NotEqual(t, "unknown", r.String())
		assert.NotEmpty(t, r.Message())
	}
	assert.Equal(t, "unknown", TransformResult(99).String())
}
