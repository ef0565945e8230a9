package simplify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uniqlow/meshoptimizer/internal/scratch"
)

func TestBuildPositionRemap_DuplicatePositionsFormAWedgeRing(t *testing.T) {
	data := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 0, 0, // duplicate of vertex 0
		1, 0, 0, // duplicate of vertex 1
	}
	positions := Positions{Data: data, Stride: 12}

	arena := scratch.New()
	defer arena.Release()

	remap, wedge := buildPositionRemap(arena, positions, 4)

	assert.Equal(t, uint32(0), remap[0])
	assert.Equal(t, uint32(1), remap[1])
	assert.Equal(t, uint32(0), remap[2])
	assert.Equal(t, uint32(1), remap[3])

	// the wedge ring for position (0,0,0) must visit exactly {0,2}
	seen := map[uint32]bool{0: false, 2: false}
	v := uint32(0)
	for i := 0; i < 2; i++ {
		seen[v] = true
		v = wedge[v]
	}
	assert.Equal(t, uint32(0), v, "ring must return to start")
	assert.True(t, seen[0])
	assert.True(t, seen[2])
}

func TestBuildPositionRemap_AllDistinctPositions(t *testing.T) {
	positions, _ := tetrahedron()

	arena := scratch.New()
	defer arena.Release()

	remap, wedge := buildPositionRemap(arena, positions, 4)
	for i := uint32(0); i < 4; i++ {
		assert.Equal(t, i, remap[i])
		assert.Equal(t, i, wedge[i])
	}
}

func TestPositionsEqual_BitPatternNotIEEEValue(t *testing.T) {
	negZero := math.Float32frombits(0x80000000)
	data := []float32{
		0, 0, 0,
		negZero, 0, 0,
	}
	positions := Positions{Data: data, Stride: 12}

	// +0 and -0 compare equal under IEEE-754 but have different bit
	// patterns, so this hash table treats them as distinct positions.
	assert.False(t, positionsEqual(positions, 0, 1))
}
