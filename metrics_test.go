package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeshArea_UnitRightTriangle(t *testing.T) {
	positions := Positions{
		Data: []float32{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
		},
		Stride: 12,
	}
	indices := []uint32{0, 1, 2}

	assert.InDelta(t, 0.5, MeshArea(positions, indices), 1e-6)
}

func TestMeshArea_SumsAcrossTriangles(t *testing.T) {
	positions := Positions{
		Data: []float32{
			0, 0, 0,
			1, 0, 0,
			1, 1, 0,
			0, 1, 0,
		},
		Stride: 12,
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	assert.InDelta(t, 1.0, MeshArea(positions, indices), 1e-6)
}
