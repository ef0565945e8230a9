package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uniqlow/meshoptimizer/internal/scratch"
)

func TestBuildEdgeAdjacency_TwoTriangleQuad(t *testing.T) {
	indices := []uint32{
		0, 1, 2,
		0, 2, 3,
	}
	arena := scratch.New()
	defer arena.Release()

	adj := buildEdgeAdjacency(arena, indices, 4)

	assert.True(t, adj.hasEdge(0, 1))
	assert.True(t, adj.hasEdge(1, 2))
	assert.True(t, adj.hasEdge(2, 0))
	assert.True(t, adj.hasEdge(0, 2))
	assert.True(t, adj.hasEdge(2, 3))
	assert.True(t, adj.hasEdge(3, 0))
	assert.False(t, adj.hasEdge(1, 0))

	// the diagonal 0-2 has a reverse half-edge (2->0 from the first
	// triangle matches 0->2 from the second), so only 0->1 is open at 0
	openCount, last := adj.countOpenEdges(0)
	assert.Equal(t, 1, openCount)
	assert.Equal(t, uint32(1), last)
}

func TestCountOpenEdges_FullyClosedTetrahedron(t *testing.T) {
	_, indices := tetrahedron()
	arena := scratch.New()
	defer arena.Release()

	adj := buildEdgeAdjacency(arena, indices, 4)

	for v := uint32(0); v < 4; v++ {
		count, _ := adj.countOpenEdges(v)
		assert.Equal(t, 0, count, "a closed manifold has no open edges at vertex %d", v)
	}
}
