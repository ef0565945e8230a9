package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uniqlow/meshoptimizer/internal/scratch"
)

func classifyMesh(indices []uint32, positions Positions, vertexCount int) ([]VertexKind, []uint32) {
	arena := scratch.New()
	defer arena.Release()

	remap, wedge := buildPositionRemap(arena, positions, vertexCount)
	adj := buildEdgeAdjacency(arena, indices, vertexCount)

	kind, loop := classifyVertices(arena, adj, remap, wedge, vertexCount)

	// the returned slices are arena-backed; copy out before the arena is
	// released by the deferred call above
	outKind := make([]VertexKind, vertexCount)
	outLoop := make([]uint32, vertexCount)
	copy(outKind, kind)
	copy(outLoop, loop)
	return outKind, outLoop
}

func TestClassifyVertices_ClosedTetrahedron_AllManifold(t *testing.T) {
	positions, indices := tetrahedron()
	kind, _ := classifyMesh(indices, positions, 4)

	for i, k := range kind {
		assert.Equal(t, KindManifold, k, "vertex %d", i)
	}
}

func TestClassifyVertices_SingleQuad_BorderVertices(t *testing.T) {
	data := []float32{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}
	indices := []uint32{
		0, 1, 2,
		0, 2, 3,
	}
	positions := Positions{Data: data, Stride: 12}

	kind, _ := classifyMesh(indices, positions, 4)

	for i, k := range kind {
		assert.Equal(t, KindBorder, k, "vertex %d", i)
	}
}

func TestClassifyVertices_TwoIndependentQuadsSharingAnEdgePosition_LocksRatherThanSeam(t *testing.T) {
	// Two quads placed side by side so one edge of each shares a position
	// with one edge of the other, but each quad is otherwise an isolated
	// border patch of its own: the duplicated edge isn't a genuine closed
	// seam (its two sides don't both single out that edge as their one
	// open half-edge), so findWedgeEdge can't close the loop and these
	// vertices fall back to Locked rather than being misidentified as Seam.
	data := []float32{
		0, 0, 0, // 0
		1, 0, 0, // 1
		1, 1, 0, // 2
		0, 1, 0, // 3
		1, 0, 0, // 4 (== 1)
		2, 0, 0, // 5
		2, 1, 0, // 6
		1, 1, 0, // 7 (== 2)
	}
	indices := []uint32{
		0, 1, 2,
		0, 2, 3,
		4, 5, 6,
		4, 6, 7,
	}
	positions := Positions{Data: data, Stride: 12}

	kind, _ := classifyMesh(indices, positions, 8)

	assert.Equal(t, KindLocked, kind[1])
	assert.Equal(t, KindLocked, kind[2])
	assert.Equal(t, KindLocked, kind[4])
	assert.Equal(t, KindLocked, kind[7])
	assert.Equal(t, KindBorder, kind[0])
	assert.Equal(t, KindBorder, kind[3])
	assert.Equal(t, KindBorder, kind[5])
	assert.Equal(t, KindBorder, kind[6])
}

func TestClassifyVertices_SeamBetweenTwoTrianglesSharingABothEndsDuplicatedEdge(t *testing.T) {
	// A minimal closed seam: triangle A (0,1,2) and triangle B (3,1,4)
	// reuse vertex 1 directly (no duplicate needed on that corner, since
	// it isn't on the seam) while 0 and 2's positions are duplicated by 3
	// and 4 on the far side. Each wedge of the pairs (0,3) and (2,4) has
	// exactly one open half-edge, and findWedgeEdge resolves each pair's
	// open edges to each other through the wedge rings.
	data := []float32{
		0, 0, 0, // 0
		1, 0, 0, // 1 (shared corner, not duplicated)
		0, 1, 0, // 2
		0, 0, 0, // 3 (== 0)
		0, 1, 0, // 4 (== 2)
	}
	indices := []uint32{
		0, 1, 2,
		1, 3, 4, // wound so the seam edge appears as 3->4, the positional reverse of 2->0
	}
	positions := Positions{Data: data, Stride: 12}

	kind, loop := classifyMesh(indices, positions, 5)

	assert.Equal(t, KindSeam, kind[0])
	assert.Equal(t, KindSeam, kind[2])
	assert.Equal(t, KindSeam, kind[3])
	assert.Equal(t, KindSeam, kind[4])
	assert.Equal(t, KindLocked, kind[1], "vertex 1 touches two distinct open-ish edges and isn't part of either wedge pair")
	assert.Equal(t, uint32(1), loop[0])
	assert.Equal(t, uint32(4), loop[3])
}

func TestKCanCollapse_LockedNeverSource(t *testing.T) {
	for dst := VertexKind(0); dst < kindCount; dst++ {
		assert.False(t, kCanCollapse[KindLocked][dst], "locked must never collapse as a source, dst=%v", dst)
	}
}

func TestKCanCollapse_ManifoldMayCollapseOntoLocked(t *testing.T) {
	assert.True(t, kCanCollapse[KindManifold][KindLocked])
}
