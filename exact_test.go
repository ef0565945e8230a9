package simplify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noErrorLimit stands in for the reference's FLT_MAX: a target error large
// enough that it never binds, so a pass's error ceiling is governed purely
// by the per-pass error goal.
const noErrorLimit = float32(math.MaxFloat32)

func tetrahedron() (Positions, []uint32) {
	data := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
	indices := []uint32{
		0, 2, 1,
		0, 1, 3,
		0, 3, 2,
		1, 2, 3,
	}
	return Positions{Data: data, Stride: 12}, indices
}

func TestSimplify_Tetrahedron_CollapsesToNothing(t *testing.T) {
	// Scenario: 4 vertices at unit-corner positions, 4 closed triangles,
	// target_index_count=0 and an unbounded error ⇒ the exact path has no
	// reason to stop short of zero triangles.
	positions, indices := tetrahedron()

	out := Simplify(indices, positions, 4, Options{TargetIndexCount: 0, TargetError: noErrorLimit})

	assert.Equal(t, 0, len(out))
}

func TestSimplify_Tetrahedron_ZeroTargetErrorLeavesItUnchanged(t *testing.T) {
	// None of a tetrahedron's edges collapse at exactly zero error since
	// it isn't planar; TargetError's zero value is a hard cap, not "no
	// limit", so nothing should move.
	positions, indices := tetrahedron()

	out := Simplify(indices, positions, 4, Options{TargetIndexCount: 0})

	assert.Equal(t, len(indices), len(out))
}

func TestSimplify_DegenerateCollinearQuad_ZeroTargetErrorStillFullyCollapses(t *testing.T) {
	// Four collinear points (both triangles zero-area, every border edge's
	// fin plane degenerate) give every vertex an identically zero quadric,
	// so a target error of zero still lets the quad collapse entirely.
	data := []float32{
		0, 0, 0,
		1, 0, 0,
		2, 0, 0,
		3, 0, 0,
	}
	indices := []uint32{
		0, 1, 2,
		0, 2, 3,
	}
	positions := Positions{Data: data, Stride: 12}

	out := Simplify(indices, positions, 4, Options{TargetIndexCount: 0})

	assert.Equal(t, 0, len(out))
}

func planarGrid(n int) (Positions, []uint32) {
	data := make([]float32, 0, n*n*3)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			data = append(data, float32(x), float32(y), 0)
		}
	}
	var indices []uint32
	for y := 0; y < n-1; y++ {
		for x := 0; x < n-1; x++ {
			v00 := uint32(y*n + x)
			v10 := uint32(y*n + x + 1)
			v01 := uint32((y+1)*n + x)
			v11 := uint32((y+1)*n + x + 1)
			indices = append(indices, v00, v10, v11, v00, v11, v01)
		}
	}
	return Positions{Data: data, Stride: 12}, indices
}

func TestSimplify_PlanarGrid_ReducesTowardTarget(t *testing.T) {
	// The whole grid lies in z=0, so collapsing the single interior
	// (Manifold) vertex onto a neighbor is zero-error; a target error of
	// zero still lets the mesh shrink below its starting index count.
	positions, indices := planarGrid(3)
	vertexCount := 9

	target := len(indices) / 2
	out := Simplify(indices, positions, vertexCount, Options{TargetIndexCount: target})

	assert.Less(t, len(out), len(indices))
	assert.Equal(t, 0, len(out)%3)
}

func TestSimplify_SharedEdge_TwoTriangles(t *testing.T) {
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

	out := Simplify(indices, positions, 4, Options{TargetIndexCount: 3})

	assert.Equal(t, 0, len(out)%3)
	assert.LessOrEqual(t, len(out), 6)
}

func TestSimplify_SeamMesh_ClassifiesSeamVerticesBeforeCollapsing(t *testing.T) {
	// Triangle (0,1,2) and triangle (1,3,4) share corner 1 directly and
	// share the opposite edge only by position (3==0, 4==2), the minimal
	// construction that the exact path recognizes as a genuine seam.
	data := []float32{
		0, 0, 0, // 0
		1, 0, 0, // 1
		0, 1, 0, // 2
		0, 0, 0, // 3 (== 0)
		0, 1, 0, // 4 (== 2)
	}
	indices := []uint32{
		0, 1, 2,
		1, 3, 4,
	}
	positions := Positions{Data: data, Stride: 12}

	var sinks DebugSinks
	sinks.VertexKind = make([]VertexKind, 5)

	out, _ := SimplifyWithStats(indices, positions, 5, Options{TargetIndexCount: 3}, &sinks)

	assert.Equal(t, 0, len(out)%3)
	assert.Equal(t, KindSeam, sinks.VertexKind[0])
	assert.Equal(t, KindSeam, sinks.VertexKind[2])
	assert.Equal(t, KindLocked, sinks.VertexKind[1])
}

func TestSimplify_DoesNotMutateCallerInput(t *testing.T) {
	positions, indices := tetrahedron()

	original := make([]uint32, len(indices))
	copy(original, indices)

	out := Simplify(indices, positions, 4, Options{TargetIndexCount: 0})

	require.NotEmpty(t, out)
	assert.Equal(t, original, indices, "Simplify must not write through the caller's slice")
}

func TestSimplify_TargetAboveInputCount_ReturnsInputUnchanged(t *testing.T) {
	positions, indices := tetrahedron()

	out := Simplify(indices, positions, 4, Options{TargetIndexCount: 1000})

	assert.Equal(t, len(indices), len(out))
}

func TestSimplify_EmptyInput(t *testing.T) {
	positions := Positions{Data: nil, Stride: 12}
	out := Simplify(nil, positions, 0, Options{TargetIndexCount: 0})
	assert.Empty(t, out)
}
