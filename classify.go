package simplify

import "github.com/uniqlow/meshoptimizer/internal/scratch"

// VertexKind classifies a position-canonical vertex for collapse policy
// purposes. Non-canonical vertices inherit their canonical's kind.
type VertexKind uint8

const (
	KindManifold VertexKind = iota
	KindBorder
	KindSeam
	KindLocked

	kindCount
)

func (k VertexKind) String() string {
	switch k {
	case KindManifold:
		return "manifold"
	case KindBorder:
		return "border"
	case KindSeam:
		return "seam"
	case KindLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// kCanCollapse[src][dst] reports whether the half-edge src->dst may be
// collapsed, i.e. whether src may disappear into dst. A manifold src may
// collapse onto any dst, including a locked one (the locked vertex never
// moves, but other vertices can still merge into it); a border or seam
// src may only collapse onto a dst of its own kind, preserving boundaries
// and attribute seams; a locked src can never be the one that moves.
var kCanCollapse = [kindCount][kindCount]bool{
	KindManifold: {KindManifold: true, KindBorder: true, KindSeam: true, KindLocked: true},
	KindBorder:   {KindBorder: true},
	KindSeam:     {KindSeam: true},
	KindLocked:   {},
}

// kHasOpposite[src][dst] reports whether the half-edge src->dst is
// guaranteed to also be enumerated in the opposite direction, so the
// candidate picker can skip one of the two to avoid double counting.
var kHasOpposite = [kindCount][kindCount]bool{
	KindManifold: {KindManifold: true, KindBorder: true, KindSeam: true, KindLocked: true},
	KindBorder:   {KindManifold: true, KindSeam: true},
	KindSeam:     {KindManifold: true, KindBorder: true, KindSeam: true, KindLocked: true},
	KindLocked:   {KindManifold: true, KindSeam: true},
}

const loopSentinel = ^uint32(0)

// findWedgeEdge walks the wedge ring starting at a looking for a vertex
// with an outgoing half-edge to b, returning loopSentinel if the ring
// closes without finding one.
func findWedgeEdge(adj edgeAdjacency, wedge []uint32, a, b uint32) uint32 {
	v := a
	for {
		if adj.hasEdge(v, b) {
			return v
		}
		v = wedge[v]
		if v == a {
			return loopSentinel
		}
	}
}

// classifyVertices assigns each vertex a VertexKind and, for Border and
// Seam vertices, the single outgoing open half-edge it sits on.
func classifyVertices(arena *scratch.Arena, adj edgeAdjacency, remap, wedge []uint32, vertexCount int) (kind []VertexKind, loop []uint32) {
	kind = scratch.Alloc[VertexKind](arena, vertexCount)
	loop = scratch.Alloc[uint32](arena, vertexCount)
	for i := range loop {
		loop[i] = loopSentinel
	}

	for i := 0; i < vertexCount; i++ {
		vi := uint32(i)

		if remap[i] != vi {
			assertf(remap[i] < vi, "remap must point to an earlier canonical vertex")
			kind[i] = kind[remap[i]]
			continue
		}

		switch {
		case wedge[i] == vi:
			// no attribute seam: a pure manifold/border/locked check
			openCount, w := adj.countOpenEdges(vi)
			switch openCount {
			case 0:
				kind[i] = KindManifold
			case 1:
				kind[i] = KindBorder
				loop[i] = w
			default:
				kind[i] = KindLocked
			}

		case wedge[wedge[i]] == vi:
			// exactly two wedges: distinguish Seam from Locked
			aCount, a := adj.countOpenEdges(vi)
			bCount, b := adj.countOpenEdges(wedge[i])

			if aCount == 1 && bCount == 1 {
				ao := findWedgeEdge(adj, wedge, a, wedge[i])
				bo := findWedgeEdge(adj, wedge, b, vi)
				if ao != loopSentinel && bo != loopSentinel {
					kind[i] = KindSeam
					loop[i] = a
					loop[wedge[i]] = b
				} else {
					kind[i] = KindLocked
				}
			} else {
				kind[i] = KindLocked
			}

		default:
			// three or more wedges: no classification rule covers this
			kind[i] = KindLocked
		}
	}
	return
}
