package simplify

import "github.com/uniqlow/meshoptimizer/internal/scratch"

// edgeAdjacency is a compressed-sparse-row table of outgoing half-edges:
// vertex v has counts[v] half-edges starting at data[offsets[v]].
type edgeAdjacency struct {
	counts  []uint32
	offsets []uint32
	data    []uint32
}

var triNext = [3]int{1, 2, 0}

func buildEdgeAdjacency(arena *scratch.Arena, indices []uint32, vertexCount int) edgeAdjacency {
	counts := scratch.Alloc[uint32](arena, vertexCount)
	offsets := scratch.Alloc[uint32](arena, vertexCount)
	data := scratch.Alloc[uint32](arena, len(indices))

	for _, idx := range indices {
		assertf(int(idx) < vertexCount, "index %d out of range for %d vertices", idx, vertexCount)
		counts[idx]++
	}

	var offset uint32
	for i, c := range counts {
		offsets[i] = offset
		offset += c
	}
	assertf(int(offset) == len(indices), "adjacency offsets must cover every index")

	faceCount := len(indices) / 3
	for f := 0; f < faceCount; f++ {
		a, b, c := indices[f*3], indices[f*3+1], indices[f*3+2]

		data[offsets[a]] = b
		offsets[a]++
		data[offsets[b]] = c
		offsets[b]++
		data[offsets[c]] = a
		offsets[c]++
	}

	// the write loop consumed offsets as cursors; rewind them back to the
	// start of each vertex's block
	for i, c := range counts {
		offsets[i] -= c
	}

	return edgeAdjacency{counts: counts, offsets: offsets, data: data}
}

func (e edgeAdjacency) hasEdge(a, b uint32) bool {
	start := e.offsets[a]
	n := e.counts[a]
	for i := uint32(0); i < n; i++ {
		if e.data[start+i] == b {
			return true
		}
	}
	return false
}

// countOpenEdges returns how many of v's outgoing half-edges have no
// matching reverse half-edge, plus the last such neighbor (used by
// classifyVertices to find a border/seam loop direction).
func (e edgeAdjacency) countOpenEdges(v uint32) (count int, last uint32) {
	start := e.offsets[v]
	n := e.counts[v]
	for i := uint32(0); i < n; i++ {
		w := e.data[start+i]
		if !e.hasEdge(w, v) {
			count++
			last = w
		}
	}
	return
}
