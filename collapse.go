package simplify

import "math"

// collapse is a candidate directed edge collapse. bidi and error occupy
// the same logical slot across the pipeline's stages the way the
// reference implementation's union does: pickEdgeCollapses sets bidi and
// leaves error untouched, rankEdgeCollapses reads bidi once, overwrites
// v0/v1 with the winning direction and sets error, and everything after
// that only ever reads error. Keeping them as two named fields (rather
// than reinterpreting one word) costs 4 bytes per candidate and avoids
// unsafe tricks for no real benefit in Go.
type collapse struct {
	v0, v1 uint32
	bidi   bool
	error  float32
}

// pickEdgeCollapses scans every directed half-edge of every triangle and
// emits a collapse candidate for each one that kind compatibility allows,
// skipping the redundant direction for edges guaranteed to appear twice.
// buf is reused across passes; its capacity must be at least len(indices).
func pickEdgeCollapses(buf []collapse, indices []uint32, remap []uint32, kind []VertexKind, loop []uint32) []collapse {
	out := buf[:0]

	for i := 0; i+3 <= len(indices); i += 3 {
		for e := 0; e < 3; e++ {
			i0 := indices[i+e]
			i1 := indices[i+triNext[e]]

			// a zero-length edge, or one already collapsed in an earlier pass
			if remap[i0] == remap[i1] {
				continue
			}

			k0 := kind[i0]
			k1 := kind[i1]

			if !(kCanCollapse[k0][k1] || kCanCollapse[k1][k0]) {
				continue
			}

			if kHasOpposite[k0][k1] && remap[i1] > remap[i0] {
				continue
			}

			if k0 == k1 && (k0 == KindBorder || k0 == KindSeam) && loop[i0] != i1 {
				continue
			}

			if kCanCollapse[k0][k1] && kCanCollapse[k1][k0] {
				out = append(out, collapse{v0: i0, v1: i1, bidi: true})
			} else {
				e0, e1 := i0, i1
				if !kCanCollapse[k0][k1] {
					e0, e1 = i1, i0
				}
				out = append(out, collapse{v0: e0, v1: e1})
			}
		}
	}
	return out
}

// rankEdgeCollapses evaluates the quadric error of each candidate at its
// target position. Bidirectional candidates are evaluated both ways and
// the cheaper direction wins.
func rankEdgeCollapses(cs []collapse, positions []vec3, quadrics []Quadric, remap []uint32) {
	for idx := range cs {
		c := &cs[idx]

		i0, i1 := c.v0, c.v1
		j0, j1 := i0, i1
		if c.bidi {
			j0, j1 = i1, i0
		}

		ei := quadricError(quadrics[remap[i0]], positions[i1])
		ej := quadricError(quadrics[remap[j0]], positions[j1])

		if ei <= ej {
			c.v0, c.v1, c.error = i0, i1, ei
		} else {
			c.v0, c.v1, c.error = j0, j1, ej
		}
		c.bidi = false
	}
}

const sortBits = 11
const sortBuckets = 1 << sortBits

// radixKey takes the top 11 bits of a non-negative float32's bit pattern
// after shifting out the always-zero sign bit, preserving numeric order.
func radixKey(e float32) uint32 {
	bits := math.Float32bits(e)
	return (bits << 1) >> (32 - sortBits)
}

// sortEdgeCollapses produces, in order, ascending by error, via a single
// counting-sort pass keyed on radixKey. buf is reused across passes; its
// capacity must be at least len(cs).
func sortEdgeCollapses(buf []uint32, cs []collapse) []uint32 {
	var histogram [sortBuckets]uint32
	for i := range cs {
		histogram[radixKey(cs[i].error)]++
	}

	var sum uint32
	for i, count := range histogram {
		histogram[i] = sum
		sum += count
	}

	order := buf[:len(cs)]
	for i := range cs {
		key := radixKey(cs[i].error)
		order[histogram[key]] = uint32(i)
		histogram[key]++
	}
	return order
}

// performEdgeCollapses walks order (ascending error) and greedily applies
// collapses, locking each touched position-canonical vertex so it is
// moved at most once per pass. It returns the number of edge collapses
// actually applied.
func performEdgeCollapses(collapseRemap []uint32, collapseLocked []bool, quadrics []Quadric, cs []collapse, order []uint32, remap, wedge []uint32, kind []VertexKind, triangleGoal int, errorLimit float32) int {
	edgeCollapses := 0
	triangleCollapses := 0

	for _, oi := range order {
		c := cs[oi]

		if c.error > errorLimit {
			break
		}
		if triangleCollapses >= triangleGoal {
			break
		}

		i0, i1 := c.v0, c.v1
		r0, r1 := remap[i0], remap[i1]

		if collapseLocked[r0] || collapseLocked[r1] {
			continue
		}
		assertf(collapseRemap[r0] == r0, "r0 must not have been remapped yet this pass")
		assertf(collapseRemap[r1] == r1, "r1 must not have been remapped yet this pass")

		quadrics[r1].add(quadrics[r0])

		if kind[i0] == KindSeam {
			s0, s1 := wedge[i0], wedge[i1]
			assertf(s0 != i0 && s1 != i1, "seam vertices must have a distinct wedge partner")
			assertf(wedge[s0] == i0 && wedge[s1] == i1, "seam wedge partners must point back")

			collapseRemap[i0] = i1
			collapseRemap[s0] = s1
		} else {
			assertf(wedge[i0] == i0, "non-seam collapse source must be position-unique")
			collapseRemap[i0] = i1
		}

		collapseLocked[r0] = true
		collapseLocked[r1] = true

		if kind[i0] == KindBorder {
			triangleCollapses++
		} else {
			triangleCollapses += 2
		}
		edgeCollapses++
	}

	return edgeCollapses
}

// remapIndexBuffer substitutes collapseRemap into every corner of indices
// in place, dropping any triangle that degenerates, and returns the new
// logical length.
func remapIndexBuffer(indices []uint32, collapseRemap []uint32) int {
	write := 0
	for i := 0; i+3 <= len(indices); i += 3 {
		v0 := collapseRemap[indices[i]]
		v1 := collapseRemap[indices[i+1]]
		v2 := collapseRemap[indices[i+2]]

		assertf(collapseRemap[v0] == v0, "a vertex must not move twice in one pass")
		assertf(collapseRemap[v1] == v1, "a vertex must not move twice in one pass")
		assertf(collapseRemap[v2] == v2, "a vertex must not move twice in one pass")

		if v0 != v1 && v0 != v2 && v1 != v2 {
			indices[write] = v0
			indices[write+1] = v1
			indices[write+2] = v2
			write += 3
		}
	}
	return write
}

// remapEdgeLoops rewrites the loop table through collapseRemap. The i==r
// case arises when a seam edge was collapsed in the direction opposite to
// where its loop points; in that case the loop target itself moved, so
// loop[i] must follow loop[l] instead of collapsing to a self-loop.
func remapEdgeLoops(loop []uint32, collapseRemap []uint32) {
	for i := range loop {
		if loop[i] == loopSentinel {
			continue
		}
		l := loop[i]
		r := collapseRemap[l]

		if uint32(i) == r {
			loop[i] = loop[l]
		} else {
			loop[i] = r
		}
	}
}
