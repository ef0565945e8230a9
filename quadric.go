package simplify

import "math"

// Quadric is a symmetric 3x3 matrix A, a 3-vector b and a scalar c,
// together encoding xᵀAx + 2bᵀx + c. Evaluating it at a point gives the
// (non-negative, once error-masked) sum of squared signed distances to
// every plane accumulated into it, each weighted by the triangle area or
// (for edge quadrics) the squared edge length times a border/seam weight.
type Quadric struct {
	a00           float32
	a10, a11      float32
	a20, a21, a22 float32
	b0, b1, b2, c float32
}

func (q *Quadric) add(r Quadric) {
	q.a00 += r.a00
	q.a10 += r.a10
	q.a11 += r.a11
	q.a20 += r.a20
	q.a21 += r.a21
	q.a22 += r.a22
	q.b0 += r.b0
	q.b1 += r.b1
	q.b2 += r.b2
	q.c += r.c
}

func (q *Quadric) scale(s float32) {
	q.a00 *= s
	q.a10 *= s
	q.a11 *= s
	q.a20 *= s
	q.a21 *= s
	q.a22 *= s
	q.b0 *= s
	q.b1 *= s
	q.b2 *= s
	q.c *= s
}

func quadricFromPlane(a, b, c, d float32) Quadric {
	return Quadric{
		a00: a * a,
		a10: b * a, a11: b * b,
		a20: c * a, a21: c * b, a22: c * c,
		b0: d * a, b1: d * b, b2: d * c,
		c: d * d,
	}
}

// quadricFromTriangle builds the plane quadric of the triangle p0,p1,p2,
// scaled by the normal's pre-normalization length, which is twice the
// triangle's area.
func quadricFromTriangle(p0, p1, p2 vec3) Quadric {
	p10 := p1.sub(p0)
	p20 := p2.sub(p0)

	normal, area := normalize(cross(p10, p20))
	distance := normal.dot(p0)

	q := quadricFromPlane(normal.x, normal.y, normal.z, -distance)
	q.scale(area)
	return q
}

// quadricFromTriangleEdge builds a virtual plane quadric perpendicular to
// the triangle p0,p1,p2, passing through the edge p0-p1, weighted by the
// edge's squared length and the caller-supplied weight. Used to discourage
// border and seam edges from moving during collapse.
func quadricFromTriangleEdge(p0, p1, p2 vec3, weight float32) Quadric {
	p10 := p1.sub(p0)
	p10n, length := normalize(p10)

	p20 := p2.sub(p0)
	p20p := p20.dot(p10n)

	normal := vec3{
		p20.x - p10n.x*p20p,
		p20.y - p10n.y*p20p,
		p20.z - p10n.z*p20p,
	}
	normal, _ = normalize(normal)

	distance := normal.dot(p0)

	q := quadricFromPlane(normal.x, normal.y, normal.z, -distance)
	q.scale(length * length * weight)
	return q
}

// quadricError evaluates Q at v, taking the absolute value to mask tiny
// negative results that floating-point rounding can otherwise produce for
// a mathematically non-negative quantity.
func quadricError(q Quadric, v vec3) float32 {
	rx := q.b0
	ry := q.b1
	rz := q.b2

	rx += q.a10 * v.y
	ry += q.a21 * v.z
	rz += q.a20 * v.x

	rx *= 2
	ry *= 2
	rz *= 2

	rx += q.a00 * v.x
	ry += q.a11 * v.y
	rz += q.a22 * v.z

	r := q.c
	r += rx * v.x
	r += ry * v.y
	r += rz * v.z

	return float32(math.Abs(float64(r)))
}

const (
	edgeWeightSeam   float32 = 1
	edgeWeightBorder float32 = 10
)

func fillFaceQuadrics(quadrics []Quadric, indices []uint32, positions []vec3, remap []uint32) {
	for i := 0; i+3 <= len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]

		q := quadricFromTriangle(positions[i0], positions[i1], positions[i2])

		quadrics[remap[i0]].add(q)
		quadrics[remap[i1]].add(q)
		quadrics[remap[i2]].add(q)
	}
}

// fillEdgeQuadrics adds virtual edge-perpendicular quadrics along border
// and seam edges, weighted to discourage boundary motion. loop tracks the
// single half-edge each border/seam vertex sits on, so only i0->i1 pairs
// that agree with it contribute.
func fillEdgeQuadrics(quadrics []Quadric, indices []uint32, positions []vec3, remap []uint32, kind []VertexKind, loop []uint32) {
	for i := 0; i+3 <= len(indices); i += 3 {
		for e := 0; e < 3; e++ {
			i0 := indices[i+e]
			i1 := indices[i+triNext[e]]

			k0 := kind[i0]
			k1 := kind[i1]

			if k0 != k1 || (k0 != KindBorder && k0 != KindSeam) || loop[i0] != i1 {
				continue
			}

			i2 := indices[i+triNext[triNext[e]]]

			weight := edgeWeightBorder
			if k0 == KindSeam {
				weight = edgeWeightSeam
			}

			q := quadricFromTriangleEdge(positions[i0], positions[i1], positions[i2], weight)

			quadrics[remap[i0]].add(q)
			quadrics[remap[i1]].add(q)
		}
	}
}
