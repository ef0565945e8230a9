package simplify

import "math"

// MeshArea sums the area of every triangle in indices over positions. It
// is a trivial companion to the quadric face-area computation already
// needed internally, exposed for CLI reporting (before/after surface area
// is a useful sanity check that a simplification didn't over-collapse).
func MeshArea(positions Positions, indices []uint32) float64 {
	var total float64
	for i := 0; i+3 <= len(indices); i += 3 {
		p0 := positions.at(indices[i])
		p1 := positions.at(indices[i+1])
		p2 := positions.at(indices[i+2])

		n := cross(p1.sub(p0), p2.sub(p0))
		length := math.Sqrt(float64(n.dot(n)))
		total += length * 0.5
	}
	return total
}
