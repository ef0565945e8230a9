package simplify

import (
	"math"

	"github.com/uniqlow/meshoptimizer/internal/scratch"
)

// rescalePositions copies the position stream into a dense vec3 array
// rescaled so every coordinate lies in [0, 1], using the largest axis
// extent as the common scale so relative proportions are preserved. A
// degenerate (zero-extent) input yields an all-zero scale, which is safe.
func rescalePositions(arena *scratch.Arena, raw Positions, vertexCount int) []vec3 {
	out := scratch.Alloc[vec3](arena, vertexCount)

	minv := [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	maxv := [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}

	for i := 0; i < vertexCount; i++ {
		v := raw.at(uint32(i))
		out[i] = v

		if v.x < minv[0] {
			minv[0] = v.x
		}
		if v.x > maxv[0] {
			maxv[0] = v.x
		}
		if v.y < minv[1] {
			minv[1] = v.y
		}
		if v.y > maxv[1] {
			maxv[1] = v.y
		}
		if v.z < minv[2] {
			minv[2] = v.z
		}
		if v.z > maxv[2] {
			maxv[2] = v.z
		}
	}

	var extent float32
	if e := maxv[0] - minv[0]; e > extent {
		extent = e
	}
	if e := maxv[1] - minv[1]; e > extent {
		extent = e
	}
	if e := maxv[2] - minv[2]; e > extent {
		extent = e
	}

	var scale float32
	if extent != 0 {
		scale = 1 / extent
	}

	for i := range out {
		out[i].x = (out[i].x - minv[0]) * scale
		out[i].y = (out[i].y - minv[1]) * scale
		out[i].z = (out[i].z - minv[2]) * scale
	}
	return out
}
