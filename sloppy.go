package simplify

import (
	"math"

	"github.com/uniqlow/meshoptimizer/internal/scratch"
)

const (
	slopGridBits     = 10
	slopGridSize     = 1 << slopGridBits
	slopGridMask     = slopGridSize - 1
	slopCellMin      = float32(1.0 / 1024)
	slopCellMax      = float32(1.0)
	slopBisectPasses = 10
)

// clampCoord maps a scaled coordinate to a [0, slopGridSize-1] integer grid
// coordinate, rounding to nearest rather than truncating toward zero.
func clampCoord(v, cellScale float32) uint32 {
	c := int32(v*cellScale + 0.5)
	if c < 0 {
		c = 0
	}
	if c > slopGridMask {
		c = slopGridMask
	}
	return uint32(c)
}

// cellID packs three 10-bit grid coordinates into a single key, the same
// layout used by the approximate cell-count bitset below. cellScale is
// clamped the way the reference clamps it: above 1023.5 the grid can't
// resolve any finer, and below 0.5 every coordinate collapses to cell 0.
func cellID(v vec3, cellSize float32) uint32 {
	cellScale := float32(1) / cellSize
	if cellScale > 1023.5 {
		cellScale = 1023.5
	} else if cellScale < 0.5 {
		cellScale = 0
	}
	xi := clampCoord(v.x, cellScale)
	yi := clampCoord(v.y, cellScale)
	zi := clampCoord(v.z, cellScale)
	return (xi << 20) | (yi << 10) | zi
}

// approxCellCount estimates how many distinct cells a given cellSize would
// produce without building the full mapping, via a single-bit table
// indexed by a second, cheaper hash of the cell id; collisions only ever
// cause undercounting, which is fine for a bisection search.
func approxCellCount(arena *scratch.Arena, positions []vec3, cellSize float32) int {
	const bits = 14
	const size = 1 << bits
	const mask = size - 1

	seen := scratch.Alloc[bool](arena, size)
	count := 0
	for _, p := range positions {
		id := cellID(p, cellSize)
		h := murmurFinalize(id) & mask
		if !seen[h] {
			seen[h] = true
			count++
		}
	}
	return count
}

func murmurFinalize(k uint32) uint32 {
	k ^= k >> 16
	k *= 0x85ebca6b
	k ^= k >> 13
	k *= 0xc2b2ae35
	k ^= k >> 16
	return k
}

// gridSizeBinary searches for a cell size giving at least targetCells
// distinct cells. Positions are quantized once, at the grid's finest
// 10-bit-per-axis resolution, and successive passes mask off a decreasing
// number of low bits per axis (9 down to 0) rather than re-quantizing at a
// new scale; this walks the same coarse-to-fine sequence of grid
// resolutions as a rescaled re-quantization would. A finer mask can only
// split cells, never merge them, so the count is monotonic across passes.
// The search stops at the first pass whose (approximate) count reaches
// targetCells; if no pass does, the finest cell size is returned.
func gridSizeBinary(arena *scratch.Arena, positions []vec3, targetCells int) float32 {
	const maxScale = float32(1023.5)

	quantized := scratch.Alloc[[3]uint32](arena, len(positions))
	for i, p := range positions {
		quantized[i] = [3]uint32{
			clampCoord(p.x, maxScale),
			clampCoord(p.y, maxScale),
			clampCoord(p.z, maxScale),
		}
	}

	cellSize := slopCellMax
	for bits := 1; bits <= slopGridBits; bits++ {
		shift := uint32(slopGridBits - bits)
		cellSize = slopCellMax / float32(uint32(1)<<uint32(bits))

		count := countMaskedCells(arena, quantized, shift)
		if count >= targetCells {
			break
		}
	}
	return cellSize
}

// countMaskedCells estimates the number of distinct cells after dropping
// the bottom shift bits of each axis's quantized coordinate, using the
// same single-bit hashed table as approxCellCount (collisions can only
// undercount). This is the mask-subdivision step
// gridSizeBinary walks from coarse (large shift) to fine (shift 0).
func countMaskedCells(arena *scratch.Arena, quantized [][3]uint32, shift uint32) int {
	const bits = 14
	const size = 1 << bits
	const mask = size - 1

	seen := scratch.Alloc[bool](arena, size)
	count := 0
	for _, q := range quantized {
		xi := q[0] >> shift
		yi := q[1] >> shift
		zi := q[2] >> shift
		id := (xi << 20) | (yi << 10) | zi

		h := murmurFinalize(id) & mask
		if !seen[h] {
			seen[h] = true
			count++
		}
	}
	return count
}

// gridSizeContinuous performs a fixed number of bisection passes over the
// continuous cell-size range, rather than snapping to power-of-two grid
// resolutions; it can land closer to targetCells at the cost of doing the
// same number of passes regardless of how close binary search would have
// converged.
func gridSizeContinuous(arena *scratch.Arena, positions []vec3, targetCells int) float32 {
	lo, hi := slopCellMin, slopCellMax

	for pass := 0; pass < slopBisectPasses; pass++ {
		mid := (lo + hi) / 2
		count := approxCellCount(arena, positions, mid)
		if count > targetCells {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// SimplifySloppy reduces indices to roughly opts.TargetIndexCount indices
// by clustering vertices into a spatial grid and picking one representative
// vertex per cell, without regard for topology or
// attribute seams. It is much faster than Simplify but only loosely
// respects the target and TargetError is not consulted.
func SimplifySloppy(indices []uint32, positions Positions, vertexCount int, opts Options) []uint32 {
	out, _ := simplifySloppy(indices, positions, vertexCount, opts)
	return out
}

// SimplifySloppyWithStats behaves like SimplifySloppy but additionally
// reports the number of grid cells used.
func SimplifySloppyWithStats(indices []uint32, positions Positions, vertexCount int, opts Options) ([]uint32, Stats) {
	return simplifySloppy(indices, positions, vertexCount, opts)
}

func simplifySloppy(indices []uint32, positions Positions, vertexCount int, opts Options) ([]uint32, Stats) {
	log := loggerOrNoop(opts.Logger)
	var stats Stats

	arena := scratch.New()
	defer arena.Release()

	if opts.TargetIndexCount >= len(indices) || len(indices) == 0 {
		dst := scratch.Alloc[uint32](arena, len(indices))
		copy(dst, indices)
		return dst, stats
	}

	dst := scratch.Alloc[uint32](arena, len(indices))

	scaled := rescalePositions(arena, positions, vertexCount)

	targetCells := opts.TargetIndexCount / 6
	if targetCells < 1 {
		targetCells = 1
	}

	var cellSize float32
	if opts.GridSizing == GridSizeContinuous {
		cellSize = gridSizeContinuous(arena, scaled, targetCells)
	} else {
		cellSize = gridSizeBinary(arena, scaled, targetCells)
	}

	cellOf := scratch.Alloc[uint32](arena, vertexCount)
	cellTable := make(map[uint32]int, targetCells*2)
	cellQuadric := make([]Quadric, 0, targetCells*2)
	cellBest := make([]uint32, 0, targetCells*2)
	cellBestError := make([]float32, 0, targetCells*2)

	for i := 0; i < vertexCount; i++ {
		id := cellID(scaled[i], cellSize)
		idx, ok := cellTable[id]
		if !ok {
			idx = len(cellQuadric)
			cellTable[id] = idx
			cellQuadric = append(cellQuadric, Quadric{})
			cellBest = append(cellBest, uint32(i))
			cellBestError = append(cellBestError, float32(math.MaxFloat32))
		}
		cellOf[i] = uint32(idx)
	}
	stats.CellCount = len(cellQuadric)

	fillFaceQuadrics(cellQuadric, indices, scaled, cellOf)

	for i := 0; i < vertexCount; i++ {
		c := cellOf[i]
		e := quadricError(cellQuadric[c], scaled[i])
		if e < cellBestError[c] {
			cellBestError[c] = e
			cellBest[c] = uint32(i)
		}
	}

	write := 0
	var seenTriangles map[[3]uint32]struct{}
	for i := 0; i+3 <= len(indices); i += 3 {
		c0 := cellBest[cellOf[indices[i]]]
		c1 := cellBest[cellOf[indices[i+1]]]
		c2 := cellBest[cellOf[indices[i+2]]]

		if c0 == c1 || c0 == c2 || c1 == c2 {
			continue
		}

		if opts.FilterDuplicateTriangles {
			// Rotate the smallest cell rep to position 0 instead of
			// sorting, so winding survives canonicalization and (a,b,c)
			// isn't conflated with its opposite-winding twin (a,c,b).
			var key [3]uint32
			switch {
			case c0 < c1 && c0 < c2:
				key = [3]uint32{c0, c1, c2}
			case c1 < c0 && c1 < c2:
				key = [3]uint32{c1, c2, c0}
			default:
				key = [3]uint32{c2, c0, c1}
			}
			if seenTriangles == nil {
				seenTriangles = make(map[[3]uint32]struct{})
			}
			if _, dup := seenTriangles[key]; dup {
				continue
			}
			seenTriangles[key] = struct{}{}
		}

		dst[write] = c0
		dst[write+1] = c1
		dst[write+2] = c2
		write += 3
	}

	log.Tracef("simplify_sloppy: %d cells, %d indices out of %d requested", stats.CellCount, write, opts.TargetIndexCount)

	return dst[:write], stats
}
