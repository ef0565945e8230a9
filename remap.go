package simplify

import (
	"math"

	"github.com/uniqlow/meshoptimizer/internal/scratch"
)

const sentinel = ^uint32(0)

func hashBuckets(count int) int {
	buckets := 1
	for buckets < count {
		buckets *= 2
	}
	return buckets
}

// hashPosition computes MurmurHash2 over a vertex's three position words,
// taken as raw bit patterns rather than float values.
func hashPosition(p Positions, index uint32) uint32 {
	const m = 0x5bd1e995
	const r = 24

	off := int(index) * p.strideFloats()

	var h uint32
	for i := 0; i < 3; i++ {
		k := math.Float32bits(p.Data[off+i])
		k *= m
		k ^= k >> r
		k *= m

		h *= m
		h ^= k
	}
	return h
}

// positionsEqual compares the raw bit patterns of two vertices' first
// three position words, the same comparison MurmurHash2 keys on above.
// Note this is bit-pattern equality, not IEEE-754 value equality: -0 and
// +0 hash and compare as distinct, while a NaN does self-compare equal
// (its bits match its own bits) even though NaN != NaN under IEEE rules.
func positionsEqual(p Positions, lhs, rhs uint32) bool {
	sf := p.strideFloats()
	lo, ro := int(lhs)*sf, int(rhs)*sf
	return math.Float32bits(p.Data[lo]) == math.Float32bits(p.Data[ro]) &&
		math.Float32bits(p.Data[lo+1]) == math.Float32bits(p.Data[ro+1]) &&
		math.Float32bits(p.Data[lo+2]) == math.Float32bits(p.Data[ro+2])
}

// buildPositionRemap interns vertex positions into a power-of-two open
// addressed hash table (quadratic probing, stride probe+1) and derives
// two per-vertex arrays: remap[i] is the lowest-indexed vertex sharing
// i's position, and wedge[i] cycles through every vertex at that
// position.
func buildPositionRemap(arena *scratch.Arena, positions Positions, vertexCount int) (remap, wedge []uint32) {
	tableSize := hashBuckets(vertexCount)
	table := scratch.Alloc[uint32](arena, tableSize)
	for i := range table {
		table[i] = sentinel
	}
	mask := uint32(tableSize - 1)

	remap = scratch.Alloc[uint32](arena, vertexCount)
	for i := 0; i < vertexCount; i++ {
		idx := uint32(i)
		bucket := hashPosition(positions, idx) & mask

		for probe := uint32(0); ; probe++ {
			if table[bucket] == sentinel {
				table[bucket] = idx
				break
			}
			if positionsEqual(positions, table[bucket], idx) {
				break
			}
			bucket = (bucket + probe + 1) & mask
		}
		assertf(table[bucket] != sentinel, "position hash table overflowed")

		remap[i] = table[bucket]
	}

	wedge = scratch.Alloc[uint32](arena, vertexCount)
	for i := range wedge {
		wedge[i] = uint32(i)
	}
	for i := 0; i < vertexCount; i++ {
		if remap[i] != uint32(i) {
			r := remap[i]
			wedge[i] = wedge[r]
			wedge[r] = uint32(i)
		}
	}
	return
}
