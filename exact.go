package simplify

import (
	"github.com/uniqlow/meshoptimizer/internal/scratch"
)

// kPassErrorBound is the multiplier applied to the largest error tolerated
// by one pass's triangle budget before comparing it against the caller's
// TargetError; collapsing more aggressively than this per pass tends to
// overshoot the target by a visible margin.
const kPassErrorBound float32 = 1.5

// Simplify reduces indices toward opts.TargetIndexCount indices (a
// multiple of 3) via iterative quadric-error edge collapse, stopping early
// when opts.TargetError or a lack of collapsible edges prevents further
// progress. The result is a newly allocated slice; indices itself is not
// modified. positions must have at least as many vertices as indices
// references.
func Simplify(indices []uint32, positions Positions, vertexCount int, opts Options) []uint32 {
	out, _ := simplifyExact(indices, positions, vertexCount, opts, nil, nil)
	return out
}

// SimplifyWithStats behaves like Simplify but additionally reports pass
// counters and, if sinks is non-nil, per-vertex classification results.
func SimplifyWithStats(indices []uint32, positions Positions, vertexCount int, opts Options, sinks *DebugSinks) ([]uint32, Stats) {
	return simplifyExact(indices, positions, vertexCount, opts, sinks, nil)
}

func simplifyExact(indices []uint32, positions Positions, vertexCount int, opts Options, sinks *DebugSinks, _ any) ([]uint32, Stats) {
	log := loggerOrNoop(opts.Logger)
	var stats Stats

	arena := scratch.New()
	defer arena.Release()

	dst := scratch.Alloc[uint32](arena, len(indices))
	copy(dst, indices) // dst is a fresh buffer, so the caller's indices are never written

	if opts.TargetIndexCount >= len(dst) || len(dst) == 0 {
		return dst, stats
	}

	scaled := rescalePositions(arena, positions, vertexCount)

	remap, wedge := buildPositionRemap(arena, positions, vertexCount)
	adj := buildEdgeAdjacency(arena, dst, vertexCount)
	kind, loop := classifyVertices(arena, adj, remap, wedge, vertexCount)

	for _, k := range kind {
		stats.VertexKinds[k]++
	}
	if sinks != nil {
		if sinks.VertexKind != nil {
			copy(sinks.VertexKind, kind)
		}
		if sinks.Loop != nil {
			copy(sinks.Loop, loop)
		}
	}

	quadrics := scratch.Alloc[Quadric](arena, vertexCount)
	fillFaceQuadrics(quadrics, dst, scaled, remap)
	fillEdgeQuadrics(quadrics, dst, scaled, remap, kind, loop)

	collapseRemap := scratch.Alloc[uint32](arena, vertexCount)
	collapseLocked := scratch.Alloc[bool](arena, vertexCount)

	candidateBuf := make([]collapse, 0, len(dst))
	orderBuf := make([]uint32, 0, len(dst))

	resultCount := len(dst)

	for resultCount > opts.TargetIndexCount {
		for i := range collapseRemap {
			collapseRemap[i] = uint32(i)
		}
		for i := range collapseLocked {
			collapseLocked[i] = false
		}

		candidates := pickEdgeCollapses(candidateBuf, dst[:resultCount], remap, kind, loop)
		if len(candidates) == 0 {
			log.Tracef("simplify: pass %d found no candidates, stopping", stats.Passes)
			break
		}

		rankEdgeCollapses(candidates, scaled, quadrics, remap)
		order := sortEdgeCollapses(orderBuf, candidates)

		// Most collapses remove 2 triangles; use this to establish a bound
		// on the pass in terms of error limit. edgeGoal is an estimate,
		// triangleGoal is what actually limits collapses below.
		triangleGoal := (resultCount - opts.TargetIndexCount) / 3
		edgeGoal := triangleGoal / 2

		errorGoal := float32(3.4e38)
		if edgeGoal < len(order) {
			errorGoal = candidates[order[edgeGoal]].error * kPassErrorBound
		}
		errorLimit := opts.TargetError
		if errorGoal < opts.TargetError {
			errorLimit = errorGoal
		}

		applied := performEdgeCollapses(collapseRemap, collapseLocked, quadrics, candidates, order, remap, wedge, kind, triangleGoal, errorLimit)
		if applied == 0 {
			log.Tracef("simplify: pass %d applied no collapses, stopping", stats.Passes)
			break
		}

		resultCount = remapIndexBuffer(dst[:resultCount], collapseRemap)
		remapEdgeLoops(loop, collapseRemap)

		for i := range remap {
			remap[i] = collapseRemap[remap[i]]
		}

		stats.Passes++
		stats.EdgeCollapses += applied
		log.Tracef("simplify: pass %d collapsed %d edges, %d indices remain", stats.Passes, applied, resultCount)
	}

	return dst[:resultCount], stats
}
