package simplify

// Positions is a read-only stream of 3D vertex positions. Only the first
// three float32 words at every Stride-byte slot are read; anything beyond
// that (normals, UVs, ...) is the caller's business.
type Positions struct {
	Data   []float32
	Stride int // bytes per vertex; 12 <= Stride <= 256, Stride % 4 == 0
}

func (p Positions) strideFloats() int {
	return p.Stride / 4
}

func (p Positions) at(i uint32) vec3 {
	off := int(i) * p.strideFloats()
	return vec3{p.Data[off], p.Data[off+1], p.Data[off+2]}
}

// GridSizingMode selects how the sloppy simplifier searches for a grid
// cell size. GridSizeBinary is the default; GridSizeContinuous is an
// alternate mode kept for parity with the reference implementation.
type GridSizingMode int

const (
	GridSizeBinary GridSizingMode = iota
	GridSizeContinuous
)

// Options configures a single Simplify or SimplifySloppy call.
type Options struct {
	// TargetIndexCount is the number of indices the caller would like to
	// see in the output; the algorithms stop once they reach it, or once
	// they can no longer make progress toward it.
	TargetIndexCount int

	// TargetError caps the per-collapse quadric error the exact path is
	// allowed to apply. It is ignored by SimplifySloppy, which has no
	// error-aware stopping condition (see SimplifySloppy).
	TargetError float32

	// GridSizing selects the sloppy path's cell-size search strategy.
	// Unused by Simplify.
	GridSizing GridSizingMode

	// FilterDuplicateTriangles makes the sloppy path drop triangles whose
	// three cell representatives match one already emitted. Off by
	// default, matching the reference's SLOP_FILTER_DUPLICATES=0 default;
	// unused by Simplify.
	FilterDuplicateTriangles bool

	// Logger receives low-volume diagnostic traces. A nil Logger, the
	// zero value, disables tracing entirely at no cost.
	Logger Logger
}

// DebugSinks optionally receives per-vertex diagnostics from the exact
// path at the end of the call. Either field may be nil to skip it. The
// sloppy path does not populate these, since it has no vertex
// classification step.
type DebugSinks struct {
	VertexKind []VertexKind
	Loop       []uint32
}

// Stats reports counters accumulated over one Simplify/SimplifySloppy
// call, useful for CLI reporting and tests; neither algorithm needs it to
// function.
type Stats struct {
	Passes        int     // exact path only
	EdgeCollapses int     // exact path only
	VertexKinds   [4]int  // exact path only, indexed by VertexKind
	CellCount     int     // sloppy path only
}
