// Package simplify reduces the triangle count of an indexed mesh while
// preserving its shape.
//
// Two algorithms are provided. Simplify runs an iterative quadric-error
// edge-collapse pass; it is slow but preserves topology and attribute
// seams carefully. SimplifySloppy clusters vertices into a spatial grid
// and is much faster but only loosely respects the requested target.
//
// Both operate purely on index buffers and a caller-owned position
// stream; neither touches the vertex buffer itself, so callers that want
// a compacted vertex buffer need to do that afterwards.
package simplify
