// Package scratch provides the bump-allocator contract that the simplifier
// core relies on: a handful of typed slice allocations per call, released
// together when the call returns. It never frees a single allocation early.
package scratch

import "unsafe"

// Arena hands out typed slices for the lifetime of one Simplify or
// SimplifySloppy call. There is no per-allocation free; call Release once,
// typically via defer, when the call is done with everything it allocated.
type Arena struct {
	allocations int
	bytes       int
}

// New returns an empty Arena ready for use.
func New() *Arena {
	return &Arena{}
}

// Alloc returns a zeroed slice of n elements of type T, tracked by the
// arena for the remainder of its lifetime.
func Alloc[T any](a *Arena, n int) []T {
	s := make([]T, n)
	a.allocations++
	a.bytes += n * sizeOf[T]()
	return s
}

// Allocations reports how many typed slices have been handed out since the
// arena was created or last released.
func (a *Arena) Allocations() int {
	return a.allocations
}

// Bytes reports an approximate total of bytes handed out, useful for
// trace logging peak usage against the O(vertex_count + index_count)
// budget spec'd for the core.
func (a *Arena) Bytes() int {
	return a.bytes
}

// Release drops the arena's bookkeeping. The underlying slices are left to
// the garbage collector, which is this implementation's substitute for the
// bulk-release-on-scope-exit contract the core expects of its allocator.
func (a *Arena) Release() {
	a.allocations = 0
	a.bytes = 0
}

func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
