//go:build malloc_cgo

package alloc

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

// Malloc allocates through the C allocator. Build with -tags malloc_cgo
// to enable it. Blocks live outside the Go heap, so the garbage
// collector never scans or moves them and no pinning is needed.
//
// The C allocator aligns blocks for any fundamental type, which covers
// every align a Go type can require.
type Malloc struct{}

// NewMalloc creates a C-heap allocator.
func NewMalloc() *Malloc {
	return &Malloc{}
}

// Allocate returns a fresh zeroed block of size bytes, or nil when the C
// allocator is out of memory.
func (*Malloc) Allocate(size, align uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	// calloc rather than malloc: it zeroes the block and, unlike
	// cgo's C.malloc wrapper, reports exhaustion as nil instead of
	// aborting the process.
	return C.calloc(1, C.size_t(size))
}

// Reallocate resizes the block at p in place when the C allocator can,
// moving it otherwise. Returns nil on exhaustion with the original block
// intact.
func (*Malloc) Reallocate(p unsafe.Pointer, oldSize, newSize uintptr) unsafe.Pointer {
	if newSize == 0 {
		return nil
	}
	return C.realloc(p, C.size_t(newSize))
}

// Deallocate returns the block at p to the C allocator.
func (*Malloc) Deallocate(p unsafe.Pointer, size, align uintptr) {
	C.free(p)
}
