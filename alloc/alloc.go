// Package alloc provides raw memory blocks for containers that manage
// element lifetimes themselves. Typical usage: hand an Allocator to a
// container at construction time and let the container grow, shrink and
// free its backing storage through it.
package alloc

import (
	"sync"
	"unsafe"
)

// Allocator hands out raw, untyped memory blocks. Implementations report
// failure by returning nil; they never panic on exhaustion. Deciding
// whether an allocation failure is fatal belongs to the caller.
//
// All methods are safe for concurrent use.
type Allocator interface {
	// Allocate returns a block of at least size bytes aligned to align,
	// or nil if the request cannot be satisfied. size must be positive
	// and a multiple of align; align must be a power of two.
	Allocate(size, align uintptr) unsafe.Pointer

	// Reallocate resizes the block at p, previously allocated with
	// oldSize bytes, to newSize bytes. The first min(oldSize, newSize)
	// bytes are preserved. The returned pointer may differ from p, in
	// which case p is no longer valid. Returns nil if the request cannot
	// be satisfied; the original block stays intact then.
	Reallocate(p unsafe.Pointer, oldSize, newSize uintptr) unsafe.Pointer

	// Deallocate releases the block at p. size and align must match the
	// values the block was last allocated or reallocated with.
	// Deallocate(nil, ...) is a no-op.
	Deallocate(p unsafe.Pointer, size, align uintptr)
}

// Default is the allocator used when a container is built without an
// explicit one.
var Default Allocator = NewHeap()

// Heap allocates blocks from the Go heap. Each block is pinned in a
// registry so the garbage collector keeps it alive while callers hold
// only raw pointers into it.
//
// Blocks come from make([]byte, size). The runtime aligns a byte block
// to the largest power-of-two divisor of its size, capped at 8; since
// Allocate requires size to be a multiple of align, that divisor never
// falls below align.
type Heap struct {
	mu     sync.Mutex
	blocks map[uintptr][]byte
}

// NewHeap creates an empty heap allocator.
func NewHeap() *Heap {
	return &Heap{blocks: make(map[uintptr][]byte)}
}

// Allocate returns a fresh zeroed block of size bytes.
func (h *Heap) Allocate(size, align uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	buf := make([]byte, size)
	p := unsafe.Pointer(&buf[0])
	h.mu.Lock()
	h.blocks[uintptr(p)] = buf
	h.mu.Unlock()
	return p
}

// Reallocate moves the block at p into a new block of newSize bytes.
// The Go heap cannot grow an allocation in place, so this always
// allocates and copies. Panics if p does not belong to this allocator.
func (h *Heap) Reallocate(p unsafe.Pointer, oldSize, newSize uintptr) unsafe.Pointer {
	if newSize == 0 {
		return nil
	}
	buf := make([]byte, newSize)
	np := unsafe.Pointer(&buf[0])

	h.mu.Lock()
	old, ok := h.blocks[uintptr(p)]
	if !ok {
		h.mu.Unlock()
		panic("alloc: Reallocate of unknown block")
	}
	delete(h.blocks, uintptr(p))
	h.blocks[uintptr(np)] = buf
	h.mu.Unlock()

	copy(buf, old[:min(oldSize, newSize)])
	return np
}

// Deallocate unpins the block at p, returning it to the garbage
// collector. Panics if p is non-nil and does not belong to this
// allocator; that catches double frees and frees of foreign pointers.
func (h *Heap) Deallocate(p unsafe.Pointer, size, align uintptr) {
	if p == nil {
		return
	}
	h.mu.Lock()
	_, ok := h.blocks[uintptr(p)]
	delete(h.blocks, uintptr(p))
	h.mu.Unlock()
	if !ok {
		panic("alloc: Deallocate of unknown block")
	}
}

// Blocks returns the number of live blocks. Useful for leak checks in
// tests.
func (h *Heap) Blocks() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.blocks)
}
