//go:build linux

package alloc

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Mmap allocates each block as its own anonymous private mapping. Blocks
// live outside the Go heap entirely, so the garbage collector never
// scans or moves them. The kernel rounds every request up to whole
// pages, which makes this backend a poor fit for small blocks and a good
// fit for large, long-lived ones.
//
// Page alignment satisfies any align a Go type can require.
type Mmap struct {
	mu      sync.Mutex
	regions map[uintptr][]byte
}

// NewMmap creates an mmap-backed allocator.
func NewMmap() *Mmap {
	return &Mmap{regions: make(map[uintptr][]byte)}
}

// Allocate maps a fresh zeroed region of size bytes.
func (m *Mmap) Allocate(size, align uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	b, err := unix.Mmap(-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil
	}
	p := unsafe.Pointer(&b[0])
	m.mu.Lock()
	m.regions[uintptr(p)] = b
	m.mu.Unlock()
	return p
}

// Reallocate resizes the region at p with mremap, letting the kernel
// move the mapping when it cannot grow in place. Panics if p does not
// belong to this allocator.
func (m *Mmap) Reallocate(p unsafe.Pointer, oldSize, newSize uintptr) unsafe.Pointer {
	if newSize == 0 {
		return nil
	}
	m.mu.Lock()
	old, ok := m.regions[uintptr(p)]
	m.mu.Unlock()
	if !ok {
		panic("alloc: Reallocate of unknown region")
	}

	nb, err := unix.Mremap(old, int(newSize), unix.MREMAP_MAYMOVE)
	if err != nil {
		return nil
	}
	np := unsafe.Pointer(&nb[0])

	m.mu.Lock()
	delete(m.regions, uintptr(p))
	m.regions[uintptr(np)] = nb
	m.mu.Unlock()
	return np
}

// Deallocate unmaps the region at p. Panics if p is non-nil and does not
// belong to this allocator.
func (m *Mmap) Deallocate(p unsafe.Pointer, size, align uintptr) {
	if p == nil {
		return
	}
	m.mu.Lock()
	b, ok := m.regions[uintptr(p)]
	delete(m.regions, uintptr(p))
	m.mu.Unlock()
	if !ok {
		panic("alloc: Deallocate of unknown region")
	}
	// Unmapping an owned region cannot meaningfully fail.
	_ = unix.Munmap(b)
}

// Regions returns the number of live mappings. Useful for leak checks in
// tests.
func (m *Mmap) Regions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.regions)
}
