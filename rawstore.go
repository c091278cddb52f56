package vec

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/offheap/vec/alloc"
)

// rawStore owns one allocator block sized for cap elements of T. It
// tracks no element count: which slots hold live values is entirely the
// container's business, and the store never reads or writes element
// contents on its own.
type rawStore[T any] struct {
	ptr       unsafe.Pointer // nil while cap == 0; never dereferenced then
	cap       int            // slots in the block
	elemSize  uintptr
	elemAlign uintptr
	alloc     alloc.Allocator
	grows     uint64 // growth steps performed
}

func newRawStore[T any](a alloc.Allocator) rawStore[T] {
	var zero T
	return rawStore[T]{
		elemSize:  unsafe.Sizeof(zero),
		elemAlign: unsafe.Alignof(zero),
		alloc:     a,
	}
}

// maxCap returns the largest capacity whose byte size still fits the
// platform's addressable offset range.
func (s *rawStore[T]) maxCap() int {
	return int(uintptr(math.MaxInt) / s.elemSize)
}

// grow makes room for at least one more element: an empty store gets a
// single slot, any other store doubles.
func (s *rawStore[T]) grow() {
	s.growTo(s.cap + 1)
}

// growTo raises capacity to at least minCap by repeated doubling from
// the current capacity, so appends stay amortized O(1) no matter how the
// target was reached. ptr and cap change together and only after the
// allocator has succeeded; on failure the store is untouched and the
// dedicated abort path runs.
func (s *rawStore[T]) growTo(minCap int) {
	if minCap <= s.cap {
		return
	}
	newCap := s.cap
	if newCap == 0 {
		newCap = 1
	}
	for newCap < minCap {
		newCap <<= 1
		if newCap <= 0 {
			panicCapOverflow()
		}
	}
	if newCap > s.maxCap() {
		panicCapOverflow()
	}

	newBytes := uintptr(newCap) * s.elemSize
	var p unsafe.Pointer
	if s.cap == 0 {
		p = s.alloc.Allocate(newBytes, s.elemAlign)
	} else {
		p = s.alloc.Reallocate(s.ptr, uintptr(s.cap)*s.elemSize, newBytes)
	}
	if p == nil {
		panicNoMemory(newBytes)
	}
	s.ptr = p
	s.cap = newCap
	s.grows++
}

// free returns the block to the allocator and leaves the store empty.
// Element contents are never touched: dropping live elements first is
// the container's responsibility.
func (s *rawStore[T]) free() {
	if s.cap > 0 {
		s.alloc.Deallocate(s.ptr, uintptr(s.cap)*s.elemSize, s.elemAlign)
	}
	s.ptr = nil
	s.cap = 0
}

// slot returns the address of slot i. The slot may be uninitialized;
// whether reading it is legal is the caller's call.
func (s *rawStore[T]) slot(i int) unsafe.Pointer {
	return unsafe.Add(s.ptr, uintptr(i)*s.elemSize)
}

// view exposes the first n slots as []T for bulk moves. n must not
// exceed cap, and the slice must not outlive the next growth.
func (s *rawStore[T]) view(n int) []T {
	return unsafe.Slice((*T)(s.ptr), n)
}

// panicNoMemory is the terminal handler for allocator exhaustion. By
// contract a failed growth is fatal, never a recoverable error.
func panicNoMemory(bytes uintptr) {
	panic(fmt.Sprintf("vec: cannot allocate %d bytes", bytes))
}

func panicCapOverflow() {
	panic("vec: capacity overflows addressable memory")
}
