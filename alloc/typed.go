package alloc

import "unsafe"

// New allocates storage for one T from a and returns a typed pointer to
// it, zeroed regardless of what the allocator handed back. Returns nil
// if the allocation fails. Zero-sized types come from the Go heap, since
// they occupy no allocator space.
func New[T any](a Allocator) *T {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return new(T)
	}
	p := a.Allocate(size, unsafe.Alignof(zero))
	if p == nil {
		return nil
	}
	t := (*T)(p)
	*t = zero
	return t
}

// Free returns storage obtained with New to a.
func Free[T any](a Allocator, t *T) {
	if t == nil {
		return
	}
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return
	}
	a.Deallocate(unsafe.Pointer(t), size, unsafe.Alignof(zero))
}

// MakeSlice allocates storage for n elements of T from a and returns it
// as a slice of length n. Element contents are unspecified: allocators
// that recycle blocks hand them back as is. Returns nil if n <= 0, the
// byte size would overflow, or the allocation fails. Zero-sized types
// come from the Go heap.
func MakeSlice[T any](a Allocator, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return make([]T, n)
	}
	if uintptr(n) > ^uintptr(0)/size {
		return nil
	}
	p := a.Allocate(uintptr(n)*size, unsafe.Alignof(zero))
	if p == nil {
		return nil
	}
	return unsafe.Slice((*T)(p), n)
}

// MakeSliceZeroed is MakeSlice with every element cleared. Slower, but
// the contents are defined even on recycled blocks.
func MakeSliceZeroed[T any](a Allocator, n int) []T {
	s := MakeSlice[T](a, n)
	clear(s)
	return s
}

// FreeSlice returns storage obtained with MakeSlice to a. The slice must
// be the exact one MakeSlice returned, not a subslice.
func FreeSlice[T any](a Allocator, s []T) {
	if len(s) == 0 {
		return
	}
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return
	}
	a.Deallocate(unsafe.Pointer(&s[0]), uintptr(len(s))*size, unsafe.Alignof(zero))
}
