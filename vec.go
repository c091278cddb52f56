// Package vec implements a growable contiguous array container backed
// by a raw memory allocator. Typical usage: create a vector, push and
// pop elements, then Release() to drop every remaining element and
// return the storage in one step.
package vec

import (
	"fmt"
	"iter"
	"unsafe"

	"github.com/offheap/vec/alloc"
)

// Vector is a growable contiguous array of T. Elements live in a single
// allocator block that doubles when it fills, so Push stays amortized
// O(1) and a full vector is always one block of cap slots with the first
// Len() of them initialized.
//
// Not goroutine-safe. Release() or IntoIter() ends the vector's life;
// most operations on a dead vector panic.
type Vector[T any] struct {
	store rawStore[T]
	len   int
	drop  func(T)

	precap int // deferred WithCapacity request, applied once by New

	released bool
	consumed bool
	draining bool
}

// Option configures a Vector at construction time.
type Option[T any] func(*Vector[T])

// WithAllocator selects the allocator backing the vector's storage.
// The default is alloc.Default.
func WithAllocator[T any](a alloc.Allocator) Option[T] {
	return func(v *Vector[T]) { v.store.alloc = a }
}

// WithDrop installs the element destructor. fn runs exactly once for
// every element the vector or one of its iterators discards without
// handing ownership to the caller: Set's replaced element, Truncate's
// tail, Release's leftovers, and whatever an abandoned iterator still
// held. Elements returned by Pop, Remove or an iterator's Next are the
// caller's; fn never sees them.
func WithDrop[T any](fn func(T)) Option[T] {
	return func(v *Vector[T]) { v.drop = fn }
}

// WithCapacity pre-reserves room for n elements so early pushes skip the
// first growth steps.
func WithCapacity[T any](n int) Option[T] {
	return func(v *Vector[T]) { v.precap = n }
}

// New creates an empty vector of T. No memory is allocated until the
// first element arrives. T must have a nonzero size: a type without
// extent cannot be addressed slot by slot and is rejected outright.
func New[T any](opts ...Option[T]) *Vector[T] {
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		panic("vec: zero-sized element type")
	}
	v := &Vector[T]{store: newRawStore[T](alloc.Default)}
	for _, opt := range opts {
		opt(v)
	}
	// Capacity is applied after every option so it comes out of the
	// configured allocator, whatever the option order was.
	if v.precap > 0 {
		v.store.growTo(v.precap)
		v.precap = 0
	}
	return v
}

// FromSlice creates a vector holding a copy of s. The vector owns the
// copies; s stays untouched.
func FromSlice[T any](s []T, opts ...Option[T]) *Vector[T] {
	v := New(opts...)
	if len(s) > 0 {
		v.store.growTo(len(s))
		copy(v.store.view(len(s)), s)
		v.len = len(s)
	}
	return v
}

// Push appends x. When the block is full it doubles first, then the
// write lands on the uninitialized slot without reading it.
func (v *Vector[T]) Push(x T) {
	v.mustBeLive()
	v.mustNotBeDraining()
	if v.len == v.store.cap {
		v.store.grow()
	}
	*(*T)(v.store.slot(v.len)) = x
	v.len++
}

// Pop removes and returns the last element. The second result is false
// when the vector is empty; emptiness is a normal outcome, not an error.
// Ownership moves to the caller, so the drop hook does not run.
func (v *Vector[T]) Pop() (T, bool) {
	v.mustBeLive()
	if v.len == 0 {
		var zero T
		return zero, false
	}
	v.len--
	return *(*T)(v.store.slot(v.len)), true
}

// Insert places x at index i, shifting elements [i, Len()) one slot
// right in a single overlap-safe move. i == Len() appends. The vacated
// slot and the freshly exposed one are only ever written, never read.
func (v *Vector[T]) Insert(i int, x T) {
	v.mustBeLive()
	v.mustNotBeDraining()
	if i < 0 || i > v.len {
		panicIndex("Insert", i, v.len)
	}
	if v.len == v.store.cap {
		v.store.grow()
	}
	s := v.store.view(v.len + 1)
	copy(s[i+1:], s[i:v.len])
	s[i] = x
	v.len++
}

// Remove takes the element at index i out of the vector and returns it,
// closing the gap with a single left shift. Ownership moves to the
// caller, so the drop hook does not run.
func (v *Vector[T]) Remove(i int) T {
	v.mustBeLive()
	if i < 0 || i >= v.len {
		panicIndex("Remove", i, v.len)
	}
	s := v.store.view(v.len)
	x := s[i]
	copy(s[i:], s[i+1:])
	v.len--
	return x
}

// Get returns the element at index i. Panics when i is out of range.
func (v *Vector[T]) Get(i int) T {
	v.mustBeLive()
	if i < 0 || i >= v.len {
		panicIndex("Get", i, v.len)
	}
	return *(*T)(v.store.slot(i))
}

// Lookup returns the element at index i and true when i is in range,
// the zero value and false otherwise.
func (v *Vector[T]) Lookup(i int) (T, bool) {
	v.mustBeLive()
	if i < 0 || i >= v.len {
		var zero T
		return zero, false
	}
	return *(*T)(v.store.slot(i)), true
}

// Set replaces the element at index i with x. The previous occupant is
// destroyed through the drop hook; it is never returned.
func (v *Vector[T]) Set(i int, x T) {
	v.mustBeLive()
	if i < 0 || i >= v.len {
		panicIndex("Set", i, v.len)
	}
	p := (*T)(v.store.slot(i))
	old := *p
	*p = x
	v.dropElem(old)
}

// Swap exchanges the elements at i and j in place. No element is created
// or destroyed.
func (v *Vector[T]) Swap(i, j int) {
	v.mustBeLive()
	if i < 0 || i >= v.len {
		panicIndex("Swap", i, v.len)
	}
	if j < 0 || j >= v.len {
		panicIndex("Swap", j, v.len)
	}
	s := v.store.view(v.len)
	s[i], s[j] = s[j], s[i]
}

// Len reports the number of live elements. A released or consumed
// vector reports 0.
func (v *Vector[T]) Len() int {
	if v.released || v.consumed {
		return 0
	}
	return v.len
}

// Cap reports how many elements fit before the next growth. A released
// or consumed vector reports 0.
func (v *Vector[T]) Cap() int {
	if v.released || v.consumed {
		return 0
	}
	return v.store.cap
}

// Slice exposes the live elements [0, Len()) as a plain slice aliasing
// the vector's storage. The view stays valid until the next growth,
// Drain, IntoIter or Release. Writes through it replace elements without
// running the drop hook.
func (v *Vector[T]) Slice() []T {
	v.mustBeLive()
	return v.store.view(v.len)
}

// Values iterates the live elements front to back without moving them
// out. The vector must not be mutated while the sequence is driven.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, x := range v.Slice() {
			if !yield(x) {
				return
			}
		}
	}
}

// Reserve guarantees room for n more elements without further
// allocation. Growth still proceeds in doubling steps, so capacity after
// Reserve is the next doubling target at or above Len()+n.
func (v *Vector[T]) Reserve(n int) {
	v.mustBeLive()
	v.mustNotBeDraining()
	if n < 0 {
		panic(fmt.Sprintf("vec: Reserve of negative count %d", n))
	}
	if n == 0 {
		return
	}
	if n > v.store.maxCap()-v.len {
		panicCapOverflow()
	}
	v.store.growTo(v.len + n)
}

// Truncate drops every element at index n and beyond, last to first, and
// keeps the capacity for reuse. n at or beyond Len() is a no-op.
func (v *Vector[T]) Truncate(n int) {
	v.mustBeLive()
	v.mustNotBeDraining()
	if n < 0 {
		panic(fmt.Sprintf("vec: Truncate to negative length %d", n))
	}
	for v.len > n {
		v.len--
		v.dropElem(*(*T)(v.store.slot(v.len)))
	}
}

// Clear drops every element and keeps the allocation, leaving an empty
// vector ready for new pushes.
func (v *Vector[T]) Clear() {
	v.Truncate(0)
}

// Drain empties the vector and returns an iterator over the removed
// elements, which keep sitting in the vector's storage until yielded.
// The length drops to zero immediately, so however the drain ends the
// vector cannot see those elements again; capacity and allocation stay
// put for reuse. Until the drain finishes or is released, operations
// that could touch the storage panic.
func (v *Vector[T]) Drain() *Drain[T] {
	v.mustBeLive()
	v.mustNotBeDraining()
	d := &Drain[T]{
		vec:  v,
		cur:  cursorOver[T](v.store.ptr, v.len),
		drop: v.drop,
	}
	v.len = 0
	v.draining = true
	return d
}

// IntoIter consumes the vector and returns an iterator that owns the
// storage outright. The vector is dead afterwards: Release on it is a
// no-op and every other operation panics.
func (v *Vector[T]) IntoIter() *IntoIter[T] {
	v.mustBeLive()
	v.mustNotBeDraining()
	it := &IntoIter[T]{
		store: v.store,
		cur:   cursorOver[T](v.store.ptr, v.len),
		drop:  v.drop,
	}
	v.store.ptr = nil
	v.store.cap = 0
	v.len = 0
	v.consumed = true
	return it
}

// Release destroys the vector: every remaining element is dropped in Pop
// order, last to first, and only then is the block returned to the
// allocator. Idempotent. Releasing a vector whose storage moved into an
// IntoIter is a no-op; releasing one with an active Drain panics.
func (v *Vector[T]) Release() {
	if v.released || v.consumed {
		return
	}
	v.mustNotBeDraining()
	for v.len > 0 {
		v.len--
		v.dropElem(*(*T)(v.store.slot(v.len)))
	}
	v.store.free()
	v.released = true
}

func (v *Vector[T]) dropElem(x T) {
	if v.drop != nil {
		v.drop(x)
	}
}

// mustBeLive panics if the vector has been released or consumed.
func (v *Vector[T]) mustBeLive() {
	if v.released {
		panic("vec: use after Release()")
	}
	if v.consumed {
		panic("vec: use after IntoIter()")
	}
}

// mustNotBeDraining panics if a Drain is still in flight. Reads of the
// (now empty) vector stay legal during a drain; anything that could grow,
// free or re-populate the storage does not.
func (v *Vector[T]) mustNotBeDraining() {
	if v.draining {
		panic("vec: use during active Drain()")
	}
}

func panicIndex(op string, i, length int) {
	panic(fmt.Sprintf("vec: %s: index out of range [%d] with length %d", op, i, length))
}
