package vec

import "iter"

// IntoIter owns the storage of a consumed vector and yields its elements
// by moving them out of the block one at a time. Create one with
// Vector.IntoIter. When done, Release() drops whatever was not yielded
// and returns the block to the allocator; an IntoIter that is dropped
// on the floor instead leaks the block.
type IntoIter[T any] struct {
	store    rawStore[T]
	cur      cursor[T]
	drop     func(T)
	released bool
}

// Next moves the next element out front to back. Returns false once the
// iterator is exhausted or released.
func (it *IntoIter[T]) Next() (T, bool) {
	if it.released {
		var zero T
		return zero, false
	}
	return it.cur.next()
}

// NextBack moves the next element out back to front. Forward and reverse
// consumption share one shrinking run, so together they yield every
// element exactly once.
func (it *IntoIter[T]) NextBack() (T, bool) {
	if it.released {
		var zero T
		return zero, false
	}
	return it.cur.nextBack()
}

// Len reports exactly how many elements remain to be yielded.
func (it *IntoIter[T]) Len() int {
	if it.released {
		return 0
	}
	return it.cur.remaining()
}

// Seq adapts the iterator to a range-over-func sequence. The sequence is
// single-use and shares the iterator's position: breaking out of the
// range keeps the remaining elements for later Next calls or Release.
func (it *IntoIter[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			x, ok := it.Next()
			if !ok {
				return
			}
			if !yield(x) {
				return
			}
		}
	}
}

// Release drops every element not yet yielded, front to back, and then
// returns the storage to the allocator. Idempotent. Next and NextBack
// report exhaustion afterwards.
func (it *IntoIter[T]) Release() {
	if it.released {
		return
	}
	it.released = true
	it.cur.dropRemaining(it.drop)
	it.store.free()
}

// Drain yields elements a vector has already disowned: the vector's
// length is zero for the whole drain while the elements wait in its
// storage. Create one with Vector.Drain. Exhausting the drain hands the
// storage back to the vector automatically; abandoning it early requires
// Release, which drops the leftovers first.
type Drain[T any] struct {
	vec  *Vector[T]
	cur  cursor[T]
	drop func(T)
	done bool
}

// Next moves the next element out front to back. Returns false once the
// drain is exhausted or released; exhaustion finishes the drain and the
// vector accepts new elements again.
func (d *Drain[T]) Next() (T, bool) {
	if d.done {
		var zero T
		return zero, false
	}
	x, ok := d.cur.next()
	if !ok {
		d.finish()
	}
	return x, ok
}

// NextBack moves the next element out back to front, sharing the run
// with Next just like IntoIter.
func (d *Drain[T]) NextBack() (T, bool) {
	if d.done {
		var zero T
		return zero, false
	}
	x, ok := d.cur.nextBack()
	if !ok {
		d.finish()
	}
	return x, ok
}

// Len reports exactly how many elements remain to be yielded.
func (d *Drain[T]) Len() int {
	if d.done {
		return 0
	}
	return d.cur.remaining()
}

// Seq adapts the drain to a range-over-func sequence. Single-use;
// breaking out of the range keeps the remaining elements for later Next
// calls or Release.
func (d *Drain[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			x, ok := d.Next()
			if !ok {
				return
			}
			if !yield(x) {
				return
			}
		}
	}
}

// Release drops every element not yet yielded, front to back, and ends
// the drain: the vector keeps its allocation and capacity, stays empty,
// and accepts new elements again. Idempotent.
func (d *Drain[T]) Release() {
	if d.done {
		return
	}
	d.cur.dropRemaining(d.drop)
	d.finish()
}

// finish returns control of the storage to the vector.
func (d *Drain[T]) finish() {
	if d.done {
		return
	}
	d.done = true
	d.vec.draining = false
}
