package vec

import "unsafe"

// cursor walks a run of initialized slots by raw address. start and end
// bound the half-open range [start, end) of elements not yet yielded;
// the range keeps its meaning even after the owning container has zeroed
// its length around it, which is exactly what the iterators rely on.
type cursor[T any] struct {
	start unsafe.Pointer
	end   unsafe.Pointer
}

// cursorOver builds a cursor over n elements starting at p. For an empty
// run end is pinned to p rather than offset from it, so no out-of-range
// address is ever formed, p == nil included.
func cursorOver[T any](p unsafe.Pointer, n int) cursor[T] {
	c := cursor[T]{start: p, end: p}
	if n > 0 {
		var zero T
		c.end = unsafe.Add(p, uintptr(n)*unsafe.Sizeof(zero))
	}
	return c
}

// next moves the front element out of the run.
func (c *cursor[T]) next() (T, bool) {
	if c.start == c.end {
		var zero T
		return zero, false
	}
	v := *(*T)(c.start)
	c.start = unsafe.Add(c.start, unsafe.Sizeof(v))
	return v, true
}

// nextBack moves the back element out of the run: end retreats one slot
// first, then the slot it lands on is read.
func (c *cursor[T]) nextBack() (T, bool) {
	if c.start == c.end {
		var zero T
		return zero, false
	}
	var v T
	c.end = unsafe.Add(c.end, -int(unsafe.Sizeof(v)))
	v = *(*T)(c.end)
	return v, true
}

// remaining reports exactly how many elements have not been yielded yet.
func (c *cursor[T]) remaining() int {
	var zero T
	return int((uintptr(c.end) - uintptr(c.start)) / unsafe.Sizeof(zero))
}

// dropRemaining consumes the rest of the run front to back, handing each
// element to drop. Called when an iterator is released before exhaustion
// so that no element escapes its destructor.
func (c *cursor[T]) dropRemaining(drop func(T)) {
	for {
		v, ok := c.next()
		if !ok {
			return
		}
		if drop != nil {
			drop(v)
		}
	}
}
