package alloc

import (
	"sync"
	"unsafe"

	"github.com/eapache/queue"
)

// DefaultClassCap is the default number of released blocks a Pool parks
// per class before overflow goes back to the wrapped allocator.
const DefaultClassCap = 64

// blockClass identifies one free list. Parked blocks are interchangeable
// only when both size and alignment match: a block promises no more than
// the alignment it was allocated with, so it must never serve a stricter
// request of the same size.
type blockClass struct {
	size  uintptr
	align uintptr
}

// Pool wraps an Allocator with per-class free lists. Released blocks are
// parked in a FIFO keyed by their size and alignment and handed out
// again to later requests of the same class, skipping the wrapped
// allocator entirely. Useful in front of expensive backends and for
// workloads that cycle through containers of similar shape.
//
// Reallocate is not pooled; it passes through to the wrapped allocator.
type Pool struct {
	inner    Allocator
	classCap int

	mu      sync.Mutex
	classes map[blockClass]*queue.Queue
	alloced int64 // blocks obtained from inner
	freed   int64 // blocks returned to inner
	hits    int64 // requests served from a free list
	parked  int64 // blocks currently in free lists
	handed  int64 // blocks given back by callers
}

// PoolStats is a snapshot of a Pool's counters.
type PoolStats struct {
	TotalAlloc int64 // blocks obtained from the wrapped allocator
	TotalFree  int64 // blocks returned to the wrapped allocator
	Hits       int64 // requests served from a free list
	Parked     int64 // blocks currently parked in free lists
	InUse      int64 // blocks held by callers right now
}

// NewPool wraps inner with free lists holding up to classCap blocks per
// class. A nil inner wraps Default; classCap <= 0 means DefaultClassCap.
func NewPool(inner Allocator, classCap int) *Pool {
	if inner == nil {
		inner = Default
	}
	if classCap <= 0 {
		classCap = DefaultClassCap
	}
	return &Pool{
		inner:    inner,
		classCap: classCap,
		classes:  make(map[blockClass]*queue.Queue),
	}
}

// Allocate returns a parked block of the same size and alignment when
// one is available, falling back to the wrapped allocator otherwise.
// Parked blocks keep their old contents; callers must not rely on
// zeroing.
func (p *Pool) Allocate(size, align uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	p.mu.Lock()
	if q := p.classes[blockClass{size, align}]; q != nil && q.Length() > 0 {
		ptr := q.Remove().(unsafe.Pointer)
		p.hits++
		p.parked--
		p.mu.Unlock()
		return ptr
	}
	p.mu.Unlock()

	ptr := p.inner.Allocate(size, align)
	if ptr != nil {
		p.mu.Lock()
		p.alloced++
		p.mu.Unlock()
	}
	return ptr
}

// Reallocate passes through to the wrapped allocator.
func (p *Pool) Reallocate(ptr unsafe.Pointer, oldSize, newSize uintptr) unsafe.Pointer {
	return p.inner.Reallocate(ptr, oldSize, newSize)
}

// Deallocate parks the block in its class for reuse, or hands it to the
// wrapped allocator when the class is full.
func (p *Pool) Deallocate(ptr unsafe.Pointer, size, align uintptr) {
	if ptr == nil {
		return
	}
	p.mu.Lock()
	p.handed++
	key := blockClass{size, align}
	q := p.classes[key]
	if q == nil {
		q = queue.New()
		p.classes[key] = q
	}
	if q.Length() < p.classCap {
		q.Add(ptr)
		p.parked++
		p.mu.Unlock()
		return
	}
	p.freed++
	p.mu.Unlock()
	p.inner.Deallocate(ptr, size, align)
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PoolStats{
		TotalAlloc: p.alloced,
		TotalFree:  p.freed,
		Hits:       p.hits,
		Parked:     p.parked,
		InUse:      p.alloced + p.hits - p.handed,
	}
}
