package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// recordingAllocator counts trips to the wrapped heap so tests can see
// exactly when the pool falls through.
type recordingAllocator struct {
	inner  *Heap
	allocs int
	frees  int
}

func newRecordingAllocator() *recordingAllocator {
	return &recordingAllocator{inner: NewHeap()}
}

func (r *recordingAllocator) Allocate(size, align uintptr) unsafe.Pointer {
	r.allocs++
	return r.inner.Allocate(size, align)
}

func (r *recordingAllocator) Reallocate(p unsafe.Pointer, oldSize, newSize uintptr) unsafe.Pointer {
	return r.inner.Reallocate(p, oldSize, newSize)
}

func (r *recordingAllocator) Deallocate(p unsafe.Pointer, size, align uintptr) {
	r.frees++
	r.inner.Deallocate(p, size, align)
}

func TestPoolReusesBlocks(t *testing.T) {
	rec := newRecordingAllocator()
	p := NewPool(rec, 4)

	b1 := p.Allocate(64, 8)
	require.NotNil(t, b1)
	p.Deallocate(b1, 64, 8)

	// Same size comes back from the free list: the very same block,
	// with no trip to the wrapped allocator.
	b2 := p.Allocate(64, 8)
	if b2 != b1 {
		t.Errorf("Allocate(64) = %p, want recycled %p", b2, b1)
	}
	require.Equal(t, 1, rec.allocs)

	// A different size class misses.
	b3 := p.Allocate(128, 8)
	require.Equal(t, 2, rec.allocs)

	p.Deallocate(b2, 64, 8)
	p.Deallocate(b3, 128, 8)
}

func TestPoolSeparatesAlignmentClasses(t *testing.T) {
	rec := newRecordingAllocator()
	p := NewPool(rec, 4)

	// Park a block that was only ever promised 4-byte alignment.
	b4 := p.Allocate(24, 4)
	p.Deallocate(b4, 24, 4)

	// A same-size request with stricter alignment must not get it: an
	// allocator is free to return addresses aligned no further than
	// asked, so recycling across alignments would hand out memory the
	// requester cannot legally use.
	b8 := p.Allocate(24, 8)
	if b8 == b4 {
		t.Fatal("Allocate(24, 8) returned a block parked with alignment 4")
	}
	require.Equal(t, 2, rec.allocs)

	// The looser class still serves its own kind.
	b4again := p.Allocate(24, 4)
	if b4again != b4 {
		t.Errorf("Allocate(24, 4) = %p, want recycled %p", b4again, b4)
	}
	require.Equal(t, 2, rec.allocs)

	p.Deallocate(b4again, 24, 4)
	p.Deallocate(b8, 24, 8)
}

func TestPoolClassCapOverflow(t *testing.T) {
	rec := newRecordingAllocator()
	p := NewPool(rec, 2)

	blocks := []unsafe.Pointer{
		p.Allocate(32, 8),
		p.Allocate(32, 8),
		p.Allocate(32, 8),
	}

	// The class holds two; the third release falls through to the
	// wrapped allocator.
	for _, b := range blocks {
		p.Deallocate(b, 32, 8)
	}
	require.Equal(t, 1, rec.frees)

	s := p.Stats()
	require.Equal(t, int64(2), s.Parked)
	require.Equal(t, int64(1), s.TotalFree)
	require.Equal(t, int64(0), s.InUse)
}

func TestPoolStats(t *testing.T) {
	p := NewPool(newRecordingAllocator(), 8)

	b1 := p.Allocate(16, 8)
	b2 := p.Allocate(16, 8)
	p.Deallocate(b1, 16, 8)
	b3 := p.Allocate(16, 8) // served from the free list

	want := PoolStats{
		TotalAlloc: 2,
		TotalFree:  0,
		Hits:       1,
		Parked:     0,
		InUse:      2,
	}
	require.Equal(t, want, p.Stats())

	p.Deallocate(b2, 16, 8)
	p.Deallocate(b3, 16, 8)
	require.Equal(t, int64(0), p.Stats().InUse)
	require.Equal(t, int64(2), p.Stats().Parked)
}

func TestPoolFIFOOrder(t *testing.T) {
	p := NewPool(newRecordingAllocator(), 8)

	b1 := p.Allocate(8, 8)
	b2 := p.Allocate(8, 8)
	p.Deallocate(b1, 8, 8)
	p.Deallocate(b2, 8, 8)

	// Free lists are queues: first parked, first out.
	if got := p.Allocate(8, 8); got != b1 {
		t.Errorf("first recycled block = %p, want %p", got, b1)
	}
	if got := p.Allocate(8, 8); got != b2 {
		t.Errorf("second recycled block = %p, want %p", got, b2)
	}
}

func TestPoolReallocatePassthrough(t *testing.T) {
	rec := newRecordingAllocator()
	p := NewPool(rec, 4)

	b := p.Allocate(16, 8)
	filled := unsafe.Slice((*byte)(b), 16)
	for i := range filled {
		filled[i] = byte(i)
	}

	nb := p.Reallocate(b, 16, 32)
	require.NotNil(t, nb)
	got := unsafe.Slice((*byte)(nb), 32)
	for i := 0; i < 16; i++ {
		if got[i] != byte(i) {
			t.Fatalf("byte %d = %d, want %d", i, got[i], i)
		}
	}

	// Reallocation is not a pool event.
	s := p.Stats()
	require.Equal(t, int64(1), s.TotalAlloc)
	require.Equal(t, int64(0), s.Hits)

	p.Deallocate(nb, 32, 8)
}

func TestPoolDefaults(t *testing.T) {
	p := NewPool(nil, 0)
	if p.inner != Default {
		t.Error("NewPool(nil, ...) should wrap Default")
	}
	if p.classCap != DefaultClassCap {
		t.Errorf("classCap = %d, want %d", p.classCap, DefaultClassCap)
	}

	if got := p.Allocate(0, 1); got != nil {
		t.Errorf("Allocate(0, 1) = %v, want nil", got)
	}
	p.Deallocate(nil, 8, 8) // must not panic
}
