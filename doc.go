// Package vec implements a growable contiguous array container for Go,
// built directly on a raw memory allocator.
//
// # Overview
//
// A Vector keeps its elements in one contiguous allocator block and
// doubles that block when it fills, trading occasional moves for O(1)
// amortized appends and cache-friendly scans. Unlike a built-in slice
// it owns its storage explicitly. This is particularly useful for:
//
//   - Keeping large element buffers out of the garbage collector's way
//   - Deterministic destruction via a per-element drop hook
//   - Plugging in custom storage backends (heap, mmap, C malloc, pools)
//   - Move-based iteration that empties the container as it runs
//
// # Basic Usage
//
//	v := vec.New[int]()      // no memory allocated yet
//	defer v.Release()        // drop everything and free the block
//
//	v.Push(1)
//	v.Push(2)
//	v.Insert(1, 99)          // [1 99 2]
//	x, ok := v.Pop()         // x = 2, ok = true
//
//	for _, n := range v.Slice() { // zero-copy view of live elements
//		fmt.Println(n)
//	}
//
// # Growth
//
// An empty vector holds no block at all. The first push allocates room
// for exactly one element; every later growth doubles the capacity, so
// pushing five elements moves the capacity through 1, 2, 4, 4, 8.
// Capacity never shrinks while the vector lives, and Reserve or
// WithCapacity jump ahead along the same doubling schedule.
//
// # Element Lifecycle
//
// A vector built with WithDrop runs the hook exactly once for every
// element it discards without handing ownership out: the element Set
// overwrites, the tail Truncate cuts, everything left at Release, and
// whatever an abandoned iterator still held. Elements returned by Pop,
// Remove or an iterator's Next belong to the caller and are never
// dropped. Release drops in Pop order, last to first, and frees the
// block only after the last hook has run.
//
// # Iteration
//
// Values() ranges over the elements in place. The two moving iterators
// empty the container instead:
//
//	d := v.Drain()            // v is empty from this moment
//	for x, ok := d.Next(); ok; x, ok = d.Next() { ... }
//	// v kept its capacity and accepts pushes again
//
//	it := v.IntoIter()        // v is consumed for good
//	defer it.Release()        // drops leftovers, frees the block
//	for x := range it.Seq() { ... }
//
// Both iterators yield from either end via Next and NextBack, report
// their exact remaining count via Len, and drop unconsumed elements on
// Release. A Drain left unfinished blocks the vector: operations that
// could touch the storage panic until the drain is exhausted or
// released.
//
// # Allocators
//
// Storage comes from an alloc.Allocator chosen with WithAllocator. The
// default pins Go-heap blocks so the collector keeps them alive. The
// alloc package also ships an mmap backend (Linux), a C-malloc backend
// (build tag malloc_cgo), and a pooling wrapper with per-size free
// lists.
//
// # Memory Ownership
//
// Blocks are untyped bytes, so the collector does not see pointers
// stored inside elements. With the default heap allocator the block
// itself stays alive, but element types that carry pointers keep their
// referents alive only while those referents are reachable some other
// way. Prefer value-only element types; with the mmap or malloc
// backends treat pointerful elements as a bug.
//
// # Errors
//
// Misuse panics with a "vec:" prefix: out-of-range indexes, use after
// Release or IntoIter, mutation during an active Drain, zero-sized
// element types. Allocator exhaustion also panics, through a dedicated
// handler, since by contract a failed growth is fatal. Expected
// conditions are return values instead: Pop and Lookup report "not
// there" with a bool, never a panic.
//
// # Metrics and Monitoring
//
// The vector reports storage statistics for monitoring and tests:
//
//	m := v.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization * 100)
//	fmt.Printf("In use: %d bytes of %d\n", m.SizeInUse, m.SizeReserved)
//	fmt.Printf("Grown %d times\n", m.Grows)
package vec
