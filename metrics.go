package vec

// SizeInUse returns the number of bytes occupied by live elements.
func (v *Vector[T]) SizeInUse() int {
	return v.Len() * int(v.store.elemSize)
}

// SizeReserved returns the total number of bytes in the backing block,
// occupied or not.
func (v *Vector[T]) SizeReserved() int {
	return v.Cap() * int(v.store.elemSize)
}

// Grows returns how many growth steps the vector has performed since
// creation. Useful for checking that a Reserve or WithCapacity actually
// avoided reallocation.
func (v *Vector[T]) Grows() uint64 {
	if v.released || v.consumed {
		return 0
	}
	return v.store.grows
}

// Utilization returns the ratio of live elements to capacity (0.0 to
// 1.0). Returns 0.0 if the vector has no capacity.
func (v *Vector[T]) Utilization() float64 {
	c := v.Cap()
	if c == 0 {
		return 0
	}
	return float64(v.Len()) / float64(c)
}

// Metrics returns a snapshot of vector storage statistics.
func (v *Vector[T]) Metrics() Metrics {
	return Metrics{
		Len:          v.Len(),
		Cap:          v.Cap(),
		ElemSize:     int(v.store.elemSize),
		SizeInUse:    v.SizeInUse(),
		SizeReserved: v.SizeReserved(),
		Grows:        v.Grows(),
		Utilization:  v.Utilization(),
	}
}

// Metrics contains statistical information about a vector's storage.
type Metrics struct {
	Len          int     // Live elements
	Cap          int     // Allocated slots
	ElemSize     int     // Bytes per slot
	SizeInUse    int     // Bytes occupied by live elements
	SizeReserved int     // Bytes in the backing block
	Grows        uint64  // Growth steps performed
	Utilization  float64 // Ratio of live elements to slots (0.0-1.0)
}
