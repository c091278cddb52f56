package vec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectorMetrics(t *testing.T) {
	v := New[int64]()
	defer v.Release()

	// Test initial state
	if v.SizeInUse() != 0 {
		t.Errorf("Initial SizeInUse = %d, want 0", v.SizeInUse())
	}
	if v.SizeReserved() != 0 {
		t.Errorf("Initial SizeReserved = %d, want 0", v.SizeReserved())
	}
	if v.Grows() != 0 {
		t.Errorf("Initial Grows = %d, want 0", v.Grows())
	}
	if v.Utilization() != 0 {
		t.Errorf("Initial Utilization = %f, want 0", v.Utilization())
	}

	// Push some data: 3 of 4 slots live, 8 bytes each, grown 1 -> 2 -> 4.
	v.Push(1)
	v.Push(2)
	v.Push(3)

	want := Metrics{
		Len:          3,
		Cap:          4,
		ElemSize:     8,
		SizeInUse:    24,
		SizeReserved: 32,
		Grows:        3,
		Utilization:  0.75,
	}
	require.Equal(t, want, v.Metrics())

	// The snapshot agrees with the individual accessors.
	m := v.Metrics()
	if m.SizeInUse != v.SizeInUse() {
		t.Errorf("Metrics.SizeInUse = %d, want %d", m.SizeInUse, v.SizeInUse())
	}
	if m.SizeReserved != v.SizeReserved() {
		t.Errorf("Metrics.SizeReserved = %d, want %d", m.SizeReserved, v.SizeReserved())
	}
	if m.Grows != v.Grows() {
		t.Errorf("Metrics.Grows = %d, want %d", m.Grows, v.Grows())
	}
	if m.Utilization != v.Utilization() {
		t.Errorf("Metrics.Utilization = %f, want %f", m.Utilization, v.Utilization())
	}
}

func TestMetricsAfterClear(t *testing.T) {
	v := New[int64]()
	defer v.Release()

	v.Push(1)
	v.Push(2)
	if v.SizeInUse() == 0 {
		t.Error("Expected non-zero SizeInUse before Clear")
	}

	// Clear empties the vector but keeps the block reserved.
	v.Clear()
	if v.SizeInUse() != 0 {
		t.Errorf("SizeInUse after Clear = %d, want 0", v.SizeInUse())
	}
	if v.Utilization() != 0 {
		t.Errorf("Utilization after Clear = %f, want 0", v.Utilization())
	}
	if v.SizeReserved() == 0 {
		t.Error("SizeReserved should not be 0 after Clear")
	}
}

func TestMetricsAfterRelease(t *testing.T) {
	v := FromSlice([]int64{1, 2, 3})
	v.Release()

	if v.SizeInUse() != 0 {
		t.Errorf("SizeInUse after Release = %d, want 0", v.SizeInUse())
	}
	if v.SizeReserved() != 0 {
		t.Errorf("SizeReserved after Release = %d, want 0", v.SizeReserved())
	}
	if v.Utilization() != 0 {
		t.Errorf("Utilization after Release = %f, want 0", v.Utilization())
	}
	require.Equal(t, Metrics{ElemSize: 8}, v.Metrics())
}

func TestGrowsCountsAllocatorTrips(t *testing.T) {
	v := New[int](WithCapacity[int](16))
	defer v.Release()

	// WithCapacity is one trip; filling the reserved room adds none.
	require.Equal(t, uint64(1), v.Grows())
	for i := 0; i < 16; i++ {
		v.Push(i)
	}
	require.Equal(t, uint64(1), v.Grows())

	v.Push(16)
	require.Equal(t, uint64(2), v.Grows())
}

func TestUtilizationBounds(t *testing.T) {
	v := New[int32](WithCapacity[int32](8))
	defer v.Release()

	for i := int32(0); i < 8; i++ {
		v.Push(i)
		u := v.Utilization()
		if u <= 0 || u > 1 {
			t.Fatalf("Utilization at %d/8 = %f, want 0 < x <= 1", i+1, u)
		}
	}
	if v.Utilization() != 1.0 {
		t.Errorf("Utilization when full = %f, want 1.0", v.Utilization())
	}

	v.Truncate(2)
	if v.Utilization() != 0.25 {
		t.Errorf("Utilization at 2/8 = %f, want 0.25", v.Utilization())
	}
}

func BenchmarkMetrics(b *testing.B) {
	v := New[int]()
	defer v.Release()
	for i := 0; i < 1000; i++ {
		v.Push(i)
	}

	b.Run("SizeInUse", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			v.SizeInUse()
		}
	})

	b.Run("Utilization", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			v.Utilization()
		}
	})

	b.Run("Metrics", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			v.Metrics()
		}
	})
}
