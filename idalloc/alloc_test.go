package idalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsIdentity(t *testing.T) {
	allocators := map[string]Allocator[int32]{
		"address": AddressFit(NoCoalescing, Range[int32]{0, 32}),
		"best":    BestFit(LazyCoalescing, Range[int32]{0, 32}),
		"worst":   WorstFit(LazyCoalescing, Range[int32]{0, 32}),
		"simple":  NewSimple(Sized[int32](32, 0)),
	}

	for name, a := range allocators {
		t.Run(name, func(t *testing.T) {
			var held []int32
			for i := 0; i < 20; i++ {
				id, err := a.Alloc()
				require.NoError(t, err)
				held = append(held, id)
				if i%3 == 0 {
					require.NoError(t, a.Free(held[0]))
					held = held[1:]
				}

				st := a.Stats()
				assert.Equal(t, st.NumAvailable, st.NumFree+st.NumUsed)
				assert.InDelta(t, 1.0, st.PercentFree()+st.PercentUsed(), 1e-9)
			}
		})
	}
}

func TestAllocMany(t *testing.T) {
	a := AddressFit(NoCoalescing, Range[int32]{0, 10})

	ids, err := AllocMany[int32](a, 4)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 1, 2, 3}, ids, "allocation order")
	assert.Equal(t, 4, a.Stats().NumUsed)
}

func TestAllocManyFailsAtomically(t *testing.T) {
	a := AddressFit(NoCoalescing, Range[int32]{0, 5})

	before := a.Stats()
	_, err := AllocMany[int32](a, 8)
	assert.ErrorIs(t, err, ErrNoFreeIDs)
	assert.Equal(t, before, a.Stats(), "partial batch rolled back")
}

func TestFreeMany(t *testing.T) {
	a := AddressFit(NoCoalescing, Range[int32]{0, 10})
	ids, err := AllocMany[int32](a, 6)
	require.NoError(t, err)

	require.NoError(t, FreeMany[int32](a, ids))
	assert.Equal(t, 0, a.Stats().NumUsed)
}

func TestFreeManyShortCircuits(t *testing.T) {
	a := NewSimple(Sized[int32](8, 0))
	id, err := a.Alloc()
	require.NoError(t, err)

	// second free underflows; the helper stops there
	err = FreeMany[int32](a, []int32{id, id})
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestPercentagesEmptyAllocator(t *testing.T) {
	st := Statistics{}
	assert.Equal(t, 0.0, st.PercentFree())
	assert.Equal(t, 0.0, st.PercentUsed())
}
