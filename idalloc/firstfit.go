package idalloc

import "golang.org/x/exp/constraints"

// Coalescing selects when adjacent free ranges are merged back together.
type Coalescing int

const (
	// NoCoalescing keeps freed ranges exactly as returned; an
	// allocation that finds no single large-enough range fails.
	NoCoalescing Coalescing = iota
	// LazyCoalescing merges the whole free list only when an
	// allocation would otherwise fail, then retries exactly once.
	LazyCoalescing
)

// FirstFit allocates contiguous id ranges out of a free list, taking the
// first range large enough under the list's ordering. "Best" and "worst"
// fit are first fit over a size-sorted list, not an exhaustive search.
//
// The aggregate used counter is the only guard on FreeRange: a range that
// was never outstanding is not detected as long as the counter stays
// non-negative. This is a documented limitation, not a double-free
// detector.
type FirstFit[I constraints.Integer] struct {
	coalescing Coalescing
	available  I
	used       I
	free       *FreeList[I]
}

// NewFirstFit returns an allocator whose whole space is one free range.
func NewFirstFit[I constraints.Integer](sorting Sorting, coalescing Coalescing, initial Range[I]) *FirstFit[I] {
	return &FirstFit[I]{
		coalescing: coalescing,
		available:  initial.Size(),
		free:       NewFreeList(sorting, initial),
	}
}

// AddressFit allocates at the lowest free address.
func AddressFit[I constraints.Integer](c Coalescing, initial Range[I]) *FirstFit[I] {
	return NewFirstFit(ByAddress, c, initial)
}

// BestFit allocates from the smallest free range that still fits.
func BestFit[I constraints.Integer](c Coalescing, initial Range[I]) *FirstFit[I] {
	return NewFirstFit(ByIncreasingSize, c, initial)
}

// WorstFit allocates from the largest free range.
func WorstFit[I constraints.Integer](c Coalescing, initial Range[I]) *FirstFit[I] {
	return NewFirstFit(ByDecreasingSize, c, initial)
}

// FreeListLen exposes the current fragmentation for tests and stats.
func (a *FirstFit[I]) FreeListLen() int { return a.free.Len() }

// AllocRange issues a contiguous range of n ids. An exact-size range is
// consumed whole; a larger one is split and the remainder reinserted.
// Fails with ErrNoFreeIDs, leaving the allocator untouched.
func (a *FirstFit[I]) AllocRange(n I) (Range[I], error) {
	fits := func(r Range[I]) bool { return r.Size() >= n }

	r, ok := a.free.Take(fits)
	if !ok && a.coalescing == LazyCoalescing {
		a.free.Coalesce()
		r, ok = a.free.Take(fits)
	}
	if !ok {
		return Range[I]{}, ErrNoFreeIDs
	}

	if r.Size() > n {
		var rest Range[I]
		r, rest = r.Split(n)
		a.free.Insert(rest, false)
	}
	a.used += n
	return r, nil
}

// FreeRange returns r to the free list. Fails with ErrInvalidID if the
// release would underflow the used counter. It does not verify r was
// actually outstanding.
func (a *FirstFit[I]) FreeRange(r Range[I]) error {
	if r.Size() > a.used {
		return ErrInvalidID
	}
	a.used -= r.Size()
	a.free.Insert(r, false)
	return nil
}

func (a *FirstFit[I]) Alloc() (I, error) {
	r, err := a.AllocRange(1)
	if err != nil {
		var zero I
		return zero, err
	}
	return r.Begin, nil
}

func (a *FirstFit[I]) Free(id I) error {
	return a.FreeRange(Sized(1, id))
}

func (a *FirstFit[I]) Stats() Statistics {
	return Statistics{
		NumAvailable: int(a.available),
		NumFree:      int(a.available - a.used),
		NumUsed:      int(a.used),
	}
}
