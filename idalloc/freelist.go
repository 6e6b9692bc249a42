package idalloc

import (
	"cmp"
	"slices"
	"sort"

	"golang.org/x/exp/constraints"
)

// Sorting selects the order a FreeList keeps its ranges in, and therefore
// which free range a first-fit scan sees first.
type Sorting int

const (
	// ByAddress orders ascending by Begin: lowest-address fit.
	ByAddress Sorting = iota
	// ByIncreasingSize orders ascending by Size: best fit.
	ByIncreasingSize
	// ByDecreasingSize orders descending by Size: worst fit.
	ByDecreasingSize
)

// FreeList holds the currently free ranges of an id space: disjoint,
// sorted under the selected ordering. Whether touching neighbors are
// merged at insert time is the caller's choice per insert; Coalesce
// always merges everything that touches.
type FreeList[I constraints.Integer] struct {
	sorting Sorting
	ranges  []Range[I]
}

// NewFreeList returns a one-element list covering initial.
func NewFreeList[I constraints.Integer](sorting Sorting, initial Range[I]) *FreeList[I] {
	return &FreeList[I]{sorting: sorting, ranges: []Range[I]{initial}}
}

// Len is the number of free ranges, not the number of free ids.
func (fl *FreeList[I]) Len() int { return len(fl.ranges) }

// TotalFree sums the sizes of all free ranges.
func (fl *FreeList[I]) TotalFree() I {
	var total I
	for _, r := range fl.ranges {
		total += r.Size()
	}
	return total
}

// Ranges returns a copy of the current ranges in list order.
func (fl *FreeList[I]) Ranges() []Range[I] {
	return slices.Clone(fl.ranges)
}

// before reports whether a sorts strictly ahead of b under the list's
// ordering. Ties on size fall back to address so the order is total.
func (fl *FreeList[I]) before(a, b Range[I]) bool {
	switch fl.sorting {
	case ByIncreasingSize:
		if a.Size() != b.Size() {
			return a.Size() < b.Size()
		}
	case ByDecreasingSize:
		if a.Size() != b.Size() {
			return a.Size() > b.Size()
		}
	}
	return a.Begin < b.Begin
}

// Take removes and returns the first range satisfying pred, scanning in
// list order. ok is false if nothing matches; the list is unchanged.
// A miss is not an error: the caller decides whether to coalesce and
// retry or give up.
func (fl *FreeList[I]) Take(pred func(Range[I]) bool) (taken Range[I], ok bool) {
	for i, r := range fl.ranges {
		if pred(r) {
			fl.ranges = append(fl.ranges[:i], fl.ranges[i+1:]...)
			return r, true
		}
	}
	return Range[I]{}, false
}

// Insert places r at its sorted position. With merge set, any range that
// exactly touches r is folded into it first, so the list never keeps two
// adjacent neighbors.
func (fl *FreeList[I]) Insert(r Range[I], merge bool) {
	if merge {
		// Absorb touching neighbors one at a time; r can touch at
		// most one range on each side.
		for {
			absorbed := false
			for i, s := range fl.ranges {
				if s.End == r.Begin {
					r = Range[I]{s.Begin, r.End}
				} else if r.End == s.Begin {
					r = Range[I]{r.Begin, s.End}
				} else {
					continue
				}
				fl.ranges = append(fl.ranges[:i], fl.ranges[i+1:]...)
				absorbed = true
				break
			}
			if !absorbed {
				break
			}
		}
	}

	i := sort.Search(len(fl.ranges), func(i int) bool { return fl.before(r, fl.ranges[i]) })
	fl.ranges = slices.Insert(fl.ranges, i, r)
}

// Coalesce merges every pair of address-adjacent ranges, whatever the
// insert policy left behind, then restores the list's ordering. Used to
// recover fragmented free space.
func (fl *FreeList[I]) Coalesce() {
	if len(fl.ranges) < 2 {
		return
	}

	byAddr := slices.Clone(fl.ranges)
	slices.SortFunc(byAddr, func(a, b Range[I]) int { return cmp.Compare(a.Begin, b.Begin) })

	merged := byAddr[:1]
	for _, r := range byAddr[1:] {
		last := &merged[len(merged)-1]
		if last.End == r.Begin {
			last.End = r.End
		} else {
			merged = append(merged, r)
		}
	}

	slices.SortFunc(merged, func(a, b Range[I]) int {
		switch {
		case fl.before(a, b):
			return -1
		case fl.before(b, a):
			return 1
		default:
			return 0
		}
	})
	fl.ranges = merged
}
