// Package idalloc tracks which identifiers of a fixed numeric space are
// currently issued to the server and which are free. Two strategies are
// provided: FirstFit keeps an exact free list and can hand out contiguous
// ranges; Simple is a wrapping cursor for short-lived tokens.
//
// Allocators are plain data structures with no locking of their own; the
// owning connection serializes access (see client.WithAllocator).
package idalloc

import (
	"errors"

	"golang.org/x/exp/constraints"
)

var (
	// ErrNoFreeIDs reports an exhausted allocator. Recoverable: the
	// caller may free elsewhere and retry.
	ErrNoFreeIDs = errors.New("no free ids")

	// ErrInvalidID reports a free that cannot be valid, such as usage
	// underflow. It signals a bookkeeping error on the caller's side.
	ErrInvalidID = errors.New("invalid id")
)

// Allocator is the shared allocation capability over an id type I.
type Allocator[I constraints.Integer] interface {
	// Alloc issues one id, or fails with ErrNoFreeIDs.
	Alloc() (I, error)
	// Free releases one id, or fails with ErrInvalidID.
	Free(id I) error
	// Stats reports usage counters without side effects.
	Stats() Statistics
}

// RangeAllocator is implemented by allocators whose id space is
// contiguous and that can issue whole ranges.
type RangeAllocator[I constraints.Integer] interface {
	Allocator[I]
	AllocRange(n I) (Range[I], error)
	FreeRange(r Range[I]) error
}

// Statistics is a usage snapshot. NumAvailable == NumFree + NumUsed.
type Statistics struct {
	NumAvailable int
	NumFree      int
	NumUsed      int
}

func (s Statistics) PercentFree() float64 {
	if s.NumAvailable == 0 {
		return 0
	}
	return float64(s.NumFree) / float64(s.NumAvailable)
}

func (s Statistics) PercentUsed() float64 {
	if s.NumAvailable == 0 {
		return 0
	}
	return float64(s.NumUsed) / float64(s.NumAvailable)
}

// AllocMany issues n ids in allocation order. On failure every id already
// issued is returned to the allocator, so the batch takes effect whole or
// not at all.
func AllocMany[I constraints.Integer](a Allocator[I], n int) ([]I, error) {
	ids := make([]I, 0, n)
	for i := 0; i < n; i++ {
		id, err := a.Alloc()
		if err != nil {
			for j := len(ids) - 1; j >= 0; j-- {
				_ = a.Free(ids[j])
			}
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// FreeMany frees ids in the given order, stopping at the first failure.
func FreeMany[I constraints.Integer](a Allocator[I], ids []I) error {
	for _, id := range ids {
		if err := a.Free(id); err != nil {
			return err
		}
	}
	return nil
}
