package idalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sizeAtLeast(n int32) func(Range[int32]) bool {
	return func(r Range[int32]) bool { return r.Size() >= n }
}

func TestFreeListTakeByAddress(t *testing.T) {
	fl := NewFreeList(ByAddress, Range[int32]{0, 100})
	fl.Take(sizeAtLeast(100))
	fl.Insert(Range[int32]{50, 60}, false)
	fl.Insert(Range[int32]{0, 5}, false)
	fl.Insert(Range[int32]{20, 40}, false)

	// address order: {0,5} first even though {20,40} is bigger
	r, ok := fl.Take(sizeAtLeast(1))
	assert.True(t, ok)
	assert.Equal(t, Range[int32]{0, 5}, r)

	// nothing of size 25 left
	_, ok = fl.Take(sizeAtLeast(25))
	assert.False(t, ok)
	assert.Equal(t, 2, fl.Len())
}

func TestFreeListTakeBySize(t *testing.T) {
	ranges := []Range[int32]{{0, 10}, {20, 25}, {40, 60}}

	best := NewFreeList(ByIncreasingSize, ranges[0])
	worst := NewFreeList(ByDecreasingSize, ranges[0])
	for _, r := range ranges[1:] {
		best.Insert(r, false)
		worst.Insert(r, false)
	}

	r, ok := best.Take(sizeAtLeast(3))
	assert.True(t, ok)
	assert.Equal(t, Range[int32]{20, 25}, r, "best fit takes the smallest that fits")

	r, ok = worst.Take(sizeAtLeast(3))
	assert.True(t, ok)
	assert.Equal(t, Range[int32]{40, 60}, r, "worst fit takes the largest")
}

func TestFreeListInsertMerge(t *testing.T) {
	fl := NewFreeList(ByAddress, Range[int32]{0, 10})
	fl.Take(sizeAtLeast(10))

	fl.Insert(Range[int32]{0, 3}, true)
	fl.Insert(Range[int32]{7, 10}, true)
	assert.Equal(t, 2, fl.Len())

	// {3,7} touches both neighbors, all three fold into one
	fl.Insert(Range[int32]{3, 7}, true)
	assert.Equal(t, []Range[int32]{{0, 10}}, fl.Ranges())
}

func TestFreeListInsertNoMergeKeepsFragments(t *testing.T) {
	fl := NewFreeList(ByAddress, Range[int32]{0, 10})
	fl.Take(sizeAtLeast(10))

	fl.Insert(Range[int32]{0, 3}, false)
	fl.Insert(Range[int32]{3, 7}, false)
	fl.Insert(Range[int32]{7, 10}, false)
	assert.Equal(t, []Range[int32]{{0, 3}, {3, 7}, {7, 10}}, fl.Ranges())
	assert.Equal(t, int32(10), fl.TotalFree())
}

func TestFreeListCoalesce(t *testing.T) {
	fl := NewFreeList(ByIncreasingSize, Range[int32]{0, 100})
	fl.Take(sizeAtLeast(100))

	// fragments inserted out of address order, none merged
	fl.Insert(Range[int32]{10, 20}, false)
	fl.Insert(Range[int32]{40, 50}, false)
	fl.Insert(Range[int32]{0, 10}, false)
	fl.Insert(Range[int32]{20, 30}, false)
	assert.Equal(t, 4, fl.Len())

	fl.Coalesce()
	// size ordering survives the pass: {40,50} sorts ahead of {0,30}
	assert.Equal(t, []Range[int32]{{40, 50}, {0, 30}}, fl.Ranges())
	assert.Equal(t, int32(40), fl.TotalFree())
}
