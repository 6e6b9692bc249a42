package idalloc

import "golang.org/x/exp/constraints"

// Range is a half-open interval [Begin, End) over an integral id space.
// It is a pure value; operations return new ranges.
type Range[I constraints.Integer] struct {
	Begin I
	End   I
}

// Sized builds a Range of length n starting at `at`.
func Sized[I constraints.Integer](n, at I) Range[I] {
	return Range[I]{Begin: at, End: at + n}
}

func (r Range[I]) Size() I { return r.End - r.Begin }

func (r Range[I]) Contains(v I) bool { return v >= r.Begin && v < r.End }

// Split cuts off a prefix of length n and returns it together with the
// remainder. Only defined for n <= Size.
func (r Range[I]) Split(n I) (prefix, rest Range[I]) {
	return Range[I]{r.Begin, r.Begin + n}, Range[I]{r.Begin + n, r.End}
}
