package idalloc

import "golang.org/x/exp/constraints"

// Simple hands out ids round-robin from a fixed range, tracking only how
// many are outstanding, never which ones. Fits short-lived, rapidly
// recycled tokens (barrier sync ids) where constant memory and speed
// matter more than precise double-free detection.
type Simple[I constraints.Integer] struct {
	rng    Range[I]
	used   I
	cursor I
}

func NewSimple[I constraints.Integer](r Range[I]) *Simple[I] {
	return &Simple[I]{rng: r, cursor: r.Begin}
}

// Alloc returns the cursor value and advances it, wrapping at the end of
// the range. It does not compare used against the range size: a caller
// that over-allocates can be handed an id that is still nominally
// outstanding.
func (a *Simple[I]) Alloc() (I, error) {
	id := a.cursor
	a.cursor++
	if a.cursor == a.rng.End {
		a.cursor = a.rng.Begin
	}
	a.used++
	return id, nil
}

// Free decrements the outstanding count. It cannot tell whether id was
// ever issued; only underflow is detected.
func (a *Simple[I]) Free(id I) error {
	if a.used == 0 {
		return ErrInvalidID
	}
	a.used--
	return nil
}

func (a *Simple[I]) Stats() Statistics {
	return Statistics{
		NumAvailable: int(a.rng.Size()),
		NumFree:      int(a.rng.Size() - a.used),
		NumUsed:      int(a.used),
	}
}
