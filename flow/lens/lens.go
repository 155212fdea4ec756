// Package lens projects narrow state slices in and out of composite states.
//
// A Lens[C, N] is the pair of pure functions that lets a step written against
// a narrow state N run against a larger composite C: Get extracts the slice,
// Put writes an updated slice back. Both must be pure and must satisfy the
// round-trip laws checked by CheckLaws; the runtime never verifies them, so a
// law-breaking lens silently loses or duplicates updates.
package lens

import "fmt"

// Lens pairs the extract and reinsert functions for a (composite, narrow)
// state pairing.
type Lens[C, N any] struct {
	// Get extracts the narrow slice from the composite.
	Get func(C) N
	// Put reinserts an updated narrow slice into the composite.
	Put func(C, N) C
}

// New builds a Lens from its two projection functions.
func New[C, N any](get func(C) N, put func(C, N) C) Lens[C, N] {
	if get == nil || put == nil {
		panic("lens.New: both projection functions are required")
	}
	return Lens[C, N]{Get: get, Put: put}
}

// Modify returns the composite with fn applied to its narrow slice.
func (l Lens[C, N]) Modify(c C, fn func(N) N) C {
	return l.Put(c, fn(l.Get(c)))
}

var (
	ErrGetAfterPut = fmt.Errorf("lens law violated: Get(Put(c, n)) != n")
	ErrPutAfterGet = fmt.Errorf("lens law violated: Put(c, Get(c)) != c")
)

// CheckLaws verifies both round-trip laws on a sample composite and slice:
//
//	Put(c, Get(c)) == c
//	Get(Put(c, n)) == n
//
// Equality uses eqC/eqN. Intended for property tests over generated samples.
func CheckLaws[C, N any](l Lens[C, N], c C, n N, eqC func(C, C) bool, eqN func(N, N) bool) error {
	if !eqC(l.Put(c, l.Get(c)), c) {
		return ErrPutAfterGet
	}
	if !eqN(l.Get(l.Put(c, n)), n) {
		return ErrGetAfterPut
	}
	return nil
}

// CheckLawsComparable is CheckLaws for states with comparable types.
func CheckLawsComparable[C, N comparable](l Lens[C, N], c C, n N) error {
	return CheckLaws(l, c, n,
		func(a, b C) bool { return a == b },
		func(a, b N) bool { return a == b },
	)
}
