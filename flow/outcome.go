package flow

// Outcome is the success-or-failure channel of a step: either a result value
// of type A or a typed domain error of type E, never both.
//
// The error type only ever changes through an explicit translation
// (TranslateErr / MapErr); recombining steps never coerces it implicitly.
type Outcome[E, A any] struct {
	ok  bool
	val A
	err E
}

// Success builds a successful Outcome carrying val.
func Success[E any, A any](val A) Outcome[E, A] {
	return Outcome[E, A]{ok: true, val: val}
}

// Failure builds a failed Outcome carrying err.
func Failure[A any, E any](err E) Outcome[E, A] {
	return Outcome[E, A]{ok: false, err: err}
}

// Succeeded reports whether the Outcome carries a result value.
func (o Outcome[E, A]) Succeeded() bool { return o.ok }

// Value returns the result value and whether it is present.
func (o Outcome[E, A]) Value() (A, bool) { return o.val, o.ok }

// Err returns the domain error and whether it is present.
func (o Outcome[E, A]) Err() (E, bool) { return o.err, !o.ok }

// Fold collapses the Outcome into a single value through one of the two
// branches.
func Fold[E, A, T any](o Outcome[E, A], onSuccess func(A) T, onFailure func(E) T) T {
	if o.ok {
		return onSuccess(o.val)
	}
	return onFailure(o.err)
}

// MapOutcome applies fn to the result value of a successful Outcome.
// A failed Outcome passes through untouched.
func MapOutcome[E, A, B any](o Outcome[E, A], fn func(A) B) Outcome[E, B] {
	if !o.ok {
		return Failure[B](o.err)
	}
	return Success[E](fn(o.val))
}

// TranslateErr rewrites the error of a failed Outcome via fn.
// This is the only way an Outcome changes its error type.
func TranslateErr[A, E1, E2 any](o Outcome[E1, A], fn func(E1) E2) Outcome[E2, A] {
	if o.ok {
		return Success[E2](o.val)
	}
	return Failure[A](fn(o.err))
}
