package flow

import (
	"context"

	"github.com/on-the-ground/flow_ive_go/flow/exec"
	"github.com/on-the-ground/flow_ive_go/flow/lens"
	"github.com/on-the-ground/flow_ive_go/flow/logbuf"
)

// Unit is the result of steps run only for their effect on state or log.
type Unit struct{}

// Trace is everything a step leaves behind: the updated state, the log
// accumulated so far, and the success-or-failure outcome. One explicit record
// instead of nested wrapper types; Bind threads it from step to step.
type Trace[S, E, A any] struct {
	State   S
	Log     logbuf.Buffer
	Outcome Outcome[E, A]
}

// Step is the core computation value: given the current state and the log
// accumulated so far, produce a deferred Trace under the executor's
// discipline.
//
// A Step is an immutable description. Running it never mutates it, so the
// same Step may be run many times; whether an underlying deferred action
// tolerates that is the collaborator's concern. The log buffer threads
// through every step so a flush can drain it mid-chain.
type Step[S, E, A any] func(ctx context.Context, ex exec.Executor, s S, lg logbuf.Buffer) *exec.Promise[Trace[S, E, A]]

// Succeed yields val, leaving state and log untouched.
func Succeed[S any, E any, A any](val A) Step[S, E, A] {
	return func(_ context.Context, _ exec.Executor, s S, lg logbuf.Buffer) *exec.Promise[Trace[S, E, A]] {
		return exec.Resolved(Trace[S, E, A]{State: s, Log: lg, Outcome: Success[E](val)})
	}
}

// FailWith fails with err, leaving state and log untouched.
func FailWith[S any, A any, E any](err E) Step[S, E, A] {
	return func(_ context.Context, _ exec.Executor, s S, lg logbuf.Buffer) *exec.Promise[Trace[S, E, A]] {
		return exec.Resolved(Trace[S, E, A]{State: s, Log: lg, Outcome: Failure[A](err)})
	}
}

// FromOutcome lifts a pre-computed Outcome into a Step with no state or log
// effect.
func FromOutcome[S any, E, A any](o Outcome[E, A]) Step[S, E, A] {
	return func(_ context.Context, _ exec.Executor, s S, lg logbuf.Buffer) *exec.Promise[Trace[S, E, A]] {
		return exec.Resolved(Trace[S, E, A]{State: s, Log: lg, Outcome: o})
	}
}

// FromPromise lifts an already-deferred plain value into a Step whose outcome
// is a guaranteed Success. Whether the promise tolerates being awaited by
// several runs is the promise owner's concern.
func FromPromise[S any, E any, A any](p *exec.Promise[A]) Step[S, E, A] {
	return func(_ context.Context, _ exec.Executor, s S, lg logbuf.Buffer) *exec.Promise[Trace[S, E, A]] {
		return exec.MapPromise(p, func(val A) Trace[S, E, A] {
			return Trace[S, E, A]{State: s, Log: lg, Outcome: Success[E](val)}
		})
	}
}

// Log appends msgs to the chain's log buffer. No state or outcome effect.
func Log[S any, E any](msgs ...logbuf.Message) Step[S, E, Unit] {
	return func(_ context.Context, _ exec.Executor, s S, lg logbuf.Buffer) *exec.Promise[Trace[S, E, Unit]] {
		return exec.Resolved(Trace[S, E, Unit]{State: s, Log: lg.Append(msgs...), Outcome: Success[E](Unit{})})
	}
}

// GetState yields the current state.
func GetState[S any, E any]() Step[S, E, S] {
	return func(_ context.Context, _ exec.Executor, s S, lg logbuf.Buffer) *exec.Promise[Trace[S, E, S]] {
		return exec.Resolved(Trace[S, E, S]{State: s, Log: lg, Outcome: Success[E](s)})
	}
}

// PutState replaces the current state with next.
func PutState[E any, S any](next S) Step[S, E, Unit] {
	return func(_ context.Context, _ exec.Executor, _ S, lg logbuf.Buffer) *exec.Promise[Trace[S, E, Unit]] {
		return exec.Resolved(Trace[S, E, Unit]{State: next, Log: lg, Outcome: Success[E](Unit{})})
	}
}

// ModifyState transforms the current state with fn.
func ModifyState[E any, S any](fn func(S) S) Step[S, E, Unit] {
	return func(_ context.Context, _ exec.Executor, s S, lg logbuf.Buffer) *exec.Promise[Trace[S, E, Unit]] {
		return exec.Resolved(Trace[S, E, Unit]{State: fn(s), Log: lg, Outcome: Success[E](Unit{})})
	}
}

// Gets yields a pure projection of the current state.
// Shorthand for GetState followed by Map.
func Gets[E any, S, A any](fn func(S) A) Step[S, E, A] {
	return func(_ context.Context, _ exec.Executor, s S, lg logbuf.Buffer) *exec.Promise[Trace[S, E, A]] {
		return exec.Resolved(Trace[S, E, A]{State: s, Log: lg, Outcome: Success[E](fn(s))})
	}
}

// Inspect yields a pure projection of the current state and log together.
func Inspect[E any, S, A any](fn func(S, logbuf.Buffer) A) Step[S, E, A] {
	return func(_ context.Context, _ exec.Executor, s S, lg logbuf.Buffer) *exec.Promise[Trace[S, E, A]] {
		return exec.Resolved(Trace[S, E, A]{State: s, Log: lg, Outcome: Success[E](fn(s, lg))})
	}
}

// Defer schedules thunk under the chain's executor and yields its Outcome.
// State and log pass through untouched.
func Defer[S any, E, A any](thunk func(context.Context) Outcome[E, A]) Step[S, E, A] {
	return func(ctx context.Context, ex exec.Executor, s S, lg logbuf.Buffer) *exec.Promise[Trace[S, E, A]] {
		return exec.Submit(ctx, ex, func(ctx context.Context) Trace[S, E, A] {
			return Trace[S, E, A]{State: s, Log: lg, Outcome: thunk(ctx)}
		})
	}
}

// Bind sequences next after st.
//
// If st fails, the combined step short-circuits: next never runs, the state
// and log st left behind are kept, and st's failure is the outcome. If st
// succeeds, next receives its value and runs against st's state and log.
func Bind[S, E, A, B any](st Step[S, E, A], next func(A) Step[S, E, B]) Step[S, E, B] {
	return func(ctx context.Context, ex exec.Executor, s S, lg logbuf.Buffer) *exec.Promise[Trace[S, E, B]] {
		return exec.Chain(st(ctx, ex, s, lg), func(tr Trace[S, E, A]) *exec.Promise[Trace[S, E, B]] {
			if err, failed := tr.Outcome.Err(); failed {
				return exec.Resolved(Trace[S, E, B]{State: tr.State, Log: tr.Log, Outcome: Failure[B](err)})
			}
			val, _ := tr.Outcome.Value()
			return next(val)(ctx, ex, tr.State, tr.Log)
		})
	}
}

// Map transforms st's result value with a pure function.
func Map[S, E, A, B any](st Step[S, E, A], fn func(A) B) Step[S, E, B] {
	return Bind(st, func(val A) Step[S, E, B] {
		return Succeed[S, E](fn(val))
	})
}

// Then sequences next after st, discarding st's result value.
func Then[S, E, A, B any](st Step[S, E, A], next Step[S, E, B]) Step[S, E, B] {
	return Bind(st, func(A) Step[S, E, B] {
		return next
	})
}

// MapErr rewrites st's error type via fn. Success passes through untouched.
func MapErr[S, A, E1, E2 any](st Step[S, E1, A], fn func(E1) E2) Step[S, E2, A] {
	return func(ctx context.Context, ex exec.Executor, s S, lg logbuf.Buffer) *exec.Promise[Trace[S, E2, A]] {
		return exec.MapPromise(st(ctx, ex, s, lg), func(tr Trace[S, E1, A]) Trace[S, E2, A] {
			return Trace[S, E2, A]{State: tr.State, Log: tr.Log, Outcome: TranslateErr(tr.Outcome, fn)}
		})
	}
}

// Zoom lifts a step written against the narrow state N to run against the
// composite state C: extract the slice on entry, reinsert the updated slice
// on exit. Log and outcome pass through untouched.
//
// l must satisfy the lens round-trip laws; a law-breaking lens silently loses
// or duplicates updates.
func Zoom[C, N, E, A any](st Step[N, E, A], l lens.Lens[C, N]) Step[C, E, A] {
	return func(ctx context.Context, ex exec.Executor, c C, lg logbuf.Buffer) *exec.Promise[Trace[C, E, A]] {
		return exec.MapPromise(st(ctx, ex, l.Get(c), lg), func(tr Trace[N, E, A]) Trace[C, E, A] {
			return Trace[C, E, A]{State: l.Put(c, tr.State), Log: tr.Log, Outcome: tr.Outcome}
		})
	}
}

// ZoomVia is Zoom with the lens resolved from r.
// Panics if no lens is registered for the (C, N) pairing.
func ZoomVia[C, N, E, A any](st Step[N, E, A], r *lens.Registry) Step[C, E, A] {
	return Zoom(st, lens.MustResolve[C, N](r))
}

// On rebases st onto another effect context: st's deferred actions run under
// source, and tr hands each completed action over to the caller's context.
//
// tr is the natural-transformation collaborator for the (source, target)
// pairing; it forwards values untouched. Construction panics without one.
func On[S, E, A any](st Step[S, E, A], source exec.Executor, tr exec.Translation[Trace[S, E, A]]) Step[S, E, A] {
	if tr == nil {
		panic("flow.On: a translation between the two effect contexts is required")
	}
	return func(ctx context.Context, _ exec.Executor, s S, lg logbuf.Buffer) *exec.Promise[Trace[S, E, A]] {
		return tr(ctx, st(ctx, source, s, lg))
	}
}
