package flow

import (
	"context"
	"fmt"

	"github.com/on-the-ground/flow_ive_go/flow/exec"
	"github.com/on-the-ground/flow_ive_go/flow/logbuf"
)

// Guard is the boundary collaborator that translates an ambient fallible
// representation W into the uniform Outcome.
//
// Interpret handles a value the wrapped computation produced normally.
// Recover handles a panic captured while producing it; Attempt guarantees
// the panic itself never escapes.
type Guard[W, E, A any] interface {
	Interpret(wrapped W) Outcome[E, A]
	Recover(cause any) Outcome[E, A]
}

// Attempt runs wrapped under the chain's executor and routes whatever it
// produces, including a panic, through g. This is the designated boundary
// for converting exceptions and attempt-style idioms into Outcomes; anything
// not routed through it terminates the chain abruptly.
func Attempt[S any, W, E, A any](wrapped func(context.Context) W, g Guard[W, E, A]) Step[S, E, A] {
	return func(ctx context.Context, ex exec.Executor, s S, lg logbuf.Buffer) *exec.Promise[Trace[S, E, A]] {
		return exec.Submit(ctx, ex, func(ctx context.Context) Trace[S, E, A] {
			out := func() (out Outcome[E, A]) {
				defer func() {
					if r := recover(); r != nil {
						out = g.Recover(r)
					}
				}()
				return g.Interpret(wrapped(ctx))
			}()
			return Trace[S, E, A]{State: s, Log: lg, Outcome: out}
		})
	}
}

// Result is the attempt-style shape: a value alongside the error produced
// with it.
type Result[A any] struct {
	Val A
	Err error
}

// ResultFrom packs a (value, error) return into a Result.
func ResultFrom[A any](val A, err error) Result[A] {
	return Result[A]{Val: val, Err: err}
}

// Option is the optional shape: a value that may be absent.
type Option[A any] struct {
	Val A
	Ok  bool
}

var (
	ErrPanicked    = fmt.Errorf("recovered panic")
	ErrEmptyOption = fmt.Errorf("empty optional value")
)

// ErrGuard interprets Result values: a non-nil Err is the failure.
type ErrGuard[A any] struct{}

func (ErrGuard[A]) Interpret(r Result[A]) Outcome[error, A] {
	if r.Err != nil {
		return Failure[A](r.Err)
	}
	return Success[error](r.Val)
}

func (ErrGuard[A]) Recover(cause any) Outcome[error, A] {
	return Failure[A](recoveredError(cause))
}

// OptGuard interprets Option values: absence fails with ErrEmptyOption.
type OptGuard[A any] struct{}

func (OptGuard[A]) Interpret(o Option[A]) Outcome[error, A] {
	if !o.Ok {
		return Failure[A](ErrEmptyOption)
	}
	return Success[error](o.Val)
}

func (OptGuard[A]) Recover(cause any) Outcome[error, A] {
	return Failure[A](recoveredError(cause))
}

// AttemptErr guards a plain (value, error) function.
func AttemptErr[S any, A any](fn func(context.Context) (A, error)) Step[S, error, A] {
	return Attempt[S, Result[A], error, A](func(ctx context.Context) Result[A] {
		return ResultFrom(fn(ctx))
	}, ErrGuard[A]{})
}

// AttemptOpt guards a (value, ok) function.
func AttemptOpt[S any, A any](fn func(context.Context) (A, bool)) Step[S, error, A] {
	return Attempt[S, Option[A], error, A](func(ctx context.Context) Option[A] {
		val, ok := fn(ctx)
		return Option[A]{Val: val, Ok: ok}
	}, OptGuard[A]{})
}

func recoveredError(cause any) error {
	if err, ok := cause.(error); ok {
		return fmt.Errorf("%w: %w", ErrPanicked, err)
	}
	return fmt.Errorf("%w: %v", ErrPanicked, cause)
}
