package exec

import (
	"context"
	"sync"
)

// Promise is a one-shot handle on the result of a deferred action.
//
// A Promise resolves at most once. Awaiting it multiple times is allowed and
// always yields the same value. Callbacks registered via OnResolve run on the
// resolving goroutine, after the value is published.
type Promise[T any] struct {
	mu       sync.Mutex
	resolved bool
	val      T
	subs     []func(T)
	done     chan struct{}
}

// NewPromise returns an unresolved Promise and its resolve function.
// Only the first resolve call takes effect.
func NewPromise[T any]() (*Promise[T], func(T)) {
	p := &Promise[T]{done: make(chan struct{})}
	return p, p.resolve
}

// Resolved returns a Promise already holding val.
func Resolved[T any](val T) *Promise[T] {
	p, resolve := NewPromise[T]()
	resolve(val)
	return p
}

func (p *Promise[T]) resolve(val T) {
	p.mu.Lock()
	if p.resolved {
		p.mu.Unlock()
		return
	}
	p.resolved = true
	p.val = val
	subs := p.subs
	p.subs = nil
	close(p.done)
	p.mu.Unlock()

	for _, sub := range subs {
		sub(val)
	}
}

// OnResolve registers fn to run with the resolved value.
// If the Promise is already resolved, fn runs immediately on the calling
// goroutine; otherwise it runs on the resolving goroutine.
func (p *Promise[T]) OnResolve(fn func(T)) {
	p.mu.Lock()
	if !p.resolved {
		p.subs = append(p.subs, fn)
		p.mu.Unlock()
		return
	}
	val := p.val
	p.mu.Unlock()

	fn(val)
}

// Await blocks until the Promise resolves or ctx is done.
// A ctx error is an abrupt termination of the chain, not a modeled outcome.
func (p *Promise[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.val, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Submit schedules thunk on ex and returns a Promise for its result.
// The partition key, if any, is taken from ctx (see WithRunKey).
func Submit[T any](ctx context.Context, ex Executor, thunk func(context.Context) T) *Promise[T] {
	p, resolve := NewPromise[T]()
	ex.Go(ctx, RunKey(ctx), func() {
		resolve(thunk(ctx))
	})
	return p
}

// Chain resolves the returned Promise with next's result once pa resolves.
// next runs only after pa has resolved; no scheduling of its own is involved,
// so sequencing stays strictly ordered regardless of executor.
func Chain[A, B any](pa *Promise[A], next func(A) *Promise[B]) *Promise[B] {
	pb, resolve := NewPromise[B]()
	pa.OnResolve(func(a A) {
		next(a).OnResolve(resolve)
	})
	return pb
}

// MapPromise resolves the returned Promise with fn applied to pa's value.
func MapPromise[A, B any](pa *Promise[A], fn func(A) B) *Promise[B] {
	pb, resolve := NewPromise[B]()
	pa.OnResolve(func(a A) {
		resolve(fn(a))
	})
	return pb
}
