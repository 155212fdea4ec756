package exec

import "context"

// Translation converts a deferred action of one effect context into an
// equivalent action owned by another.
//
// A Translation is the natural-transformation collaborator of a chain: it
// must forward the resolved value untouched and may only decide where and
// when the forwarding happens. Being generic in T, a translation written as
// a function literal cannot branch on the value's shape; that parametricity
// is the whole contract.
type Translation[T any] func(ctx context.Context, src *Promise[T]) *Promise[T]

// Handoff is the canonical translation into target: completion of the source
// action is re-delivered through target's scheduling discipline.
func Handoff[T any](target Executor) Translation[T] {
	return func(ctx context.Context, src *Promise[T]) *Promise[T] {
		dst, resolve := NewPromise[T]()
		src.OnResolve(func(val T) {
			target.Go(ctx, RunKey(ctx), func() {
				resolve(val)
			})
		})
		return dst
	}
}
