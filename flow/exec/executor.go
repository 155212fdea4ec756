// Package exec provides the effect contexts a flow chain runs inside.
//
// An Executor is the scheduling discipline for deferred actions: where and
// when a submitted thunk runs. The chain itself only sequences completions;
// it never inspects or constrains the discipline beyond "run this". Three
// disciplines ship with the package: Inline (synchronous), Spawn (one
// goroutine per action), and Pool (fixed workers with per-key ordering).
package exec

import (
	"context"
	"sync"
)

// Executor is an effect context: it owns the execution of deferred actions.
//
// Go schedules run under the executor's discipline. key is an ordering hint:
// executors that partition work must route equal keys to the same worker so
// per-key submission order is preserved. Close ends the executor's lifecycle;
// submitting after Close is undefined.
type Executor interface {
	Go(ctx context.Context, key string, run func())
	Close()
}

type runKeyCtx struct{}

const unpartitionedKey = "unpartitioned"

// WithRunKey tags ctx with the partition key used for every subsequent Submit.
func WithRunKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, runKeyCtx{}, key)
}

// RunKey returns the partition key carried by ctx, or the unpartitioned
// default when none was set.
func RunKey(ctx context.Context) string {
	if key, ok := ctx.Value(runKeyCtx{}).(string); ok {
		return key
	}
	return unpartitionedKey
}

// Inline runs every action synchronously on the submitting goroutine.
// It is the synchronous effect context: run has already finished by the
// time Go returns.
type Inline struct{}

// NewInline returns the synchronous effect context.
func NewInline() Inline { return Inline{} }

func (Inline) Go(_ context.Context, _ string, run func()) { run() }

func (Inline) Close() {}

// Spawn runs every action on its own goroutine.
// Close waits for every spawned action to finish.
type Spawn struct {
	wg sync.WaitGroup
}

// NewSpawn returns a goroutine-per-action effect context.
func NewSpawn() *Spawn { return &Spawn{} }

func (s *Spawn) Go(_ context.Context, _ string, run func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		run()
	}()
}

func (s *Spawn) Close() { s.wg.Wait() }
