package flow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rickb777/date/v2/timespan"

	"github.com/on-the-ground/flow_ive_go/flow/exec"
	"github.com/on-the-ground/flow_ive_go/flow/logbuf"
)

// Flush drains the chain's log buffer through sink, leaving it empty for
// subsequent steps. Messages reach the sink in emission order. State and
// outcome are untouched. An already-empty buffer performs no sink call.
//
// A sink failure is not a modeled outcome: it panics the deferred action,
// terminating the chain abruptly, like any other unguarded failure.
func Flush[S any, E any](sink logbuf.Sink) Step[S, E, Unit] {
	return func(ctx context.Context, ex exec.Executor, s S, lg logbuf.Buffer) *exec.Promise[Trace[S, E, Unit]] {
		if lg.Empty() {
			return exec.Resolved(Trace[S, E, Unit]{State: s, Log: lg, Outcome: Success[E](Unit{})})
		}
		return exec.Submit(ctx, ex, func(ctx context.Context) Trace[S, E, Unit] {
			if err := sink.Consume(ctx, lg.Messages()); err != nil {
				panic(fmt.Errorf("flush: sink failure: %w", err))
			}
			return Trace[S, E, Unit]{State: s, Log: logbuf.NewBuffer(), Outcome: Success[E](Unit{})}
		})
	}
}

// Run executes st from initial under ex, starting with an empty log buffer,
// and waits for the final Trace. The returned error is a cancellation of ctx,
// never a modeled failure; those stay in the Trace's Outcome.
func Run[S, E, A any](ctx context.Context, ex exec.Executor, st Step[S, E, A], initial S) (Trace[S, E, A], error) {
	return st(ctx, ex, initial, logbuf.NewBuffer()).Await(ctx)
}

// RunOutcome runs st and keeps only the final Outcome.
func RunOutcome[S, E, A any](ctx context.Context, ex exec.Executor, st Step[S, E, A], initial S) (Outcome[E, A], error) {
	tr, err := Run(ctx, ex, st, initial)
	return tr.Outcome, err
}

// RunState runs st and keeps only the final state.
func RunState[S, E, A any](ctx context.Context, ex exec.Executor, st Step[S, E, A], initial S) (S, error) {
	tr, err := Run(ctx, ex, st, initial)
	return tr.State, err
}

// RunLog runs st and keeps only the accumulated log.
func RunLog[S, E, A any](ctx context.Context, ex exec.Executor, st Step[S, E, A], initial S) (logbuf.Buffer, error) {
	tr, err := Run(ctx, ex, st, initial)
	return tr.Log, err
}

// RunFlushed runs st and hands whatever the final log still holds to sink.
// A sink failure here surfaces as the run error, not a panic, since the chain
// is already complete.
func RunFlushed[S, E, A any](ctx context.Context, ex exec.Executor, st Step[S, E, A], initial S, sink logbuf.Sink) (Trace[S, E, A], error) {
	tr, err := Run(ctx, ex, st, initial)
	if err != nil {
		return tr, err
	}
	if !tr.Log.Empty() {
		if err := sink.Consume(ctx, tr.Log.Messages()); err != nil {
			return tr, fmt.Errorf("flush after run: %w", err)
		}
		tr.Log = logbuf.NewBuffer()
	}
	return tr, nil
}

// Report describes one invocation of a chain.
type Report struct {
	// RunId identifies the invocation; it is also the partition key the
	// run's deferred actions carry, so pooled executors keep them ordered.
	RunId string
	// Span brackets the invocation in time.
	Span timespan.TimeSpan
}

// RunReport runs st tagged with a fresh run id and reports the invocation.
func RunReport[S, E, A any](ctx context.Context, ex exec.Executor, st Step[S, E, A], initial S) (Trace[S, E, A], Report, error) {
	runId := uuid.New().String()
	ctx = exec.WithRunKey(ctx, runId)

	from := time.Now()
	tr, err := Run(ctx, ex, st, initial)
	report := Report{
		RunId: runId,
		Span:  timespan.BetweenTimes(from, time.Now()),
	}
	return tr, report, err
}
