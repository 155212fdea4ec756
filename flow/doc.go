// Package flow provides a minimal and idiomatic result/effect composition
// discipline for Go.
//
// A chain of computation usually carries three side-concerns at once: an
// outcome that may be a typed failure, a trail of structured log messages,
// and a piece of program state the steps read and write. flow threads all
// three through one immutable value, the Step, so independently written
// steps compose without knowing about each other's concerns.
//
// # What is a Step?
//
// A Step is a description: given the current state, produce — under an
// effect context — an updated state, the accumulated log, and either a
// result value or a typed domain error. Nothing runs until a Run function
// supplies an initial state and an executor.
//
// # Sequencing
//
// Bind and Map are the only composition primitives. Bind obeys one law
// everywhere: logs accumulate whether or not a step fails, state already
// written before a failure is kept, and nothing after the first failure
// executes.
//
// # Two failure channels
//
// A modeled failure is a typed error inside the Outcome: it short-circuits
// the chain and is fully recoverable by inspecting the final Trace. An
// unmodeled failure — a panic, or a collaborator's own breakage — is fatal
// unless a step author routes it through the Guard boundary (Attempt),
// which converts it into a modeled failure.
//
// # State slices
//
// Zoom lifts a step written against a narrow state over a composite state
// through a lens, so two steps over disjoint concerns sequence against one
// shared state without either knowing the other exists.
//
// # Effect contexts
//
// The executor is opaque to the chain: synchronous, goroutine-per-action,
// or pooled, the chain only sequences completions. On rebases a chain onto
// another context through an explicit natural-transformation collaborator.
//
// Example:
//
//	st := flow.Bind(flow.GetState[int, error](), func(n int) flow.Step[int, error, int] {
//		return flow.Then(flow.PutState[error](n*2), flow.Gets[error](func(n int) int { return n }))
//	})
//	tr, _ := flow.Run(ctx, exec.NewInline(), st, 1)
package flow
