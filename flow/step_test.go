package flow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/on-the-ground/flow_ive_go/flow"
	"github.com/on-the-ground/flow_ive_go/flow/exec"
	"github.com/on-the-ground/flow_ive_go/flow/logbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	Id int
}

func double(c counter) counter { c.Id *= 2; return c }
func addThree(c counter) counter { c.Id += 3; return c }

func TestStep_StateChainScenario(t *testing.T) {
	// read (id=1) -> double (id=2) -> add 3 (id=5) -> read again
	st := flow.Then(
		flow.GetState[counter, error](),
		flow.Then(
			flow.ModifyState[error](double),
			flow.Then(
				flow.ModifyState[error](addThree),
				flow.GetState[counter, error](),
			),
		),
	)

	tr, err := flow.Run(context.Background(), exec.NewInline(), st, counter{Id: 1})
	require.NoError(t, err)

	val, ok := tr.Outcome.Value()
	require.True(t, ok, "expected success")
	assert.Equal(t, 5, val.Id)
	assert.Equal(t, 5, tr.State.Id)
	assert.True(t, tr.Log.Empty(), "no log steps in this chain")
}

func TestStep_LogOrderScenario(t *testing.T) {
	// Info "A" -> Error "B" -> [Debug "C", Info "D"] -> yield 5
	st := flow.Then(
		flow.Log[counter, error](logbuf.Info("A", nil)),
		flow.Then(
			flow.Log[counter, error](logbuf.Error("B", nil)),
			flow.Then(
				flow.Log[counter, error](logbuf.Debug("C", nil), logbuf.Info("D", nil)),
				flow.Succeed[counter, error](5),
			),
		),
	)

	tr, err := flow.Run(context.Background(), exec.NewInline(), st, counter{})
	require.NoError(t, err)

	val, ok := tr.Outcome.Value()
	require.True(t, ok)
	assert.Equal(t, 5, val)

	msgs := tr.Log.Messages()
	require.Len(t, msgs, 4)
	wantText := []string{"A", "B", "C", "D"}
	wantLevel := []logbuf.Level{logbuf.LevelInfo, logbuf.LevelError, logbuf.LevelDebug, logbuf.LevelInfo}
	for i := range msgs {
		assert.Equal(t, wantText[i], msgs[i].Text)
		assert.Equal(t, wantLevel[i], msgs[i].Level)
	}
}

func TestBind_ShortCircuitOnFailure(t *testing.T) {
	boom := errors.New("boom")
	executed := 0

	tick := func() flow.Step[counter, error, flow.Unit] {
		return flow.Bind(flow.GetState[counter, error](), func(counter) flow.Step[counter, error, flow.Unit] {
			executed++
			return flow.Succeed[counter, error](flow.Unit{})
		})
	}

	st := flow.Then(
		tick(),
		flow.Then(
			flow.ModifyState[error](double),
			flow.Then(
				flow.FailWith[counter, flow.Unit](boom),
				flow.Then(tick(), tick()),
			),
		),
	)

	tr, err := flow.Run(context.Background(), exec.NewInline(), st, counter{Id: 1})
	require.NoError(t, err)

	gotErr, failed := tr.Outcome.Err()
	require.True(t, failed)
	assert.Equal(t, boom, gotErr)
	assert.Equal(t, 1, executed, "steps after the failure must never run")
	assert.Equal(t, 2, tr.State.Id, "state written before the failure is kept")
}

func TestBind_LogsAccumulateThroughFailure(t *testing.T) {
	boom := errors.New("boom")

	st := flow.Then(
		flow.Log[counter, error](logbuf.Info("before", nil)),
		flow.Then(
			flow.FailWith[counter, flow.Unit](boom),
			flow.Log[counter, error](logbuf.Info("after", nil)),
		),
	)

	tr, err := flow.Run(context.Background(), exec.NewInline(), st, counter{})
	require.NoError(t, err)

	assert.False(t, tr.Outcome.Succeeded())
	msgs := tr.Log.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "before", msgs[0].Text)
}

func TestMap_TransformsSuccessOnly(t *testing.T) {
	doubled := flow.Map(flow.Succeed[counter, error](21), func(n int) int { return n * 2 })
	out, err := flow.RunOutcome(context.Background(), exec.NewInline(), doubled, counter{})
	require.NoError(t, err)
	val, ok := out.Value()
	require.True(t, ok)
	assert.Equal(t, 42, val)

	boom := errors.New("boom")
	failed := flow.Map(flow.FailWith[counter, int](boom), func(n int) int { return n * 2 })
	out, err = flow.RunOutcome(context.Background(), exec.NewInline(), failed, counter{})
	require.NoError(t, err)
	gotErr, isErr := out.Err()
	require.True(t, isErr)
	assert.Equal(t, boom, gotErr)
}

type parseErr struct{ Raw string }

func TestMapErr_ExplicitTranslation(t *testing.T) {
	st := flow.MapErr(
		flow.FailWith[counter, int](errors.New("not a number")),
		func(err error) parseErr { return parseErr{Raw: err.Error()} },
	)

	out, err := flow.RunOutcome(context.Background(), exec.NewInline(), st, counter{})
	require.NoError(t, err)

	gotErr, failed := out.Err()
	require.True(t, failed)
	assert.Equal(t, "not a number", gotErr.Raw)
}

func TestFromOutcome(t *testing.T) {
	out, err := flow.RunOutcome(
		context.Background(), exec.NewInline(),
		flow.FromOutcome[counter](flow.Success[error](9)),
		counter{},
	)
	require.NoError(t, err)
	val, ok := out.Value()
	require.True(t, ok)
	assert.Equal(t, 9, val)
}

func TestFromPromise_LiftsEffectValue(t *testing.T) {
	st := flow.FromPromise[counter, error](exec.Resolved("lifted"))

	out, err := flow.RunOutcome(context.Background(), exec.NewInline(), st, counter{})
	require.NoError(t, err)
	val, ok := out.Value()
	require.True(t, ok)
	assert.Equal(t, "lifted", val)
}

func TestStep_Replayable(t *testing.T) {
	st := flow.Then(
		flow.ModifyState[error](double),
		flow.GetState[counter, error](),
	)

	for i := 0; i < 3; i++ {
		tr, err := flow.Run(context.Background(), exec.NewInline(), st, counter{Id: 2})
		require.NoError(t, err)
		assert.Equal(t, 4, tr.State.Id, "run %d saw a mutated computation value", i)
	}
}

func TestStep_AsyncContextSameSemantics(t *testing.T) {
	ex := exec.NewSpawn()
	defer ex.Close()

	st := flow.Bind(
		flow.Defer[counter](func(context.Context) flow.Outcome[error, int] {
			return flow.Success[error](20)
		}),
		func(n int) flow.Step[counter, error, int] {
			return flow.Then(
				flow.ModifyState[error](addThree),
				flow.Succeed[counter, error](n+1),
			)
		},
	)

	tr, err := flow.Run(context.Background(), ex, st, counter{Id: 1})
	require.NoError(t, err)

	val, ok := tr.Outcome.Value()
	require.True(t, ok)
	assert.Equal(t, 21, val)
	assert.Equal(t, 4, tr.State.Id)
}
