package flow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/on-the-ground/flow_ive_go/flow"
	"github.com/on-the-ground/flow_ive_go/flow/exec"
	"github.com/on-the-ground/flow_ive_go/flow/lens"
	"github.com/on-the-ground/flow_ive_go/flow/logbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type conn struct {
	Addr  string
	Alive bool
}

type client struct {
	Name    string
	Retries int
}

type session struct {
	Conn   conn
	Client client
}

var connLens = lens.New(
	func(s session) conn { return s.Conn },
	func(s session, c conn) session { s.Conn = c; return s },
)

var clientLens = lens.New(
	func(s session) client { return s.Client },
	func(s session, c client) session { s.Client = c; return s },
)

// reconnect knows only about conn.
var reconnect = flow.Then(
	flow.Log[conn, error](logbuf.Info("reconnecting", nil)),
	flow.ModifyState[error](func(c conn) conn {
		c.Alive = true
		return c
	}),
)

// bumpRetries knows only about client.
var bumpRetries = flow.ModifyState[error](func(c client) client {
	c.Retries++
	return c
})

func TestZoom_NarrowStepOverComposite(t *testing.T) {
	st := flow.Zoom(reconnect, connLens)

	tr, err := flow.Run(context.Background(), exec.NewInline(), st, session{
		Conn:   conn{Addr: "db:5432"},
		Client: client{Name: "svc", Retries: 1},
	})
	require.NoError(t, err)

	assert.True(t, tr.State.Conn.Alive)
	assert.Equal(t, "db:5432", tr.State.Conn.Addr)
	assert.Equal(t, client{Name: "svc", Retries: 1}, tr.State.Client, "untouched slice must survive")
	assert.Equal(t, 1, tr.Log.Len(), "log passes through the lift")
}

func TestZoom_DisjointSlicesCommute(t *testing.T) {
	initial := session{Conn: conn{Addr: "a"}, Client: client{Name: "c"}}
	ctx := context.Background()

	connFirst := flow.Then(flow.Zoom(reconnect, connLens), flow.Zoom(bumpRetries, clientLens))
	clientFirst := flow.Then(flow.Zoom(bumpRetries, clientLens), flow.Zoom(reconnect, connLens))

	a, err := flow.RunState(ctx, exec.NewInline(), connFirst, initial)
	require.NoError(t, err)
	b, err := flow.RunState(ctx, exec.NewInline(), clientFirst, initial)
	require.NoError(t, err)

	assert.Equal(t, a, b, "disjoint slices must compose in either order")
	assert.True(t, a.Conn.Alive)
	assert.Equal(t, 1, a.Client.Retries)
}

func TestZoom_FailurePassesThrough(t *testing.T) {
	boom := errors.New("connect refused")
	failing := flow.Then(
		flow.Log[conn, error](logbuf.Error("giving up", nil)),
		flow.FailWith[conn, flow.Unit](boom),
	)

	tr, err := flow.Run(context.Background(), exec.NewInline(), flow.Zoom(failing, connLens), session{})
	require.NoError(t, err)

	gotErr, failed := tr.Outcome.Err()
	require.True(t, failed)
	assert.Equal(t, boom, gotErr)
	assert.Equal(t, 1, tr.Log.Len())
}

func TestZoomVia_UsesRegistry(t *testing.T) {
	reg := lens.NewRegistry()
	lens.Register(reg, connLens)

	st := flow.ZoomVia[session](reconnect, reg)

	s, err := flow.RunState(context.Background(), exec.NewInline(), st, session{})
	require.NoError(t, err)
	assert.True(t, s.Conn.Alive)
}
