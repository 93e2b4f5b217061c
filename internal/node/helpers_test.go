package node

import (
	"context"
	"fmt"
	"testing"

	"github.com/specialistvlad/flowgridgo/internal/diag"
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
	"github.com/specialistvlad/flowgridgo/internal/pin"
	"github.com/stretchr/testify/require"
)

// recorder is a Logic that records every hook call.
type recorder struct {
	Base
	calls      []string
	onActivate func(ctx context.Context, n *Node) error
	onInput    func(ctx context.Context, n *Node, input pin.Name) error
}

func (r *recorder) InitializeInstance(context.Context, *Node) error {
	r.calls = append(r.calls, "init")
	return nil
}

func (r *recorder) DeinitializeInstance(context.Context, *Node) {
	r.calls = append(r.calls, "deinit")
}

func (r *recorder) PreloadContent(context.Context, *Node) error {
	r.calls = append(r.calls, "preload")
	return nil
}

func (r *recorder) FlushContent(context.Context, *Node) {
	r.calls = append(r.calls, "flush")
}

func (r *recorder) OnActivate(ctx context.Context, n *Node) error {
	r.calls = append(r.calls, "activate")
	if r.onActivate != nil {
		return r.onActivate(ctx, n)
	}
	return nil
}

func (r *recorder) ExecuteInput(ctx context.Context, n *Node, input pin.Name) error {
	r.calls = append(r.calls, "input:"+input.String())
	if r.onInput != nil {
		return r.onInput(ctx, n, input)
	}
	return nil
}

func (r *recorder) Cleanup(context.Context, *Node) {
	r.calls = append(r.calls, "cleanup")
}

func (r *recorder) count(call string) int {
	c := 0
	for _, got := range r.calls {
		if got == call {
			c++
		}
	}
	return c
}

type route struct {
	to    *Node
	input pin.Name
}

// testHost propagates outputs synchronously along explicit routes.
type testHost struct {
	fired  []string
	routes map[string][]route
	diags  diag.Log
	owner  any
}

func newTestHost() *testHost {
	return &testHost{routes: map[string][]route{}}
}

func (h *testHost) connect(from *Node, out pin.Name, to *Node, in pin.Name) {
	key := from.Name() + "." + out.String()
	h.routes[key] = append(h.routes[key], route{to: to, input: in})
}

func (h *testHost) AssetName() string { return "test_asset" }

func (h *testHost) PropagateOutput(ctx context.Context, from *Node, out pin.Name, _ pin.ActivationType) error {
	key := from.Name() + "." + out.String()
	h.fired = append(h.fired, key)
	for _, r := range h.routes[key] {
		if err := r.to.ExecuteInput(ctx, r.input); err != nil {
			return err
		}
	}
	return nil
}

func (h *testHost) Report(ctx context.Context, m diag.Message) {
	h.diags.Add(ctx, nil, m)
}

func (h *testHost) RootOwner() any { return h.owner }

func recorderFactory(nodetype.Properties) (any, error) { return &recorder{}, nil }

func primaryDef(typ string, outputs ...pin.Name) *nodetype.Definition {
	outs := make([]pin.FlowPin, 0, len(outputs))
	for _, o := range outputs {
		outs = append(outs, pin.New(o))
	}
	return &nodetype.Definition{
		Type:    typ,
		Inputs:  []pin.FlowPin{pin.New("In")},
		Outputs: outs,
		New:     recorderFactory,
	}
}

func addOnDef(typ string, capabilities ...string) *nodetype.Definition {
	return &nodetype.Definition{
		Type:         typ,
		Kind:         nodetype.AddOn,
		Capabilities: capabilities,
		Traits:       nodetype.Traits{AcceptAnyInput: true},
		New:          recorderFactory,
	}
}

func spawn(t *testing.T, a *Arena, def *nodetype.Definition, name string) *Node {
	t.Helper()
	n, err := a.Spawn(Spec{Def: def, Name: name})
	require.NoError(t, err)
	return n
}

func attach(t *testing.T, a *Arena, parent, child *Node) {
	t.Helper()
	_, err := a.Attach(context.Background(), parent.Handle(), child.Handle())
	require.NoError(t, err)
}

func rec(n *Node) *recorder {
	return n.Logic().(*recorder)
}

type text string

func (t text) String() string { return string(t) }

var _ fmt.Stringer = text("")
