package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/flowgridgo/internal/config"
	"github.com/specialistvlad/flowgridgo/internal/node"
	"github.com/specialistvlad/flowgridgo/internal/nodeid"
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
	"github.com/specialistvlad/flowgridgo/internal/pin"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// probe is a Logic driven by a per-type input handler.
type probe struct {
	node.Base
	inputs  int
	cleanup int
	handle  func(ctx context.Context, n *node.Node, p *probe, input pin.Name) error
}

func (p *probe) ExecuteInput(ctx context.Context, n *node.Node, input pin.Name) error {
	p.inputs++
	if p.handle != nil {
		return p.handle(ctx, n, p, input)
	}
	return nil
}

func (p *probe) Cleanup(context.Context, *node.Node) { p.cleanup++ }

func pins(names ...pin.Name) []pin.FlowPin {
	out := make([]pin.FlowPin, 0, len(names))
	for _, n := range names {
		out = append(out, pin.New(n))
	}
	return out
}

func probeType(typ string, inputs, outputs []pin.FlowPin, handle func(context.Context, *node.Node, *probe, pin.Name) error) *nodetype.Definition {
	return &nodetype.Definition{
		Type:    typ,
		Inputs:  inputs,
		Outputs: outputs,
		New: func(nodetype.Properties) (any, error) {
			return &probe{handle: handle}, nil
		},
	}
}

var errBoom = errors.New("boom")

type testTypes struct{}

func (testTypes) Register(r *nodetype.Registry) {
	// Relay fires Out and finishes.
	r.RegisterType(probeType("Relay", pins("In"), pins("Out"), func(ctx context.Context, n *node.Node, _ *probe, _ pin.Name) error {
		return n.TriggerOutputString(ctx, "Out", true)
	}))
	// Gate routes on its "pass" property.
	r.RegisterType(probeType("Gate", pins("Check"), pins("True", "False"), func(ctx context.Context, n *node.Node, _ *probe, _ pin.Name) error {
		pass, err := n.Properties().Bool("pass", false)
		if err != nil {
			return err
		}
		if pass {
			return n.TriggerOutputString(ctx, "True", true)
		}
		return n.TriggerOutputString(ctx, "False", true)
	}))
	// Sink finishes on any input.
	r.RegisterType(probeType("Sink", pins("In"), nil, func(ctx context.Context, n *node.Node, _ *probe, _ pin.Name) error {
		n.Finish(ctx)
		return nil
	}))
	// Hold stays active until stopped.
	r.RegisterType(probeType("Hold", pins("In"), nil, nil))
	// Ping keeps firing Out until it has seen "limit" inputs.
	r.RegisterType(probeType("Ping", pins("In"), pins("Out"), func(ctx context.Context, n *node.Node, p *probe, _ pin.Name) error {
		limit, err := n.Properties().Int("limit", 10)
		if err != nil {
			return err
		}
		if p.inputs >= limit {
			n.Finish(ctx)
			return nil
		}
		return n.TriggerOutputString(ctx, "Out", false)
	}))
	// Urgent fires Out as a forced activation.
	r.RegisterType(probeType("Urgent", pins("In"), pins("Out"), func(ctx context.Context, n *node.Node, _ *probe, _ pin.Name) error {
		return n.TriggerOutput(ctx, "Out", true, pin.Forced)
	}))
	// End stops the whole run.
	r.RegisterType(probeType("End", pins("In"), nil, func(ctx context.Context, n *node.Node, _ *probe, _ pin.Name) error {
		if f, ok := n.Host().(node.RunFinisher); ok {
			f.FinishRun(ctx)
		}
		n.Finish(ctx)
		return nil
	}))
	r.RegisterType(probeType("Broken", pins("In"), nil, func(context.Context, *node.Node, *probe, pin.Name) error {
		return errBoom
	}))
	r.RegisterType(&nodetype.Definition{
		Type:         "Tag",
		Kind:         nodetype.AddOn,
		Capabilities: []string{"tag"},
		Traits:       nodetype.Traits{AcceptAnyInput: true},
		New:          func(nodetype.Properties) (any, error) { return &probe{}, nil },
	})
	closed := probeType("Closed", pins("In"), nil, nil)
	closed.Traits.AddOnCapabilities = []string{"predicate"}
	r.RegisterType(closed)
}

func registry() *nodetype.Registry {
	return nodetype.New(testTypes{})
}

func n(name, typ string, props map[string]cty.Value, addOns ...*config.Node) *config.Node {
	v := cty.EmptyObjectVal
	if props != nil {
		v = cty.ObjectVal(props)
	}
	return &config.Node{Name: name, Type: typ, Properties: v, AddOns: addOns}
}

func wire(from, to string) *config.Connection {
	f, err := nodeid.Parse(from)
	if err != nil {
		panic(err)
	}
	t, err := nodeid.Parse(to)
	if err != nil {
		panic(err)
	}
	return &config.Connection{From: f, To: t}
}

func compile(t *testing.T, m *config.Model) *Asset {
	t.Helper()
	a, err := Compile(context.Background(), m, registry())
	require.NoError(t, err)
	return a
}

func start(t *testing.T, a *Asset, opts Options) *Run {
	t.Helper()
	r, err := NewRun(context.Background(), a, opts)
	require.NoError(t, err)
	return r
}

func logicOf(t *testing.T, r *Run, name string) *probe {
	t.Helper()
	nd, ok := r.Node(name)
	require.True(t, ok, name)
	return nd.Logic().(*probe)
}
