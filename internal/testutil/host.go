package testutil

import (
	"context"
	"testing"

	"github.com/specialistvlad/flowgridgo/internal/diag"
	"github.com/specialistvlad/flowgridgo/internal/node"
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
	"github.com/specialistvlad/flowgridgo/internal/pin"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// Host is a node.Host that records fired outputs and diagnostics instead of
// propagating them. Routes added with Connect are delivered synchronously.
type Host struct {
	Arena *node.Arena

	fired    []string
	routes   map[string][]route
	diags    diag.Log
	finished int
}

type route struct {
	to    *node.Node
	input pin.Name
}

var (
	_ node.Host        = (*Host)(nil)
	_ node.RunFinisher = (*Host)(nil)
)

// NewHost creates a host with an empty arena.
func NewHost() *Host {
	h := &Host{routes: map[string][]route{}}
	h.Arena = node.NewArena(h)
	return h
}

// Connect routes an output of one node to an input of another.
func (h *Host) Connect(from *node.Node, out pin.Name, to *node.Node, in pin.Name) {
	key := from.Name() + "." + out.String()
	h.routes[key] = append(h.routes[key], route{to: to, input: in})
}

func (h *Host) AssetName() string { return "test" }

func (h *Host) RootOwner() any { return h }

func (h *Host) PropagateOutput(ctx context.Context, from *node.Node, out pin.Name, _ pin.ActivationType) error {
	key := from.Name() + "." + out.String()
	h.fired = append(h.fired, key)
	for _, r := range h.routes[key] {
		if err := r.to.ExecuteInput(ctx, r.input); err != nil {
			return err
		}
	}
	return nil
}

func (h *Host) Report(ctx context.Context, m diag.Message) {
	h.diags.Add(ctx, nil, m)
}

func (h *Host) FinishRun(context.Context) { h.finished++ }

// Fired returns every output fired so far as "node.Pin".
func (h *Host) Fired() []string { return append([]string(nil), h.fired...) }

// Messages returns the reported diagnostics.
func (h *Host) Messages() []diag.Message { return h.diags.Messages() }

// RunsFinished counts FinishRun calls.
func (h *Host) RunsFinished() int { return h.finished }

// Spawn creates a node of the registered type typ, named after the type.
func Spawn(t *testing.T, h *Host, reg *nodetype.Registry, typ string, props map[string]cty.Value) *node.Node {
	t.Helper()
	return SpawnNamed(t, h, reg, typ, typ, props)
}

// SpawnNamed creates a named node of the registered type typ.
func SpawnNamed(t *testing.T, h *Host, reg *nodetype.Registry, typ, name string, props map[string]cty.Value) *node.Node {
	t.Helper()
	def, ok := reg.Lookup(typ)
	require.True(t, ok, "type %q not registered", typ)
	p := nodetype.Properties{}
	for k, v := range props {
		p[k] = v
	}
	n, err := h.Arena.Spawn(node.Spec{Def: def, Name: name, Props: p})
	require.NoError(t, err)
	return n
}

// Attach makes child an add-on of parent.
func Attach(t *testing.T, h *Host, parent, child *node.Node) {
	t.Helper()
	_, err := h.Arena.Attach(context.Background(), parent.Handle(), child.Handle())
	require.NoError(t, err)
}
