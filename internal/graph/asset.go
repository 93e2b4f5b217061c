package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/flowgridgo/internal/config"
	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/diag"
	"github.com/specialistvlad/flowgridgo/internal/inmemorytopology"
	"github.com/specialistvlad/flowgridgo/internal/nodeid"
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
	"github.com/specialistvlad/flowgridgo/internal/pin"
	"github.com/specialistvlad/flowgridgo/internal/topologystore"
)

// ErrUnknownType is returned by Compile when the model names a node type the
// registry does not know.
var ErrUnknownType = errors.New("unknown node type")

// Asset is a compiled graph: node templates, add-on trees, and wiring. It is
// immutable and may back any number of runs.
type Asset struct {
	Name      string
	Entry     []string
	templates []*template
	byName    map[string]*template
	topology  topologystore.Store
	diags     []diag.Message
}

// template is the design-time description of one node instance.
type template struct {
	name   string
	id     string
	def    *nodetype.Definition
	props  nodetype.Properties
	addOns []*template
}

// Compile checks a model against the registry. Structural problems and
// unknown types are errors. A rejected add-on or a connection to an
// undeclared pin is a configuration diagnostic: it is recorded on the asset
// and left out, and the rest of the graph still compiles.
func Compile(ctx context.Context, m *config.Model, reg *nodetype.Registry) (*Asset, error) {
	logger := ctxlog.FromContext(ctx).With("graph", m.Name)
	if err := m.Validate(); err != nil {
		return nil, err
	}

	a := &Asset{
		Name:     m.Name,
		byName:   make(map[string]*template),
		topology: inmemorytopology.New(),
	}

	var errs []error
	for _, mn := range m.Nodes {
		t, err := a.buildTemplate(ctx, reg, mn, nil)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if t.def.IsAddOn() {
			errs = append(errs, fmt.Errorf("node '%s': type '%s' is an add-on and must be nested under a node", t.name, t.def.Type))
			t.forget(a)
			continue
		}
		a.templates = append(a.templates, t)
		if err := a.topology.AddNode(ctx, t.name); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("compile graph '%s': %w", m.Name, errors.Join(errs...))
	}

	for _, c := range m.Connections {
		a.connect(ctx, c)
	}

	a.Entry = m.Entry
	if len(a.Entry) == 0 {
		a.Entry = a.defaultEntry(ctx)
	}

	logger.Debug("Graph compiled.", "nodes", len(a.templates), "connections", a.topology.Len(ctx), "diagnostics", len(a.diags))
	return a, nil
}

func (a *Asset) buildTemplate(ctx context.Context, reg *nodetype.Registry, mn *config.Node, parent *template) (*template, error) {
	def, ok := reg.Lookup(mn.Type)
	if !ok {
		return nil, fmt.Errorf("node '%s': %w '%s'", mn.Name, ErrUnknownType, mn.Type)
	}
	props, err := nodetype.PropertiesFromObject(mn.Properties)
	if err != nil {
		return nil, fmt.Errorf("node '%s': %w", mn.Name, err)
	}
	id := mn.ID
	if id == "" {
		id = uuid.NewString()
	}
	t := &template{name: mn.Name, id: id, def: def, props: props}
	a.byName[t.name] = t

	for _, child := range mn.AddOns {
		ct, err := a.buildTemplate(ctx, reg, child, t)
		if err != nil {
			return nil, err
		}
		if verdict := nodetype.CheckAcceptChild(def, ct.def); !verdict.Allows() {
			a.report(ctx, diag.Message{
				Severity: diag.Error,
				Node:     t.name,
				Text:     fmt.Sprintf("add-on '%s' of type '%s' rejected, skipped", ct.name, ct.def.Type),
			})
			ct.forget(a)
			continue
		}
		t.addOns = append(t.addOns, ct)
	}
	return t, nil
}

// forget removes a skipped subtree from the name index.
func (t *template) forget(a *Asset) {
	delete(a.byName, t.name)
	for _, c := range t.addOns {
		c.forget(a)
	}
}

func (a *Asset) connect(ctx context.Context, c *config.Connection) {
	from, okFrom := a.byName[c.From.Node]
	to, okTo := a.byName[c.To.Node]
	switch {
	case !okFrom || !okTo || from.def.IsAddOn() || to.def.IsAddOn():
		a.report(ctx, diag.Message{Severity: diag.Error, Node: c.From.Node,
			Text: fmt.Sprintf("connection %s -> %s must join two top-level nodes, skipped", c.From, c.To)})
	case !from.def.HasOutput(pin.Name(c.From.Pin)):
		a.report(ctx, diag.Message{Severity: diag.Error, Node: from.name,
			Text: fmt.Sprintf("connection %s -> %s: unknown output pin %q, declared: %s, skipped", c.From, c.To, c.From.Pin, pin.Names(from.def.Outputs))})
	case !to.def.SupportsInput(pin.Name(c.To.Pin)):
		a.report(ctx, diag.Message{Severity: diag.Error, Node: to.name,
			Text: fmt.Sprintf("connection %s -> %s: unsupported input pin %q, supported: %s, skipped", c.From, c.To, c.To.Pin, pin.Names(to.def.Inputs))})
	default:
		if err := a.topology.Connect(ctx, c.From, c.To); err != nil {
			a.report(ctx, diag.Message{Severity: diag.Error, Node: from.name, Text: err.Error()})
		}
	}
}

// defaultEntry picks every node that has inputs but nothing connected to
// them.
func (a *Asset) defaultEntry(ctx context.Context) []string {
	var entry []string
	for _, t := range a.templates {
		if len(t.def.Inputs) == 0 {
			continue
		}
		fed := false
		for _, in := range t.def.Inputs {
			sources, _ := a.topology.Sources(ctx, nodeid.Ref{Node: t.name, Pin: string(in.Name)})
			if len(sources) > 0 {
				fed = true
				break
			}
		}
		if !fed {
			entry = append(entry, t.name)
		}
	}
	return entry
}

func (a *Asset) report(ctx context.Context, m diag.Message) {
	m.Asset = a.Name
	a.diags = append(a.diags, m)
	ctxlog.FromContext(ctx).Log(ctx, m.Severity.Level(), m.Text, "node", m.Node, "asset", a.Name)
}

// Diagnostics returns the configuration problems found while compiling.
func (a *Asset) Diagnostics() []diag.Message {
	return append([]diag.Message(nil), a.diags...)
}

// Nodes returns the top-level node names in declaration order.
func (a *Asset) Nodes() []string {
	names := make([]string, 0, len(a.templates))
	for _, t := range a.templates {
		names = append(names, t.name)
	}
	return names
}

// ID returns the stable identifier of a node template.
func (a *Asset) ID(name string) (string, bool) {
	t, ok := a.byName[name]
	if !ok {
		return "", false
	}
	return t.id, true
}

// Topology exposes the compiled wiring.
func (a *Asset) Topology() topologystore.Store {
	return a.topology
}
