package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/diag"
	"github.com/specialistvlad/flowgridgo/internal/inmemorystore"
	"github.com/specialistvlad/flowgridgo/internal/lifecycle"
	"github.com/specialistvlad/flowgridgo/internal/node"
	"github.com/specialistvlad/flowgridgo/internal/nodestore"
	"github.com/specialistvlad/flowgridgo/internal/pin"
)

// ErrUnknownNode is returned when a run is asked about a node it does not
// contain.
var ErrUnknownNode = errors.New("unknown node")

// Run is one live execution of an Asset. It is driven from one goroutine;
// only its store may be read concurrently.
type Run struct {
	id     ulid.ULID
	asset  *Asset
	opts   Options
	arena  *node.Arena
	nodes  map[string]*node.Node
	order  []*node.Node
	store  nodestore.Store
	diags  diag.Log
	logger *slog.Logger

	depth     int
	queue     []delivery
	finished  bool
	stopped   bool
	lastState map[*node.Node]lifecycle.State
	errs      []error
}

type delivery struct {
	to         *node.Node
	input      pin.Name
	activation pin.ActivationType
}

var (
	_ node.Host        = (*Run)(nil)
	_ node.RunFinisher = (*Run)(nil)
)

// NewRun spawns every node of the asset into a fresh arena and rebuilds the
// add-on trees. Nodes start Uninitialized; call Start next.
func NewRun(ctx context.Context, asset *Asset, opts Options) (*Run, error) {
	r := &Run{
		id:        ulid.Make(),
		asset:     asset,
		opts:      opts,
		nodes:     make(map[string]*node.Node),
		store:     opts.Store,
		lastState: make(map[*node.Node]lifecycle.State),
	}
	if r.store == nil {
		r.store = inmemorystore.New()
	}
	r.logger = ctxlog.FromContext(ctx).With("run_id", r.id.String(), "graph", asset.Name)
	r.arena = node.NewArena(r)

	ctx = ctxlog.WithLogger(ctx, r.logger)
	for _, t := range asset.templates {
		n, err := r.spawn(ctx, t)
		if err != nil {
			return nil, err
		}
		r.order = append(r.order, n)
	}
	r.logger.Debug("Run created.", "nodes", r.arena.Len())
	return r, nil
}

func (r *Run) spawn(ctx context.Context, t *template) (*node.Node, error) {
	n, err := r.arena.Spawn(node.Spec{Def: t.def, Name: t.name, ID: t.id, Props: t.props})
	if err != nil {
		return nil, err
	}
	r.nodes[t.name] = n
	for _, ct := range t.addOns {
		child, err := r.spawn(ctx, ct)
		if err != nil {
			return nil, err
		}
		if _, err := r.arena.Attach(ctx, n.Handle(), child.Handle()); err != nil {
			return nil, fmt.Errorf("attach '%s' to '%s': %w", ct.name, t.name, err)
		}
	}
	return n, nil
}

// ID returns the unique run identifier.
func (r *Run) ID() ulid.ULID { return r.id }

// Asset returns the compiled graph the run executes.
func (r *Run) Asset() *Asset { return r.asset }

// Node returns a node or add-on of the run by name.
func (r *Run) Node(name string) (*node.Node, bool) {
	n, ok := r.nodes[name]
	return n, ok
}

// Start initializes every node and requests preloading where supported.
func (r *Run) Start(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, r.logger)
	var errs []error
	for _, n := range r.order {
		if err := n.InitializeInstance(ctx); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := n.PreloadContent(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	r.syncStates(ctx)
	return errors.Join(errs...)
}

// Trigger delivers an input to a top-level node from outside the graph and
// drains any deferred deliveries it caused.
func (r *Run) Trigger(ctx context.Context, name string, input pin.Name) error {
	n, ok := r.nodes[name]
	if !ok || n.IsAddOn() {
		return fmt.Errorf("%w: '%s'", ErrUnknownNode, name)
	}
	ctx = ctxlog.WithLogger(ctx, r.logger)

	err := r.deliver(ctx, delivery{to: n, input: input, activation: pin.Default})
	r.drain(ctx)
	return err
}

// Execute starts the run and triggers the first input of every entry node.
func (r *Run) Execute(ctx context.Context) error {
	if err := r.Start(ctx); err != nil {
		return err
	}
	if len(r.asset.Entry) == 0 {
		r.logger.Warn("Graph has no entry nodes; nothing to run.")
		return nil
	}
	for _, name := range r.asset.Entry {
		if r.finished {
			break
		}
		n, ok := r.nodes[name]
		if !ok {
			return fmt.Errorf("%w: entry '%s'", ErrUnknownNode, name)
		}
		inputs := n.Definition().Inputs
		if len(inputs) == 0 {
			return fmt.Errorf("entry node '%s' has no input pins", name)
		}
		if err := r.Trigger(ctx, name, inputs[0].Name); err != nil {
			return err
		}
	}
	return nil
}

// Stop aborts whatever is still running: every node is force-finished,
// flushed and deinitialized. Calling Stop twice is a no-op.
func (r *Run) Stop(ctx context.Context) error {
	if r.stopped {
		return nil
	}
	r.stopped = true
	r.finished = true
	r.queue = nil
	ctx = ctxlog.WithLogger(ctx, r.logger)

	var errs []error
	for _, n := range r.order {
		if err := n.ForceFinishNode(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	for _, n := range r.order {
		n.FlushContent(ctx)
		if err := n.DeinitializeInstance(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	r.syncStates(ctx)
	r.logger.Debug("Run stopped.", "events", len(r.store.Events(ctx)))
	return errors.Join(errs...)
}

// FinishRun implements node.RunFinisher. Pending deliveries are dropped and
// later outputs go nowhere; nodes stay as they are until Stop.
func (r *Run) FinishRun(ctx context.Context) {
	if r.finished {
		return
	}
	r.finished = true
	r.queue = nil
	ctxlog.FromContext(ctx).Info("Run finished by node.")
}

// Finished reports whether a node ended the run or the run was stopped.
func (r *Run) Finished() bool { return r.finished }

// AssetName implements node.Host.
func (r *Run) AssetName() string { return r.asset.Name }

// RootOwner implements node.Host.
func (r *Run) RootOwner() any { return r.opts.Owner }

// Report implements node.Host.
func (r *Run) Report(ctx context.Context, m diag.Message) {
	if m.Asset == "" {
		m.Asset = r.asset.Name
	}
	r.diags.Add(ctx, ctxlog.FromContext(ctx), m)
}

// Messages returns compile diagnostics followed by run diagnostics.
func (r *Run) Messages() []diag.Message {
	return append(r.asset.Diagnostics(), r.diags.Messages()...)
}

// Trace returns the run trace.
func (r *Run) Trace(ctx context.Context) []nodestore.Event {
	return r.store.Events(ctx)
}

// Store returns the store recording the run.
func (r *Run) Store() nodestore.Store { return r.store }

// Err returns the delivery errors collected while propagating outputs.
func (r *Run) Err() error { return errors.Join(r.errs...) }

// syncStates records every node whose state changed since the last sync.
func (r *Run) syncStates(ctx context.Context) {
	for _, n := range r.arena.Nodes() {
		st := n.State()
		if prev, ok := r.lastState[n]; ok && prev == st {
			continue
		}
		r.lastState[n] = st
		if err := r.store.SetState(ctx, n.Name(), st); err != nil {
			r.logger.Warn("Failed to store node state.", "node", n.Name(), "state", st.String(), "error", err)
		}
		r.record(ctx, nodestore.Event{Kind: nodestore.EventState, Node: n.Name(), State: st, Depth: r.depth})
	}
}

// record appends ev to the trace. A failing store only costs the event.
func (r *Run) record(ctx context.Context, ev nodestore.Event) {
	if _, err := r.store.Append(ctx, ev); err != nil {
		r.logger.Warn("Failed to record trace event.", "kind", ev.Kind.String(), "node", ev.Node, "error", err)
	}
}
