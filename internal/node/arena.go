package node

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/lifecycle"
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
)

// Handle addresses a node inside its Arena. Handles are only meaningful for
// the arena that issued them.
type Handle int32

// NoHandle is the zero reference: no parent, no node.
const NoHandle Handle = -1

// Arena owns every node of a run. The add-on tree is stored as handles, so
// parent links never keep a destroyed node alive.
type Arena struct {
	host  Host
	nodes []*Node
	live  int
}

// NewArena creates an empty arena. A nil host gives a detached arena whose
// outputs go nowhere.
func NewArena(host Host) *Arena {
	if host == nil {
		host = detachedHost{}
	}
	return &Arena{host: host}
}

// Spec describes one node to spawn.
type Spec struct {
	Def   *nodetype.Definition
	Name  string
	ID    string
	Props nodetype.Properties
}

// Spawn creates an Uninitialized node. The type factory runs here, and the
// result decides whether the node dispatches natively or through the
// external bridge.
func (a *Arena) Spawn(s Spec) (*Node, error) {
	if s.Def == nil || s.Def.New == nil {
		return nil, fmt.Errorf("spawn %q: node type has no factory", s.Name)
	}
	impl, err := s.Def.New(s.Props)
	if err != nil {
		return nil, fmt.Errorf("spawn %q of type '%s': %w", s.Name, s.Def.Type, err)
	}
	exec, err := newExecutable(impl)
	if err != nil {
		return nil, fmt.Errorf("spawn %q of type '%s': %w", s.Name, s.Def.Type, err)
	}
	id := s.ID
	if id == "" {
		id = uuid.NewString()
	}
	name := s.Name
	if name == "" {
		name = s.Def.Type
	}
	n := &Node{
		handle: Handle(len(a.nodes)),
		id:     id,
		name:   name,
		def:    s.Def,
		props:  s.Props,
		exec:   exec,
		arena:  a,
		state:  lifecycle.Uninitialized,
		parent: NoHandle,
	}
	a.nodes = append(a.nodes, n)
	a.live++
	return n, nil
}

// Get resolves a handle.
func (a *Arena) Get(h Handle) (*Node, bool) {
	if h < 0 || int(h) >= len(a.nodes) {
		return nil, false
	}
	n := a.nodes[h]
	return n, n != nil
}

// Len returns the number of live nodes.
func (a *Arena) Len() int { return a.live }

// Nodes returns the live nodes in spawn order.
func (a *Arena) Nodes() []*Node {
	out := make([]*Node, 0, a.live)
	for _, n := range a.nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Attach makes child an add-on of parent. The parent's acceptance policy is
// consulted; a rejection is reported as a configuration diagnostic and
// leaves the tree unchanged.
func (a *Arena) Attach(ctx context.Context, parent, child Handle) (nodetype.AcceptResult, error) {
	p, c, err := a.pair(parent, child)
	if err != nil {
		return nodetype.Reject, err
	}
	if c.parent != NoHandle {
		return nodetype.Reject, fmt.Errorf("%w: %q", ErrAlreadyOwned, c.name)
	}
	verdict, err := a.checkAttach(ctx, p, c)
	if err != nil {
		return verdict, err
	}
	a.link(p, c, verdict)
	ctxlog.FromContext(ctx).Debug("Add-on attached.", "parent", p.name, "addon", c.name, "verdict", verdict.String())
	return verdict, nil
}

// Reparent moves an add-on under a new parent. The new parent is checked
// before the old link is cut, so a rejected move leaves the add-on where it
// was.
func (a *Arena) Reparent(ctx context.Context, child, newParent Handle) (nodetype.AcceptResult, error) {
	p, c, err := a.pair(newParent, child)
	if err != nil {
		return nodetype.Reject, err
	}
	if c.parent == p.handle {
		return nodetype.Accept, nil
	}
	verdict, err := a.checkAttach(ctx, p, c)
	if err != nil {
		return verdict, err
	}
	a.unlink(c)
	a.link(p, c, verdict)
	return verdict, nil
}

// Detach removes an add-on from its parent. Detaching an unowned node is a
// no-op.
func (a *Arena) Detach(child Handle) error {
	c, ok := a.Get(child)
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, child)
	}
	a.unlink(c)
	return nil
}

// Destroy removes a node and its whole add-on subtree from the arena. Live
// nodes are deinitialized first.
func (a *Arena) Destroy(ctx context.Context, h Handle) error {
	n, ok := a.Get(h)
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	if n.state != lifecycle.Uninitialized && n.state != lifecycle.Deinitialized {
		if err := n.DeinitializeInstance(ctx); err != nil {
			return err
		}
	}
	for _, ch := range slices.Clone(n.addOns) {
		if err := a.Destroy(ctx, ch); err != nil {
			return err
		}
	}
	a.unlink(n)
	a.nodes[h] = nil
	a.live--
	return nil
}

func (a *Arena) pair(parent, child Handle) (*Node, *Node, error) {
	p, ok := a.Get(parent)
	if !ok {
		return nil, nil, fmt.Errorf("%w: parent %d", ErrInvalidHandle, parent)
	}
	c, ok := a.Get(child)
	if !ok {
		return nil, nil, fmt.Errorf("%w: child %d", ErrInvalidHandle, child)
	}
	return p, c, nil
}

func (a *Arena) checkAttach(ctx context.Context, p, c *Node) (nodetype.AcceptResult, error) {
	for cur := p; cur != nil; cur = cur.Parent() {
		if cur == c {
			return nodetype.Reject, fmt.Errorf("%w: %q under %q", ErrOwnershipCycle, c.name, p.name)
		}
	}
	verdict := p.CheckAcceptAddOnChild(c.def)
	if !verdict.Allows() {
		p.LogError(ctx, fmt.Sprintf("add-on %q of type '%s' rejected", c.name, c.def.Type))
		return verdict, fmt.Errorf("%w: '%s' under %q", ErrAddOnRejected, c.def.Type, p.name)
	}
	return verdict, nil
}

func (a *Arena) link(p, c *Node, verdict nodetype.AcceptResult) {
	c.parent = p.handle
	c.tentative = verdict == nodetype.TentativeAccept
	p.addOns = append(p.addOns, c.handle)
}

func (a *Arena) unlink(c *Node) {
	if p, ok := a.Get(c.parent); ok {
		p.addOns = slices.DeleteFunc(p.addOns, func(h Handle) bool { return h == c.handle })
	}
	c.parent = NoHandle
	c.tentative = false
}

// LogValue lets a node be logged with its identity.
func (n *Node) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", n.name),
		slog.String("type", n.def.Type),
		slog.String("state", n.state.String()),
	)
}
