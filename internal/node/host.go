package node

import (
	"context"

	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/diag"
	"github.com/specialistvlad/flowgridgo/internal/pin"
)

// Host is the graph container a node lives in. Nodes never know the
// downstream topology; they hand a triggered output to the host, which
// resolves the connections.
type Host interface {
	// AssetName names the graph asset the run was created from.
	AssetName() string
	// PropagateOutput delivers a triggered output of from to every connected
	// input. Synchronous hosts return only after the targets ran.
	PropagateOutput(ctx context.Context, from *Node, output pin.Name, activation pin.ActivationType) error
	// Report records a diagnostic associated with a node.
	Report(ctx context.Context, m diag.Message)
	// RootOwner returns the object hosting the whole run, or nil.
	RootOwner() any
}

// RunFinisher is implemented by hosts that let a node end the whole run.
type RunFinisher interface {
	FinishRun(ctx context.Context)
}

// Actor is an owner that exists on its own in the host world.
type Actor interface {
	ActorName() string
}

// Component is an owner attached to an Actor.
type Component interface {
	OwningActor() Actor
}

// detachedHost serves arenas created without a container: outputs go
// nowhere and diagnostics only reach the log.
type detachedHost struct{}

func (detachedHost) AssetName() string { return "" }

func (detachedHost) PropagateOutput(ctx context.Context, from *Node, output pin.Name, _ pin.ActivationType) error {
	ctxlog.FromContext(ctx).Debug("Output dropped, node has no graph container.", "node", from.Name(), "pin", output.String())
	return nil
}

func (detachedHost) Report(ctx context.Context, m diag.Message) {
	ctxlog.FromContext(ctx).Log(ctx, m.Severity.Level(), m.Text, "node", m.Node)
}

func (detachedHost) RootOwner() any { return nil }

// Host returns the container this node runs in.
func (n *Node) Host() Host {
	return n.arena.host
}

// RootObjectOwner returns the object hosting the run this node belongs to.
func (n *Node) RootObjectOwner() any {
	return n.arena.host.RootOwner()
}

// RootActorOwner returns the actor hosting the run. When the root owner is a
// component, the component's owning actor is returned.
func (n *Node) RootActorOwner() (Actor, bool) {
	switch owner := n.RootObjectOwner().(type) {
	case Actor:
		return owner, true
	case Component:
		actor := owner.OwningActor()
		return actor, actor != nil
	default:
		return nil, false
	}
}

// OwnerInterface looks up T on the root owner, then on the owning actor of a
// component owner.
func OwnerInterface[T any](n *Node) (T, bool) {
	var zero T
	owner := n.RootObjectOwner()
	if owner == nil {
		return zero, false
	}
	if v, ok := owner.(T); ok {
		return v, true
	}
	if comp, ok := owner.(Component); ok {
		if actor := comp.OwningActor(); actor != nil {
			if v, ok := actor.(T); ok {
				return v, true
			}
		}
	}
	return zero, false
}
