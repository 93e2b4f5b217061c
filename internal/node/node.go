package node

import (
	"github.com/specialistvlad/flowgridgo/internal/lifecycle"
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
)

// Node is one live instance of a node type inside a run. Primary nodes and
// add-ons share this type; the definition's Kind tells them apart.
//
// A Node is not safe for concurrent use. The graph container drives a run
// from a single goroutine.
type Node struct {
	handle Handle
	id     string
	name   string
	def    *nodetype.Definition
	props  nodetype.Properties
	exec   executable
	arena  *Arena

	state      lifecycle.State
	preloading bool

	parent    Handle
	addOns    []Handle
	tentative bool
}

// View is the read-only face of a node handed to const traversals.
type View interface {
	Handle() Handle
	ID() string
	Name() string
	Type() string
	Definition() *nodetype.Definition
	State() lifecycle.State
	IsAddOn() bool
}

var _ View = (*Node)(nil)

func (n *Node) Handle() Handle { return n.handle }
func (n *Node) ID() string { return n.id }
func (n *Node) Name() string { return n.name }
func (n *Node) Type() string { return n.def.Type }
func (n *Node) Definition() *nodetype.Definition { return n.def }
func (n *Node) Properties() nodetype.Properties { return n.props }
func (n *Node) State() lifecycle.State { return n.state }
func (n *Node) IsAddOn() bool { return n.def.IsAddOn() }
func (n *Node) IsExternal() bool { return n.exec.isExternal() }

// Logic returns the behavior object created by the type factory.
func (n *Node) Logic() Logic { return n.exec.logic() }

// Tentative reports whether the node was attached on a tentative accept.
func (n *Node) Tentative() bool { return n.tentative }

// Parent returns the owning node of an add-on, or nil for primary nodes and
// detached add-ons.
func (n *Node) Parent() *Node {
	p, _ := n.arena.Get(n.parent)
	return p
}

// AddOns returns the immediate children in attachment order.
func (n *Node) AddOns() []*Node {
	out := make([]*Node, 0, len(n.addOns))
	for _, h := range n.addOns {
		if child, ok := n.arena.Get(h); ok {
			out = append(out, child)
		}
	}
	return out
}

// SelfOrOwner returns the nearest ancestor that is a primary node, the node
// itself when it is one. It is nil for an add-on not attached to any node.
func (n *Node) SelfOrOwner() *Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if !cur.IsAddOn() {
			return cur
		}
	}
	return nil
}
