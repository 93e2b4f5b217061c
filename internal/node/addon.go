package node

import (
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
)

// CheckAcceptAddOnChild asks whether an add-on of the given type may be
// attached under this node.
func (n *Node) CheckAcceptAddOnChild(candidate *nodetype.Definition) nodetype.AcceptResult {
	return nodetype.CheckAcceptChild(n.def, candidate)
}

// ForEachAddOn visits the immediate add-ons in attachment order. The tree
// must not be reparented while a traversal is in flight.
func (n *Node) ForEachAddOn(fn func(*Node)) {
	for _, child := range n.AddOns() {
		fn(child)
	}
}

// ForEachAddOnConst is ForEachAddOn for observers that must not mutate.
func (n *Node) ForEachAddOnConst(fn func(View)) {
	for _, child := range n.AddOns() {
		fn(child)
	}
}

// ForEachAddOnForClass visits every add-on in the subtree, depth first,
// whose type implements capability. Non-matching add-ons are descended
// through, not pruned.
func (n *Node) ForEachAddOnForClass(capability string, fn func(*Node)) {
	for _, child := range n.AddOns() {
		if child.def.Implements(capability) {
			fn(child)
		}
		child.ForEachAddOnForClass(capability, fn)
	}
}

// ForEachAddOnAs visits every add-on in the subtree whose logic implements
// T, depth first.
func ForEachAddOnAs[T any](n *Node, fn func(*Node, T)) {
	for _, child := range n.AddOns() {
		if v, ok := child.Logic().(T); ok {
			fn(child, v)
		}
		ForEachAddOnAs(child, fn)
	}
}
