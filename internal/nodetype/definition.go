package nodetype

import (
	"slices"

	"github.com/specialistvlad/flowgridgo/internal/pin"
)

// Kind separates primary graph nodes from add-ons attached to them.
type Kind int

const (
	Primary Kind = iota
	AddOn
)

func (k Kind) String() string {
	if k == AddOn {
		return "addon"
	}
	return "node"
}

// Factory creates the per-instance logic of a node type. The returned value
// must satisfy node.Logic; the node layer checks it when spawning.
type Factory func(props Properties) (any, error)

// Definition is the static description of a node type. It is registered once
// and never mutated afterwards.
type Definition struct {
	Type        string
	Description string
	Kind        Kind
	Inputs      []pin.FlowPin
	Outputs     []pin.FlowPin
	// Capabilities are the names a class-filtered add-on traversal matches on.
	// The type name always matches implicitly.
	Capabilities []string
	Traits       Traits
	New          Factory
}

// Traits is the capability table of a node type. Yes/no policies live here so
// they can be queried without running any node logic.
type Traits struct {
	// SupportsPreload enables the PreloadContent / FlushContent hooks.
	SupportsPreload bool
	// SingleShot nodes cannot be activated again once finished in a run.
	SingleShot bool
	// AcceptAnyInput lets an add-on that declares no inputs receive every
	// input forwarded by its parent.
	AcceptAnyInput bool
	// AddOnCapabilities restricts children to add-ons carrying at least one
	// of these capabilities. Empty means no restriction.
	AddOnCapabilities []string
	// AcceptAddOn is the parent-side acceptance policy. Nil accepts.
	AcceptAddOn func(parent, candidate *Definition) AcceptResult
	// AcceptParent is the add-on side of the handshake. Nil accepts.
	AcceptParent func(candidate, parent *Definition) AcceptResult
}

// Implements reports whether the type matches the given class or capability
// name.
func (d *Definition) Implements(capability string) bool {
	if d == nil {
		return false
	}
	return d.Type == capability || slices.Contains(d.Capabilities, capability)
}

// IsAddOn reports whether the type is an add-on.
func (d *Definition) IsAddOn() bool {
	return d != nil && d.Kind == AddOn
}

// SupportsInput reports whether name is an input this type accepts.
func (d *Definition) SupportsInput(name pin.Name) bool {
	if pin.Contains(name, d.Inputs) {
		return true
	}
	return d.Kind == AddOn && d.Traits.AcceptAnyInput && len(d.Inputs) == 0
}

// HasOutput reports whether name is a declared output of this type.
func (d *Definition) HasOutput(name pin.Name) bool {
	return pin.Contains(name, d.Outputs)
}
