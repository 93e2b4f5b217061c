// Package trace provides the Trace observer add-on. Attached to any node, it
// logs every input its owner receives and a summary when the owner
// finishes.
package trace

import (
	"context"

	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/node"
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
	"github.com/specialistvlad/flowgridgo/internal/pin"
)

const (
	Type       = "Trace"
	Capability = "observer"
)

// Module implements the nodetype.Module interface for this package.
type Module struct{}

// Logic records what the owner saw during the current activation.
type Logic struct {
	node.Base
	label       string
	inputs      []pin.Name
	activations int
}

// Inputs returns the pins observed since the last activation started.
func (l *Logic) Inputs() []pin.Name { return append([]pin.Name(nil), l.inputs...) }

// Activations counts how many times the owner was activated.
func (l *Logic) Activations() int { return l.activations }

func (l *Logic) OnActivate(ctx context.Context, n *node.Node) error {
	l.activations++
	l.inputs = l.inputs[:0]
	return nil
}

func (l *Logic) ExecuteInput(ctx context.Context, n *node.Node, input pin.Name) error {
	l.inputs = append(l.inputs, input)
	ownerName := "<detached>"
	if owner := n.SelfOrOwner(); owner != nil {
		ownerName = owner.Name()
	}
	ctxlog.FromContext(ctx).Info("Input observed.", "trace", l.label, "owner", ownerName, "pin", input.String(), "seen", len(l.inputs))
	return nil
}

func (l *Logic) Cleanup(ctx context.Context, n *node.Node) {
	ctxlog.FromContext(ctx).Info("Activation finished.", "trace", l.label, "inputs", len(l.inputs), "activation", l.activations)
}

// Register registers the Trace add-on type.
func (m *Module) Register(r *nodetype.Registry) {
	r.RegisterType(&nodetype.Definition{
		Type:         Type,
		Description:  "Logs every input its owner receives.",
		Kind:         nodetype.AddOn,
		Capabilities: []string{Capability},
		Traits:       nodetype.Traits{AcceptAnyInput: true},
		New: func(props nodetype.Properties) (any, error) {
			label, err := props.String("label", "")
			if err != nil {
				return nil, err
			}
			return &Logic{label: label}, nil
		},
	})
}
