// Package sequence provides the Sequence node, which fires its outputs one
// after another.
package sequence

import (
	"context"
	"fmt"

	"github.com/specialistvlad/flowgridgo/internal/lifecycle"
	"github.com/specialistvlad/flowgridgo/internal/node"
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
	"github.com/specialistvlad/flowgridgo/internal/pin"
)

const Type = "Sequence"

// MaxSteps is the number of declared Then pins.
const MaxSteps = 4

// Module implements the nodetype.Module interface for this package.
type Module struct{}

type logic struct {
	node.Base
	steps int
}

func step(i int) pin.Name { return pin.Name(fmt.Sprintf("Then%d", i)) }

// ExecuteInput fires Then0 .. Then(steps-1) in order. Each fire propagates
// before the next one starts. The last one finishes the node.
func (l *logic) ExecuteInput(ctx context.Context, n *node.Node, _ pin.Name) error {
	for i := 0; i < l.steps; i++ {
		last := i == l.steps-1
		if err := n.TriggerOutput(ctx, step(i), last, pin.Default); err != nil {
			return err
		}
		if n.State() != lifecycle.Active {
			// finished downstream
			return nil
		}
	}
	return nil
}

// Register registers the Sequence node type.
func (m *Module) Register(r *nodetype.Registry) {
	outputs := make([]pin.FlowPin, 0, MaxSteps)
	for i := 0; i < MaxSteps; i++ {
		outputs = append(outputs, pin.FlowPin{Name: step(i), DisplayText: fmt.Sprintf("Then %d", i)})
	}
	r.RegisterType(&nodetype.Definition{
		Type:        Type,
		Description: "Fires Then0 .. Then3 in order (steps property limits how many).",
		Inputs:      []pin.FlowPin{pin.New("In")},
		Outputs:     outputs,
		New: func(props nodetype.Properties) (any, error) {
			steps, err := props.Int("steps", MaxSteps)
			if err != nil {
				return nil, err
			}
			if steps < 1 || steps > MaxSteps {
				return nil, fmt.Errorf("steps must be between 1 and %d, got %d", MaxSteps, steps)
			}
			return &logic{steps: steps}, nil
		},
	})
}
