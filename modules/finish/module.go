// Package finish provides the Finish node, which ends the whole run.
package finish

import (
	"context"

	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/node"
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
	"github.com/specialistvlad/flowgridgo/internal/pin"
)

const Type = "Finish"

// Module implements the nodetype.Module interface for this package.
type Module struct{}

type logic struct {
	node.Base
	status string
}

func (l *logic) ExecuteInput(ctx context.Context, n *node.Node, input pin.Name) error {
	ctxlog.FromContext(ctx).Info("Finish reached.", "node", n.Name(), "status", l.status, "pin", input.String())
	if f, ok := n.Host().(node.RunFinisher); ok {
		f.FinishRun(ctx)
	} else {
		n.LogNote(ctx, "host cannot be finished, only this node stops")
	}
	n.Finish(ctx)
	return nil
}

// Register registers the Finish node type.
func (m *Module) Register(r *nodetype.Registry) {
	r.RegisterType(&nodetype.Definition{
		Type:        Type,
		Description: "Ends the run. The status property is logged.",
		Inputs:      []pin.FlowPin{pin.New("In")},
		New: func(props nodetype.Properties) (any, error) {
			status, err := props.String("status", "success")
			if err != nil {
				return nil, err
			}
			return &logic{status: status}, nil
		},
	})
}
