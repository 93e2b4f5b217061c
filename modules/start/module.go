// Package start provides the Start node: the usual entry point of a graph.
package start

import (
	"context"

	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/node"
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
	"github.com/specialistvlad/flowgridgo/internal/pin"
)

const Type = "Start"

// Module implements the nodetype.Module interface for this package.
type Module struct{}

type logic struct {
	node.Base
}

// ExecuteInput fires Out and finishes. Start runs once per run.
func (logic) ExecuteInput(ctx context.Context, n *node.Node, _ pin.Name) error {
	ctxlog.FromContext(ctx).Info("Graph started.", "node", n.Name(), "asset", n.Host().AssetName())
	return n.TriggerFirstOutput(ctx, true)
}

// Register registers the Start node type.
func (m *Module) Register(r *nodetype.Registry) {
	r.RegisterType(&nodetype.Definition{
		Type:        Type,
		Description: "Entry point. Fires Out once when triggered.",
		Inputs:      []pin.FlowPin{pin.New("Begin")},
		Outputs:     []pin.FlowPin{pin.New("Out")},
		Traits:      nodetype.Traits{SingleShot: true},
		New:         func(nodetype.Properties) (any, error) { return logic{}, nil },
	})
}
