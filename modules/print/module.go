// Package print provides the Print node, which writes a message and passes
// the activation on.
package print

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/node"
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
	"github.com/specialistvlad/flowgridgo/internal/pin"
)

const Type = "Print"

// Module implements the nodetype.Module interface for this package.
type Module struct {
	// Out receives the printed lines. Nil means os.Stdout.
	Out io.Writer
}

type logic struct {
	node.Base
	out     io.Writer
	message string
	values  map[string]any
}

// ExecuteInput prints the message, or every property when no message is
// set, then fires Out and finishes.
func (l *logic) ExecuteInput(ctx context.Context, n *node.Node, _ pin.Name) error {
	ctxlog.FromContext(ctx).Info("Printing.", "node", n.Name())

	if l.message != "" {
		fmt.Fprintf(l.out, "      %s\n", l.message)
		return n.TriggerFirstOutput(ctx, true)
	}
	if len(l.values) == 0 {
		fmt.Fprintln(l.out, "      (null)")
		return n.TriggerFirstOutput(ctx, true)
	}

	// Sort keys for consistent output
	keys := make([]string, 0, len(l.values))
	for k := range l.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(l.out, "      %s = %v\n", k, l.values[k])
	}
	return n.TriggerFirstOutput(ctx, true)
}

// Register registers the Print node type.
func (m *Module) Register(r *nodetype.Registry) {
	out := m.Out
	if out == nil {
		out = os.Stdout
	}
	r.RegisterType(&nodetype.Definition{
		Type:        Type,
		Description: "Prints the message property, or all properties, then fires Out.",
		Inputs:      []pin.FlowPin{pin.New("In")},
		Outputs:     []pin.FlowPin{pin.New("Out")},
		New: func(props nodetype.Properties) (any, error) {
			msg, err := props.String("message", "")
			if err != nil {
				return nil, err
			}
			values, err := props.Map()
			if err != nil {
				return nil, err
			}
			return &logic{out: out, message: msg, values: values}, nil
		},
	})
}
