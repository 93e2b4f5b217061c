// Package counter provides the Counter node: a long-lived node that stays
// Active across many inputs and fires Reached when its limit is hit.
package counter

import (
	"context"
	"fmt"

	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/node"
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
	"github.com/specialistvlad/flowgridgo/internal/pin"
)

const Type = "Counter"

// Module implements the nodetype.Module interface for this package.
type Module struct{}

// Logic is the per-instance counter state.
type Logic struct {
	node.Base
	limit int
	count int
}

// Count returns the current value.
func (l *Logic) Count() int { return l.count }

func (l *Logic) ExecuteInput(ctx context.Context, n *node.Node, input pin.Name) error {
	switch input {
	case "Reset":
		l.count = 0
		n.Finish(ctx)
		return nil
	case "Increment":
		l.count++
		ctxlog.FromContext(ctx).Debug("Counter incremented.", "node", n.Name(), "count", l.count, "limit", l.limit)
		if l.limit > 0 && l.count >= l.limit {
			return n.TriggerOutputString(ctx, "Reached", true)
		}
		return n.TriggerOutputString(ctx, "Changed", false)
	default:
		return fmt.Errorf("counter: unexpected input %q", input)
	}
}

// Cleanup rewinds after the limit was reached so the next activation counts
// from zero.
func (l *Logic) Cleanup(context.Context, *node.Node) {
	if l.limit > 0 && l.count >= l.limit {
		l.count = 0
	}
}

func (l *Logic) DeinitializeInstance(context.Context, *node.Node) {
	l.count = 0
}

// Register registers the Counter node type.
func (m *Module) Register(r *nodetype.Registry) {
	r.RegisterType(&nodetype.Definition{
		Type:        Type,
		Description: "Counts Increment inputs; fires Changed each time and Reached at limit.",
		Inputs:      []pin.FlowPin{pin.New("Increment"), pin.New("Reset")},
		Outputs:     []pin.FlowPin{pin.New("Changed"), pin.New("Reached")},
		New: func(props nodetype.Properties) (any, error) {
			limit, err := props.Int("limit", 0)
			if err != nil {
				return nil, err
			}
			if limit < 0 {
				return nil, fmt.Errorf("limit must not be negative, got %d", limit)
			}
			return &Logic{limit: limit}, nil
		},
	})
}
