// Package branch provides the Branch node. Branch has no condition of its
// own: it asks every predicate add-on in its tree and fires True or False.
package branch

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/node"
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
	"github.com/specialistvlad/flowgridgo/internal/pin"
	"github.com/specialistvlad/flowgridgo/modules/predicate"
)

const Type = "Branch"

const (
	modeAll = "all"
	modeAny = "any"
)

// Module implements the nodetype.Module interface for this package.
type Module struct{}

type logic struct {
	node.Base
	mode string
}

// ExecuteInput evaluates the predicates. With mode "all" an empty tree is
// true; with mode "any" it is false. Nested predicates count too.
func (l *logic) ExecuteInput(ctx context.Context, n *node.Node, _ pin.Name) error {
	var (
		results []bool
		errs    []error
	)
	node.ForEachAddOnAs(n, func(child *node.Node, p predicate.Predicate) {
		v, err := p.Evaluate(ctx, child)
		if err != nil {
			errs = append(errs, err)
			return
		}
		results = append(results, v)
	})
	if err := errors.Join(errs...); err != nil {
		return err
	}

	decision := l.mode == modeAll
	for _, v := range results {
		if l.mode == modeAll && !v {
			decision = false
			break
		}
		if l.mode == modeAny && v {
			decision = true
			break
		}
	}
	ctxlog.FromContext(ctx).Debug("Branch decided.", "node", n.Name(), "mode", l.mode, "predicates", len(results), "result", decision)

	if decision {
		return n.TriggerOutputString(ctx, "True", true)
	}
	return n.TriggerOutputString(ctx, "False", true)
}

// Register registers the Branch node type.
func (m *Module) Register(r *nodetype.Registry) {
	r.RegisterType(&nodetype.Definition{
		Type:        Type,
		Description: "Fires True or False from its predicate add-ons (mode: all | any).",
		Inputs:      []pin.FlowPin{pin.New("Check")},
		Outputs:     []pin.FlowPin{pin.New("True"), pin.New("False")},
		Traits: nodetype.Traits{
			AddOnCapabilities: []string{predicate.Capability, "observer"},
		},
		New: func(props nodetype.Properties) (any, error) {
			mode, err := props.String("mode", modeAll)
			if err != nil {
				return nil, err
			}
			if mode != modeAll && mode != modeAny {
				return nil, fmt.Errorf("mode must be %q or %q, got %q", modeAll, modeAny, mode)
			}
			return &logic{mode: mode}, nil
		},
	})
}
