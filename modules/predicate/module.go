// Package predicate provides condition add-ons. A predicate is attached to a
// deciding node such as Branch, which evaluates every predicate in its
// add-on tree when it needs an answer.
package predicate

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/specialistvlad/flowgridgo/internal/node"
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
)

// Capability is the add-on class every predicate carries.
const Capability = "predicate"

const (
	ConstantType   = "Constant"
	ExpressionType = "Expression"
)

// Predicate is implemented by the logic of every predicate add-on.
type Predicate interface {
	Evaluate(ctx context.Context, n *node.Node) (bool, error)
}

// Module implements the nodetype.Module interface for this package.
type Module struct{}

type constant struct {
	node.Base
	value bool
}

func (c *constant) Evaluate(context.Context, *node.Node) (bool, error) {
	return c.value, nil
}

// expression evaluates an expr-lang boolean expression against the
// properties of the predicate and of its owner.
type expression struct {
	node.Base
	program *vm.Program
}

func exprEnv(self, owner map[string]any) map[string]any {
	return map[string]any{"props": self, "owner": owner}
}

func (e *expression) Evaluate(_ context.Context, n *node.Node) (bool, error) {
	self, err := n.Properties().Map()
	if err != nil {
		return false, err
	}
	owner := map[string]any{}
	if o := n.SelfOrOwner(); o != nil {
		if owner, err = o.Properties().Map(); err != nil {
			return false, err
		}
	}
	out, err := expr.Run(e.program, exprEnv(self, owner))
	if err != nil {
		return false, fmt.Errorf("evaluate predicate %q: %w", n.Name(), err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("predicate %q returned %T, want bool", n.Name(), out)
	}
	return b, nil
}

func definition(typ, desc string, factory nodetype.Factory) *nodetype.Definition {
	return &nodetype.Definition{
		Type:         typ,
		Description:  desc,
		Kind:         nodetype.AddOn,
		Capabilities: []string{Capability},
		New:          factory,
	}
}

// Register registers the predicate add-on types.
func (m *Module) Register(r *nodetype.Registry) {
	r.RegisterType(definition(ConstantType, "Always answers the value property.",
		func(props nodetype.Properties) (any, error) {
			v, err := props.Bool("value", true)
			if err != nil {
				return nil, err
			}
			return &constant{value: v}, nil
		}))

	r.RegisterType(definition(ExpressionType, "Answers a boolean expression over props and owner.",
		func(props nodetype.Properties) (any, error) {
			text, err := props.String("expression", "")
			if err != nil {
				return nil, err
			}
			if text == "" {
				return nil, fmt.Errorf("property \"expression\" is required")
			}
			program, err := expr.Compile(text, expr.Env(exprEnv(map[string]any{}, map[string]any{})), expr.AsBool())
			if err != nil {
				return nil, fmt.Errorf("compile predicate %q: %w", text, err)
			}
			return &expression{program: program}, nil
		}))
}
