package hclasset

import (
	"context"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// functions available inside `properties` expressions.
var functions = map[string]function.Function{
	"upper":      stdlib.UpperFunc,
	"lower":      stdlib.LowerFunc,
	"format":     stdlib.FormatFunc,
	"join":       stdlib.JoinFunc,
	"concat":     stdlib.ConcatFunc,
	"length":     stdlib.LengthFunc,
	"max":        stdlib.MaxFunc,
	"min":        stdlib.MinFunc,
	"coalesce":   stdlib.CoalesceFunc,
	"jsonencode": stdlib.JSONEncodeFunc,
	"jsondecode": stdlib.JSONDecodeFunc,
}

// newEvalContext exposes the process environment as `env.NAME` and the
// asset name as `graph.name`.
func newEvalContext(ctx context.Context, graphName string) *hcl.EvalContext {
	envVars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		envVars[k] = cty.StringVal(v)
	}
	ctxlog.FromContext(ctx).Debug("Built HCL evaluation context.", "env_vars", len(envVars), "functions", len(functions))

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env":   cty.ObjectVal(envVars),
			"graph": cty.ObjectVal(map[string]cty.Value{"name": cty.StringVal(graphName)}),
		},
		Functions: functions,
	}
}

// isExprDefined checks if an HCL expression was actually present in the
// source. Omitted optional attributes decode to a zero-width expression, so
// a nil check is not enough.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}
