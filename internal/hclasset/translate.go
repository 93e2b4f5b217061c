package hclasset

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/flowgridgo/internal/config"
	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// translateNode converts a node or addon block, recursively, into the
// agnostic model.
func translateNode(ctx context.Context, b *nodeBlock, evalCtx *hcl.EvalContext) (*config.Node, error) {
	logger := ctxlog.FromContext(ctx).With("node_type", b.Type, "node_name", b.Name)
	logger.Debug("Translating HCL node to internal config model.")

	props := cty.EmptyObjectVal
	if isExprDefined(b.Properties) {
		val, diags := b.Properties.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("node '%s': invalid properties: %w", b.Name, diags)
		}
		if !val.IsNull() && !val.Type().IsObjectType() && !val.Type().IsMapType() {
			return nil, fmt.Errorf("node '%s': properties must be an object, got %s", b.Name, val.Type().FriendlyName())
		}
		props = val
	} else {
		logger.Debug("`properties` attribute is not defined.")
	}

	n := &config.Node{
		Name:       b.Name,
		Type:       b.Type,
		ID:         b.ID,
		Properties: props,
	}
	for _, ab := range b.AddOns {
		child, err := translateNode(ctx, ab, evalCtx)
		if err != nil {
			return nil, err
		}
		n.AddOns = append(n.AddOns, child)
	}
	return n, nil
}

func translateConnection(b *connectionBlock) (*config.Connection, error) {
	from, err := nodeid.Parse(b.From)
	if err != nil {
		return nil, fmt.Errorf("connection from: %w", err)
	}
	to, err := nodeid.Parse(b.To)
	if err != nil {
		return nil, fmt.Errorf("connection to: %w", err)
	}
	return &config.Connection{From: from, To: to}, nil
}
