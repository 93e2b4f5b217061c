package node

import (
	"context"

	"github.com/specialistvlad/flowgridgo/internal/diag"
)

// LogError reports an error about this node to the run's diagnostics.
func (n *Node) LogError(ctx context.Context, text string) {
	n.report(ctx, diag.Error, text)
}

func (n *Node) LogWarning(ctx context.Context, text string) {
	n.report(ctx, diag.Warning, text)
}

func (n *Node) LogNote(ctx context.Context, text string) {
	n.report(ctx, diag.Note, text)
}

func (n *Node) report(ctx context.Context, sev diag.Severity, text string) {
	host := n.arena.host
	host.Report(ctx, diag.Message{
		Severity: sev,
		Asset:    host.AssetName(),
		Node:     n.name,
		Text:     text,
	})
}
