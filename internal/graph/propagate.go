package graph

import (
	"context"
	"fmt"

	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/node"
	"github.com/specialistvlad/flowgridgo/internal/nodeid"
	"github.com/specialistvlad/flowgridgo/internal/nodestore"
	"github.com/specialistvlad/flowgridgo/internal/pin"
)

// PropagateOutput implements node.Host. Delivery errors are configuration or
// logic problems of the target; they are already reported there, so they are
// collected on the run instead of being handed back to the firing node.
func (r *Run) PropagateOutput(ctx context.Context, from *node.Node, output pin.Name, activation pin.ActivationType) error {
	logger := ctxlog.FromContext(ctx)
	r.record(ctx, nodestore.Event{
		Kind: nodestore.EventOutput, Node: from.Name(), Pin: output, Activation: activation, Depth: r.depth,
	})
	if r.finished {
		logger.Debug("Run finished, output dropped.", "node", from.Name(), "pin", output.String())
		return nil
	}

	targets, err := r.asset.topology.Targets(ctx, nodeid.Ref{Node: from.Name(), Pin: string(output)})
	if err != nil {
		return fmt.Errorf("propagate %s.%s: %w", from.Name(), output, err)
	}

	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.finished {
			break
		}
		to, ok := r.nodes[t.Node]
		if !ok {
			return fmt.Errorf("propagate %s.%s: %w: '%s'", from.Name(), output, ErrUnknownNode, t.Node)
		}
		d := delivery{to: to, input: pin.Name(t.Pin), activation: activation}
		if r.shouldDefer(activation) {
			r.queue = append(r.queue, d)
			r.record(ctx, nodestore.Event{
				Kind: nodestore.EventDeferred, Node: to.Name(), Pin: d.input, Activation: activation, Depth: r.depth,
			})
			logger.Debug("Delivery deferred.", "to", to.Name(), "pin", t.Pin, "depth", r.depth, "queued", len(r.queue))
			continue
		}
		if err := r.deliver(ctx, d); err != nil {
			r.errs = append(r.errs, err)
		}
	}
	return nil
}

func (r *Run) shouldDefer(activation pin.ActivationType) bool {
	if activation == pin.Forced {
		return false
	}
	if r.opts.Deferred {
		return true
	}
	return r.opts.MaxDepth > 0 && r.depth >= r.opts.MaxDepth
}

func (r *Run) deliver(ctx context.Context, d delivery) error {
	r.depth++
	defer func() { r.depth-- }()

	r.record(ctx, nodestore.Event{
		Kind: nodestore.EventInput, Node: d.to.Name(), Pin: d.input, Activation: d.activation, Depth: r.depth,
	})
	err := d.to.ExecuteInput(ctx, d.input)
	r.syncStates(ctx)
	return err
}

// drain delivers queued inputs in FIFO order until the queue is empty.
func (r *Run) drain(ctx context.Context) {
	for len(r.queue) > 0 && !r.finished {
		if ctx.Err() != nil {
			return
		}
		d := r.queue[0]
		r.queue = r.queue[1:]
		if err := r.deliver(ctx, d); err != nil {
			r.errs = append(r.errs, err)
		}
	}
}
