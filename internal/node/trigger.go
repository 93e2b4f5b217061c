package node

import (
	"context"
	"fmt"

	"github.com/specialistvlad/flowgridgo/internal/lifecycle"
	"github.com/specialistvlad/flowgridgo/internal/pin"
)

// TriggerOutput fires an output pin of the owning node. Add-ons trigger on
// behalf of their owner, so the pin must be one the owner declares. With
// finish set, the owner finishes once propagation returns.
func (n *Node) TriggerOutput(ctx context.Context, name pin.Name, finish bool, activation pin.ActivationType) error {
	owner := n.SelfOrOwner()
	if owner == nil {
		n.LogError(ctx, fmt.Sprintf("cannot trigger output %q", name))
		return fmt.Errorf("%w: %q", ErrDetached, n.name)
	}
	return owner.fire(ctx, name, finish, activation)
}

// TriggerOutputPin is TriggerOutput addressed by a typed output handle.
func (n *Node) TriggerOutputPin(ctx context.Context, output pin.OutputHandle, finish bool, activation pin.ActivationType) error {
	return n.TriggerOutput(ctx, output.Name, finish, activation)
}

// TriggerOutputString triggers the output named s with default activation.
func (n *Node) TriggerOutputString(ctx context.Context, s string, finish bool) error {
	return n.TriggerOutput(ctx, pin.FromString(s), finish, pin.Default)
}

// TriggerOutputText triggers the output named by a display string. A nil
// text resolves to no pin and is reported like any unknown output.
func (n *Node) TriggerOutputText(ctx context.Context, text fmt.Stringer, finish bool) error {
	return n.TriggerOutput(ctx, pin.FromText(text), finish, pin.Default)
}

// TriggerFirstOutput triggers the owner's first declared output.
func (n *Node) TriggerFirstOutput(ctx context.Context, finish bool) error {
	owner := n.SelfOrOwner()
	if owner == nil {
		return fmt.Errorf("%w: %q", ErrDetached, n.name)
	}
	if len(owner.def.Outputs) == 0 {
		owner.LogError(ctx, "node has no output pins to trigger")
		return fmt.Errorf("%w: node %q declares no outputs", ErrUnknownOutputPin, owner.name)
	}
	return owner.fire(ctx, owner.def.Outputs[0].Name, finish, pin.Default)
}

func (n *Node) fire(ctx context.Context, name pin.Name, finish bool, activation pin.ActivationType) error {
	if !n.def.HasOutput(name) {
		n.LogError(ctx, fmt.Sprintf("unknown output pin %q, declared: %s", name, pin.Names(n.def.Outputs)))
		return fmt.Errorf("%w: %q on node %q", ErrUnknownOutputPin, name, n.name)
	}
	if n.state != lifecycle.Active {
		return n.orderError("TriggerOutput")
	}

	err := n.arena.host.PropagateOutput(ctx, n, name, activation)
	if finish {
		n.finishLocal(ctx)
	}
	return err
}
