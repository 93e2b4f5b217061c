package node

import (
	"context"
	"fmt"

	"github.com/specialistvlad/flowgridgo/internal/pin"
)

// Logic is the behavior of one node type. Every hook receives the node it
// runs on; the node is also the Native handle through which the logic
// triggers outputs and finishes.
//
// Embed Base to get no-op defaults and override only what the type needs.
type Logic interface {
	InitializeInstance(ctx context.Context, n *Node) error
	DeinitializeInstance(ctx context.Context, n *Node)
	PreloadContent(ctx context.Context, n *Node) error
	FlushContent(ctx context.Context, n *Node)
	OnActivate(ctx context.Context, n *Node) error
	ExecuteInput(ctx context.Context, n *Node, input pin.Name) error
	Cleanup(ctx context.Context, n *Node)
}

// Base implements Logic with no-ops.
type Base struct{}

func (Base) InitializeInstance(context.Context, *Node) error { return nil }
func (Base) DeinitializeInstance(context.Context, *Node) {}
func (Base) PreloadContent(context.Context, *Node) error { return nil }
func (Base) FlushContent(context.Context, *Node) {}
func (Base) OnActivate(context.Context, *Node) error { return nil }
func (Base) ExecuteInput(context.Context, *Node, pin.Name) error { return nil }
func (Base) Cleanup(context.Context, *Node) {}

// Native is the lifecycle contract a running node exposes to whatever
// decides its transitions, native Go logic or an external layer.
type Native interface {
	TriggerFirstOutput(ctx context.Context, finish bool) error
	TriggerOutput(ctx context.Context, name pin.Name, finish bool, activation pin.ActivationType) error
	TriggerOutputPin(ctx context.Context, output pin.OutputHandle, finish bool, activation pin.ActivationType) error
	TriggerOutputString(ctx context.Context, name string, finish bool) error
	TriggerOutputText(ctx context.Context, name fmt.Stringer, finish bool) error
	Finish(ctx context.Context)
}

// External is logic whose decisions live outside the engine, such as a
// scripting layer. PreActivate runs before OnActivate with the live node as
// the callback target; the external side then triggers and finishes through
// that handle exactly like native logic would.
type External interface {
	Logic
	PreActivate(ctx context.Context, native Native) error
}

var _ Native = (*Node)(nil)
