package node

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/lifecycle"
	"github.com/specialistvlad/flowgridgo/internal/pin"
)

// InitializeInstance runs once per run before any input arrives. Add-ons are
// initialized after their parent, in attachment order.
func (n *Node) InitializeInstance(ctx context.Context) error {
	next, err := n.transition(lifecycle.EventInitialize)
	if err != nil {
		return err
	}
	if err := n.Logic().InitializeInstance(ctx, n); err != nil {
		n.LogError(ctx, fmt.Sprintf("initialization failed: %v", err))
		return fmt.Errorf("initialize %q: %w", n.name, err)
	}
	n.state = next

	var errs []error
	for _, child := range n.AddOns() {
		if child.state == lifecycle.Uninitialized {
			errs = append(errs, child.InitializeInstance(ctx))
		}
	}
	return errors.Join(errs...)
}

// DeinitializeInstance tears the node down. An Active node is finished first
// so Cleanup runs exactly once, preloaded content is flushed, and the add-on
// subtree is deinitialized before the node itself. A second call is a no-op.
func (n *Node) DeinitializeInstance(ctx context.Context) error {
	switch n.state {
	case lifecycle.Deinitialized:
		return nil
	case lifecycle.Active:
		n.finishLocal(ctx)
	}

	for _, child := range n.AddOns() {
		if err := child.DeinitializeInstance(ctx); err != nil {
			return err
		}
	}

	if n.preloading {
		n.flush(ctx)
	}
	if n.state != lifecycle.Uninitialized {
		n.Logic().DeinitializeInstance(ctx, n)
	}
	n.state = lifecycle.Deinitialized
	return nil
}

// PreloadContent asks a node type that supports preloading to start loading
// its content. The logic reports completion through CompletePreload, which
// may happen during this call or later. Types without the trait ignore it.
func (n *Node) PreloadContent(ctx context.Context) error {
	if !n.state.IsLive() {
		return n.orderError("PreloadContent")
	}

	var errs []error
	if n.def.Traits.SupportsPreload && !n.preloading {
		n.preloading = true
		if err := n.Logic().PreloadContent(ctx, n); err != nil {
			n.preloading = false
			n.LogError(ctx, fmt.Sprintf("preload failed: %v", err))
			errs = append(errs, fmt.Errorf("preload %q: %w", n.name, err))
		}
	}
	for _, child := range n.AddOns() {
		errs = append(errs, child.PreloadContent(ctx))
	}
	return errors.Join(errs...)
}

// CompletePreload marks requested content as loaded. It is ignored unless a
// preload is in flight.
func (n *Node) CompletePreload(ctx context.Context) {
	if !n.preloading {
		ctxlog.FromContext(ctx).Debug("Preload completion ignored, nothing requested.", "node", n)
		return
	}
	if n.state == lifecycle.Initialized {
		n.state = lifecycle.ContentLoaded
	}
}

// FlushContent releases preloaded content. Without a prior preload it is a
// no-op.
func (n *Node) FlushContent(ctx context.Context) {
	for _, child := range n.AddOns() {
		child.FlushContent(ctx)
	}
	if n.preloading {
		n.flush(ctx)
	}
}

func (n *Node) flush(ctx context.Context) {
	n.Logic().FlushContent(ctx, n)
	n.preloading = false
	if n.state == lifecycle.ContentLoaded {
		n.state = lifecycle.Initialized
	}
}

// ExecuteInput is the single entry point for incoming activations. An
// unsupported pin is reported as a configuration error and rejected before
// the node logic sees it. Otherwise the node is activated if needed, its own
// logic handles the input, and the input is then forwarded to every
// immediate add-on that supports it. Each step runs only while the node is
// still Active.
func (n *Node) ExecuteInput(ctx context.Context, input pin.Name) error {
	if !n.state.IsLive() {
		return n.orderError("ExecuteInput")
	}
	if !n.def.SupportsInput(input) {
		n.LogError(ctx, fmt.Sprintf("unsupported input pin %q, supported: %s", input, pin.Names(n.def.Inputs)))
		return fmt.Errorf("%w: %q on node %q", ErrUnsupportedInputPin, input, n.name)
	}

	fresh := false
	if n.state != lifecycle.Active {
		if n.state == lifecycle.Finished && n.def.Traits.SingleShot {
			n.LogWarning(ctx, fmt.Sprintf("input %q ignored, node already finished", input))
			return fmt.Errorf("%w: %q", ErrNotReEnterable, n.name)
		}
		next, err := n.transition(lifecycle.EventActivate)
		if err != nil {
			return err
		}
		n.state = next
		fresh = true
		if err := n.exec.preActivate(ctx, n); err != nil {
			return n.fail(ctx, "pre-activate", err)
		}
	}

	ctxlog.FromContext(ctx).Debug("Executing input.", "node", n, "pin", input.String())

	if fresh {
		if err := n.Logic().OnActivate(ctx, n); err != nil {
			return n.fail(ctx, "activate", err)
		}
	}
	if n.state == lifecycle.Active {
		if err := n.Logic().ExecuteInput(ctx, n, input); err != nil {
			return n.fail(ctx, "execute input", err)
		}
	}

	var errs []error
	for _, child := range n.AddOns() {
		if n.state != lifecycle.Active {
			break
		}
		if child.def.SupportsInput(input) {
			errs = append(errs, child.ExecuteInput(ctx, input))
		}
	}
	return errors.Join(errs...)
}

// Finish ends the current activation of the owning node. Called on an add-on
// it finishes the add-on's owner, which finishes the owner's active add-ons
// along with it. Finishing a node that is not Active is a no-op, so Cleanup
// runs once per activation.
func (n *Node) Finish(ctx context.Context) {
	owner := n.SelfOrOwner()
	if owner == nil {
		n.finishLocal(ctx)
		return
	}
	owner.finishLocal(ctx)
}

// ForceFinishNode is the administrative override used when the container
// aborts a run. It is allowed in every state from Initialized onward and
// always runs Cleanup once, even for a node that never activated.
func (n *Node) ForceFinishNode(ctx context.Context) error {
	switch n.state {
	case lifecycle.Uninitialized:
		return n.orderError("ForceFinishNode")
	case lifecycle.Finished, lifecycle.Deinitialized:
		return nil
	case lifecycle.Active:
		n.finishLocal(ctx)
		return nil
	}

	for _, child := range n.AddOns() {
		if err := child.ForceFinishNode(ctx); err != nil {
			return err
		}
	}
	next, err := n.transition(lifecycle.EventFinish)
	if err != nil {
		return err
	}
	n.state = next
	n.Logic().Cleanup(ctx, n)
	ctxlog.FromContext(ctx).Debug("Node force finished before activation.", "node", n)
	return nil
}

// finishLocal finishes n and its active add-on subtree. Children finish
// before their parent.
func (n *Node) finishLocal(ctx context.Context) {
	if n.state != lifecycle.Active {
		return
	}
	n.state = lifecycle.Finished
	for _, child := range n.AddOns() {
		child.finishLocal(ctx)
	}
	n.Logic().Cleanup(ctx, n)
	ctxlog.FromContext(ctx).Debug("Node finished.", "node", n)
}

// fail reports a logic error and finishes the node so it does not stay
// Active with nothing driving it.
func (n *Node) fail(ctx context.Context, step string, err error) error {
	n.LogError(ctx, fmt.Sprintf("%s failed: %v", step, err))
	n.finishLocal(ctx)
	return fmt.Errorf("%s %q: %w", step, n.name, err)
}

func (n *Node) transition(ev lifecycle.Event) (lifecycle.State, error) {
	next, err := lifecycle.Next(n.state, ev)
	if err != nil {
		var oe *lifecycle.OrderError
		if errors.As(err, &oe) {
			oe.Node = n.name
		}
		return n.state, err
	}
	return next, nil
}

func (n *Node) orderError(op string) error {
	return &lifecycle.OrderError{Op: op, State: n.state, Node: n.name}
}
