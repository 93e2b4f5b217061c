package script

import (
	"context"
	"fmt"

	"github.com/specialistvlad/flowgridgo/internal/node"
	"github.com/specialistvlad/flowgridgo/internal/pin"
)

// Logic is a node.External backed by a compiled Program.
type Logic struct {
	node.Base
	program *Program
	props   map[string]any
	store   map[string]any
	native  node.Native
}

var _ node.External = (*Logic)(nil)

// New creates the per-instance logic. props are exposed to expressions
// through prop().
func New(program *Program, props map[string]any) *Logic {
	if props == nil {
		props = map[string]any{}
	}
	return &Logic{program: program, props: props, store: map[string]any{}}
}

// PreActivate binds the node the expressions call back into.
func (l *Logic) PreActivate(_ context.Context, native node.Native) error {
	if native == nil {
		return ErrNotBound
	}
	l.native = native
	return nil
}

func (l *Logic) OnActivate(ctx context.Context, _ *node.Node) error {
	_, err := l.program.run(OnActivate, newEnv(ctx, l.native, l, ""))
	return err
}

func (l *Logic) ExecuteInput(ctx context.Context, _ *node.Node, input pin.Name) error {
	_, err := l.program.run(OnInput, newEnv(ctx, l.native, l, input.String()))
	return err
}

// Cleanup runs on_cleanup. The node is already Finished, so a failure can
// only be reported.
func (l *Logic) Cleanup(ctx context.Context, n *node.Node) {
	if _, err := l.program.run(OnCleanup, newEnv(ctx, l.native, l, "")); err != nil {
		n.LogWarning(ctx, fmt.Sprintf("cleanup script failed: %v", err))
	}
}

func (l *Logic) DeinitializeInstance(context.Context, *node.Node) {
	l.store = map[string]any{}
	l.native = nil
}

// Value returns a stored script variable.
func (l *Logic) Value(key string) (any, bool) {
	v, ok := l.store[key]
	return v, ok
}
