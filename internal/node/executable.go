package node

import (
	"context"
	"fmt"
)

// executable is the dispatch variant chosen when a node is spawned.
type executable interface {
	logic() Logic
	preActivate(ctx context.Context, n *Node) error
	isExternal() bool
}

type nativeExecutable struct {
	impl Logic
}

func (e nativeExecutable) logic() Logic { return e.impl }
func (nativeExecutable) preActivate(context.Context, *Node) error { return nil }
func (nativeExecutable) isExternal() bool { return false }

type externalExecutable struct {
	impl External
}

func (e externalExecutable) logic() Logic { return e.impl }

func (e externalExecutable) preActivate(ctx context.Context, n *Node) error {
	return e.impl.PreActivate(ctx, n)
}

func (externalExecutable) isExternal() bool { return true }

func newExecutable(v any) (executable, error) {
	switch impl := v.(type) {
	case External:
		return externalExecutable{impl: impl}, nil
	case Logic:
		return nativeExecutable{impl: impl}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrBadLogic, v)
	}
}
