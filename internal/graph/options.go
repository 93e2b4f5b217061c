package graph

import (
	"github.com/specialistvlad/flowgridgo/internal/nodestore"
)

// Options tune a Run. The zero value gives a synchronous run with no depth
// limit and an in-memory trace.
type Options struct {
	// Deferred queues every Default activation instead of delivering it
	// synchronously.
	Deferred bool
	// MaxDepth switches to queuing once the synchronous chain is this deep.
	// Zero disables the limit.
	MaxDepth int
	// Owner is returned by node.Node.RootObjectOwner for every node.
	Owner any
	// Store records node states and the trace. Nil uses an in-memory store.
	Store nodestore.Store
}
