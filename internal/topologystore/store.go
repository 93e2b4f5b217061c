// Package topologystore defines the interface for storing and retrieving the
// static pin connections of a compiled graph.
//
// The topology store keeps the immutable wiring (which output pin feeds which
// input pins) apart from the mutable run state kept by nodestore. The wiring
// is built once when a graph asset is compiled and then only read: every
// triggered output asks the store for its targets.
//
// # Lifecycle and Usage
//
// The topology store is:
//  1. **Created** once per compiled graph asset
//  2. **Populated** during compilation (nodes + connections added)
//  3. **Read-only** while runs of that asset execute
//
// Several runs of the same asset may share one store; implementations must be
// safe for concurrent reads.
package topologystore

import (
	"context"

	"github.com/specialistvlad/flowgridgo/internal/nodeid"
)

// Store is the interface for the pin connections of a graph.
type Store interface {
	// AddNode registers a node name. Adding the same name twice is not an
	// error.
	AddNode(ctx context.Context, name string) error

	// Connect links the output pin `from` to the input pin `to`. Both nodes
	// must already be registered. A duplicate connection is ignored.
	Connect(ctx context.Context, from, to nodeid.Ref) error

	// Targets returns the input pins fed by the output pin `from`, in the
	// order the connections were added. An unconnected output yields an
	// empty slice; an unknown node is an error.
	Targets(ctx context.Context, from nodeid.Ref) ([]nodeid.Ref, error)

	// Sources returns the output pins feeding the input pin `to`.
	Sources(ctx context.Context, to nodeid.Ref) ([]nodeid.Ref, error)

	// Nodes returns every registered node name in registration order.
	Nodes(ctx context.Context) []string

	// Len returns the number of connections.
	Len(ctx context.Context) int
}
