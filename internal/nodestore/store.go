// Package nodestore defines the interface for recording the mutable state of
// a graph run: the last lifecycle state of every node and an ordered trace of
// what happened (inputs delivered, outputs fired, state changes).
//
// The node store is the run-side counterpart of topologystore. The topology
// is shared by every run of a compiled asset; a node store belongs to exactly
// one run and is discarded with it.
//
// During a run:
//   - the graph container appends an Event for every input, output and
//     lifecycle change it drives
//   - the CLI and tests read the trace, possibly from another goroutine
package nodestore

import (
	"context"
	"fmt"

	"github.com/specialistvlad/flowgridgo/internal/lifecycle"
	"github.com/specialistvlad/flowgridgo/internal/pin"
)

// EventKind classifies a trace event.
type EventKind int

const (
	EventInput EventKind = iota
	EventOutput
	EventState
	EventDeferred
)

func (k EventKind) String() string {
	switch k {
	case EventInput:
		return "input"
	case EventOutput:
		return "output"
	case EventState:
		return "state"
	case EventDeferred:
		return "deferred"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one entry of a run trace. Seq is assigned by the store.
type Event struct {
	Seq        uint64
	Kind       EventKind
	Node       string
	Pin        pin.Name
	Activation pin.ActivationType
	State      lifecycle.State
	// Depth is the synchronous propagation depth the event happened at.
	Depth int
}

func (e Event) String() string {
	switch e.Kind {
	case EventState:
		return fmt.Sprintf("#%d %s %s -> %s", e.Seq, e.Kind, e.Node, e.State)
	default:
		return fmt.Sprintf("#%d %s %s.%s", e.Seq, e.Kind, e.Node, e.Pin)
	}
}

// Store is the interface for the mutable state of one graph run.
//
// Implementations MUST be safe for concurrent use: the run writes from its
// own goroutine while observers read.
type Store interface {
	// SetState records the latest lifecycle state of a node.
	SetState(ctx context.Context, node string, state lifecycle.State) error

	// GetState returns the latest recorded state of a node, or
	// lifecycle.Uninitialized if none was recorded.
	GetState(ctx context.Context, node string) (lifecycle.State, error)

	// Append adds an event to the trace and returns its sequence number.
	Append(ctx context.Context, ev Event) (uint64, error)

	// Events returns a snapshot of the trace in append order.
	Events(ctx context.Context) []Event

	// Count returns how many events of the given kind reference node.pin.
	// An empty pin matches any pin.
	Count(ctx context.Context, kind EventKind, node string, p pin.Name) int
}
