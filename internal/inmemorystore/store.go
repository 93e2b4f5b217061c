package inmemorystore

import (
	"context"
	"slices"
	"sync"

	"github.com/specialistvlad/flowgridgo/internal/lifecycle"
	"github.com/specialistvlad/flowgridgo/internal/nodestore"
	"github.com/specialistvlad/flowgridgo/internal/pin"
)

// Store is an in-memory implementation of nodestore.Store.
type Store struct {
	states sync.Map // Key: node name, Value: lifecycle.State

	mu     sync.RWMutex
	events []nodestore.Event
	seq    uint64
}

// New creates a new, empty in-memory run store.
func New() nodestore.Store {
	return &Store{}
}

// SetState records the latest state of a node.
func (s *Store) SetState(ctx context.Context, node string, state lifecycle.State) error {
	s.states.Store(node, state)
	return nil
}

// GetState returns the latest state of a node.
// If no state has been recorded, it returns lifecycle.Uninitialized.
func (s *Store) GetState(ctx context.Context, node string) (lifecycle.State, error) {
	state, ok := s.states.Load(node)
	if !ok {
		return lifecycle.Uninitialized, nil
	}
	return state.(lifecycle.State), nil
}

// Append adds an event to the trace.
func (s *Store) Append(ctx context.Context, ev nodestore.Event) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	ev.Seq = s.seq
	s.events = append(s.events, ev)
	return ev.Seq, nil
}

// Events returns a copy of the trace.
func (s *Store) Events(ctx context.Context) []nodestore.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events)
}

// Count counts matching events.
func (s *Store) Count(ctx context.Context, kind nodestore.EventKind, node string, p pin.Name) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, ev := range s.events {
		if ev.Kind == kind && ev.Node == node && (p == pin.None || ev.Pin == p) {
			n++
		}
	}
	return n
}
