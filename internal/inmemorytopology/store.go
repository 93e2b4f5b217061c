package inmemorytopology

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/specialistvlad/flowgridgo/internal/nodeid"
	"github.com/specialistvlad/flowgridgo/internal/topologystore"
)

// Store implements the topologystore.Store interface using maps and a mutex
// for thread-safe concurrent access.
type Store struct {
	mu      sync.RWMutex
	order   []string
	nodes   map[string]struct{}
	targets map[nodeid.Ref][]nodeid.Ref // Key: output pin, Value: fed inputs in insertion order
	sources map[nodeid.Ref][]nodeid.Ref
	count   int
}

// New creates a new, empty in-memory topology store.
func New() topologystore.Store {
	return &Store{
		nodes:   make(map[string]struct{}),
		targets: make(map[nodeid.Ref][]nodeid.Ref),
		sources: make(map[nodeid.Ref][]nodeid.Ref),
	}
}

// AddNode registers a node name.
func (s *Store) AddNode(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("node name cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.nodes[name]; exists {
		// Adding the same node twice is not an error, it's idempotent.
		return nil
	}
	s.nodes[name] = struct{}{}
	s.order = append(s.order, name)
	return nil
}

// Connect links an output pin to an input pin.
func (s *Store) Connect(ctx context.Context, from, to nodeid.Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.nodes[from.Node]; !exists {
		return fmt.Errorf("connection source node '%s' not found in topology", from.Node)
	}
	if _, exists := s.nodes[to.Node]; !exists {
		return fmt.Errorf("connection target node '%s' not found in topology", to.Node)
	}
	if slices.Contains(s.targets[from], to) {
		return nil
	}

	s.targets[from] = append(s.targets[from], to)
	s.sources[to] = append(s.sources[to], from)
	s.count++
	return nil
}

// Targets returns the inputs fed by an output pin.
func (s *Store) Targets(ctx context.Context, from nodeid.Ref) ([]nodeid.Ref, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.nodes[from.Node]; !exists {
		return nil, fmt.Errorf("node '%s' not found in topology", from.Node)
	}
	return slices.Clone(s.targets[from]), nil
}

// Sources returns the outputs feeding an input pin.
func (s *Store) Sources(ctx context.Context, to nodeid.Ref) ([]nodeid.Ref, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.nodes[to.Node]; !exists {
		return nil, fmt.Errorf("node '%s' not found in topology", to.Node)
	}
	return slices.Clone(s.sources[to]), nil
}

// Nodes returns the registered node names.
func (s *Store) Nodes(ctx context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// Len returns the number of connections.
func (s *Store) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}
