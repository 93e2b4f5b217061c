package nodetype

import (
	"fmt"
	"log/slog"
	"sort"
)

// Module is the interface that every built-in node package implements to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the node type definitions known to one application instance.
type Registry struct {
	types map[string]*Definition
}

// New creates a registry and registers the given modules into it.
func New(modules ...Module) *Registry {
	r := &Registry{types: make(map[string]*Definition)}
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// RegisterType adds a node type. Registering the same type name twice is a
// programming error and panics.
func (r *Registry) RegisterType(def *Definition) {
	if def == nil || def.Type == "" {
		panic("node type definition must have a type name")
	}
	if _, exists := r.types[def.Type]; exists {
		panic(fmt.Sprintf("node type '%s' already registered", def.Type))
	}
	slog.Debug("Registering node type.", "type", def.Type, "kind", def.Kind.String())
	r.types[def.Type] = def
}

// Lookup returns the definition registered under typeName.
func (r *Registry) Lookup(typeName string) (*Definition, bool) {
	def, ok := r.types[typeName]
	return def, ok
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.types)
}
