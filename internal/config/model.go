package config

import (
	"github.com/specialistvlad/flowgridgo/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Model is the format-agnostic description of one graph asset: its nodes,
// the add-on trees hanging off them, and the connections between pins.
type Model struct {
	Name        string
	Entry       []string
	Nodes       []*Node
	Connections []*Connection
	// Sources lists the files the model was read from, in load order.
	Sources []string
}

// Node is a `node` block, or an `addon` block nested under one.
type Node struct {
	Name       string
	Type       string
	ID         string
	Properties cty.Value
	AddOns     []*Node
}

// Connection links an output pin of one node to an input pin of another.
type Connection struct {
	From Endpoint
	To   Endpoint
}

// Endpoint addresses a pin as "node.Pin".
type Endpoint = nodeid.Ref

// FindNode returns the top-level node with the given name.
func (m *Model) FindNode(name string) (*Node, bool) {
	for _, n := range m.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

// Merge appends other into m. Entry and Name are taken from other when m
// has none.
func (m *Model) Merge(other *Model) {
	if m.Name == "" {
		m.Name = other.Name
	}
	if len(m.Entry) == 0 {
		m.Entry = other.Entry
	}
	m.Nodes = append(m.Nodes, other.Nodes...)
	m.Connections = append(m.Connections, other.Connections...)
	m.Sources = append(m.Sources, other.Sources...)
}

// Walk visits n and every add-on below it, depth first. parent is nil for n.
func (n *Node) Walk(fn func(parent, child *Node)) {
	var walk func(parent, child *Node)
	walk = func(parent, child *Node) {
		fn(parent, child)
		for _, a := range child.AddOns {
			walk(child, a)
		}
	}
	walk(nil, n)
}
