package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/flowgridgo/internal/nodeid"
)

// ErrInvalidModel wraps every structural problem found by Validate.
var ErrInvalidModel = errors.New("invalid graph asset")

// Validate checks what can be checked without a node type registry: names
// are well formed and unique, every node has a type, entries and connection
// endpoints name existing top-level nodes.
func (m *Model) Validate() error {
	var errs []string
	seen := make(map[string]struct{})

	for _, top := range m.Nodes {
		top.Walk(func(parent, n *Node) {
			where := n.Name
			if parent != nil {
				where = parent.Name + "/" + n.Name
			}
			if n.Name == "" {
				errs = append(errs, "node with empty name")
			} else if !nodeid.ValidName(n.Name) {
				errs = append(errs, fmt.Sprintf("invalid node name '%s'", n.Name))
			}
			if n.Type == "" {
				errs = append(errs, fmt.Sprintf("node '%s' has no type", where))
			}
			if _, dup := seen[n.Name]; dup && n.Name != "" {
				errs = append(errs, fmt.Sprintf("duplicate node name '%s'", n.Name))
			}
			seen[n.Name] = struct{}{}
		})
	}

	for _, e := range m.Entry {
		if _, ok := m.FindNode(e); !ok {
			errs = append(errs, fmt.Sprintf("entry node '%s' is not defined", e))
		}
	}
	for _, c := range m.Connections {
		for _, ep := range []Endpoint{c.From, c.To} {
			if _, ok := m.FindNode(ep.Node); !ok {
				errs = append(errs, fmt.Sprintf("connection %s -> %s: node '%s' is not defined", c.From, c.To, ep.Node))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n- %s", ErrInvalidModel, strings.Join(errs, "\n- "))
	}
	return nil
}
