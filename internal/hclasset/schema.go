package hclasset

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a graph file may contain.
type fileRoot struct {
	Graphs      []*graphBlock      `hcl:"graph,block"`
	Nodes       []*nodeBlock       `hcl:"node,block"`
	Connections []*connectionBlock `hcl:"connection,block"`
	Remain      hcl.Body           `hcl:",remain"`
}

// graphBlock carries asset-wide settings:
//
//	graph "quest" {
//	  entry = ["start"]
//	}
type graphBlock struct {
	Name  string   `hcl:"name,label"`
	Entry []string `hcl:"entry,optional"`
}

// nodeBlock is used for both `node` and nested `addon` blocks.
type nodeBlock struct {
	Name       string         `hcl:"name,label"`
	Type       string         `hcl:"type"`
	ID         string         `hcl:"id,optional"`
	Properties hcl.Expression `hcl:"properties,optional"`
	AddOns     []*nodeBlock   `hcl:"addon,block"`
}

// connectionBlock wires an output pin to an input pin:
//
//	connection {
//	  from = "start.Out"
//	  to   = "gate.In"
//	}
type connectionBlock struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}
