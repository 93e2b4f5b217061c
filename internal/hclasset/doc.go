// Package hclasset loads graph assets written in HCL:
//
//	graph "quest" {
//	  entry = ["start"]
//	}
//
//	node "start" {
//	  type = "Start"
//	}
//
//	node "gate" {
//	  type = "Branch"
//	  addon "ready" {
//	    type       = "Expression"
//	    properties = { expression = "env.READY == \"1\"" }
//	  }
//	}
//
//	connection {
//	  from = "start.Out"
//	  to   = "gate.In"
//	}
//
// `properties` is an ordinary HCL expression evaluated with `env.NAME`,
// `graph.name` and a small set of string and collection functions in scope.
package hclasset
