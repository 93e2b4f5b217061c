// Package nodetype is the table of node types an application knows about.
//
// A Definition describes a node type statically: its kind (primary node or
// add-on), its declared input and output pins, the capability names that
// class-filtered add-on traversals match on, and a Traits table holding the
// yes/no policies (preload support, re-entry, add-on acceptance) that the
// node layer queries instead of calling into node logic.
//
// Built-in node packages implement Module and register their definitions
// into a Registry at start-up. Validate checks the registry before any graph
// is compiled against it.
package nodetype
