// Package node is the runtime core of a flow graph: live node instances,
// their lifecycle, pin triggering, and the add-on tree hanging off each
// primary node.
//
// A graph container spawns nodes into an Arena, attaches add-ons, and then
// drives each node through InitializeInstance, ExecuteInput, Finish and
// DeinitializeInstance. Node behavior comes from a Logic created by the
// node type's factory. Logic that implements External is dispatched through
// the external bridge instead, receiving the node as its Native callback
// target before activation.
//
// Outputs are handed to the Host, which resolves connections and calls
// ExecuteInput on the targets. The core itself holds no locks and starts no
// goroutines.
package node
