// Package graph is the reference container for the node core. It compiles a
// config.Model against a node type registry into an Asset, and executes
// Runs of that asset.
//
// A Run owns a node.Arena, implements node.Host, and resolves triggered
// outputs through the asset's topology. Propagation is synchronous: firing
// an output calls ExecuteInput on every connected input before returning.
// Two policies change that. With Deferred set, Default activations are
// queued and delivered in FIFO order after the current delivery returns.
// With MaxDepth set, the run switches to queuing once the synchronous chain
// gets that deep, which breaks mutual-trigger loops without a stack
// overflow. Forced activations are always delivered immediately.
package graph
