// Package app wires the loaders, the node type registry and the graph
// container together: it loads graph assets from disk, compiles them, runs
// the entry nodes, and reports the diagnostics. It is decoupled from any
// specific entrypoint like a CLI or server.
package app
