// Package inmemorystore provides an ephemeral, thread-safe, in-memory
// implementation of the nodestore.Store interface.
//
// Node states live in a sync.Map: the key space (node names) is fixed when a
// run starts and values change often. The trace is an append-only slice
// behind a mutex, since readers need a consistent ordered snapshot.
package inmemorystore
