// Package inmemorytopology provides a thread-safe, in-memory implementation
// of the topologystore.Store interface. It is designed for graphs whose
// wiring fits comfortably in memory and does not need persistent storage.
package inmemorytopology
