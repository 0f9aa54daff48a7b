// Package inmemorytopology provides a thread-safe, in-memory implementation
// of the topologystore.Store interface. It is designed for documents whose
// topic graph fits comfortably in memory and does not need to outlive the
// analysis run that built it.
//
// Nodes live in an arena (a slice in insertion order) indexed by id. Edges
// live in a single slice in insertion order, and each node keeps the indices
// of its outgoing and incoming edges. Edges whose endpoints are unknown are
// indexed by id as well, so queries over dangling targets still work.
package inmemorytopology
