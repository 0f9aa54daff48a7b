// Package topologystore defines the interface for storing and querying the
// topic relationship graph: a directed multigraph keyed by topic id, with
// edges distinguished by relation type.
//
// # Why Topology Store Exists
//
// The store separates the graph structure from the analysis performed on it.
// The builder writes into a Store once; the detectors, the reporter and any
// external consumer (the CLI, the MCP server, the topic map exporter) only see
// the read-only Reader half. This keeps detectors pure: they cannot change the
// graph they are analysing.
//
// # Lifecycle and Usage
//
// A store is:
//  1. Created once per analysis run.
//  2. Populated by the builder (nodes first, then edges).
//  3. Read-only while the detectors run, possibly concurrently.
//  4. Handed to the caller inside the run result and discarded with it.
//
// # Dangling Edges
//
// Edges may point at (or originate from) ids that were never added as nodes.
// The store keeps them as-is and does not invent placeholder nodes. Queries
// over such ids return whatever edges touch them: a dangling target has an
// in-degree but HasNode reports false.
package topologystore

import (
	"context"

	"github.com/specialistvlad/topicgraph/internal/model"
)

// Direction selects which edges of a node a query follows.
type Direction int

const (
	// Outgoing follows edges whose source is the node.
	Outgoing Direction = iota
	// Incoming follows edges whose target is the node.
	Incoming
	// Both follows edges in either direction.
	Both
)

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case Outgoing:
		return "outgoing"
	case Incoming:
		return "incoming"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

// Attributes are the per-node values kept by the store.
type Attributes struct {
	Title      string
	Content    string
	Confidence float64
}

// Node is a stored topic node.
type Node struct {
	ID string
	Attributes
}

// Statistics is a point-in-time summary of the graph.
type Statistics struct {
	Nodes           int     `json:"total_nodes"`
	Edges           int     `json:"total_edges"`
	Orphans         int     `json:"orphan_nodes"`
	Cycles          int     `json:"cycles"`
	AverageDegree   float64 `json:"average_degree"`
	MaxDegree       int     `json:"max_degree"`
	CyclesTruncated bool    `json:"cycles_truncated,omitempty"`
}

// HierarchyEntry is one parent together with its ordered hierarchical children.
type HierarchyEntry struct {
	Parent   string   `json:"parent"`
	Children []string `json:"children"`
}

// Snapshot is an immutable, index-based view of the graph's adjacency.
//
// IDs holds every known node in insertion order, followed by every id that
// only appears as an edge endpoint, in order of first appearance. Succ[i]
// lists the distinct successors of IDs[i] in edge-insertion order, regardless
// of relation type.
type Snapshot struct {
	IDs   []string
	Known int
	Succ  [][]int
}

// Len returns the number of vertices in the snapshot.
func (s Snapshot) Len() int { return len(s.IDs) }

// Reader is the read-only half of the store. Detectors and external consumers
// depend on Reader only.
//
// No Reader method fails on an unknown id: absence is an empty result.
//
// Thread-safety: implementations MUST be safe for concurrent use.
type Reader interface {
	// HasNode reports whether id was added as a node.
	HasNode(ctx context.Context, id string) bool

	// Node returns the stored node for id.
	Node(ctx context.Context, id string) (Node, bool)

	// Nodes returns every node in insertion order.
	Nodes(ctx context.Context) []Node

	// AllEdges returns every edge in insertion order.
	AllEdges(ctx context.Context) []model.Relationship

	// Neighbors returns the ids connected to id by edges matching the direction
	// and type filter, in edge-insertion order. An empty type filter matches all
	// types. Each neighbor appears once; the first matching edge decides its
	// position.
	Neighbors(ctx context.Context, id string, dir Direction, types ...model.RelationType) []string

	// Edges returns the edges touching id that match the direction and type
	// filter, in insertion order.
	Edges(ctx context.Context, id string, dir Direction, types ...model.RelationType) []model.Relationship

	// Degree returns the in- and out-degree of id over all edge types.
	Degree(ctx context.Context, id string) (in, out int)

	// Statistics computes the graph summary. It is recomputed on every call.
	Statistics(ctx context.Context) Statistics

	// Hierarchy returns every node with at least one outgoing hierarchical edge
	// together with its children, in node insertion order. Parents that are
	// only edge endpoints follow the known nodes.
	Hierarchy(ctx context.Context) []HierarchyEntry

	// Snapshot returns the index-based adjacency used by cycle enumeration.
	Snapshot(ctx context.Context) Snapshot
}

// Store is the full graph store used by the builder.
//
// # Typical Implementation
//
// See internal/inmemorytopology for the in-memory implementation: an arena of
// nodes plus an index-based edge list guarded by a sync.RWMutex.
type Store interface {
	Reader

	// AddNode registers a node. Re-adding an existing id replaces its
	// attributes and keeps the node's original insertion slot.
	//
	// An empty id is rejected with an error.
	AddNode(ctx context.Context, id string, attrs Attributes) error

	// AddEdge appends an edge. Edges are never merged or deduplicated, and
	// the endpoints do not need to be known nodes.
	//
	// An edge with an empty source or target is rejected with an error.
	AddEdge(ctx context.Context, rel model.Relationship) error
}
