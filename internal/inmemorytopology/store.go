package inmemorytopology

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/specialistvlad/topicgraph/internal/cycles"
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/specialistvlad/topicgraph/internal/topologystore"
	"gonum.org/v1/gonum/stat"
)

var (
	errEmptyNodeID   = errors.New("node id is empty")
	errEmptyEndpoint = errors.New("edge source and target must not be empty")
)

// endpoint holds the edge indices touching one id, known node or not.
type endpoint struct {
	out []int
	in  []int
}

// Store implements the topologystore.Store interface using an arena of nodes
// and an index-based edge list guarded by a mutex.
type Store struct {
	mu sync.RWMutex

	nodes     []topologystore.Node
	nodeIndex map[string]int

	edges     []model.Relationship
	endpoints map[string]*endpoint
	// dangling lists endpoint ids that are not nodes, in order of first appearance.
	dangling []string

	limits cycles.Limits
}

// Option configures a Store.
type Option func(*Store)

// WithCycleLimits sets the limits used when Statistics counts cycles.
func WithCycleLimits(l cycles.Limits) Option {
	return func(s *Store) { s.limits = l }
}

// New creates a new, empty in-memory topology store.
func New(opts ...Option) *Store {
	s := &Store{
		nodeIndex: make(map[string]int),
		endpoints: make(map[string]*endpoint),
		limits:    cycles.DefaultLimits,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ topologystore.Store = (*Store)(nil)

// AddNode adds a node or replaces the attributes of an existing one.
func (s *Store) AddNode(ctx context.Context, id string, attrs topologystore.Attributes) error {
	if id == "" {
		return errEmptyNodeID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, exists := s.nodeIndex[id]; exists {
		// Idempotent: same slot, fresh attributes.
		s.nodes[i].Attributes = attrs
		return nil
	}
	s.nodeIndex[id] = len(s.nodes)
	s.nodes = append(s.nodes, topologystore.Node{ID: id, Attributes: attrs})
	if i := slices.Index(s.dangling, id); i >= 0 {
		s.dangling = slices.Delete(s.dangling, i, i+1)
	}
	return nil
}

// AddEdge appends an edge to the edge list.
func (s *Store) AddEdge(ctx context.Context, rel model.Relationship) error {
	if rel.Source == "" || rel.Target == "" {
		return errEmptyEndpoint
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := len(s.edges)
	s.edges = append(s.edges, rel)
	s.endpoint(rel.Source).out = append(s.endpoint(rel.Source).out, idx)
	s.endpoint(rel.Target).in = append(s.endpoint(rel.Target).in, idx)
	return nil
}

// endpoint returns the edge index for id, creating it on first use.
// Callers must hold the write lock.
func (s *Store) endpoint(id string) *endpoint {
	ep, ok := s.endpoints[id]
	if !ok {
		ep = &endpoint{}
		s.endpoints[id] = ep
		if _, known := s.nodeIndex[id]; !known {
			s.dangling = append(s.dangling, id)
		}
	}
	return ep
}

// HasNode reports whether id was added as a node.
func (s *Store) HasNode(ctx context.Context, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.nodeIndex[id]
	return ok
}

// Node retrieves a single node by id.
func (s *Store) Node(ctx context.Context, id string) (topologystore.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.nodeIndex[id]
	if !ok {
		return topologystore.Node{}, false
	}
	return s.nodes[i], true
}

// Nodes returns a copy of all nodes in insertion order.
func (s *Store) Nodes(ctx context.Context) []topologystore.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.nodes)
}

// AllEdges returns a copy of all edges in insertion order.
func (s *Store) AllEdges(ctx context.Context) []model.Relationship {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.edges)
}

// Neighbors returns the distinct ids connected to id by matching edges.
func (s *Store) Neighbors(ctx context.Context, id string, dir topologystore.Direction, types ...model.RelationType) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	neighbors := []string{}
	for _, idx := range s.matching(id, dir, types) {
		e := s.edges[idx]
		other := e.Target
		if e.Target == id && (e.Source != id || dir == topologystore.Incoming) {
			other = e.Source
		}
		if _, dup := seen[other]; dup {
			continue
		}
		seen[other] = struct{}{}
		neighbors = append(neighbors, other)
	}
	return neighbors
}

// Edges returns the edges touching id that match the filter.
func (s *Store) Edges(ctx context.Context, id string, dir topologystore.Direction, types ...model.RelationType) []model.Relationship {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idxs := s.matching(id, dir, types)
	edges := make([]model.Relationship, len(idxs))
	for i, idx := range idxs {
		edges[i] = s.edges[idx]
	}
	return edges
}

// matching returns the sorted indices of edges touching id that satisfy the
// direction and type filter. Callers must hold the read lock.
func (s *Store) matching(id string, dir topologystore.Direction, types []model.RelationType) []int {
	ep, ok := s.endpoints[id]
	if !ok {
		return nil
	}

	var idxs []int
	switch dir {
	case topologystore.Outgoing:
		idxs = slices.Clone(ep.out)
	case topologystore.Incoming:
		idxs = slices.Clone(ep.in)
	default:
		idxs = append(slices.Clone(ep.out), ep.in...)
		slices.Sort(idxs)
		// A self-loop is indexed on both sides.
		idxs = slices.Compact(idxs)
	}

	if len(types) == 0 {
		return idxs
	}
	filtered := idxs[:0]
	for _, idx := range idxs {
		if slices.Contains(types, s.edges[idx].Type) {
			filtered = append(filtered, idx)
		}
	}
	return filtered
}

// Degree returns the in- and out-degree of id over all edge types.
func (s *Store) Degree(ctx context.Context, id string) (in, out int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if ep, ok := s.endpoints[id]; ok {
		return len(ep.in), len(ep.out)
	}
	return 0, 0
}

// Statistics computes the graph summary from scratch.
func (s *Store) Statistics(ctx context.Context) topologystore.Statistics {
	snap := s.Snapshot(ctx)

	s.mu.RLock()
	stats := topologystore.Statistics{
		Nodes: len(s.nodes),
		Edges: len(s.edges),
	}
	degrees := make([]float64, len(s.nodes))
	for i, n := range s.nodes {
		var d int
		if ep, ok := s.endpoints[n.ID]; ok {
			d = len(ep.in) + len(ep.out)
		}
		if d == 0 {
			stats.Orphans++
		}
		stats.MaxDegree = max(stats.MaxDegree, d)
		degrees[i] = float64(d)
	}
	limits := s.limits
	s.mu.RUnlock()

	if len(degrees) > 0 {
		stats.AverageDegree = stat.Mean(degrees, nil)
	}
	stats.Cycles, stats.CyclesTruncated = cycles.Count(snap, limits)
	return stats
}

// Hierarchy returns parents with their hierarchical children.
func (s *Store) Hierarchy(ctx context.Context) []topologystore.HierarchyEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []topologystore.HierarchyEntry{}
	for _, id := range s.orderedIDs() {
		ep, ok := s.endpoints[id]
		if !ok {
			continue
		}
		var children []string
		for _, idx := range ep.out {
			e := s.edges[idx]
			if e.Type == model.Hierarchical && !slices.Contains(children, e.Target) {
				children = append(children, e.Target)
			}
		}
		if len(children) > 0 {
			entries = append(entries, topologystore.HierarchyEntry{Parent: id, Children: children})
		}
	}
	return entries
}

// Snapshot builds the index-based adjacency of the current graph.
func (s *Store) Snapshot(ctx context.Context) topologystore.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.orderedIDs()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	succ := make([][]int, len(ids))
	for i, id := range ids {
		ep, ok := s.endpoints[id]
		if !ok {
			continue
		}
		for _, idx := range ep.out {
			w := index[s.edges[idx].Target]
			if !slices.Contains(succ[i], w) {
				succ[i] = append(succ[i], w)
			}
		}
	}
	return topologystore.Snapshot{IDs: ids, Known: len(s.nodes), Succ: succ}
}

// orderedIDs returns known node ids followed by dangling endpoint ids.
// Callers must hold the read lock.
func (s *Store) orderedIDs() []string {
	ids := make([]string, 0, len(s.nodes)+len(s.dangling))
	for _, n := range s.nodes {
		ids = append(ids, n.ID)
	}
	return append(ids, s.dangling...)
}
