package cycles

import (
	"github.com/specialistvlad/topicgraph/internal/topologystore"
)

// DefaultMaxCycles bounds enumeration when no explicit limit is given.
const DefaultMaxCycles = 10000

// Limits bound the enumeration. A zero field means "no limit".
type Limits struct {
	// MaxLength is the longest cycle, in vertices, that is reported.
	MaxLength int `yaml:"max_length" json:"max_length"`
	// MaxCycles is the number of reported cycles after which the search gives
	// up. Cycles dropped by MaxLength do not count towards it.
	MaxCycles int `yaml:"max_cycles" json:"max_cycles"`
}

// DefaultLimits are used by the in-memory store for Statistics.
var DefaultLimits = Limits{MaxCycles: DefaultMaxCycles}

// Result holds the enumerated cycles as vertex indices into the snapshot.
type Result struct {
	Cycles    [][]int
	Truncated bool
}

// IDs maps every cycle of r back to topic ids.
func (r Result) IDs(s topologystore.Snapshot) [][]string {
	out := make([][]string, len(r.Cycles))
	for i, c := range r.Cycles {
		ids := make([]string, len(c))
		for j, v := range c {
			ids[j] = s.IDs[v]
		}
		out[i] = ids
	}
	return out
}

// Enumerate returns the simple cycles of the snapshot, self-loops included.
func Enumerate(s topologystore.Snapshot, limits Limits) Result {
	e := &enumerator{
		succ:    s.Succ,
		limits:  limits,
		blocked: make([]bool, s.Len()),
		blockBy: make([]map[int]struct{}, s.Len()),
		inComp:  make([]bool, s.Len()),
	}

	for start := 0; start < s.Len() && !e.stopped; start++ {
		comp := e.component(start)
		if len(comp) == 1 && !e.hasSelfLoop(start) {
			continue
		}
		for _, v := range comp {
			e.inComp[v] = true
			e.blocked[v] = false
			e.blockBy[v] = nil
		}
		e.start = start
		e.circuit(start)
		for _, v := range comp {
			e.inComp[v] = false
		}
	}

	return Result{Cycles: e.cycles, Truncated: e.truncated}
}

// Count returns the number of cycles Enumerate would report.
func Count(s topologystore.Snapshot, limits Limits) (int, bool) {
	r := Enumerate(s, limits)
	return len(r.Cycles), r.Truncated
}

type enumerator struct {
	succ   [][]int
	limits Limits

	start   int
	stack   []int
	blocked []bool
	blockBy []map[int]struct{}
	inComp  []bool

	found     int
	cycles    [][]int
	truncated bool
	stopped   bool
}

func (e *enumerator) hasSelfLoop(v int) bool {
	for _, w := range e.succ[v] {
		if w == v {
			return true
		}
	}
	return false
}

// circuit is the recursive search of Johnson's algorithm. It reports whether a
// cycle back to e.start was found through v.
func (e *enumerator) circuit(v int) bool {
	found := false
	e.stack = append(e.stack, v)
	e.blocked[v] = true

	for _, w := range e.succ[v] {
		if e.stopped {
			break
		}
		if !e.inComp[w] {
			continue
		}
		if w == e.start {
			e.emit()
			found = true
		} else if !e.blocked[w] && e.circuit(w) {
			found = true
		}
	}

	if found {
		e.unblock(v)
	} else {
		for _, w := range e.succ[v] {
			if !e.inComp[w] {
				continue
			}
			if e.blockBy[w] == nil {
				e.blockBy[w] = make(map[int]struct{})
			}
			e.blockBy[w][v] = struct{}{}
		}
	}

	e.stack = e.stack[:len(e.stack)-1]
	return found
}

func (e *enumerator) unblock(u int) {
	e.blocked[u] = false
	for w := range e.blockBy[u] {
		delete(e.blockBy[u], w)
		if e.blocked[w] {
			e.unblock(w)
		}
	}
}

// emit records the cycle on the stack. A cycle longer than MaxLength is
// dropped, but circuit still treats it as found for unblocking.
func (e *enumerator) emit() {
	if e.limits.MaxLength > 0 && len(e.stack) > e.limits.MaxLength {
		e.truncated = true
		return
	}
	if e.limits.MaxCycles > 0 && e.found >= e.limits.MaxCycles {
		e.truncated = true
		e.stopped = true
		return
	}
	e.found++
	e.cycles = append(e.cycles, append([]int(nil), e.stack...))
}

// component returns the strongly connected component containing start within
// the subgraph of vertices >= start, using Tarjan's algorithm.
func (e *enumerator) component(start int) []int {
	t := tarjan{
		succ:    e.succ,
		min:     start,
		index:   make(map[int]int),
		low:     make(map[int]int),
		onStack: make(map[int]bool),
	}
	t.visit(start)
	return t.result
}

type tarjan struct {
	succ    [][]int
	min     int
	next    int
	index   map[int]int
	low     map[int]int
	onStack map[int]bool
	stack   []int
	result  []int
}

func (t *tarjan) visit(v int) {
	t.index[v] = t.next
	t.low[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.succ[v] {
		if w < t.min {
			continue
		}
		if _, seen := t.index[w]; !seen {
			t.visit(w)
			t.low[v] = min(t.low[v], t.low[w])
		} else if t.onStack[w] {
			t.low[v] = min(t.low[v], t.index[w])
		}
	}

	if t.low[v] != t.index[v] {
		return
	}
	var comp []int
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		comp = append(comp, w)
		if w == v {
			break
		}
	}
	// The start vertex is the DFS root, so its component is the last one
	// popped; earlier components are discarded.
	t.result = comp
}
