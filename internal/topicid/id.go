package topicid

import (
	"strconv"
	"strings"
)

// String serializes the ID into its canonical dotted representation.
func (id *ID) String() string {
	if id == nil {
		return ""
	}
	parts := make([]string, len(id.Path))
	for i, s := range id.Path {
		parts[i] = s.Raw
	}
	return strings.Join(parts, Separator)
}

// Depth returns the number of segments, 1 for top-level topics.
func (id *ID) Depth() int {
	if id == nil {
		return 0
	}
	return len(id.Path)
}

// Parent returns the enclosing topic id, or nil for a top-level topic.
func (id *ID) Parent() *ID {
	if id.Depth() < 2 {
		return nil
	}
	return &ID{Path: append([]Segment(nil), id.Path[:len(id.Path)-1]...)}
}

// Trailing returns the last segment.
func (id *ID) Trailing() Segment {
	if id.Depth() == 0 {
		return Segment{Number: -1}
	}
	return id.Path[len(id.Path)-1]
}

// Leading returns the first segment.
func (id *ID) Leading() Segment {
	if id.Depth() == 0 {
		return Segment{Number: -1}
	}
	return id.Path[0]
}

// WithTrailing returns a copy of the ID whose last segment is the number n.
// `1.1` with 2 becomes `1.2`.
func (id *ID) WithTrailing(n int) *ID {
	seg := Segment{Raw: strconv.Itoa(n), Number: n}
	if id.Depth() == 0 {
		return &ID{Path: []Segment{seg}}
	}
	path := append([]Segment(nil), id.Path...)
	path[len(path)-1] = seg
	return &ID{Path: path}
}
