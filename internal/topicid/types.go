package topicid

// Segment is a single component of a topic path, e.g. `18` or `a`.
type Segment struct {
	Raw string
	// Number holds the parsed value of a numeric segment, -1 otherwise.
	Number int
}

// NewSegment creates a segment from its raw text, parsing the number when
// the text is all digits.
func NewSegment(raw string) Segment {
	n, ok := parseNumber(raw)
	if !ok {
		n = -1
	}
	return Segment{Raw: raw, Number: n}
}

// IsNumeric returns true if the segment is a plain non-negative integer.
func (s Segment) IsNumeric() bool {
	return s.Number != -1
}

// ID is the structured representation of a topic identifier.
type ID struct {
	Path []Segment
}
