package topicid

import (
	"strconv"
	"strings"
)

// Separator joins the segments of a topic path.
const Separator = "."

// Parse splits a raw topic id into its segments. It never fails: topic ids
// come from free-form documents, so empty or non-numeric segments are kept
// verbatim and String always returns rawID unchanged. The empty string yields
// an ID with no segments.
func Parse(rawID string) *ID {
	if rawID == "" {
		return &ID{}
	}
	parts := strings.Split(rawID, Separator)
	id := &ID{Path: make([]Segment, len(parts))}
	for i, part := range parts {
		id.Path[i] = NewSegment(part)
	}
	return id
}

// parseNumber accepts ASCII digits only; "", "+1" and "1a" are not numbers.
func parseNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Only reachable on overflow.
		return 0, false
	}
	return n, true
}
