package cycles

import (
	"testing"

	"github.com/specialistvlad/topicgraph/internal/topologystore"
	"github.com/stretchr/testify/assert"
)

// snapshot builds a snapshot over ids "0".."n-1" from an adjacency list.
func snapshot(succ [][]int) topologystore.Snapshot {
	ids := make([]string, len(succ))
	for i := range succ {
		ids[i] = string(rune('A' + i))
	}
	return topologystore.Snapshot{IDs: ids, Known: len(ids), Succ: succ}
}

func TestEnumerate(t *testing.T) {
	testCases := []struct {
		name     string
		succ     [][]int
		expected [][]int
	}{
		{
			name:     "empty graph",
			succ:     [][]int{},
			expected: nil,
		},
		{
			name:     "acyclic chain",
			succ:     [][]int{{1}, {2}, {}},
			expected: nil,
		},
		{
			name:     "triangle",
			succ:     [][]int{{1}, {2}, {0}},
			expected: [][]int{{0, 1, 2}},
		},
		{
			name:     "triangle entered late",
			succ:     [][]int{{1}, {2}, {3}, {1}},
			expected: [][]int{{1, 2, 3}},
		},
		{
			name:     "self loop",
			succ:     [][]int{{0}, {}},
			expected: [][]int{{0}},
		},
		{
			name: "complete graph on three vertices",
			succ: [][]int{{1, 2}, {0, 2}, {0, 1}},
			expected: [][]int{
				{0, 1},
				{0, 1, 2},
				{0, 2},
				{0, 2, 1},
				{1, 2},
			},
		},
		{
			name:     "two disjoint cycles",
			succ:     [][]int{{1}, {0}, {3}, {2}},
			expected: [][]int{{0, 1}, {2, 3}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Enumerate(snapshot(tc.succ), Limits{})
			assert.Equal(t, tc.expected, result.Cycles)
			assert.False(t, result.Truncated)
		})
	}
}

func TestEnumerate_Limits(t *testing.T) {
	complete := [][]int{{1, 2}, {0, 2}, {0, 1}}

	t.Run("max length filters long cycles", func(t *testing.T) {
		result := Enumerate(snapshot(complete), Limits{MaxLength: 2})
		assert.Equal(t, [][]int{{0, 1}, {0, 2}, {1, 2}}, result.Cycles)
		assert.True(t, result.Truncated)
	})

	t.Run("max cycles stops the search", func(t *testing.T) {
		result := Enumerate(snapshot(complete), Limits{MaxCycles: 2})
		assert.Equal(t, [][]int{{0, 1}, {0, 1, 2}}, result.Cycles)
		assert.True(t, result.Truncated)
	})

	t.Run("long cycles do not use up max cycles", func(t *testing.T) {
		// A -> B -> C -> A plus B -> A.
		result := Enumerate(snapshot([][]int{{1}, {2, 0}, {0}}), Limits{MaxLength: 2, MaxCycles: 1})
		assert.Equal(t, [][]int{{0, 1}}, result.Cycles)
		assert.True(t, result.Truncated)
	})

	t.Run("both limits applied", func(t *testing.T) {
		result := Enumerate(snapshot(complete), Limits{MaxLength: 2, MaxCycles: 2})
		assert.Equal(t, [][]int{{0, 1}, {0, 2}}, result.Cycles)
		assert.True(t, result.Truncated)
	})

	t.Run("limit equal to the count is not truncated", func(t *testing.T) {
		n, truncated := Count(snapshot([][]int{{1}, {0}}), Limits{MaxCycles: 1})
		assert.Equal(t, 1, n)
		assert.False(t, truncated)
	})

	t.Run("limits above the count do not truncate", func(t *testing.T) {
		n, truncated := Count(snapshot(complete), Limits{MaxLength: 3, MaxCycles: 100})
		assert.Equal(t, 5, n)
		assert.False(t, truncated)
	})
}

func TestResult_IDs(t *testing.T) {
	s := snapshot([][]int{{1}, {2}, {0}})
	result := Enumerate(s, DefaultLimits)
	assert.Equal(t, [][]string{{"A", "B", "C"}}, result.IDs(s))
}
