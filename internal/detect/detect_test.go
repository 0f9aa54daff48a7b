package detect

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/topicgraph/internal/builder"
	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/specialistvlad/topicgraph/internal/cycles"
	"github.com/specialistvlad/topicgraph/internal/inmemorytopology"
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// input builds the graph for topics the same way the engine does.
func input(t *testing.T, topics ...*model.Topic) Input {
	t.Helper()
	store := inmemorytopology.New()
	require.NoError(t, builder.Build(context.Background(), store, topics))
	return Input{Topics: topics, Graph: store}
}

func tp(id string) *model.Topic {
	return &model.Topic{ID: id, Title: "Topic " + id, Confidence: model.DefaultConfidence}
}

func withParent(t *model.Topic, parent string) *model.Topic {
	t.Parent = parent
	return t
}

func withRefs(t *model.Topic, refs ...string) *model.Topic {
	t.CrossReferences = refs
	return t
}

func TestNumberingGaps(t *testing.T) {
	ctx := context.Background()

	t.Run("every missing integer is reported", func(t *testing.T) {
		f := NumberingGaps{}.Detect(ctx, input(t, tp("1"), tp("2"), tp("5")))
		require.Len(t, f.Anomalies, 2)

		assert.Equal(t, "3", f.Anomalies[0].Target)
		assert.Equal(t, "4", f.Anomalies[1].Target)
		for _, a := range f.Anomalies {
			assert.Equal(t, model.NumberingGap, a.Type)
			assert.Equal(t, model.SeverityHigh, a.Severity)
			assert.Equal(t, "Between 2 and 5", a.Location)
			assert.Equal(t, []string{"2", "5"}, a.AffectedTopics)
		}
		assert.Equal(t, "Missing topic 3 in sequence", f.Anomalies[0].Description)
	})

	t.Run("groups by parent and keeps the prefix", func(t *testing.T) {
		f := NumberingGaps{}.Detect(ctx, input(t,
			tp("1"),
			withParent(tp("1.1"), "1"),
			withParent(tp("1.3"), "1"),
			tp("2"),
		))
		require.Len(t, f.Anomalies, 1)
		assert.Equal(t, "1.2", f.Anomalies[0].Target)
		assert.Equal(t, "Between 1.1 and 1.3", f.Anomalies[0].Location)
	})

	t.Run("unordered input is sorted numerically", func(t *testing.T) {
		f := NumberingGaps{}.Detect(ctx, input(t, tp("10"), tp("8"), tp("9"), tp("2"), tp("1")))
		targets := make([]string, 0, len(f.Anomalies))
		for _, a := range f.Anomalies {
			targets = append(targets, a.Target)
		}
		assert.Equal(t, []string{"3", "4", "5", "6", "7"}, targets)
	})

	t.Run("non-numeric trailing segments are skipped", func(t *testing.T) {
		f := NumberingGaps{}.Detect(ctx, input(t,
			tp("5"),
			withParent(tp("5.1.a"), "5"),
			withParent(tp("5.1.c"), "5"),
			tp("IV"),
		))
		assert.Empty(t, f.Anomalies)
	})

	t.Run("large gaps are reported in full and logged", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))
		upper := strconv.Itoa(LargeGap + 2)

		f := NumberingGaps{}.Detect(ctxlog.WithLogger(ctx, logger), input(t, tp("1"), tp(upper)))
		require.Len(t, f.Anomalies, LargeGap+1)
		assert.Equal(t, "2", f.Anomalies[0].Target)
		assert.Contains(t, logs.String(), "Large numbering gap")
		assert.Contains(t, logs.String(), "missing="+strconv.Itoa(LargeGap+1))
	})

	t.Run("small gaps are not logged as warnings", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))

		f := NumberingGaps{}.Detect(ctxlog.WithLogger(ctx, logger), input(t, tp("1"), tp("3")))
		require.Len(t, f.Anomalies, 1)
		assert.Empty(t, logs.String())
	})

	t.Run("contiguous and repeated numbers produce nothing", func(t *testing.T) {
		f := NumberingGaps{}.Detect(ctx, input(t, tp("1"), tp("2"), tp("2"), tp("3")))
		assert.Empty(t, f.Anomalies)
		assert.NotNil(t, f.Anomalies)
	})
}

func TestBrokenReferences(t *testing.T) {
	ctx := context.Background()

	t.Run("missing target", func(t *testing.T) {
		f := BrokenReferences{}.Detect(ctx, input(t, withRefs(tp("1"), "99.9")))
		require.Len(t, f.Anomalies, 1)
		a := f.Anomalies[0]
		assert.Equal(t, model.BrokenCrossReference, a.Type)
		assert.Equal(t, model.SeverityHigh, a.Severity)
		assert.Equal(t, "1 → 99.9", a.Location)
		assert.Equal(t, "99.9", a.Target)
		assert.Equal(t, []string{"1"}, a.AffectedTopics)
	})

	t.Run("cross then forward then backward, no deduplication", func(t *testing.T) {
		src := tp("1")
		src.CrossReferences = []string{"x"}
		src.ForwardReferences = []string{"y", "2"}
		src.BackwardReferences = []string{"x"}
		f := BrokenReferences{}.Detect(ctx, input(t, src, tp("2")))

		targets := make([]string, 0, len(f.Anomalies))
		for _, a := range f.Anomalies {
			targets = append(targets, a.Target)
		}
		assert.Equal(t, []string{"x", "y", "x"}, targets)
	})

	t.Run("valid references produce nothing", func(t *testing.T) {
		f := BrokenReferences{}.Detect(ctx, input(t, withRefs(tp("1"), "2"), tp("2")))
		assert.Empty(t, f.Anomalies)
	})
}

func TestCycles(t *testing.T) {
	ctx := context.Background()

	t.Run("a three-topic loop is one cycle", func(t *testing.T) {
		f := Cycles{}.Detect(ctx, input(t,
			withRefs(tp("A"), "B"),
			withRefs(tp("B"), "C"),
			withRefs(tp("C"), "A"),
		))
		require.Len(t, f.Anomalies, 1)
		a := f.Anomalies[0]
		assert.Equal(t, model.CircularReference, a.Type)
		assert.Equal(t, model.SeverityMedium, a.Severity)
		assert.Equal(t, "A → B → C → A", a.Location)
		assert.Equal(t, []string{"A", "B", "C"}, a.AffectedTopics)
		assert.False(t, f.Truncated)
	})

	t.Run("cycle starts at the earliest inserted topic", func(t *testing.T) {
		f := Cycles{}.Detect(ctx, input(t,
			withRefs(tp("C"), "A"),
			withRefs(tp("A"), "B"),
			withRefs(tp("B"), "C"),
		))
		require.Len(t, f.Anomalies, 1)
		assert.Equal(t, "C → A → B → C", f.Anomalies[0].Location)
	})

	t.Run("acyclic graph", func(t *testing.T) {
		f := Cycles{}.Detect(ctx, input(t,
			tp("1"),
			withParent(tp("1.1"), "1"),
			withRefs(withParent(tp("1.2"), "1"), "1.1"),
		))
		assert.Empty(t, f.Anomalies)
	})

	t.Run("self reference", func(t *testing.T) {
		f := Cycles{}.Detect(ctx, input(t, withRefs(tp("4"), "4")))
		require.Len(t, f.Anomalies, 1)
		assert.Equal(t, "4 → 4", f.Anomalies[0].Location)
	})

	t.Run("parent and back reference close a loop", func(t *testing.T) {
		f := Cycles{}.Detect(ctx, input(t, tp("1"), withRefs(withParent(tp("1.1"), "1"), "1")))
		require.Len(t, f.Anomalies, 1)
		assert.Equal(t, "1 → 1.1 → 1", f.Anomalies[0].Location)
	})

	t.Run("limits truncate", func(t *testing.T) {
		in := input(t,
			withRefs(tp("A"), "B", "C"),
			withRefs(tp("B"), "A", "C"),
			withRefs(tp("C"), "A", "B"),
		)
		f := Cycles{Limits: cycles.Limits{MaxCycles: 2}}.Detect(ctx, in)
		assert.Len(t, f.Anomalies, 2)
		assert.True(t, f.Truncated)

		f = Cycles{}.Detect(ctx, in)
		assert.Len(t, f.Anomalies, 5)
		assert.False(t, f.Truncated)
	})
}

func TestOrphans(t *testing.T) {
	ctx := context.Background()
	f := Orphans{}.Detect(ctx, input(t,
		tp("1"),
		withParent(tp("1.1"), "1"),
		tp("2"),
		withRefs(tp("3"), "missing"),
		tp("4"),
	))

	require.Len(t, f.Anomalies, 2)
	assert.Equal(t, "2", f.Anomalies[0].Location)
	assert.Equal(t, "4", f.Anomalies[1].Location)
	assert.Equal(t, model.SeverityLow, f.Anomalies[0].Severity)
	assert.Equal(t, "Topic 2 has no connections to other topics", f.Anomalies[0].Description)
}

func TestDuplicates(t *testing.T) {
	ctx := context.Background()

	t.Run("second occurrence is reported once", func(t *testing.T) {
		f := Duplicates{}.Detect(ctx, input(t, tp("6"), tp("7"), tp("7")))
		require.Len(t, f.Anomalies, 1)
		a := f.Anomalies[0]
		assert.Equal(t, model.DuplicateTopic, a.Type)
		assert.Equal(t, model.SeverityCritical, a.Severity)
		assert.Equal(t, "7", a.Location)
		assert.Contains(t, a.Description, "position 2")
		assert.Contains(t, a.Description, "first seen at position 1")
	})

	t.Run("each later occurrence is reported", func(t *testing.T) {
		f := Duplicates{}.Detect(ctx, input(t, tp("7"), tp("7"), tp("7")))
		assert.Len(t, f.Anomalies, 2)
	})
}

func TestDetectors_AreIdempotent(t *testing.T) {
	ctx := context.Background()
	in := input(t,
		tp("1"),
		withRefs(withParent(tp("1.1"), "1"), "1", "9"),
		withParent(tp("1.4"), "1"),
		tp("3"),
		tp("3"),
	)

	for _, d := range All(cycles.DefaultLimits) {
		t.Run(string(d.Kind()), func(t *testing.T) {
			first := d.Detect(ctx, in)
			second := d.Detect(ctx, in)
			assert.Equal(t, d.Kind(), first.Kind)
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("detector is not idempotent (-first +second):\n%s", diff)
			}
		})
	}
}

func TestAll_ReportOrder(t *testing.T) {
	detectors := All(cycles.Limits{})
	kinds := make([]Kind, len(detectors))
	for i, d := range detectors {
		kinds[i] = d.Kind()
	}
	assert.Equal(t, Order, kinds)
}
