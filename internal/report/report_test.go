package report

import (
	"testing"

	"github.com/specialistvlad/topicgraph/internal/detect"
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anomaly(typ model.AnomalyType, loc string) model.Anomaly {
	return model.NewAnomaly(typ, loc, "test", loc)
}

func TestAssemble_FixedOrder(t *testing.T) {
	// Deliberately out of order, as concurrent detectors would finish.
	findings := []detect.Findings{
		{Kind: detect.KindOrphans, Anomalies: []model.Anomaly{anomaly(model.OrphanContent, "o")}},
		{Kind: detect.KindCycles, Anomalies: []model.Anomaly{anomaly(model.CircularReference, "c")}, Truncated: true},
		{Kind: detect.KindBrokenReferences, Anomalies: []model.Anomaly{anomaly(model.BrokenCrossReference, "b")}},
		{Kind: detect.KindNumberingGaps, Anomalies: []model.Anomaly{anomaly(model.NumberingGap, "g1"), anomaly(model.NumberingGap, "g2")}},
		{Kind: detect.KindDuplicates, Anomalies: []model.Anomaly{anomaly(model.DuplicateTopic, "d")}},
	}

	r := Assemble(findings)
	locations := make([]string, len(r.Anomalies))
	for i, a := range r.Anomalies {
		locations[i] = a.Location
	}
	assert.Equal(t, []string{"d", "g1", "g2", "b", "c", "o"}, locations)
	assert.True(t, r.CyclesTruncated)
}

func TestAssemble_Empty(t *testing.T) {
	r := Assemble(nil)
	require.NotNil(t, r.Anomalies)
	assert.Empty(t, r.Anomalies)
	assert.False(t, r.CyclesTruncated)
}

func TestAssemble_UnknownKindGoesLast(t *testing.T) {
	r := Assemble([]detect.Findings{
		{Kind: "custom", Anomalies: []model.Anomaly{anomaly(model.AmbiguousBoundary, "x")}},
		{Kind: detect.KindOrphans, Anomalies: []model.Anomaly{anomaly(model.OrphanContent, "o")}},
	})
	require.Len(t, r.Anomalies, 2)
	assert.Equal(t, "o", r.Anomalies[0].Location)
	assert.Equal(t, "x", r.Anomalies[1].Location)
}

func TestSummarize(t *testing.T) {
	anomalies := []model.Anomaly{
		anomaly(model.DuplicateTopic, "1"),
		anomaly(model.NumberingGap, "2"),
		anomaly(model.BrokenCrossReference, "3"),
		anomaly(model.OrphanContent, "4"),
	}

	s := Summarize(anomalies)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.ByType[model.NumberingGap])
	assert.Equal(t, 2, s.BySeverity[model.SeverityHigh])
	assert.Equal(t, 1, s.BySeverity[model.SeverityCritical])
	assert.Equal(t, model.SeverityCritical, Highest(anomalies))
	assert.Equal(t, model.Severity(""), Highest(nil))
}
