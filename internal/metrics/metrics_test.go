package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.ObserveRun("ok", 10*time.Millisecond)
	r.ObserveGraph(5, 7, true)
	r.ObserveAnomalies([]model.Anomaly{
		model.NewAnomaly(model.NumberingGap, "a", ""),
		model.NewAnomaly(model.NumberingGap, "b", ""),
		model.NewAnomaly(model.OrphanContent, "c", ""),
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.analyses.WithLabelValues("ok")))
	assert.Equal(t, 5.0, testutil.ToFloat64(r.nodes))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.edges))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cyclesTruncated))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.anomalies.WithLabelValues("numbering_gap", "high")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.anomalies.WithLabelValues("orphan_content", "low")))

	count, err := testutil.GatherAndCount(reg, "topicgraph_analysis_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveRun("ok", time.Second)
		r.ObserveGraph(1, 1, false)
		r.ObserveAnomalies([]model.Anomaly{model.NewAnomaly(model.OrphanContent, "x", "")})
	})
}
