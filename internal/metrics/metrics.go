// Package metrics exposes Prometheus instruments for analysis runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/specialistvlad/topicgraph/internal/model"
)

const namespace = "topicgraph"

// Recorder holds the instruments of one registry. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	analyses        *prometheus.CounterVec
	anomalies       *prometheus.CounterVec
	duration        prometheus.Histogram
	nodes           prometheus.Gauge
	edges           prometheus.Gauge
	cyclesTruncated prometheus.Counter
}

// New creates and registers the instruments with reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		analyses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total number of analysis runs",
		}, []string{"status"}), // status: ok, invalid, empty
		anomalies: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "anomalies_total",
			Help:      "Total number of anomalies detected",
		}, []string{"type", "severity"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Duration of analysis runs in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}),
		nodes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Number of nodes in the most recent graph",
		}),
		edges: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Number of edges in the most recent graph",
		}),
		cyclesTruncated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycle_enumerations_truncated_total",
			Help:      "Number of runs whose cycle enumeration hit a limit",
		}),
	}
}

// ObserveRun records one analysis run.
func (r *Recorder) ObserveRun(status string, took time.Duration) {
	if r == nil {
		return
	}
	r.analyses.WithLabelValues(status).Inc()
	r.duration.Observe(took.Seconds())
}

// ObserveGraph records the size of the most recent graph.
func (r *Recorder) ObserveGraph(nodes, edges int, truncated bool) {
	if r == nil {
		return
	}
	r.nodes.Set(float64(nodes))
	r.edges.Set(float64(edges))
	if truncated {
		r.cyclesTruncated.Inc()
	}
}

// ObserveAnomalies counts anomalies by type and severity.
func (r *Recorder) ObserveAnomalies(anomalies []model.Anomaly) {
	if r == nil {
		return
	}
	for _, a := range anomalies {
		r.anomalies.WithLabelValues(string(a.Type), string(a.Severity)).Inc()
	}
}
