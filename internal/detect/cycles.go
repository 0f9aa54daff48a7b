package detect

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/specialistvlad/topicgraph/internal/cycles"
	"github.com/specialistvlad/topicgraph/internal/model"
)

// Cycles reports every simple cycle of the graph over all edge types.
type Cycles struct {
	Limits cycles.Limits
}

// Kind implements Detector.
func (Cycles) Kind() Kind { return KindCycles }

// Detect implements Detector.
func (d Cycles) Detect(ctx context.Context, in Input) Findings {
	logger := ctxlog.FromContext(ctx)
	snap := in.Graph.Snapshot(ctx)
	result := cycles.Enumerate(snap, d.Limits)

	anomalies := make([]model.Anomaly, 0, len(result.Cycles))
	for _, ids := range result.IDs(snap) {
		path := strings.Join(append(ids[:len(ids):len(ids)], ids[0]), " → ")
		anomalies = append(anomalies, model.NewAnomaly(
			model.CircularReference,
			path,
			fmt.Sprintf("Circular reference detected involving %d topics", len(ids)),
			ids...,
		))
	}

	if result.Truncated {
		logger.Warn("Cycle enumeration truncated.",
			"reported", len(anomalies), "max_length", d.Limits.MaxLength, "max_cycles", d.Limits.MaxCycles)
	} else {
		logger.Debug("Cycle enumeration complete.", "cycles", len(anomalies))
	}

	return Findings{Kind: KindCycles, Anomalies: anomalies, Truncated: result.Truncated}
}
