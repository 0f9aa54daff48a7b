package detect

import (
	"context"
	"fmt"

	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/specialistvlad/topicgraph/internal/model"
)

// Orphans reports known topics with no edges in either direction.
type Orphans struct{}

// Kind implements Detector.
func (Orphans) Kind() Kind { return KindOrphans }

// Detect implements Detector.
func (Orphans) Detect(ctx context.Context, in Input) Findings {
	anomalies := []model.Anomaly{}
	for _, n := range in.Graph.Nodes(ctx) {
		if inDeg, outDeg := in.Graph.Degree(ctx, n.ID); inDeg+outDeg > 0 {
			continue
		}
		anomalies = append(anomalies, model.NewAnomaly(
			model.OrphanContent,
			n.ID,
			fmt.Sprintf("Topic %s has no connections to other topics", n.ID),
			n.ID,
		))
	}
	ctxlog.FromContext(ctx).Debug("Orphan scan complete.", "orphans", len(anomalies))

	return Findings{Kind: KindOrphans, Anomalies: anomalies}
}
