package detect

import (
	"context"
	"fmt"

	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/specialistvlad/topicgraph/internal/model"
)

// Duplicates reports every repeated occurrence of a topic id in the raw list.
// The graph cannot see duplicates because its nodes are keyed by id.
type Duplicates struct{}

// Kind implements Detector.
func (Duplicates) Kind() Kind { return KindDuplicates }

// Detect implements Detector.
func (Duplicates) Detect(ctx context.Context, in Input) Findings {
	logger := ctxlog.FromContext(ctx)
	firstSeen := make(map[string]int, len(in.Topics))
	anomalies := []model.Anomaly{}

	for i, t := range in.Topics {
		first, seen := firstSeen[t.ID]
		if !seen {
			firstSeen[t.ID] = i
			continue
		}
		desc := fmt.Sprintf("Duplicate topic ID: %s (position %d, first seen at position %d)", t.ID, i, first)
		anomalies = append(anomalies, model.NewAnomaly(model.DuplicateTopic, t.ID, desc, t.ID))
		logger.Debug("Duplicate topic ID.", "id", t.ID, "position", i, "first_position", first)
	}

	return Findings{Kind: KindDuplicates, Anomalies: anomalies}
}
