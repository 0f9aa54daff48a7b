package detect

import (
	"context"
	"fmt"

	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/specialistvlad/topicgraph/internal/model"
)

// BrokenReferences reports every reference whose target is not a topic.
// Repeated references to the same missing id are reported each time.
type BrokenReferences struct{}

// Kind implements Detector.
func (BrokenReferences) Kind() Kind { return KindBrokenReferences }

// Detect implements Detector.
func (BrokenReferences) Detect(ctx context.Context, in Input) Findings {
	logger := ctxlog.FromContext(ctx)
	known := knownIDs(in.Topics)
	anomalies := []model.Anomaly{}

	for _, t := range in.Topics {
		for _, ref := range t.References() {
			if _, ok := known[ref]; ok {
				continue
			}
			a := model.NewAnomaly(
				model.BrokenCrossReference,
				fmt.Sprintf("%s → %s", t.ID, ref),
				fmt.Sprintf("Topic %s references %s, which does not exist", t.ID, ref),
				t.ID,
			)
			a.Target = ref
			anomalies = append(anomalies, a)
			logger.Debug("Broken reference.", "source", t.ID, "target", ref)
		}
	}

	return Findings{Kind: KindBrokenReferences, Anomalies: anomalies}
}
