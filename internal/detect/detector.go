package detect

import (
	"context"

	"github.com/specialistvlad/topicgraph/internal/cycles"
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/specialistvlad/topicgraph/internal/topologystore"
)

// Kind identifies a detector. Reports are assembled by kind, not by the order
// in which detectors finish.
type Kind string

const (
	KindDuplicates       Kind = "duplicates"
	KindNumberingGaps    Kind = "numbering_gaps"
	KindBrokenReferences Kind = "broken_references"
	KindCycles           Kind = "cycles"
	KindOrphans          Kind = "orphans"
)

// Order is the fixed report order of detector kinds.
var Order = []Kind{KindDuplicates, KindNumberingGaps, KindBrokenReferences, KindCycles, KindOrphans}

// Input is what every detector reads.
type Input struct {
	Topics []*model.Topic
	Graph  topologystore.Reader
}

// Findings is the output of one detector run.
type Findings struct {
	Kind      Kind
	Anomalies []model.Anomaly
	// Truncated is set when the detector stopped early and some anomalies may
	// be missing. Only cycle enumeration can truncate.
	Truncated bool
}

// Detector finds one class of structural anomaly.
type Detector interface {
	Kind() Kind
	Detect(ctx context.Context, in Input) Findings
}

// All returns one detector of every kind, in report order.
func All(limits cycles.Limits) []Detector {
	return []Detector{
		Duplicates{},
		NumberingGaps{},
		BrokenReferences{},
		Cycles{Limits: limits},
		Orphans{},
	}
}

// knownIDs returns the set of topic ids in the list.
func knownIDs(topics []*model.Topic) map[string]struct{} {
	ids := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		ids[t.ID] = struct{}{}
	}
	return ids
}
