package model

import "slices"

// AnomalyType is the closed set of structural findings.
type AnomalyType string

const (
	NumberingGap         AnomalyType = "numbering_gap"
	BrokenCrossReference AnomalyType = "broken_cross_reference"
	CircularReference    AnomalyType = "circular_reference"
	OrphanContent        AnomalyType = "orphan_content"
	DuplicateTopic       AnomalyType = "duplicate_topic"
	AmbiguousBoundary    AnomalyType = "ambiguous_boundary"
)

// Anomaly is a single structural finding.
type Anomaly struct {
	Type        AnomalyType `json:"type"`
	Location    string      `json:"location"`
	Severity    Severity    `json:"severity"`
	Description string      `json:"description"`
	// Target is the synthesized id of a missing topic (numbering gaps) or the
	// unresolved reference target (broken references).
	Target               string   `json:"target,omitempty"`
	AffectedTopics       []string `json:"affected_topics"`
	ResolutionStrategies []string `json:"resolution_strategies"`
}

// NewAnomaly creates an anomaly with the fixed severity of its type.
func NewAnomaly(typ AnomalyType, location, description string, affected ...string) Anomaly {
	if affected == nil {
		affected = []string{}
	}
	return Anomaly{
		Type:                 typ,
		Location:             location,
		Severity:             SeverityFor(typ),
		Description:          description,
		AffectedTopics:       affected,
		ResolutionStrategies: []string{},
	}
}

// WithResolutions returns a copy of the anomaly carrying the given strategies.
func (a Anomaly) WithResolutions(strategies []string) Anomaly {
	a.AffectedTopics = slices.Clone(a.AffectedTopics)
	a.ResolutionStrategies = slices.Clone(strategies)
	if a.ResolutionStrategies == nil {
		a.ResolutionStrategies = []string{}
	}
	return a
}
