package model

import "fmt"

// Severity is the impact class of an anomaly.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// severityByType is fixed so that reports from different documents stay comparable.
var severityByType = map[AnomalyType]Severity{
	DuplicateTopic:       SeverityCritical,
	NumberingGap:         SeverityHigh,
	BrokenCrossReference: SeverityHigh,
	CircularReference:    SeverityMedium,
	OrphanContent:        SeverityLow,
	AmbiguousBoundary:    SeverityMedium,
}

// SeverityFor returns the severity assigned to an anomaly type.
func SeverityFor(t AnomalyType) Severity {
	if s, ok := severityByType[t]; ok {
		return s
	}
	return SeverityMedium
}

// Rank orders severities from low (1) to critical (4); unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// AtLeast reports whether s is as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// ParseSeverity validates a severity name.
func ParseSeverity(raw string) (Severity, error) {
	s := Severity(raw)
	if s.Rank() == 0 {
		return "", fmt.Errorf("unknown severity %q: must be 'low', 'medium', 'high' or 'critical'", raw)
	}
	return s, nil
}
