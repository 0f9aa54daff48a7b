// Package report assembles detector findings into the final anomaly list.
package report

import (
	"github.com/specialistvlad/topicgraph/internal/detect"
	"github.com/specialistvlad/topicgraph/internal/model"
)

// Report is the ordered outcome of one detection pass.
type Report struct {
	Anomalies       []model.Anomaly `json:"anomalies"`
	CyclesTruncated bool            `json:"cycles_truncated"`
}

// Assemble concatenates findings in the fixed detector order. Anomalies are
// never deduplicated across kinds. Findings of an unknown kind are appended
// after the known ones, in the order given.
func Assemble(findings []detect.Findings) Report {
	byKind := make(map[detect.Kind][]detect.Findings, len(findings))
	for _, f := range findings {
		byKind[f.Kind] = append(byKind[f.Kind], f)
	}

	r := Report{Anomalies: []model.Anomaly{}}
	add := func(f detect.Findings) {
		r.Anomalies = append(r.Anomalies, f.Anomalies...)
		r.CyclesTruncated = r.CyclesTruncated || f.Truncated
	}
	known := make(map[detect.Kind]bool, len(detect.Order))
	for _, kind := range detect.Order {
		known[kind] = true
		for _, f := range byKind[kind] {
			add(f)
		}
	}
	for _, f := range findings {
		if !known[f.Kind] {
			add(f)
		}
	}
	return r
}

// Summary counts anomalies by type and by severity.
type Summary struct {
	Total      int                       `json:"total"`
	ByType     map[model.AnomalyType]int `json:"by_type"`
	BySeverity map[model.Severity]int    `json:"by_severity"`
}

// Summarize counts the anomalies.
func Summarize(anomalies []model.Anomaly) Summary {
	s := Summary{
		Total:      len(anomalies),
		ByType:     make(map[model.AnomalyType]int),
		BySeverity: make(map[model.Severity]int),
	}
	for _, a := range anomalies {
		s.ByType[a.Type]++
		s.BySeverity[a.Severity]++
	}
	return s
}

// Highest returns the most severe severity present, or "" for no anomalies.
func Highest(anomalies []model.Anomaly) model.Severity {
	var top model.Severity
	for _, a := range anomalies {
		if a.Severity.Rank() > top.Rank() {
			top = a.Severity
		}
	}
	return top
}
