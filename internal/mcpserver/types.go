package mcpserver

import (
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/specialistvlad/topicgraph/internal/report"
	"github.com/specialistvlad/topicgraph/internal/topologystore"
)

// --- Tool Arguments ---

type TopicArg struct {
	ID                 string   `json:"id" jsonschema:"Topic identifier such as 18.3 or 5.1.a"`
	Title              string   `json:"title,omitempty"`
	Content            string   `json:"content,omitempty"`
	Parent             string   `json:"parent,omitempty" jsonschema:"Identifier of the parent topic"`
	Children           []string `json:"children,omitempty"`
	CrossReferences    []string `json:"cross_references,omitempty"`
	ForwardReferences  []string `json:"forward_references,omitempty"`
	BackwardReferences []string `json:"backward_references,omitempty"`
	Confidence         *float64 `json:"confidence,omitempty" jsonschema:"Detection confidence between 0 and 1. Defaults to 0.95"`
}

type TopicsArgs struct {
	Topics []TopicArg `json:"topics,omitempty" jsonschema:"Topics in document order"`
	Text   string     `json:"text,omitempty" jsonschema:"Raw document text, parsed into topics when no topics are given"`
}

type AnalyzeArgs struct {
	Topics   []TopicArg `json:"topics,omitempty" jsonschema:"Topics in document order"`
	Text     string     `json:"text,omitempty" jsonschema:"Raw document text, parsed into topics when no topics are given"`
	Resolve  bool       `json:"resolve,omitempty" jsonschema:"Attach resolution strategies to high and critical anomalies"`
	Sampling bool       `json:"sampling,omitempty" jsonschema:"Ask the client's model for the strategies through sampling. Falls back to the built-in playbook when the client cannot sample"`
}

// --- Tool Results ---

type AnalyzeResult struct {
	RunID           string                   `json:"run_id"`
	CyclesTruncated bool                     `json:"cycles_truncated"`
	Summary         report.Summary           `json:"summary"`
	Statistics      topologystore.Statistics `json:"statistics"`
	Anomalies       []model.Anomaly          `json:"anomalies"`
}

type HierarchyResult struct {
	Hierarchy  []topologystore.HierarchyEntry `json:"hierarchy"`
	Statistics topologystore.Statistics       `json:"statistics"`
}
