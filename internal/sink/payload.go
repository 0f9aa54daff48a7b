package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/specialistvlad/topicgraph/internal/report"
)

// Payload is the report shared by every sink.
type Payload struct {
	RunID           string          `json:"run_id"`
	Source          string          `json:"source,omitempty"`
	CyclesTruncated bool            `json:"cycles_truncated"`
	Summary         report.Summary  `json:"summary"`
	Anomalies       []model.Anomaly `json:"anomalies"`
}

// NewPayload creates a payload and computes its summary.
func NewPayload(runID, source string, anomalies []model.Anomaly, cyclesTruncated bool) *Payload {
	if anomalies == nil {
		anomalies = []model.Anomaly{}
	}
	return &Payload{
		RunID:           runID,
		Source:          source,
		CyclesTruncated: cyclesTruncated,
		Summary:         report.Summarize(anomalies),
		Anomalies:       anomalies,
	}
}

// Sink delivers a payload somewhere.
type Sink interface {
	Name() string
	Write(ctx context.Context, p *Payload) error
}

// WriteJSON encodes p as indented JSON.
func WriteJSON(w io.Writer, p *Payload) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// JSONFile writes the JSON report to Path.
type JSONFile struct {
	Path string
}

// Name implements Sink.
func (s JSONFile) Name() string { return "json" }

// Write implements Sink.
func (s JSONFile) Write(ctx context.Context, p *Payload) error {
	return writeFile(s.Path, func(w io.Writer) error { return WriteJSON(w, p) })
}

// asMap converts the payload into the generic shape sent over socket.io.
func (p *Payload) asMap() (map[string]any, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
