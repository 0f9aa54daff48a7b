package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/topicgraph/internal/model"
)

// CSVHeader is the first row of the ambiguity report.
var CSVHeader = []string{"Type", "Location", "Severity", "Description", "Affected Topics", "Resolution Strategies"}

// WriteCSV writes one row per anomaly, in report order.
func WriteCSV(w io.Writer, anomalies []model.Anomaly) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, a := range anomalies {
		row := []string{
			string(a.Type),
			a.Location,
			string(a.Severity),
			a.Description,
			strings.Join(a.AffectedTopics, "; "),
			strings.Join(a.ResolutionStrategies, " | "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", a.Location, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVFile writes the ambiguity report to Path.
type CSVFile struct {
	Path string
}

// Name implements Sink.
func (s CSVFile) Name() string { return "csv" }

// Write implements Sink.
func (s CSVFile) Write(ctx context.Context, p *Payload) error {
	return writeFile(s.Path, func(w io.Writer) error { return WriteCSV(w, p.Anomalies) })
}
