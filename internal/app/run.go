package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/topicgraph/internal/config"
	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/specialistvlad/topicgraph/internal/engine"
	"github.com/specialistvlad/topicgraph/internal/mcpserver"
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/specialistvlad/topicgraph/internal/report"
	"github.com/specialistvlad/topicgraph/internal/sink"
	"github.com/specialistvlad/topicgraph/internal/topicmap"
)

// ErrSeverityThreshold is returned by Run when an anomaly at or above the
// configured fail-on severity was found. The reports are written regardless.
var ErrSeverityThreshold = errors.New("anomaly severity threshold reached")

// Run executes the main application logic based on the provided configuration.
func (app *App) Run(ctx context.Context) (*engine.Result, error) {
	app.ctx = ctxlog.WithLogger(ctx, app.Logger())
	logger := app.Logger()
	logger.Debug("App.Run method started.")

	app.healthCheckServer()
	defer app.closeHealthCheckServer()

	if app.config.MCP {
		return nil, mcpserver.Serve(app.ctx, mcpserver.New(app.engineOptions(nil)))
	}

	m, err := app.load()
	if err != nil {
		return nil, err
	}

	logger.Info("🚀 Analysing topic structure...")
	res, err := engine.Analyze(app.ctx, m.Topics, app.engineOptions(m.Relations))
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	logger = logger.With("run_id", res.RunID)

	if err := app.writeOutputs(m, res); err != nil {
		return res, err
	}
	if app.publisher != nil {
		payload := sink.NewPayload(res.RunID, app.config.InputPath, res.Anomalies, res.CyclesTruncated)
		if err := app.publisher.Write(app.ctx, payload); err != nil {
			return res, fmt.Errorf("failed to publish report: %w", err)
		}
		logger.Info("Report published.", "sink", app.publisher.Name())
	}

	app.logSummary(res)
	logger.Info("🏁 Analysis finished.")

	if app.config.FailOn != "" {
		highest := report.Highest(res.Anomalies)
		if highest != "" && highest.AtLeast(model.Severity(app.config.FailOn)) {
			return res, fmt.Errorf("%w: found %s anomalies (fail-on %s)", ErrSeverityThreshold, highest, app.config.FailOn)
		}
	}
	return res, nil
}

func (app *App) engineOptions(extra []model.Relationship) engine.Options {
	return engine.Options{
		Limits:         app.config.Cycles,
		Concurrent:     app.config.Concurrent,
		Resolver:       app.resolver,
		ExtraRelations: extra,
		Metrics:        app.metrics,
	}
}

// writeOutputs writes every enabled report format into the output directory.
func (app *App) writeOutputs(m *config.Model, res *engine.Result) error {
	logger := app.Logger()
	dir := app.config.OutputDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if app.config.wants(FormatTopicMap) {
		path := filepath.Join(dir, TopicMapFile)
		tm := topicmap.New(app.ctx, m.Topics, m.Relations, res.Graph, res.RunID, app.config.InputPath)
		if err := topicmap.WriteFile(path, tm); err != nil {
			return fmt.Errorf("failed to write topic map: %w", err)
		}
		logger.Info("Topic map saved.", "path", path)
	}

	payload := sink.NewPayload(res.RunID, app.config.InputPath, res.Anomalies, res.CyclesTruncated)
	var sinks []sink.Sink
	if app.config.wants(FormatCSV) {
		sinks = append(sinks, sink.CSVFile{Path: filepath.Join(dir, CSVReportFile)})
	}
	if app.config.wants(FormatJSON) {
		sinks = append(sinks, sink.JSONFile{Path: filepath.Join(dir, JSONReportFile)})
	}
	for _, s := range sinks {
		if err := s.Write(app.ctx, payload); err != nil {
			return fmt.Errorf("failed to write %s report: %w", s.Name(), err)
		}
		logger.Debug("Report written.", "sink", s.Name())
	}
	return nil
}

// logSummary logs the statistics and the anomaly counts by severity.
func (app *App) logSummary(res *engine.Result) {
	logger := app.Logger()
	stats := res.Statistics
	logger.Info("Graph statistics.",
		"topics", stats.Nodes,
		"relationships", stats.Edges,
		"orphans", stats.Orphans,
		"cycles", stats.Cycles,
		"average_degree", stats.AverageDegree,
	)
	logger.Info("Anomalies detected.",
		"total", res.Summary.Total,
		"critical", res.Summary.BySeverity[model.SeverityCritical],
		"high", res.Summary.BySeverity[model.SeverityHigh],
		"medium", res.Summary.BySeverity[model.SeverityMedium],
		"low", res.Summary.BySeverity[model.SeverityLow],
	)
	if res.CyclesTruncated {
		logger.Warn("Cycle enumeration was truncated; the report lists a subset of the circular references.")
	}
	for _, a := range res.Anomalies {
		logger.Debug("Anomaly.", "type", a.Type, "severity", a.Severity, "location", a.Location)
	}
}
