package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/topicgraph/internal/builder"
	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/specialistvlad/topicgraph/internal/cycles"
	"github.com/specialistvlad/topicgraph/internal/detect"
	"github.com/specialistvlad/topicgraph/internal/inmemorytopology"
	"github.com/specialistvlad/topicgraph/internal/metrics"
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/specialistvlad/topicgraph/internal/report"
	"github.com/specialistvlad/topicgraph/internal/resolve"
	"github.com/specialistvlad/topicgraph/internal/topologystore"
	"golang.org/x/sync/errgroup"
)

// ErrNoTopics is returned when there is nothing to analyse. It distinguishes
// "analysis could not run" from "no anomalies found".
var ErrNoTopics = errors.New("no topics to analyse")

// Options control a single analysis run. The zero value is usable.
type Options struct {
	// Limits bound cycle enumeration. The zero value selects cycles.DefaultLimits.
	Limits cycles.Limits
	// Concurrent runs the detectors in parallel goroutines.
	Concurrent bool
	// Resolver, when set, attaches strategies to high and critical anomalies.
	Resolver resolve.Resolver
	// ExtraRelations are added after the topic-derived edges.
	ExtraRelations []model.Relationship
	// Detectors overrides the default detector set.
	Detectors []detect.Detector
	Metrics   *metrics.Recorder
}

// Result is the outcome of one analysis run.
type Result struct {
	RunID           string
	Anomalies       []model.Anomaly
	CyclesTruncated bool
	Summary         report.Summary
	Statistics      topologystore.Statistics
	Hierarchy       []topologystore.HierarchyEntry
	Graph           topologystore.Reader
}

// Analyze builds the graph for topics and runs every detector over it.
func Analyze(ctx context.Context, topics []*model.Topic, opts Options) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = ctxlog.With(ctx, "run_id", runID)
	logger := ctxlog.FromContext(ctx)

	if len(topics) == 0 {
		opts.Metrics.ObserveRun("empty", time.Since(start))
		return nil, ErrNoTopics
	}
	if opts.Limits == (cycles.Limits{}) {
		opts.Limits = cycles.DefaultLimits
	}

	logger.Debug("Analysis started.", "topics", len(topics))
	store := inmemorytopology.New(inmemorytopology.WithCycleLimits(opts.Limits))
	if err := builder.Build(ctx, store, topics, opts.ExtraRelations...); err != nil {
		opts.Metrics.ObserveRun("invalid", time.Since(start))
		return nil, fmt.Errorf("failed to build topic graph: %w", err)
	}

	detectors := opts.Detectors
	if detectors == nil {
		detectors = detect.All(opts.Limits)
	}
	findings, err := runDetectors(ctx, detect.Input{Topics: topics, Graph: store}, detectors, opts.Concurrent)
	if err != nil {
		return nil, err
	}
	rep := report.Assemble(findings)

	if opts.Resolver != nil {
		attachStrategies(ctx, opts.Resolver, rep.Anomalies)
	}

	res := &Result{
		RunID:           runID,
		Anomalies:       rep.Anomalies,
		CyclesTruncated: rep.CyclesTruncated,
		Summary:         report.Summarize(rep.Anomalies),
		Statistics:      store.Statistics(ctx),
		Hierarchy:       store.Hierarchy(ctx),
		Graph:           store,
	}

	opts.Metrics.ObserveGraph(res.Statistics.Nodes, res.Statistics.Edges, res.CyclesTruncated)
	opts.Metrics.ObserveAnomalies(res.Anomalies)
	opts.Metrics.ObserveRun("ok", time.Since(start))
	logger.Debug("Analysis finished.", "anomalies", len(res.Anomalies), "duration", time.Since(start))
	return res, nil
}

// runDetectors runs every detector and returns their findings in detector
// order. In concurrent mode each goroutine writes only its own slot.
func runDetectors(ctx context.Context, in detect.Input, detectors []detect.Detector, concurrent bool) ([]detect.Findings, error) {
	findings := make([]detect.Findings, len(detectors))
	if !concurrent {
		for i, d := range detectors {
			findings[i] = d.Detect(ctx, in)
		}
		return findings, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, d := range detectors {
		g.Go(func() error {
			findings[i] = d.Detect(gctx, in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("detector failed: %w", err)
	}
	return findings, nil
}

// attachStrategies replaces eligible anomalies in place with copies carrying
// their resolution strategies.
func attachStrategies(ctx context.Context, r resolve.Resolver, anomalies []model.Anomaly) {
	logger := ctxlog.FromContext(ctx)
	for i, a := range anomalies {
		if !resolve.Eligible(a) {
			continue
		}
		strategies, err := r.Resolve(ctx, a)
		if err != nil {
			logger.Warn("Failed to generate resolution strategies.", "type", a.Type, "location", a.Location, "error", err)
			strategies = []string{resolve.ManualReview}
		}
		if len(strategies) > resolve.MaxStrategies {
			strategies = strategies[:resolve.MaxStrategies]
		}
		anomalies[i] = a.WithResolutions(strategies)
	}
}
