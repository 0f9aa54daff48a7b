package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/specialistvlad/topicgraph/internal/builder"
	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/specialistvlad/topicgraph/internal/cycles"
	"github.com/specialistvlad/topicgraph/internal/engine"
	"github.com/specialistvlad/topicgraph/internal/inmemorytopology"
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/specialistvlad/topicgraph/internal/resolve"
	"github.com/specialistvlad/topicgraph/internal/topicparse"
)

// Service holds the tool handlers.
type Service struct {
	opts   engine.Options
	parser *topicparse.Parser
}

func NewService(opts engine.Options) *Service {
	return &Service{
		opts:   opts,
		parser: topicparse.New(),
	}
}

// --- Tool Handlers ---

func (s *Service) AnalyzeTopics(ctx context.Context, req *mcp.CallToolRequest, args AnalyzeArgs) (*mcp.CallToolResult, AnalyzeResult, error) {
	topics, err := s.topics(ctx, args.Topics, args.Text)
	if err != nil {
		return nil, AnalyzeResult{}, err
	}

	opts := s.opts
	if args.Resolve {
		opts.Resolver = s.resolver(ctx, req, args.Sampling)
	}
	res, err := engine.Analyze(ctx, topics, opts)
	if err != nil {
		return nil, AnalyzeResult{}, err
	}

	return nil, AnalyzeResult{
		RunID:           res.RunID,
		CyclesTruncated: res.CyclesTruncated,
		Summary:         res.Summary,
		Statistics:      res.Statistics,
		Anomalies:       res.Anomalies,
	}, nil
}

func (s *Service) TopicHierarchy(ctx context.Context, req *mcp.CallToolRequest, args TopicsArgs) (*mcp.CallToolResult, HierarchyResult, error) {
	topics, err := s.topics(ctx, args.Topics, args.Text)
	if err != nil {
		return nil, HierarchyResult{}, err
	}

	var opts []inmemorytopology.Option
	if s.opts.Limits != (cycles.Limits{}) {
		opts = append(opts, inmemorytopology.WithCycleLimits(s.opts.Limits))
	}
	store := inmemorytopology.New(opts...)
	if err := builder.Build(ctx, store, topics); err != nil {
		return nil, HierarchyResult{}, err
	}
	return nil, HierarchyResult{
		Hierarchy:  store.Hierarchy(ctx),
		Statistics: store.Statistics(ctx),
	}, nil
}

// resolver picks the strategy source for one call. Sampling wins when asked
// for and supported; otherwise the configured resolver, then the playbook.
func (s *Service) resolver(ctx context.Context, req *mcp.CallToolRequest, sampling bool) resolve.Resolver {
	if sampling {
		if req != nil && supportsSampling(req.Session) {
			return resolve.FromCompleter(samplingCompleter(req.Session))
		}
		ctxlog.FromContext(ctx).Warn("Client does not support sampling, using the built-in playbook.")
	}
	if s.opts.Resolver != nil {
		return s.opts.Resolver
	}
	return resolve.Playbook{}
}

// topics converts the tool arguments, parsing the raw text when no explicit
// topics were given.
func (s *Service) topics(ctx context.Context, args []TopicArg, text string) ([]*model.Topic, error) {
	if len(args) == 0 {
		if text == "" {
			return nil, errors.New("either topics or text is required")
		}
		topics := s.parser.Parse(ctx, text)
		if len(topics) == 0 {
			return nil, fmt.Errorf("no topics found in text: %w", engine.ErrNoTopics)
		}
		return topics, nil
	}

	out := make([]*model.Topic, 0, len(args))
	for _, a := range args {
		confidence := model.DefaultConfidence
		if a.Confidence != nil {
			confidence = *a.Confidence
		}
		out = append(out, &model.Topic{
			ID:                 a.ID,
			Title:              a.Title,
			Content:            a.Content,
			Parent:             a.Parent,
			Children:           slices.Clone(a.Children),
			CrossReferences:    slices.Clone(a.CrossReferences),
			ForwardReferences:  slices.Clone(a.ForwardReferences),
			BackwardReferences: slices.Clone(a.BackwardReferences),
			Confidence:         confidence,
		})
	}
	return out, nil
}
