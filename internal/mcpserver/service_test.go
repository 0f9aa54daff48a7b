package mcpserver

import (
	"context"
	"testing"

	"github.com/specialistvlad/topicgraph/internal/engine"
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/specialistvlad/topicgraph/internal/topologystore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionArgs() []TopicArg {
	return []TopicArg{
		{ID: "1", Title: "Intro"},
		{ID: "1.1", Title: "Scope", Parent: "1"},
		{ID: "1.3", Title: "Terms", Parent: "1"},
	}
}

func TestNew(t *testing.T) {
	require.NotPanics(t, func() {
		assert.NotNil(t, New(engine.Options{}))
	})
}

func TestAnalyzeTopics(t *testing.T) {
	svc := NewService(engine.Options{})

	_, res, err := svc.AnalyzeTopics(context.Background(), nil, AnalyzeArgs{Topics: sectionArgs(), Resolve: true})
	require.NoError(t, err)

	require.Len(t, res.Anomalies, 1)
	gap := res.Anomalies[0]
	assert.Equal(t, model.NumberingGap, gap.Type)
	assert.Equal(t, "1.2", gap.Target)
	assert.NotEmpty(t, gap.ResolutionStrategies)
	assert.LessOrEqual(t, len(gap.ResolutionStrategies), 5)
	assert.Equal(t, 3, res.Statistics.Nodes)
	assert.Equal(t, 1, res.Summary.Total)
	assert.NotEmpty(t, res.RunID)
}

func TestAnalyzeTopics_Text(t *testing.T) {
	svc := NewService(engine.Options{})
	text := "1 Introduction\nThis document introduces the whole system.\n3 Results\nThe results of the experiment are described here.\n"

	_, res, err := svc.AnalyzeTopics(context.Background(), nil, AnalyzeArgs{Text: text})
	require.NoError(t, err)

	var targets []string
	for _, a := range res.Anomalies {
		if a.Type == model.NumberingGap {
			targets = append(targets, a.Target)
		}
	}
	assert.Equal(t, []string{"2"}, targets)
}

func TestAnalyzeTopics_NoInput(t *testing.T) {
	svc := NewService(engine.Options{})

	_, _, err := svc.AnalyzeTopics(context.Background(), nil, AnalyzeArgs{})
	assert.Error(t, err)

	_, _, err = svc.AnalyzeTopics(context.Background(), nil, AnalyzeArgs{Text: "no headers here"})
	assert.ErrorIs(t, err, engine.ErrNoTopics)
}

func TestTopicHierarchy(t *testing.T) {
	svc := NewService(engine.Options{})

	_, res, err := svc.TopicHierarchy(context.Background(), nil, TopicsArgs{Topics: sectionArgs()})
	require.NoError(t, err)

	assert.Equal(t, []topologystore.HierarchyEntry{{Parent: "1", Children: []string{"1.1", "1.3"}}}, res.Hierarchy)
	assert.Equal(t, 2, res.Statistics.Edges)
}

func TestTopics_DefaultConfidence(t *testing.T) {
	low := 0.4
	svc := NewService(engine.Options{})
	topics, err := svc.topics(context.Background(), []TopicArg{{ID: "1"}, {ID: "2", Confidence: &low}}, "")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfidence, topics[0].Confidence)
	assert.Equal(t, 0.4, topics[1].Confidence)
}
