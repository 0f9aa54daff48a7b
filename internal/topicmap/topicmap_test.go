package topicmap

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/topicgraph/internal/builder"
	"github.com/specialistvlad/topicgraph/internal/inmemorytopology"
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/specialistvlad/topicgraph/internal/topologystore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMap(t *testing.T) *Map {
	t.Helper()
	ctx := context.Background()
	topics := []*model.Topic{
		{ID: "1", Title: "Intro <draft>", Confidence: 0.95},
		{ID: "1.1", Title: "Scope", Parent: "1", CrossReferences: []string{"2"}, Confidence: 0.7,
			Position: &model.Position{Start: 3, End: 8}},
	}
	store := inmemorytopology.New()
	require.NoError(t, builder.Build(ctx, store, topics))
	return New(ctx, topics, nil, store, "run-1", "doc.txt")
}

func TestNew(t *testing.T) {
	m := sampleMap(t)
	assert.Equal(t, Metadata{TotalTopics: 2, Version: Version, RunID: "run-1", Source: "doc.txt"}, m.Metadata)
	assert.Equal(t, []topologystore.HierarchyEntry{{Parent: "1", Children: []string{"1.1"}}}, m.Hierarchy)
	assert.Equal(t, 2, m.Statistics.Edges)
}

func TestWriteRead(t *testing.T) {
	m := sampleMap(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m))
	assert.Contains(t, buf.String(), `"total_topics": 2`)
	assert.Contains(t, buf.String(), "Intro <draft>", "HTML is not escaped")

	back, err := Read(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(m, back); diff != "" {
		t.Errorf("topic map changed after a write/read cycle (-want +got):\n%s", diff)
	}
}

func TestRead_Version(t *testing.T) {
	_, err := Read(strings.NewReader(`{"metadata":{"version":"2.0"},"topics":[]}`))
	assert.ErrorContains(t, err, "unsupported topic map version")

	_, err = Read(strings.NewReader(`{"metadata":{"version":"1.3"},"topics":[]}`))
	assert.NoError(t, err)

	_, err = Read(strings.NewReader(`{`))
	assert.ErrorContains(t, err, "failed to decode")
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topic_map.json")
	require.NoError(t, WriteFile(path, sampleMap(t)))

	m, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, m.Topics, 2)
	assert.Equal(t, "1", m.Topics[1].Parent)
	assert.Equal(t, []string{path}, m.Sources)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("[]"), 0o644))
	_, err = NewLoader().Load(context.Background(), bad)
	assert.Error(t, err)
}
