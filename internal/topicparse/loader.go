package topicparse

import (
	"context"
	"fmt"

	"github.com/specialistvlad/topicgraph/internal/config"
	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/specialistvlad/topicgraph/internal/docload"
)

// Loader implements config.Loader for document files: it extracts text with
// a docload.Loader and parses it into topics.
type Loader struct {
	Documents docload.Loader
	Parser    *Parser
}

// NewLoader creates a loader for every format docload supports.
func NewLoader() *Loader {
	return &Loader{Documents: docload.NewAutoLoader(), Parser: New()}
}

var _ config.Loader = (*Loader)(nil)

// Load parses each document separately and concatenates the topics in path
// order. Hierarchy and references are resolved per document.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no document paths given")
	}
	logger := ctxlog.FromContext(ctx)
	m := &config.Model{}
	for _, path := range paths {
		doc, err := l.Documents.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		topics := l.Parser.Parse(ctx, doc.Text)
		if len(topics) == 0 {
			logger.Warn("No topics found in document.", "path", path)
		}
		m.Merge(&config.Model{Topics: topics, Sources: []string{path}})
	}
	return m, nil
}
