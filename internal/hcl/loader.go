package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/topicgraph/internal/builder"
	"github.com/specialistvlad/topicgraph/internal/config"
	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/specialistvlad/topicgraph/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL topic loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses every .hcl file found under paths and merges their blocks into
// one model, in file discovery order. Topics without an explicit parent are
// placed under their id prefix when that prefix is a topic.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := fsutil.ResolvePaths(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	m := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Topics {
			t, err := translateTopic(block)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			m.Topics = append(m.Topics, t)
		}
		for _, block := range root.Relations {
			rel, err := translateRelation(block)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			m.Relations = append(m.Relations, rel)
		}
		m.Sources = append(m.Sources, file)
	}

	builder.LinkHierarchy(m.Topics)

	logger.Debug("HCL loading complete.", "topics", len(m.Topics), "relations", len(m.Relations))
	return m, nil
}
