// Package topicmap encodes the analysed topic structure as a JSON document and
// reads it back, so a saved topic map can be re-analysed without the source
// document.
package topicmap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/specialistvlad/topicgraph/internal/config"
	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/specialistvlad/topicgraph/internal/topologystore"
)

// Version is the format version written by this package. Maps with the same
// major version can be read.
const Version = "1.0"

// Metadata describes a topic map.
type Metadata struct {
	TotalTopics int    `json:"total_topics"`
	Version     string `json:"version"`
	RunID       string `json:"run_id,omitempty"`
	Source      string `json:"source,omitempty"`
}

// Map is the serialized form of an analysed document.
type Map struct {
	Metadata   Metadata                       `json:"metadata"`
	Topics     []*model.Topic                 `json:"topics"`
	Relations  []model.Relationship           `json:"relations,omitempty"`
	Hierarchy  []topologystore.HierarchyEntry `json:"hierarchy"`
	Statistics topologystore.Statistics       `json:"statistics"`
}

// New builds a map from the topics and the graph that was built from them.
func New(ctx context.Context, topics []*model.Topic, relations []model.Relationship, g topologystore.Reader, runID, source string) *Map {
	return &Map{
		Metadata: Metadata{
			TotalTopics: len(topics),
			Version:     Version,
			RunID:       runID,
			Source:      source,
		},
		Topics:     topics,
		Relations:  relations,
		Hierarchy:  g.Hierarchy(ctx),
		Statistics: g.Statistics(ctx),
	}
}

// Write encodes m as indented JSON.
func Write(w io.Writer, m *Map) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode topic map: %w", err)
	}
	return nil
}

// WriteFile writes m to path.
func WriteFile(path string, m *Map) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a topic map and checks its version.
func Read(r io.Reader) (*Map, error) {
	var m Map
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode topic map: %w", err)
	}
	major, _, _ := strings.Cut(m.Metadata.Version, ".")
	want, _, _ := strings.Cut(Version, ".")
	if major != want {
		return nil, fmt.Errorf("unsupported topic map version %q (want %s.x)", m.Metadata.Version, want)
	}
	return &m, nil
}

// Loader implements config.Loader for saved topic maps.
type Loader struct{}

// NewLoader creates a topic map loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load reads every map and concatenates their topics and relations.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	out := &config.Model{}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		m, err := Read(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("Topic map loaded.", "path", path, "topics", len(m.Topics), "run_id", m.Metadata.RunID)
		out.Merge(&config.Model{Topics: m.Topics, Relations: m.Relations, Sources: []string{path}})
	}
	return out, nil
}
