package config

import (
	"context"

	"github.com/specialistvlad/topicgraph/internal/model"
)

// Loader is the interface for a format-specific topic loader.
type Loader interface {
	// Load reads topics from the given paths and translates them into the
	// format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, paths ...string) (*Model, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, paths ...string) (*Model, error) {
	return f(ctx, paths...)
}

// Model is the unified, format-agnostic representation of the input of an
// analysis run.
type Model struct {
	// Topics in document order.
	Topics []*model.Topic
	// Relations are explicit relationship assertions that do not come from a
	// topic's own reference lists.
	Relations []model.Relationship
	// Sources lists the files the model was read from.
	Sources []string
}

// Merge appends other to m.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Topics = append(m.Topics, other.Topics...)
	m.Relations = append(m.Relations, other.Relations...)
	m.Sources = append(m.Sources, other.Sources...)
}
