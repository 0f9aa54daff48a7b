package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/specialistvlad/topicgraph/internal/topologystore"
)

// ErrInvalidTopic is wrapped by every contract violation Build reports.
var ErrInvalidTopic = errors.New("invalid topic")

// Build populates store from topics, then adds the extra relationships after
// the topic-derived edges.
func Build(ctx context.Context, store topologystore.Store, topics []*model.Topic, extra ...model.Relationship) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "topic_count", len(topics), "extra_count", len(extra))

	// First pass: validate everything before any mutation.
	if err := validate(topics, extra); err != nil {
		return err
	}
	logger.Debug("Build: Validation passed.")

	// Second pass: restore the parent/children invariant.
	if n := reconcileChildren(topics); n > 0 {
		logger.Debug("Build: Reconciled children lists.", "appended", n)
	}

	// Third pass: nodes.
	if err := createNodes(ctx, store, topics); err != nil {
		return err
	}
	logger.Debug("Build: Node creation complete.")

	// Fourth pass: edges.
	if err := linkTopics(ctx, store, topics, extra); err != nil {
		return err
	}
	logger.Debug("Build: Linking complete.")

	logger.Debug("Build: Graph construction successful.")
	return nil
}

func validate(topics []*model.Topic, extra []model.Relationship) error {
	for i, t := range topics {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w at position %d: %w", ErrInvalidTopic, i, err)
		}
	}
	for i, rel := range extra {
		if rel.Source == "" || rel.Target == "" {
			return fmt.Errorf("%w: extra relationship %d has an empty endpoint", ErrInvalidTopic, i)
		}
	}
	return nil
}

func createNodes(ctx context.Context, store topologystore.Store, topics []*model.Topic) error {
	for _, t := range topics {
		attrs := topologystore.Attributes{
			Title:      t.Title,
			Content:    t.Content,
			Confidence: t.Confidence,
		}
		if err := store.AddNode(ctx, t.ID, attrs); err != nil {
			return fmt.Errorf("failed to add node %q: %w", t.ID, err)
		}
	}
	return nil
}
