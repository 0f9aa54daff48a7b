package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/specialistvlad/topicgraph/internal/topologystore"
)

// linkTopics adds hierarchical edges, reference edges and then the extra
// relationships.
func linkTopics(ctx context.Context, store topologystore.Store, topics []*model.Topic, extra []model.Relationship) error {
	logger := ctxlog.FromContext(ctx)

	var hierarchical int
	for _, t := range topics {
		if t.Parent == "" {
			continue
		}
		rel := model.Relationship{
			Source: t.Parent,
			Target: t.ID,
			Type:   model.Hierarchical,
			Status: model.StatusValid,
		}
		if err := store.AddEdge(ctx, rel); err != nil {
			return fmt.Errorf("error linking %q to parent %q: %w", t.ID, t.Parent, err)
		}
		hierarchical++
	}
	logger.Debug("Linked hierarchical edges.", "count", hierarchical)

	var references int
	for _, t := range topics {
		lists := []struct {
			typ model.RelationType
			ids []string
		}{
			{model.CrossReference, t.CrossReferences},
			{model.ForwardReference, t.ForwardReferences},
			{model.BackwardReference, t.BackwardReferences},
		}
		for _, list := range lists {
			for _, target := range list.ids {
				if target == "" {
					continue
				}
				rel := model.Relationship{
					Source: t.ID,
					Target: target,
					Type:   list.typ,
					Status: model.StatusValid,
				}
				if err := store.AddEdge(ctx, rel); err != nil {
					return fmt.Errorf("error linking reference %q -> %q: %w", t.ID, target, err)
				}
				references++
			}
		}
	}
	logger.Debug("Linked reference edges.", "count", references)

	for _, rel := range extra {
		if rel.Status == "" {
			rel.Status = model.StatusValid
		}
		if rel.Type == "" {
			rel.Type = model.CrossReference
		}
		if err := store.AddEdge(ctx, rel); err != nil {
			return fmt.Errorf("error linking extra relationship %q -> %q: %w", rel.Source, rel.Target, err)
		}
	}
	if len(extra) > 0 {
		logger.Debug("Linked extra relationships.", "count", len(extra))
	}
	return nil
}
