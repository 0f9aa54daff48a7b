package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// fileRoot is a struct used to decode all top-level blocks from any file.
type fileRoot struct {
	Topics    []*topicBlock    `hcl:"topic,block"`
	Relations []*relationBlock `hcl:"relation,block"`
	Remain    hcl.Body         `hcl:",remain"`
}

type topicBlock struct {
	ID                 string    `hcl:"id,label"`
	Title              string    `hcl:"title,optional"`
	Content            string    `hcl:"content,optional"`
	Parent             *string   `hcl:"parent"`
	Children           []string  `hcl:"children,optional"`
	CrossReferences    []string  `hcl:"cross_references,optional"`
	ForwardReferences  []string  `hcl:"forward_references,optional"`
	BackwardReferences []string  `hcl:"backward_references,optional"`
	Confidence         *float64  `hcl:"confidence"`
	Position           cty.Value `hcl:"position,optional"`
}

type relationBlock struct {
	Source  string  `hcl:"source"`
	Target  string  `hcl:"target"`
	Type    *string `hcl:"type"`
	Context string  `hcl:"context,optional"`
}

// position mirrors model.Position with cty tags for gocty.
type position struct {
	Start int `cty:"start"`
	End   int `cty:"end"`
}

func translateTopic(b *topicBlock) (*model.Topic, error) {
	t := &model.Topic{
		ID:                 b.ID,
		Title:              b.Title,
		Content:            b.Content,
		Children:           b.Children,
		CrossReferences:    b.CrossReferences,
		ForwardReferences:  b.ForwardReferences,
		BackwardReferences: b.BackwardReferences,
		Confidence:         model.DefaultConfidence,
	}
	if b.Parent != nil {
		t.Parent = *b.Parent
	}
	if b.Confidence != nil {
		t.Confidence = *b.Confidence
	}

	if !b.Position.IsNull() && b.Position.IsKnown() {
		var pos position
		if err := gocty.FromCtyValue(b.Position, &pos); err != nil {
			return nil, fmt.Errorf("topic %q: invalid position: %w", b.ID, err)
		}
		t.Position = &model.Position{Start: pos.Start, End: pos.End}
	}
	return t, nil
}

func translateRelation(b *relationBlock) (model.Relationship, error) {
	rel := model.Relationship{
		Source:  b.Source,
		Target:  b.Target,
		Type:    model.CrossReference,
		Status:  model.StatusValid,
		Context: b.Context,
	}
	if b.Type != nil {
		rel.Type = model.RelationType(*b.Type)
		if !validRelationType(rel.Type) {
			return model.Relationship{}, fmt.Errorf("relation %q -> %q: unknown type %q", b.Source, b.Target, *b.Type)
		}
	}
	return rel, nil
}

func validRelationType(t model.RelationType) bool {
	for _, known := range model.RelationTypes {
		if t == known {
			return true
		}
	}
	return false
}
