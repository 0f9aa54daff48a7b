package builder

import (
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/specialistvlad/topicgraph/internal/topicid"
)

// reconcileChildren appends each topic's id to its parent's Children when it
// is missing there. The first topic with a given id acts as the parent. It
// returns the number of ids appended.
func reconcileChildren(topics []*model.Topic) int {
	byID := indexFirst(topics)
	var appended int
	for _, t := range topics {
		if t.Parent == "" {
			continue
		}
		parent, ok := byID[t.Parent]
		if !ok || parent.HasChild(t.ID) {
			continue
		}
		parent.Children = append(parent.Children, t.ID)
		appended++
	}
	return appended
}

// LinkHierarchy derives Parent from the id prefix for every topic that has
// none, as long as the prefix names a topic in the list, and keeps the
// parent's Children in step. `18.3` becomes a child of `18` only when `18` is
// present.
func LinkHierarchy(topics []*model.Topic) {
	byID := indexFirst(topics)
	for _, t := range topics {
		if t.Parent != "" {
			continue
		}
		parentID := topicid.Parse(t.ID).Parent()
		if parentID == nil {
			continue
		}
		prefix := parentID.String()
		parent, ok := byID[prefix]
		if !ok || parent == t {
			continue
		}
		t.Parent = prefix
		if !parent.HasChild(t.ID) {
			parent.Children = append(parent.Children, t.ID)
		}
	}
}

func indexFirst(topics []*model.Topic) map[string]*model.Topic {
	byID := make(map[string]*model.Topic, len(topics))
	for _, t := range topics {
		if _, seen := byID[t.ID]; !seen {
			byID[t.ID] = t
		}
	}
	return byID
}
