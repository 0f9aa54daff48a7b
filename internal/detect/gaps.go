package detect

import (
	"context"
	"fmt"

	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/specialistvlad/topicgraph/internal/topicid"
	"github.com/tidwall/btree"
)

// rootGroup collects topics without a parent.
const rootGroup = "root"

// LargeGap is the span above which a gap is logged as a warning. Each missing
// number still becomes its own anomaly.
const LargeGap = 1000

// sibling is one numbered topic inside a parent group.
type sibling struct {
	number int
	seq    int // position in the topic list; breaks ties between equal numbers
	id     *topicid.ID
}

func siblingLess(a, b sibling) bool {
	if a.number != b.number {
		return a.number < b.number
	}
	return a.seq < b.seq
}

// NumberingGaps reports missing integers in the trailing segment of sibling
// ids. Topics whose trailing segment is not a number are skipped.
type NumberingGaps struct{}

// Kind implements Detector.
func (NumberingGaps) Kind() Kind { return KindNumberingGaps }

// Detect implements Detector.
func (NumberingGaps) Detect(ctx context.Context, in Input) Findings {
	logger := ctxlog.FromContext(ctx)

	var groupOrder []string
	groups := make(map[string]*btree.BTreeG[sibling])
	for i, t := range in.Topics {
		id := topicid.Parse(t.ID)
		trailing := id.Trailing()
		if !trailing.IsNumeric() {
			continue
		}
		parent := t.Parent
		if parent == "" {
			parent = rootGroup
		}
		tree, exists := groups[parent]
		if !exists {
			tree = btree.NewBTreeG[sibling](siblingLess)
			groups[parent] = tree
			groupOrder = append(groupOrder, parent)
		}
		tree.Set(sibling{number: trailing.Number, seq: i, id: id})
	}

	anomalies := []model.Anomaly{}
	for _, parent := range groupOrder {
		var prev *sibling
		groups[parent].Scan(func(curr sibling) bool {
			if prev != nil && curr.number-prev.number > 1 {
				if span := curr.number - prev.number - 1; span > LargeGap {
					logger.Warn("Large numbering gap, emitting one anomaly per missing topic.",
						"group", parent, "lower", prev.id.String(), "upper", curr.id.String(), "missing", span)
				}
				for missing := prev.number + 1; missing < curr.number; missing++ {
					anomalies = append(anomalies, gapAnomaly(*prev, curr, missing))
				}
				logger.Debug("Numbering gap.", "group", parent, "lower", prev.id.String(), "upper", curr.id.String())
			}
			prev = &curr
			return true
		})
	}

	return Findings{Kind: KindNumberingGaps, Anomalies: anomalies}
}

func gapAnomaly(lower, upper sibling, missing int) model.Anomaly {
	missingID := lower.id.WithTrailing(missing).String()
	lowerID, upperID := lower.id.String(), upper.id.String()
	a := model.NewAnomaly(
		model.NumberingGap,
		fmt.Sprintf("Between %s and %s", lowerID, upperID),
		fmt.Sprintf("Missing topic %s in sequence", missingID),
		lowerID, upperID,
	)
	a.Target = missingID
	return a
}
