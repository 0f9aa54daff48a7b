// Package resolve attaches resolution strategies to anomalies.
//
// A Resolver is the collaborator slot for anything that can suggest fixes: the
// rule-based Playbook shipped here, or a model answering in free text, adapted
// with FromCompleter.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/topicgraph/internal/model"
)

// MaxStrategies is the most strategies attached to a single anomaly.
const MaxStrategies = 5

// ManualReview is attached when a resolver fails.
const ManualReview = "Manual review required"

// Resolver suggests resolution strategies for one anomaly.
type Resolver interface {
	Resolve(ctx context.Context, a model.Anomaly) ([]string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, a model.Anomaly) ([]string, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context, a model.Anomaly) ([]string, error) {
	return f(ctx, a)
}

// Eligible reports whether an anomaly should receive strategies. Only high
// and critical anomalies do.
func Eligible(a model.Anomaly) bool {
	return a.Severity.AtLeast(model.SeverityHigh)
}

// Playbook is a rule-based Resolver keyed by anomaly type.
type Playbook struct{}

// Resolve implements Resolver.
func (Playbook) Resolve(ctx context.Context, a model.Anomaly) ([]string, error) {
	affected := strings.Join(a.AffectedTopics, ", ")
	var out []string
	switch a.Type {
	case model.NumberingGap:
		lower, upper := pair(a.AffectedTopics)
		out = []string{
			fmt.Sprintf("Check whether topic %s was omitted from the source document", a.Target),
			fmt.Sprintf("Renumber %s to %s if the numbering skipped by mistake", upper, a.Target),
			fmt.Sprintf("Check whether the content of %s was merged into %s", a.Target, lower),
			"Confirm the gap is intentional and document it in the table of contents",
		}
	case model.BrokenCrossReference:
		out = []string{
			fmt.Sprintf("Verify that %s is the intended target of the reference in %s", a.Target, affected),
			fmt.Sprintf("Search for a renumbered topic that replaced %s and update the reference", a.Target),
			fmt.Sprintf("Remove the reference to %s if the topic was deleted", a.Target),
			"Add the missing topic if the reference is correct",
		}
	case model.DuplicateTopic:
		out = []string{
			fmt.Sprintf("Compare both occurrences of %s and merge them if they describe the same content", affected),
			fmt.Sprintf("Renumber the later occurrence of %s and shift the following siblings", affected),
			"Check the document for a copy-paste error around the later occurrence",
		}
	case model.CircularReference:
		out = []string{
			fmt.Sprintf("Review the references along %s and remove the one that points back", a.Location),
			"Convert one reference into a see-also note that does not imply reading order",
		}
	case model.OrphanContent:
		out = []string{
			fmt.Sprintf("Link %s from its parent topic or a related topic", affected),
			fmt.Sprintf("Remove %s if it is leftover content", affected),
		}
	default:
		out = []string{ManualReview}
	}
	return limit(out), nil
}

func pair(ids []string) (string, string) {
	switch len(ids) {
	case 0:
		return "", ""
	case 1:
		return ids[0], ids[0]
	default:
		return ids[0], ids[1]
	}
}

func limit(s []string) []string {
	if len(s) > MaxStrategies {
		return s[:MaxStrategies]
	}
	return s
}
