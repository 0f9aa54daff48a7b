package topicparse

import (
	"regexp"
	"slices"
	"strings"

	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/specialistvlad/topicgraph/internal/topicid"
)

const refID = `(\d+(?:\.\d+)*(?:\.[a-z])?)`

var referencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:see|refer to|as in|discussed in)\s+(?:topic|section)\s+` + refID),
	regexp.MustCompile(`(?:topic|section)\s+` + refID),
	regexp.MustCompile(`\(` + refID + `\)`),
}

// ExtractReferences scans topic content for references to other topics. Every
// reference is recorded as a cross reference and, by comparing leading
// numbers, as either a forward or a backward reference. Self references are
// ignored and no list holds the same id twice.
func ExtractReferences(topics []*model.Topic) {
	for _, t := range topics {
		content := strings.ToLower(t.Content)
		for _, re := range referencePatterns {
			for _, m := range re.FindAllStringSubmatch(content, -1) {
				ref := m[1]
				if ref == t.ID {
					continue
				}
				if isForward(t.ID, ref) {
					t.ForwardReferences = appendUnique(t.ForwardReferences, ref)
				} else {
					t.BackwardReferences = appendUnique(t.BackwardReferences, ref)
				}
				t.CrossReferences = appendUnique(t.CrossReferences, ref)
			}
		}
	}
}

// isForward reports whether target's leading number is greater than source's.
// Non-numeric leading segments are never forward.
func isForward(source, target string) bool {
	s := topicid.Parse(source).Leading()
	t := topicid.Parse(target).Leading()
	return s.IsNumeric() && t.IsNumeric() && t.Number > s.Number
}

func appendUnique(list []string, id string) []string {
	if slices.Contains(list, id) {
		return list
	}
	return append(list, id)
}
