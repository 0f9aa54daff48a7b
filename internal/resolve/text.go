package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/topicgraph/internal/model"
)

// SystemPrompt accompanies every strategy prompt.
const SystemPrompt = "You are a document structure expert. Provide clear, actionable resolution strategies."

// ErrNoStrategies is returned when a free-text answer holds no list items.
var ErrNoStrategies = errors.New("no strategies in answer")

// Completer answers a prompt in free text.
type Completer func(ctx context.Context, system, prompt string) (string, error)

// FromCompleter adapts a Completer to the Resolver interface. The answer is
// parsed with ParseList.
func FromCompleter(complete Completer) Resolver {
	return ResolverFunc(func(ctx context.Context, a model.Anomaly) ([]string, error) {
		answer, err := complete(ctx, SystemPrompt, Prompt(a))
		if err != nil {
			return nil, err
		}
		strategies := ParseList(answer)
		if len(strategies) == 0 {
			return nil, fmt.Errorf("%s at %s: %w", a.Type, a.Location, ErrNoStrategies)
		}
		return strategies, nil
	})
}

// Prompt renders the question asked about one anomaly.
func Prompt(a model.Anomaly) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this document structure anomaly and suggest 3-%d concrete resolution strategies:\n\n", MaxStrategies)
	fmt.Fprintf(&b, "Type: %s\n", a.Type)
	fmt.Fprintf(&b, "Location: %s\n", a.Location)
	fmt.Fprintf(&b, "Description: %s\n", a.Description)
	fmt.Fprintf(&b, "Affected Topics: %s\n\n", strings.Join(a.AffectedTopics, ", "))
	b.WriteString("Consider renumbering errors, missing content, alternative navigation and structure corrections.\n")
	b.WriteString("Format your response as a numbered list.\n")
	return b.String()
}

// ParseList extracts list items from free text: lines that start with a digit
// or a dash, with the numbering stripped. At most MaxStrategies are returned.
func ParseList(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !(line[0] >= '0' && line[0] <= '9' || line[0] == '-') {
			continue
		}
		if item := strings.TrimLeft(line, "0123456789.-) "); item != "" {
			out = append(out, item)
		}
	}
	return limit(out)
}
