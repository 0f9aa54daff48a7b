package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/topicgraph/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	text := `Here are some ideas:
1. Renumber the topic
2) Add the missing section
- Review the table of contents

Not a list item
3. Ask the author
4. Check older revisions
5. Merge the sections
`
	assert.Equal(t, []string{
		"Renumber the topic",
		"Add the missing section",
		"Review the table of contents",
		"Ask the author",
		"Check older revisions",
	}, ParseList(text))
	assert.Empty(t, ParseList("nothing here"))
}

func TestFromCompleter(t *testing.T) {
	ctx := context.Background()
	broken := model.NewAnomaly(model.BrokenCrossReference, "1 → 99.9", "Topic 1 references 99.9, which does not exist", "1")

	t.Run("answer is parsed into strategies", func(t *testing.T) {
		var gotSystem, gotPrompt string
		r := FromCompleter(func(_ context.Context, system, prompt string) (string, error) {
			gotSystem, gotPrompt = system, prompt
			return "Sure:\n1. Fix the reference\n2. Remove the reference\n", nil
		})

		strategies, err := r.Resolve(ctx, broken)
		require.NoError(t, err)
		assert.Equal(t, []string{"Fix the reference", "Remove the reference"}, strategies)
		assert.Equal(t, SystemPrompt, gotSystem)
		assert.Contains(t, gotPrompt, "Type: broken_cross_reference")
		assert.Contains(t, gotPrompt, "Location: 1 → 99.9")
		assert.Contains(t, gotPrompt, "Affected Topics: 1\n")
	})

	t.Run("answer without a list is an error", func(t *testing.T) {
		r := FromCompleter(func(context.Context, string, string) (string, error) {
			return "I am not sure.", nil
		})
		_, err := r.Resolve(ctx, broken)
		assert.ErrorIs(t, err, ErrNoStrategies)
	})

	t.Run("completer errors are returned", func(t *testing.T) {
		boom := errors.New("boom")
		r := FromCompleter(func(context.Context, string, string) (string, error) {
			return "", boom
		})
		_, err := r.Resolve(ctx, broken)
		assert.ErrorIs(t, err, boom)
	})
}
