package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/specialistvlad/topicgraph/internal/resolve"
)

// samplingMaxTokens bounds one strategy answer.
const samplingMaxTokens = 512

// supportsSampling reports whether the client on the other end of the
// session declared the sampling capability.
func supportsSampling(session *mcp.ServerSession) bool {
	if session == nil {
		return false
	}
	params := session.InitializeParams()
	return params != nil && params.Capabilities != nil && params.Capabilities.Sampling != nil
}

// samplingCompleter asks the client's model through a sampling request.
func samplingCompleter(session *mcp.ServerSession) resolve.Completer {
	return func(ctx context.Context, system, prompt string) (string, error) {
		res, err := session.CreateMessage(ctx, &mcp.CreateMessageParams{
			SystemPrompt: system,
			MaxTokens:    samplingMaxTokens,
			Messages: []*mcp.SamplingMessage{
				{Role: "user", Content: &mcp.TextContent{Text: prompt}},
			},
		})
		if err != nil {
			return "", fmt.Errorf("sampling request failed: %w", err)
		}
		text, ok := res.Content.(*mcp.TextContent)
		if !ok {
			return "", fmt.Errorf("sampling returned %T content, want text", res.Content)
		}
		return text.Text, nil
	}
}
