// Package mcpserver exposes the analysis engine as Model Context Protocol
// tools served over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/specialistvlad/topicgraph/internal/engine"
)

// Implementation identifies the server to MCP clients.
var Implementation = &mcp.Implementation{
	Name:    "topicgraph",
	Version: "1.0.0",
}

// New creates an MCP server with the topicgraph tools registered.
func New(opts engine.Options) *mcp.Server {
	service := NewService(opts)

	s := mcp.NewServer(Implementation, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "analyze_topics",
		Description: "Build the topic relationship graph and report numbering gaps, broken cross-references, circular references, orphan topics and duplicate ids.",
	}, service.AnalyzeTopics)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "topic_hierarchy",
		Description: "Return the parent/child hierarchy and graph statistics of a set of topics.",
	}, service.TopicHierarchy)

	return s
}

// Serve runs the server over stdin/stdout until the client disconnects or
// ctx is cancelled.
func Serve(ctx context.Context, s *mcp.Server) error {
	ctxlog.FromContext(ctx).Info("MCP server listening on stdio.")
	return s.Run(ctx, &mcp.StdioTransport{})
}
