// ABOUTME: MCP tool for pushing local data to the configured GitHub repository.
// ABOUTME: Only registered when a sync target is configured.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerSyncTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "sync_push",
		Description: "Back up saved content and generation history to the configured GitHub repository.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleSyncPush)
}

func (s *Server) handleSyncPush(ctx context.Context, _ *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	rec, err := s.syncer.Push(ctx)
	if err != nil {
		return toolError("sync failed: %v", err), nil
	}
	return textResult(fmt.Sprintf("Pushed %d items to %s@%s:%s (commit %s)",
		rec.Items, rec.Repo, rec.Branch, rec.Path, shortSHA(rec.CommitSHA))), nil
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
