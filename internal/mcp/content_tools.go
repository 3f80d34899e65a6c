// ABOUTME: MCP tool implementations for catalog discovery and saved content.
// ABOUTME: Registers search_content, list_facets, get_content, toggle_saved, list_saved, get_analytics.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/contentai/internal/analytics"
	"github.com/2389-research/contentai/internal/catalog"
	"github.com/2389-research/contentai/internal/models"
	"github.com/2389-research/contentai/internal/storage"
)

const (
	defaultSearchLimit = 10
	defaultTrending    = 5
)

func (s *Server) registerContentTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "search_content",
		Description: "Search the trending content catalog. Filters are combined with AND; text matches title, description, platform, category, author, or tags.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Case-insensitive text to search for"},
				"platforms": {"type": "array", "items": {"type": "string"}, "description": "Only include these platforms"},
				"categories": {"type": "array", "items": {"type": "string"}, "description": "Only include these categories"},
				"min_score": {"type": "number", "description": "Minimum performance score (0-100)"},
				"max_score": {"type": "number", "description": "Maximum performance score (0-100)"},
				"sort": {"type": "string", "description": "field[:asc|desc], e.g. performanceScore:desc"},
				"limit": {"type": "number", "description": "Maximum number of results (default 10)"}
			}
		}`),
	}, s.handleSearchContent)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_facets",
		Description: "List the platforms and categories search_content can filter by, plus the top trending items.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"trending": {"type": "number", "description": "Number of top-scoring items to include (default 5, 0 for none)"}
			}
		}`),
	}, s.handleListFacets)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "get_content",
		Description: "Get one catalog item by id, including whether it is saved.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Content item id"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetContent)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "toggle_saved",
		Description: "Save a catalog item, or remove it if it is already saved.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Content item id"}
			},
			"required": ["id"]
		}`),
	}, s.handleToggleSaved)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_saved",
		Description: "List saved content items in the order they were saved.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListSaved)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "get_analytics",
		Description: "Aggregate statistics over the catalog: totals, averages, platform and category breakdowns, monthly series, top performers.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleGetAnalytics)
}

type searchArgs struct {
	Query      string   `json:"query"`
	Platforms  []string `json:"platforms"`
	Categories []string `json:"categories"`
	MinScore   *int     `json:"min_score"`
	MaxScore   *int     `json:"max_score"`
	Sort       string   `json:"sort"`
	Limit      int      `json:"limit"`
}

func (s *Server) handleSearchContent(_ context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args searchArgs
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	items, err := s.catalog.Search(catalog.Params{
		Text:       args.Query,
		Platforms:  args.Platforms,
		Categories: args.Categories,
		MinScore:   args.MinScore,
		MaxScore:   args.MaxScore,
		Sort:       args.Sort,
	})
	if err != nil {
		return toolError("%v", err), nil
	}

	limit := args.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	total := len(items)
	if len(items) > limit {
		items = items[:limit]
	}

	return jsonResult(map[string]any{
		"total": total,
		"items": items,
	})
}

type facetsArgs struct {
	Trending *int `json:"trending"`
}

func (s *Server) handleListFacets(_ context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args facetsArgs
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	n := defaultTrending
	if args.Trending != nil {
		n = *args.Trending
	}
	if n < 0 {
		return toolError("trending must not be negative"), nil
	}

	trending := []models.ContentItem{}
	if n > 0 {
		trending = s.catalog.Trending(n)
	}
	return jsonResult(map[string]any{
		"platforms":  s.catalog.Platforms(),
		"categories": s.catalog.Categories(),
		"trending":   trending,
	})
}

type idArgs struct {
	ID string `json:"id"`
}

func (s *Server) handleGetContent(_ context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args idArgs
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.ID == "" {
		return toolError("id is required"), nil
	}

	item, err := s.catalog.Get(args.ID)
	if errors.Is(err, catalog.ErrNotFound) {
		return toolError("content %q not found", args.ID), nil
	}
	if err != nil {
		return toolError("failed to get content: %v", err), nil
	}

	return jsonResult(map[string]any{
		"item":  item,
		"saved": s.saved.IsSaved(item.ID),
	})
}

func (s *Server) handleToggleSaved(_ context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args idArgs
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.ID == "" {
		return toolError("id is required"), nil
	}

	item, err := s.catalog.Get(args.ID)
	if err != nil {
		return toolError("content %q not found", args.ID), nil
	}

	result, err := s.saved.Toggle(item)
	if err != nil {
		return toolError("failed to toggle saved content: %v", err), nil
	}

	msg := fmt.Sprintf("Saved %q", item.Title)
	if result == storage.Removed {
		msg = fmt.Sprintf("Removed %q from saved content", item.Title)
	}
	return textResult(msg), nil
}

func (s *Server) handleListSaved(_ context.Context, _ *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	items := s.saved.List()
	if len(items) == 0 {
		return textResult("No saved content yet."), nil
	}
	return jsonResult(items)
}

func (s *Server) handleGetAnalytics(_ context.Context, _ *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	return jsonResult(analytics.Compute(s.catalog.All()))
}

func unmarshalArgs(req *gomcp.CallToolRequest, out any) error {
	if len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, out)
}

func textResult(text string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}
}

func jsonResult(v any) (*gomcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("failed to encode result: %v", err), nil
	}
	return textResult(string(data)), nil
}

func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
