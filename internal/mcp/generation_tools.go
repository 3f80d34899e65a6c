// ABOUTME: MCP tool implementations for draft generation and history.
// ABOUTME: Registers generate_content and list_history; every draft is recorded in history.
package mcp

import (
	"context"
	"encoding/json"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/contentai/internal/generator"
	"github.com/2389-research/contentai/internal/logging"
	"github.com/2389-research/contentai/internal/models"
)

func (s *Server) registerGenerationTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "generate_content",
		Description: "Generate a social media draft (kind=text) or an image concept (kind=image) from a prompt. The result is added to the generation history.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"prompt": {"type": "string", "description": "What the content should be about"},
				"kind": {"type": "string", "enum": ["text", "image"], "description": "Draft kind (default: text)"},
				"platform": {"type": "string", "enum": ["instagram", "tiktok", "youtube", "twitter", "linkedin"], "description": "Target platform for text drafts (default: instagram)"},
				"tone": {"type": "string", "enum": ["professional", "casual", "humorous", "inspirational", "educational"], "description": "Voice for text drafts (default: casual)"},
				"style": {"type": "string", "enum": ["photorealistic", "illustration", "minimal", "3d", "vintage"], "description": "Style for image drafts"},
				"hashtags": {"type": "boolean", "description": "Include hashtags"},
				"cta": {"type": "boolean", "description": "Include a call to action"}
			},
			"required": ["prompt"]
		}`),
	}, s.handleGenerateContent)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_history",
		Description: "List recent generated drafts, newest first (at most 20 are kept).",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"limit": {"type": "number", "description": "Maximum number of drafts to return"}
			}
		}`),
	}, s.handleListHistory)
}

type generateArgs struct {
	Prompt   string `json:"prompt"`
	Kind     string `json:"kind"`
	Platform string `json:"platform"`
	Tone     string `json:"tone"`
	Style    string `json:"style"`
	Hashtags bool   `json:"hashtags"`
	CTA      bool   `json:"cta"`
}

func (s *Server) handleGenerateContent(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args generateArgs
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	var (
		draft models.GeneratedContent
		err   error
	)
	switch strings.ToLower(args.Kind) {
	case "", string(models.KindText):
		draft, err = s.generator.GenerateContent(ctx, generator.Request{
			Prompt:          args.Prompt,
			Platform:        args.Platform,
			Tone:            args.Tone,
			IncludeHashtags: args.Hashtags,
			IncludeCTA:      args.CTA,
		})
	case string(models.KindImage):
		draft, err = s.generator.GenerateImage(ctx, generator.ImageRequest{Prompt: args.Prompt, Style: args.Style})
	default:
		return toolError("kind must be text or image, got %q", args.Kind), nil
	}
	if err != nil {
		return toolError("generation failed: %v", err), nil
	}

	if err := s.history.Add(draft); err != nil {
		logging.Log(ctx).Layer("mcp").Op("generate_content").Err(err).Warn("failed to record generation history")
	}
	return jsonResult(draft)
}

type historyArgs struct {
	Limit int `json:"limit"`
}

func (s *Server) handleListHistory(_ context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args historyArgs
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	items := s.history.List()
	if len(items) == 0 {
		return textResult("No generated content yet."), nil
	}
	if args.Limit > 0 && len(items) > args.Limit {
		items = items[:args.Limit]
	}
	return jsonResult(items)
}
