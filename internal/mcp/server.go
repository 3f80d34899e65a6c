// ABOUTME: MCP server initialization and configuration for contentai.
// ABOUTME: Exposes catalog discovery, saved content, generation, analytics, and sync to AI agents.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/contentai/internal/catalog"
	"github.com/2389-research/contentai/internal/generator"
	"github.com/2389-research/contentai/internal/storage"
	"github.com/2389-research/contentai/internal/syncer"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with the catalog and local stores.
type Server struct {
	mcp       *gomcp.Server
	catalog   *catalog.Catalog
	saved     storage.SavedStore
	history   storage.HistoryStore
	generator *generator.Generator
	syncer    *syncer.Syncer
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithSyncer enables the sync_push tool.
func WithSyncer(sy *syncer.Syncer) ServerOption {
	return func(s *Server) {
		s.syncer = sy
	}
}

// WithGenerator replaces the default mock generator.
func WithGenerator(g *generator.Generator) ServerOption {
	return func(s *Server) {
		s.generator = g
	}
}

// NewServer creates an MCP server over the catalog and stores.
func NewServer(cat *catalog.Catalog, saved storage.SavedStore, history storage.HistoryStore, opts ...ServerOption) (*Server, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if saved == nil {
		return nil, fmt.Errorf("saved store is required")
	}
	if history == nil {
		return nil, fmt.Errorf("history store is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "contentai",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcp:       mcpServer,
		catalog:   cat,
		saved:     saved,
		history:   history,
		generator: generator.New(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerContentTools()
	s.registerGenerationTools()
	if s.syncer != nil {
		s.registerSyncTools()
	}

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
