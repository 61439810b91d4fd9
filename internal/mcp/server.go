package mcp

import (
	"context"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/gqlsearch-mcp/internal/searcher"
)

const (
	// ServerName is the MCP server name
	ServerName = "gqlsearch-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server serves search_schema on its own, without an upstream GraphQL
// MCP server behind it
type Server struct {
	mcp      *server.MCPServer
	searcher *searcher.Searcher
}

// NewServer creates a new standalone MCP server instance
func NewServer(srch *searcher.Searcher) (*Server, error) {
	if srch == nil {
		return nil, fmt.Errorf("searcher is required")
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:      mcpServer,
		searcher: srch,
	}

	// Register tools
	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve runs the MCP server over the given streams and blocks until ctx is
// done or stdin is closed
func (s *Server) Serve(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, stdin, stdout)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	s.mcp.AddTool(SearchSchemaTool(), s.handleSearchSchema)
	return nil
}
