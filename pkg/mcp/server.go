// Package mcp exposes widget resolution and catalog queries as MCP tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/widgetspec/pkg/catalog"
	"github.com/gnana997/widgetspec/pkg/mcplog"
	"github.com/gnana997/widgetspec/pkg/widget"
)

// ServerVersion is reported to MCP clients.
const ServerVersion = "0.1.0-dev"

// Engine is the part of *widget.Engine the tools use.
type Engine interface {
	Resolve(filePath string) (*widget.AggregatedWidgetStructure, error)
	Walk(filePath string) (widget.InheritanceChain, widget.TerminationReason)
}

// Server implements the MCP server.
type Server struct {
	mcpServer   *server.MCPServer
	engine      Engine
	query       *catalog.QueryService
	libraryRoot string
	logger      *mcplog.Logger // nil disables call logging
}

// NewServer creates a server. Relative paths and widget names are resolved
// under libraryRoot. logger may be nil.
func NewServer(engine Engine, qs *catalog.QueryService, libraryRoot string, logger *mcplog.Logger) *Server {
	s := &Server{
		engine:      engine,
		query:       qs,
		libraryRoot: libraryRoot,
		logger:      logger,
	}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("widgetspec", ServerVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: resolveWidgetTool(), Handler: s.handleResolveWidget},
		server.ServerTool{Tool: getInheritanceChainTool(), Handler: s.handleGetInheritanceChain},
		server.ServerTool{Tool: findWidgetFilesTool(), Handler: s.handleFindWidgetFiles},
		server.ServerTool{Tool: lookupWidgetTool(), Handler: s.handleLookupWidget},
		server.ServerTool{Tool: listWidgetsTool(), Handler: s.handleListWidgets},
	)

	return s
}

// MCPServer returns the underlying server, e.g. for other transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
