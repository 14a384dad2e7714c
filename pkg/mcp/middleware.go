package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/widgetspec/pkg/mcplog"
)

// loggingMiddleware writes one mcplog entry per tool call. Only installed
// when the server has a logger.
func (s *Server) loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := mcplog.Now()
			entry := mcplog.NewEntry(req.Params.Name, req.GetArguments(), start)

			result, err := next(ctx, req)

			entry.Finish(result, err, mcplog.Now().Sub(start))
			_ = s.logger.Write(entry)

			return result, err
		}
	}
}
