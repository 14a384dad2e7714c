package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/widgetspec/pkg/search"
	"github.com/gnana997/widgetspec/pkg/widget"
)

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// targetFile picks the props file a request is about: file_path wins over
// widget. Relative paths are taken against the library root.
func (s *Server) targetFile(req mcp.CallToolRequest) (string, error) {
	if path := req.GetString("file_path", ""); path != "" {
		if !filepath.IsAbs(path) && s.libraryRoot != "" {
			path = filepath.Join(s.libraryRoot, path)
		}
		return filepath.Clean(path), nil
	}

	name := req.GetString("widget", "")
	if name == "" {
		return "", fmt.Errorf("one of file_path or widget is required")
	}
	if s.libraryRoot == "" {
		return "", fmt.Errorf("widget %q: no library root configured, pass file_path instead", name)
	}
	return search.FindPropsFile(s.libraryRoot, name)
}

// --- resolve_widget ---

func (s *Server) handleResolveWidget(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := s.targetFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.engine.Resolve(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if req.GetBool("effective_only", false) {
		out := *res
		out.Props = widget.EffectiveProps(res.Props)
		return jsonResult(out)
	}
	return jsonResult(res)
}

// --- get_inheritance_chain ---

type chainResponse struct {
	FilePath          string                   `json:"filePath"`
	Immediate         string                   `json:"immediate"`
	Chain             widget.InheritanceChain  `json:"chain"`
	TerminationReason widget.TerminationReason `json:"terminationReason"`
}

func (s *Server) handleGetInheritanceChain(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := s.targetFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	chain, reason := s.engine.Walk(path)
	resp := chainResponse{
		FilePath:          path,
		Chain:             chain,
		TerminationReason: reason,
	}
	if len(chain) > 0 {
		resp.Immediate = chain[0]
	}
	return jsonResult(resp)
}

// --- find_widget_files ---

type filesResponse struct {
	Root  string   `json:"root"`
	Files []string `json:"files"`
}

func (s *Server) handleFindWidgetFiles(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := req.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.libraryRoot == "" {
		return mcp.NewToolResultError("no library root configured"), nil
	}

	files, err := search.Search(pattern, s.libraryRoot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if files == nil {
		files = []string{}
	}
	return jsonResult(filesResponse{Root: s.libraryRoot, Files: files})
}

// --- lookup_widget ---

func (s *Server) handleLookupWidget(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	w, ok := s.query.GetWidget(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("widget %q not found in catalog", name)), nil
	}
	return jsonResult(w)
}

// --- list_widgets ---

func (s *Server) handleListWidgets(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")
	if category != "" {
		if _, ok := s.query.Index.CategoryByName[category]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown category %q", category)), nil
		}
	}
	return jsonResult(s.query.ListWidgets(category, req.GetString("keyword", "")))
}
