package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/widgetspec/pkg/catalog"
	"github.com/gnana997/widgetspec/pkg/extractor"
	"github.com/gnana997/widgetspec/pkg/mcplog"
	"github.com/gnana997/widgetspec/pkg/parser"
	"github.com/gnana997/widgetspec/pkg/parser/queries"
	"github.com/gnana997/widgetspec/pkg/source"
	"github.com/gnana997/widgetspec/pkg/util"
	"github.com/gnana997/widgetspec/pkg/widget"
)

// --- helpers ---

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testCatalog() *catalog.QueryService {
	cat := &catalog.Catalog{
		Name:    "test",
		Version: "1.0",
		Categories: []catalog.Category{
			{Name: "basic", Description: "Basic widgets"},
			{Name: "input"},
		},
		Widgets: []catalog.Widget{
			{Name: "button", Category: "basic", ID: "button", Description: "A clickable button"},
			{Name: "label", Category: "basic", ID: "label", Description: "Static text"},
			{Name: "text", Category: "input", ID: "text", Description: "Single line input", Aliases: []string{"textinput"}},
		},
	}
	return catalog.NewQueryService(cat, cat.BuildIndex())
}

// testLibrary lays out button -> BaseComponent and text -> base -> BaseProps.
func testLibrary(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "basic", "button", "button.props.js"), `import BaseComponent from '@wavemaker/app-rn-runtime/core/base.component';
export default class WmButton extends BaseComponent {
  constructor(...args) {
    super(...args);
    _defineProperty(this, "caption", "Button");
    _defineProperty(this, "onTap", function () {});
  }
}
`)
	writeFile(t, filepath.Join(root, "basic", "button", "button.styles.js"), `export const DEFAULT_CLASS = 'app-button';
export default () => defineStyles({ root: {}, icon: {} });
`)
	writeFile(t, filepath.Join(root, "input", "base", "base.props.js"), `import BaseProps from '@wavemaker/app-rn-runtime/core/base.props';
export default class WmBaseInputProps extends BaseProps {
  constructor() { super(); _defineProperty(this, "caption", "base"); _defineProperty(this, "onChange", null); }
}
`)
	writeFile(t, filepath.Join(root, "input", "text", "text.props.js"), `import WmBaseInputProps from '../base/base.props';
export default class WmTextProps extends WmBaseInputProps {
  constructor() { super(); _defineProperty(this, "caption", "child"); }
}
`)
	return root
}

func testServer(t *testing.T, root string, logger *mcplog.Logger) *Server {
	t.Helper()
	log := util.Discard()
	pm := parser.NewParserManager(log)
	qm := queries.NewQueryManager(pm, log)
	t.Cleanup(func() {
		qm.Close()
		pm.Close()
	})

	qs := testCatalog()
	engine := widget.NewEngine(source.NewFileReader(log), extractor.NewExtractor(pm, qm, log), qs, widget.DefaultOptions(), log)
	return NewServer(engine, qs, root, logger)
}

func callTool(t *testing.T, s *Server, req mcp.CallToolRequest) *mcp.CallToolResult {
	t.Helper()
	var handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

	switch req.Params.Name {
	case "resolve_widget":
		handler = s.handleResolveWidget
	case "get_inheritance_chain":
		handler = s.handleGetInheritanceChain
	case "find_widget_files":
		handler = s.handleFindWidgetFiles
	case "lookup_widget":
		handler = s.handleLookupWidget
	case "list_widgets":
		handler = s.handleListWidgets
	default:
		t.Fatalf("unknown tool: %s", req.Params.Name)
	}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func makeRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	var arguments any
	if args != nil {
		arguments = args
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: arguments,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

// --- resolve_widget ---

func TestHandleResolveWidget_ByName(t *testing.T) {
	root := testLibrary(t)
	s := testServer(t, root, nil)

	result := callTool(t, s, makeRequest("resolve_widget", map[string]any{"widget": "WmButton"}))
	require.False(t, result.IsError, resultText(t, result))

	var res widget.AggregatedWidgetStructure
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &res))
	assert.Equal(t, "button", res.WidgetName)
	assert.Len(t, res.Props, 2)
	assert.Len(t, res.Events, 1)
	assert.Equal(t, widget.InheritanceChain{"BaseComponent"}, res.Inheritance.Chain)
	assert.Equal(t, "app-button", res.Styles.DefaultClassName)
	assert.True(t, res.Styles.Parts.Has("icon"))
	assert.Equal(t, 2, res.Stats.StyleParts)
}

func TestHandleResolveWidget_RelativePath(t *testing.T) {
	root := testLibrary(t)
	s := testServer(t, root, nil)

	result := callTool(t, s, makeRequest("resolve_widget", map[string]any{
		"file_path": "input/text/text.props.js",
	}))
	require.False(t, result.IsError, resultText(t, result))

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &raw))
	assert.Equal(t, filepath.Join(root, "input", "text", "text.props.js"), raw["filePath"])
	assert.Len(t, raw["props"], 3)

	inheritance := raw["inheritance"].(map[string]any)
	assert.Equal(t, "WmBaseInputProps", inheritance["immediate"])
	assert.Equal(t, "generic-root", inheritance["terminationReason"])
}

func TestHandleResolveWidget_EffectiveOnly(t *testing.T) {
	root := testLibrary(t)
	s := testServer(t, root, nil)

	result := callTool(t, s, makeRequest("resolve_widget", map[string]any{
		"widget":         "text",
		"effective_only": true,
	}))
	require.False(t, result.IsError, resultText(t, result))

	var res widget.AggregatedWidgetStructure
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &res))
	require.Len(t, res.Props, 2)
	assert.Equal(t, `"child"`, res.Props[0].DefaultValue)
	assert.Equal(t, "onChange", res.Props[1].Name)
	// Stats describe the full list.
	assert.Equal(t, 3, res.Stats.TotalProps)
}

func TestHandleResolveWidget_Unreadable(t *testing.T) {
	s := testServer(t, testLibrary(t), nil)

	result := callTool(t, s, makeRequest("resolve_widget", map[string]any{"file_path": "/no/such/file.props.js"}))
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "target file unreadable")
}

func TestHandleResolveWidget_MissingArgs(t *testing.T) {
	s := testServer(t, testLibrary(t), nil)

	result := callTool(t, s, makeRequest("resolve_widget", nil))
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "file_path or widget")
}

func TestHandleResolveWidget_UnknownWidget(t *testing.T) {
	s := testServer(t, testLibrary(t), nil)

	result := callTool(t, s, makeRequest("resolve_widget", map[string]any{"widget": "carousel"}))
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "carousel")
}

func TestHandleResolveWidget_NoLibraryRoot(t *testing.T) {
	s := testServer(t, "", nil)

	result := callTool(t, s, makeRequest("resolve_widget", map[string]any{"widget": "button"}))
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "no library root")
}

// --- get_inheritance_chain ---

func TestHandleGetInheritanceChain(t *testing.T) {
	s := testServer(t, testLibrary(t), nil)

	result := callTool(t, s, makeRequest("get_inheritance_chain", map[string]any{"widget": "text"}))
	require.False(t, result.IsError, resultText(t, result))

	var resp chainResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	assert.Equal(t, widget.InheritanceChain{"WmBaseInputProps", "BaseProps"}, resp.Chain)
	assert.Equal(t, "WmBaseInputProps", resp.Immediate)
	assert.Equal(t, widget.ReasonGenericRoot, resp.TerminationReason)
}

func TestHandleGetInheritanceChain_MissingFile(t *testing.T) {
	s := testServer(t, testLibrary(t), nil)

	result := callTool(t, s, makeRequest("get_inheritance_chain", map[string]any{"file_path": "nope.props.js"}))
	require.False(t, result.IsError)

	var resp chainResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	assert.Empty(t, resp.Chain)
	assert.Equal(t, widget.ReasonUnreadable, resp.TerminationReason)
}

// --- find_widget_files ---

func TestHandleFindWidgetFiles(t *testing.T) {
	root := testLibrary(t)
	s := testServer(t, root, nil)

	result := callTool(t, s, makeRequest("find_widget_files", map[string]any{"pattern": "*.props.js"}))
	require.False(t, result.IsError)

	var resp filesResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	assert.Equal(t, root, resp.Root)
	assert.Len(t, resp.Files, 3)
}

func TestHandleFindWidgetFiles_NoMatch(t *testing.T) {
	s := testServer(t, testLibrary(t), nil)

	result := callTool(t, s, makeRequest("find_widget_files", map[string]any{"pattern": "*.styledef.js"}))
	require.False(t, result.IsError)
	assert.JSONEq(t, `[]`, mustField(t, resultText(t, result), "files"))
}

func TestHandleFindWidgetFiles_Errors(t *testing.T) {
	s := testServer(t, testLibrary(t), nil)

	result := callTool(t, s, makeRequest("find_widget_files", nil))
	assert.True(t, result.IsError)

	result = callTool(t, s, makeRequest("find_widget_files", map[string]any{"pattern": "["}))
	assert.True(t, result.IsError)
}

func mustField(t *testing.T, text, field string) string {
	t.Helper()
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(text), &raw))
	return string(raw[field])
}

// --- lookup_widget ---

func TestHandleLookupWidget(t *testing.T) {
	s := testServer(t, "", nil)

	result := callTool(t, s, makeRequest("lookup_widget", map[string]any{"name": "TextInput"}))
	require.False(t, result.IsError)

	var w catalog.Widget
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &w))
	assert.Equal(t, "text", w.Name)
	assert.Equal(t, "input", w.Category)
}

func TestHandleLookupWidget_NotFound(t *testing.T) {
	s := testServer(t, "", nil)

	result := callTool(t, s, makeRequest("lookup_widget", map[string]any{"name": "carousel"}))
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "not found")

	result = callTool(t, s, makeRequest("lookup_widget", nil))
	assert.True(t, result.IsError)
}

// --- list_widgets ---

func TestHandleListWidgets(t *testing.T) {
	s := testServer(t, "", nil)

	var all []catalog.Widget
	require.NoError(t, json.Unmarshal([]byte(resultText(t, callTool(t, s, makeRequest("list_widgets", nil)))), &all))
	assert.Len(t, all, 3)

	var basic []catalog.Widget
	result := callTool(t, s, makeRequest("list_widgets", map[string]any{"category": "basic"}))
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &basic))
	assert.Len(t, basic, 2)

	var clickable []catalog.Widget
	result = callTool(t, s, makeRequest("list_widgets", map[string]any{"keyword": "CLICK"}))
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &clickable))
	require.Len(t, clickable, 1)
	assert.Equal(t, "button", clickable[0].Name)
}

func TestHandleListWidgets_UnknownCategory(t *testing.T) {
	s := testServer(t, "", nil)

	result := callTool(t, s, makeRequest("list_widgets", map[string]any{"category": "nope"}))
	assert.True(t, result.IsError)
}

// --- middleware ---

func TestLoggingMiddleware(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.jsonl")
	logger, err := mcplog.NewLogger(path)
	require.NoError(t, err)

	s := testServer(t, testLibrary(t), logger)
	wrapped := s.loggingMiddleware()(s.handleLookupWidget)

	_, err = wrapped(context.Background(), makeRequest("lookup_widget", map[string]any{"name": "button"}))
	require.NoError(t, err)
	_, err = wrapped(context.Background(), makeRequest("lookup_widget", map[string]any{"name": "carousel"}))
	require.NoError(t, err)
	require.NoError(t, logger.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []mcplog.LogEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e mcplog.LogEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		entries = append(entries, e)
	}

	require.Len(t, entries, 2)
	assert.Equal(t, "lookup_widget", entries[0].Tool)
	assert.Equal(t, "button", entries[0].Params["name"])
	assert.False(t, entries[0].IsError)
	assert.Positive(t, entries[0].ResponseBytes)
	assert.NotEmpty(t, entries[0].CallID)
	assert.NotEqual(t, entries[0].CallID, entries[1].CallID)

	assert.True(t, entries[1].IsError)
	require.NotNil(t, entries[1].Error)
	assert.Contains(t, *entries[1].Error, "carousel")
}

func TestNewServer_RegistersTools(t *testing.T) {
	s := testServer(t, "", nil)
	require.NotNil(t, s.MCPServer())
	assert.Len(t, s.MCPServer().ListTools(), 5)
}
