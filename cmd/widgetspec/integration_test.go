package main

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// binaryPath is set by TestMain after building the binary.
var binaryPath string

func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	tmp, err := os.MkdirTemp("", "widgetspec-integration-*")
	if err != nil {
		panic(err)
	}

	binaryPath = filepath.Join(tmp, "widgetspec")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		os.RemoveAll(tmp)
		panic("failed to build binary: " + err.Error())
	}

	code := m.Run()
	os.RemoveAll(tmp)
	os.Exit(code)
}

// --- helpers ---

func skipIfNotIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("set INTEGRATION=1 to run integration tests")
	}
}

// startServer launches `widgetspec serve` over the given library and
// returns an initialized MCP client.
func startServer(t *testing.T, args ...string) *client.Client {
	t.Helper()

	c, err := client.NewStdioMCPClient(binaryPath, nil, append([]string{"serve", "--log-level", "error"}, args...)...)
	require.NoError(t, err, "failed to start MCP server")
	t.Cleanup(func() { c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "widgetspec-integration-test", Version: "1.0.0"}

	result, err := c.Initialize(ctx, initReq)
	require.NoError(t, err, "failed to initialize MCP session")
	assert.Equal(t, "widgetspec", result.ServerInfo.Name)
	return c
}

func callToolHelper(t *testing.T, c *client.Client, toolName string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req := mcp.CallToolRequest{}
	req.Params.Name = toolName
	if args != nil {
		req.Params.Arguments = args
	}

	result, err := c.CallTool(ctx, req)
	require.NoError(t, err, "CallTool(%s) failed", toolName)
	return result
}

func extractJSON(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content, "expected content in result")
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

// --- integration tests ---

func TestIntegration_ListTools(t *testing.T) {
	skipIfNotIntegration(t)
	c := startServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)

	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"resolve_widget",
		"get_inheritance_chain",
		"find_widget_files",
		"lookup_widget",
		"list_widgets",
	}, names)
}

func TestIntegration_ResolveWidget(t *testing.T) {
	skipIfNotIntegration(t)
	lib, sd := fixtureLibrary(t)
	logFile := filepath.Join(t.TempDir(), "calls.jsonl")
	c := startServer(t, "--library-root", lib, "--styledef-root", sd, "--log-file", logFile)

	result := callToolHelper(t, c, "resolve_widget", map[string]any{"widget": "text"})
	require.False(t, result.IsError, extractJSON(t, result))

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(extractJSON(t, result)), &res))
	assert.Equal(t, "text", res["widgetName"])
	inheritance := res["inheritance"].(map[string]any)
	assert.Equal(t, []any{"WmBaseInputProps", "BaseProps"}, inheritance["chain"])

	result = callToolHelper(t, c, "resolve_widget", map[string]any{"file_path": "missing.props.js"})
	assert.True(t, result.IsError)

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(logFile)
		return err == nil && len(data) > 0
	}, 5*time.Second, 50*time.Millisecond)
}

func TestIntegration_LookupWidget(t *testing.T) {
	skipIfNotIntegration(t)
	c := startServer(t)

	result := callToolHelper(t, c, "lookup_widget", map[string]any{"name": "WmButton"})
	require.False(t, result.IsError)

	var w map[string]any
	require.NoError(t, json.Unmarshal([]byte(extractJSON(t, result)), &w))
	assert.Equal(t, "basic", w["category"])
}
