// Package mcplog appends one JSON line per tool call to a log file.
package mcplog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// LogEntry is the schema for one JSONL line.
type LogEntry struct {
	Ts            string         `json:"ts"`
	CallID        string         `json:"call_id"`
	Tool          string         `json:"tool"`
	Params        map[string]any `json:"params"`
	DurationMs    int64          `json:"duration_ms"`
	ResponseBytes int            `json:"response_bytes"`
	IsError       bool           `json:"is_error"`
	Error         *string        `json:"error"`
}

// Logger appends entries to a file. Safe for concurrent use.
type Logger struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
}

// NewLogger opens (or creates) path for appending, creating parent
// directories. An empty path returns nil, nil; callers treat a nil Logger
// as disabled.
func NewLogger(path string) (*Logger, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mcplog: create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("mcplog: open log file: %w", err)
	}
	return &Logger{f: f, enc: json.NewEncoder(f)}, nil
}

// NewEntry starts an entry for one call with a fresh call id.
func NewEntry(tool string, args map[string]any, start time.Time) LogEntry {
	return LogEntry{
		Ts:     start.UTC().Format(time.RFC3339Nano),
		CallID: NewCallID(),
		Tool:   tool,
		Params: SanitizeParams(args),
	}
}

// Finish fills the outcome fields of e from a handler's return values.
func (e *LogEntry) Finish(result *mcp.CallToolResult, err error, elapsed time.Duration) {
	e.DurationMs = elapsed.Milliseconds()
	e.ResponseBytes = ResponseBytes(result)

	switch {
	case err != nil:
		msg := err.Error()
		e.Error = &msg
		e.IsError = true
	case result != nil && result.IsError:
		e.IsError = true
		if msg := resultText(result); msg != "" {
			e.Error = &msg
		}
	}
}

// Write appends a single entry. Callers usually ignore the error so that
// log failures never affect tool results.
func (l *Logger) Write(entry LogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enc.Encode(entry)
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}

// SanitizeParams returns a copy of args safe for logging. Strings longer
// than 256 bytes are replaced by a "<key>_len" entry.
func SanitizeParams(args map[string]any) map[string]any {
	const shortStringMax = 256
	out := make(map[string]any, len(args))
	for k, v := range args {
		if s, ok := v.(string); ok && len(s) > shortStringMax {
			out[k+"_len"] = len(s)
		} else {
			out[k] = v
		}
	}
	return out
}

// ResponseBytes returns the serialized length of a result's content, or 0
// for a nil result.
func ResponseBytes(result *mcp.CallToolResult) int {
	if result == nil {
		return 0
	}
	b, err := json.Marshal(result.Content)
	if err != nil {
		return 0
	}
	return len(b)
}

func resultText(result *mcp.CallToolResult) string {
	for _, c := range result.Content {
		if text, ok := c.(mcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}

// Now and NewCallID are replaceable for testing.
var (
	Now       = time.Now
	NewCallID = func() string { return uuid.NewString() }
)
