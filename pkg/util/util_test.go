package util

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOptimalPoolSize_Bounds(t *testing.T) {
	size := GetOptimalPoolSize()
	assert.GreaterOrEqual(t, size, minPoolSize)
	assert.LessOrEqual(t, size, maxPoolSize)
}

func TestGetOptimalPoolSizeWithOverride(t *testing.T) {
	assert.Equal(t, 3, GetOptimalPoolSizeWithOverride(3))
	assert.Equal(t, GetOptimalPoolSize(), GetOptimalPoolSizeWithOverride(0))
	assert.Equal(t, GetOptimalPoolSize(), GetOptimalPoolSizeWithOverride(-1))
}

func TestParseLoggerConfig(t *testing.T) {
	cfg := ParseLoggerConfig(" DEBUG ", "text", nil)
	assert.Equal(t, LevelDebug, cfg.Level)
	assert.Equal(t, FormatText, cfg.Format)
	assert.NotNil(t, cfg.Output)

	cfg = ParseLoggerConfig("warning", "yaml", nil)
	assert.Equal(t, LevelWarn, cfg.Level)
	assert.Equal(t, FormatJSON, cfg.Format)

	cfg = ParseLoggerConfig("loud", "", nil)
	assert.Equal(t, LevelInfo, cfg.Level)
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(ParseLoggerConfig("info", "json", &buf))

	logger.Debug("hidden")
	logger.Info("resolved widget", "widget", "button", "props", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "resolved widget", record["msg"])
	assert.Equal(t, "button", record["widget"])
	assert.Equal(t, float64(3), record["props"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LevelWarn, Format: FormatText, Output: &buf})

	logger.Info("hidden")
	logger.Warn("style definition missing", "widget", "label")
	assert.Contains(t, buf.String(), "style definition missing")
	assert.Contains(t, buf.String(), "widget=label")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
