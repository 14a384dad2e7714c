package util

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel represents the logging level
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// LogFormat represents the output format for logs
type LogFormat string

const (
	FormatJSON LogFormat = "json"
	FormatText LogFormat = "text"
)

// LoggerConfig holds the configuration for the logger
type LoggerConfig struct {
	Level  LogLevel
	Format LogFormat
	Output io.Writer
}

// DefaultLoggerConfig returns a logger config writing JSON to stderr.
// Stdout is reserved for command output and the MCP stdio transport.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LevelInfo,
		Format: FormatJSON,
		Output: os.Stderr,
	}
}

// ParseLoggerConfig builds a LoggerConfig from the loose strings found in
// config files and flags. Unknown values fall back to the defaults.
func ParseLoggerConfig(level, format string, out io.Writer) LoggerConfig {
	cfg := DefaultLoggerConfig()
	switch LogLevel(strings.ToLower(strings.TrimSpace(level))) {
	case LevelDebug:
		cfg.Level = LevelDebug
	case LevelWarn, "warning":
		cfg.Level = LevelWarn
	case LevelError:
		cfg.Level = LevelError
	}
	if LogFormat(strings.ToLower(strings.TrimSpace(format))) == FormatText {
		cfg.Format = FormatText
	}
	if out != nil {
		cfg.Output = out
	}
	return cfg
}

// Discard returns a logger that drops every record. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// NewLogger creates a new structured logger with the given configuration
func NewLogger(config LoggerConfig) *slog.Logger {
	level := parseLevel(config.Level)
	if config.Output == nil {
		config.Output = os.Stderr
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(config.Output, opts)
	case FormatText:
		handler = slog.NewTextHandler(config.Output, opts)
	default:
		handler = slog.NewJSONHandler(config.Output, opts)
	}

	return slog.New(handler)
}

// parseLevel converts a LogLevel to slog.Level
func parseLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetDefault sets the default logger for the slog package
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}

// Example usage:
//
//   logger := util.NewLogger(util.ParseLoggerConfig("debug", "text", os.Stderr))
//   logger.Debug("resolving widget", "path", "/lib/button/button.props.js")
//   logger.Warn("style definition missing", "widget", "button")
