// Package logger provides structured logging for the refstats pipeline.
//
// The logger supports multiple log levels (DEBUG, INFO, WARN, ERROR) and writes
// one structured record per line, as JSON by default or as logfmt-style text.
// Records carry a timestamp, level, message and arbitrary structured fields.
//
// Example usage:
//
//	logger.Info("season aggregated", logger.Fields{
//	    "league": "Champions",
//	    "rows_in": 412,
//	})
//
//	logger.Error("load failed", logger.Fields{
//	    "path": path,
//	}, err)
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Format selects the line encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Fields represents structured log fields
type Fields map[string]interface{}

// Logger provides structured logging
type Logger struct {
	slog *slog.Logger
}

var defaultLogger *Logger

func init() {
	defaultLogger = New(LevelInfo, os.Stderr, FormatJSON)
}

// New creates a new logger with the specified minimum log level, output and format.
// Messages below the minimum level are discarded.
func New(level Level, output io.Writer, format Format) *Logger {
	opts := &slog.HandlerOptions{
		Level:       toSlog(level),
		ReplaceAttr: renameKeys,
	}

	var h slog.Handler
	if format == FormatText {
		h = slog.NewTextHandler(output, opts)
	} else {
		h = slog.NewJSONHandler(output, opts)
	}

	return &Logger{slog: slog.New(h)}
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToUpper(strings.TrimSpace(s))) {
	case LevelDebug:
		return LevelDebug, nil
	case "", LevelInfo:
		return LevelInfo, nil
	case LevelWarn, "WARNING":
		return LevelWarn, nil
	case LevelError:
		return LevelError, nil
	default:
		return "", fmt.Errorf("invalid log level: %s", s)
	}
}

// ParseFormat converts "json" or "text" to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatText:
		return FormatText, nil
	default:
		return "", fmt.Errorf("invalid log format: %s (must be 'json' or 'text')", s)
	}
}

// SetDefault sets the default package-level logger used by the convenience functions
// (Debug, Info, Warn, Error).
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Default returns the package-level logger.
func Default() *Logger {
	return defaultLogger
}

// log writes a structured log entry with fields in key order
func (l *Logger) log(level Level, message string, fields Fields, err error) {
	lvl := toSlog(level)
	if !l.slog.Enabled(context.Background(), lvl) {
		return
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys)+1)
	if len(keys) > 0 {
		group := make([]any, 0, len(keys))
		for _, k := range keys {
			group = append(group, slog.Any(k, fields[k]))
		}
		attrs = append(attrs, slog.Group("fields", group...))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	l.slog.LogAttrs(context.Background(), lvl, message, attrs...)
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

// Info logs an informational message with optional structured fields.
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn logs a warning message with optional structured fields.
// Warning messages indicate potential data issues that don't stop a run.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, fields, nil)
}

// Error logs an error message with optional structured fields and an error object.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Package-level convenience functions using default logger

// Debug logs a debug message with the default logger
func Debug(message string, fields Fields) {
	defaultLogger.Debug(message, fields)
}

// Info logs an info message with the default logger
func Info(message string, fields Fields) {
	defaultLogger.Info(message, fields)
}

// Warn logs a warning message with the default logger
func Warn(message string, fields Fields) {
	defaultLogger.Warn(message, fields)
}

// Error logs an error message with the default logger
func Error(message string, fields Fields, err error) {
	defaultLogger.Error(message, fields, err)
}

func toSlog(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// renameKeys keeps the timestamp/level/message record shape with UTC RFC3339 times.
func renameKeys(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		return slog.String("timestamp", a.Value.Time().UTC().Format(time.RFC3339))
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}
