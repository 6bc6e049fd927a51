package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
)

// SlogLogger writes Logger records through log/slog
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger builds a logger writing to w. format is "json" or "text";
// level is one of the Level* constants (case-insensitive, "WARN" accepted).
func NewSlogLogger(w io.Writer, level, format string) (*SlogLogger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return &SlogLogger{logger: slog.New(handler)}, nil
}

// Slog exposes the underlying slog logger
func (l *SlogLogger) Slog() *slog.Logger {
	return l.logger
}

// With returns a logger that adds the given metadata to every record
func (l *SlogLogger) With(metadata map[string]interface{}) *SlogLogger {
	return &SlogLogger{logger: l.logger.With(attrs(metadata)...)}
}

func (l *SlogLogger) Log(level, message string, metadata map[string]interface{}) {
	lvl, err := parseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	l.logger.Log(context.Background(), lvl, message, attrs(metadata)...)
}

// attrs sorts keys so records are stable across runs
func attrs(metadata map[string]interface{}) []any {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, slog.Any(k, metadata[k]))
	}
	return out
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return slog.LevelDebug, nil
	case "", LevelInfo:
		return slog.LevelInfo, nil
	case LevelWarn, "WARN":
		return slog.LevelWarn, nil
	case LevelError:
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}
