// Package logging builds the slog loggers used by the CLI.
//
// The CLI format prints one "-- message key=value" line per record, colored
// by level when the writer is a terminal. The JSON format uses slog's JSON
// handler unchanged.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Format selects the handler used when constructing a logger.
type Format string

const (
	// FormatText renders records in the terse CLI format.
	FormatText Format = "text"
	// FormatJSON renders records as JSON.
	FormatJSON Format = "json"
)

// New constructs a logger writing to w in the requested format.
// If level is nil, slog.LevelInfo is used.
func New(format Format, w io.Writer, level slog.Leveler) *slog.Logger {
	if w == nil {
		panic("logging: writer must not be nil")
	}
	if level == nil {
		level = slog.LevelInfo
	}

	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(newCLIHandler(w, level, lipgloss.NewRenderer(w)))
}

// ParseFormat converts a format name. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown log format %q (valid: text, json)", s)
	}
}

// ParseLevel converts a level name such as "debug" or "WARN". The empty
// string means info.
func ParseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q: %w", s, err)
	}
	return level, nil
}
