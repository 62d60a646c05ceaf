package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestCLIHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(FormatText, &buf, slog.LevelInfo)

	logger.With("run_id", "abc").Info("Creating base box...", "box", "/opt/macbox/box/macos1012.box", "name", "macos1012")

	want := "-- Creating base box... run_id=abc box=/opt/macbox/box/macos1012.box name=macos1012\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestCLIHandlerColorsByLevel(t *testing.T) {
	var buf bytes.Buffer
	renderer := lipgloss.NewRenderer(&buf, termenv.WithProfile(termenv.ANSI))
	logger := slog.New(newCLIHandler(&buf, slog.LevelInfo, renderer))

	tests := []struct {
		name string
		log  func(msg string)
		want string
	}{
		{name: "error is red", log: func(msg string) { logger.Error(msg) }, want: "\x1b[31m-- "},
		{name: "warn is yellow", log: func(msg string) { logger.Warn(msg) }, want: "\x1b[33m-- "},
		{name: "info is green", log: func(msg string) { logger.Info(msg) }, want: "\x1b[32m-- "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log("Image not found.")

			got := buf.String()
			if !strings.HasPrefix(got, tt.want+"Image not found.") {
				t.Errorf("output = %q, want prefix %q", got, tt.want+"Image not found.")
			}
			if !strings.Contains(got, "\x1b[0m") {
				t.Errorf("output = %q, want a reset sequence", got)
			}
		})
	}
}

func TestCLIHandlerQuotesAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := New(FormatText, &buf, nil)

	logger.WithGroup("step").Error("failed", "installer", "/Applications/Install macOS Sierra.app", "err", errors.New("boom"))

	got := buf.String()
	for _, want := range []string{
		"-- failed",
		`step.installer="/Applications/Install macOS Sierra.app"`,
		"step.err=boom",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}

func TestCLIHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(FormatText, &buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Debug("hidden")
	logger.Warn("shown")

	if got := buf.String(); got != "-- shown\n" {
		t.Errorf("output = %q, want only the warning", got)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(FormatJSON, &buf, slog.LevelInfo)

	logger.Info("Added base box.", "name", "macos1012")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "Added base box." || record["name"] != "macos1012" {
		t.Errorf("record = %v", record)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "", want: slog.LevelInfo},
		{input: "debug", want: slog.LevelDebug},
		{input: "WARN", want: slog.LevelWarn},
		{input: " error ", want: slog.LevelError},
		{input: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: FormatText},
		{input: "text", want: FormatText},
		{input: "JSON", want: FormatJSON},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
