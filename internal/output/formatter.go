// Package output provides formatters for displaying build plans, build
// reports and registered boxes in various formats (table, YAML, JSON).
package output

import (
	"fmt"

	"github.com/jbweber/macbox/internal/build"
	"github.com/jbweber/macbox/internal/plan"
)

// Format represents an output format type.
type Format string

const (
	// FormatTable is a human-readable table format.
	FormatTable Format = "table"
	// FormatYAML is a YAML format.
	FormatYAML Format = "yaml"
	// FormatJSON is a JSON format for machine consumption.
	FormatJSON Format = "json"
)

// Formatter formats macbox results for output.
type Formatter interface {
	// FormatPlan formats the steps and resolved options of a plan.
	FormatPlan(p plan.Plan) (string, error)

	// FormatReport formats the outcome of a build run.
	FormatReport(r *build.Report) (string, error)

	// FormatBoxes formats a list of registered box names.
	FormatBoxes(names []string) (string, error)
}

// Options contains options for formatting output.
type Options struct {
	// Format specifies the output format.
	Format Format
	// NoHeaders omits headers in table format.
	NoHeaders bool
}

// NewFormatter creates a new Formatter based on the specified format.
func NewFormatter(opts Options) (Formatter, error) {
	switch opts.Format {
	case FormatTable:
		return &TableFormatter{NoHeaders: opts.NoHeaders}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: table, yaml, json)", opts.Format)
	}
}

// ValidateFormat checks if a format string is valid.
func ValidateFormat(format string) error {
	switch Format(format) {
	case FormatTable, FormatYAML, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid formats: table, yaml, json)", format)
	}
}

// boxList is the document shape for structured box listings.
type boxList struct {
	Boxes []string `yaml:"boxes" json:"boxes"`
}
