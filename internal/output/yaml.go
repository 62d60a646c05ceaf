package output

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/macbox/internal/build"
	"github.com/jbweber/macbox/internal/plan"
)

// YAMLFormatter formats results as YAML.
type YAMLFormatter struct{}

// FormatPlan formats a plan as a YAML document.
func (f *YAMLFormatter) FormatPlan(p plan.Plan) (string, error) {
	return marshalYAML(p, "plan")
}

// FormatReport formats a build report as a YAML document.
func (f *YAMLFormatter) FormatReport(r *build.Report) (string, error) {
	return marshalYAML(r, "report")
}

// FormatBoxes formats box names as a YAML document with a boxes list.
func (f *YAMLFormatter) FormatBoxes(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	return marshalYAML(boxList{Boxes: names}, "box list")
}

func marshalYAML(v any, what string) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s to YAML: %w", what, err)
	}
	return string(data), nil
}
