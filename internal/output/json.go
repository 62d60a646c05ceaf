package output

import (
	"encoding/json"
	"fmt"

	"github.com/jbweber/macbox/internal/build"
	"github.com/jbweber/macbox/internal/plan"
)

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// FormatPlan formats a plan as a JSON object.
func (f *JSONFormatter) FormatPlan(p plan.Plan) (string, error) {
	return marshalJSON(p, "plan")
}

// FormatReport formats a build report as a JSON object.
func (f *JSONFormatter) FormatReport(r *build.Report) (string, error) {
	return marshalJSON(r, "report")
}

// FormatBoxes formats box names as {"boxes": [...]}.
func (f *JSONFormatter) FormatBoxes(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	return marshalJSON(boxList{Boxes: names}, "box list")
}

func marshalJSON(v any, what string) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s to JSON: %w", what, err)
	}
	return string(data) + "\n", nil
}
