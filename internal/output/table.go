package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/jbweber/macbox/internal/build"
	"github.com/jbweber/macbox/internal/plan"
)

// TableFormatter formats results as human-readable tables.
type TableFormatter struct {
	// NoHeaders omits the header rows.
	NoHeaders bool
}

// FormatPlan writes one row per action followed by the resolved options.
func (f *TableFormatter) FormatPlan(p plan.Plan) (string, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "STEP\tPLANNED")
	}
	for _, action := range plan.AllActions() {
		planned := "no"
		if p.Actions.Has(action) {
			planned = "yes"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", action, planned)
	}
	_ = w.Flush()

	if p.Empty() {
		buf.WriteString("\nNothing to do.\n")
		return buf.String(), nil
	}

	buf.WriteByte('\n')
	w = tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "SETTING\tVALUE")
	}
	for _, row := range planSettings(p) {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	_ = w.Flush()

	return buf.String(), nil
}

// planSettings lists the options a reader needs to predict the run.
func planSettings(p plan.Plan) [][2]string {
	o := p.Options
	version := p.Version
	if version == "" && p.Pending() {
		version = "(read from installer)"
	}
	return [][2]string{
		{"installer", dash(o.InstallerPath)},
		{"version", dash(version)},
		{"image", pendingDash(p, o.ImagePath)},
		{"base box", pendingDash(p, o.BaseBoxName)},
		{"base box path", pendingDash(p, o.BaseBoxPath)},
		{"flavor", dash(o.FlavorName)},
		{"flavor box", pendingDash(p, o.FlavorBoxName)},
		{"flavor box path", pendingDash(p, o.FlavorBoxPath)},
	}
}

// FormatReport writes one row per action with its outcome.
func (f *TableFormatter) FormatReport(r *build.Report) (string, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "STEP\tSTATUS\tMESSAGE")
	}
	for _, step := range r.Steps {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", step.Action, step.Status, dash(step.Message))
	}
	_ = w.Flush()

	if !r.FinishedAt.IsZero() {
		_, _ = fmt.Fprintf(&buf, "\nRun %s finished in %s\n", r.RunID, formatDuration(r.FinishedAt.Sub(r.StartedAt)))
	}
	return buf.String(), nil
}

// FormatBoxes writes one box name per row.
func (f *TableFormatter) FormatBoxes(names []string) (string, error) {
	if len(names) == 0 {
		return "No boxes found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME")
	}
	for _, name := range names {
		_, _ = fmt.Fprintln(w, name)
	}
	_ = w.Flush()
	return buf.String(), nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// pendingDash marks values that are only known after version detection.
func pendingDash(p plan.Plan, s string) string {
	if s == "" && p.Pending() {
		return "(after version)"
	}
	return dash(s)
}

// formatDuration formats a duration as a short human-readable string.
// Examples: "800ms", "42s", "3m12s", "1h5m"
func formatDuration(d time.Duration) string {
	if d < 0 {
		return "unknown"
	}
	switch {
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(time.Second).String()
	case d < time.Hour:
		d = d.Round(time.Second)
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		d = d.Round(time.Minute)
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
