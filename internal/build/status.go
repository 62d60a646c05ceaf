package build

import (
	"fmt"
	"time"

	"github.com/jbweber/macbox/internal/plan"
)

// StepStatus is the outcome of one build step.
type StepStatus string

const (
	// StepNotPlanned means the planner did not schedule the step.
	StepNotPlanned StepStatus = "NotPlanned"
	// StepPending means the step is scheduled but has not run yet.
	StepPending StepStatus = "Pending"
	// StepSkipped means the step's output appeared before it ran.
	StepSkipped StepStatus = "Skipped"
	// StepCompleted means the step ran successfully.
	StepCompleted StepStatus = "Completed"
	// StepFailed means the step ran and failed.
	StepFailed StepStatus = "Failed"
)

// IsTerminal returns true if no further transition is possible.
func (s StepStatus) IsTerminal() bool {
	return s != StepPending
}

// StepResult records what happened to one action.
type StepResult struct {
	Action  string     `yaml:"action" json:"action"`
	Status  StepStatus `yaml:"status" json:"status"`
	Message string     `yaml:"message,omitempty" json:"message,omitempty"`
}

// Report summarizes a build run.
type Report struct {
	RunID      string       `yaml:"run_id" json:"run_id"`
	Plan       plan.Plan    `yaml:"plan" json:"plan"`
	Steps      []StepResult `yaml:"steps" json:"steps"`
	StartedAt  time.Time    `yaml:"started_at" json:"started_at"`
	FinishedAt time.Time    `yaml:"finished_at,omitempty" json:"finished_at,omitempty"`
}

// newReport creates a report with every action pending or not planned.
func newReport(runID string, p plan.Plan) *Report {
	r := &Report{RunID: runID, Plan: p, StartedAt: time.Now()}
	for _, action := range plan.AllActions() {
		status := StepNotPlanned
		if p.Actions.Has(action) {
			status = StepPending
		}
		r.Steps = append(r.Steps, StepResult{Action: action.String(), Status: status})
	}
	return r
}

// transition moves a pending step to a terminal status.
func (r *Report) transition(action plan.Action, status StepStatus, message string) error {
	for i := range r.Steps {
		if r.Steps[i].Action != action.String() {
			continue
		}
		if r.Steps[i].Status != StepPending {
			return fmt.Errorf("cannot transition %s to %s from %s", action, status, r.Steps[i].Status)
		}
		r.Steps[i].Status = status
		r.Steps[i].Message = message
		return nil
	}
	return fmt.Errorf("unknown action %s", action)
}

// Step returns the result for action.
func (r *Report) Step(action plan.Action) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Action == action.String() {
			return s, true
		}
	}
	return StepResult{}, false
}

// Count returns how many steps ended with status.
func (r *Report) Count(status StepStatus) int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == status {
			n++
		}
	}
	return n
}
