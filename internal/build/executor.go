// Package build runs a plan's steps against the helper scripts and the
// Vagrant registry.
//
// Steps run in a fixed order: get-version, create-image, create-base-box,
// add-base-box, create-flavor-box, add-flavor-box. Immediately before a
// step runs, the executor checks again whether its output already exists
// and skips it if so, which keeps reruns idempotent when the plan is stale.
//
// Error Handling:
//
// Every failure is fatal. The run stops at the failing step and nothing
// that was already produced is rolled back.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jbweber/macbox/internal/config"
	"github.com/jbweber/macbox/internal/plan"
)

// Executor runs build plans.
type Executor struct {
	fs       fileSystem
	registry boxRegistry
	scripts  scriptRunner
	logger   *slog.Logger
}

// NewExecutor creates an Executor. A nil logger uses slog.Default().
func NewExecutor(fs fileSystem, registry boxRegistry, scripts scriptRunner, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{fs: fs, registry: registry, scripts: scripts, logger: logger}
}

// Execute runs every planned step in order and returns a report of what
// happened. The report is returned on failure too, with the failing step
// marked Failed.
func (e *Executor) Execute(ctx context.Context, p plan.Plan) (*Report, error) {
	report := newReport(uuid.New().String(), p)
	logger := e.logger.With("run_id", report.RunID)

	if p.Empty() {
		logger.Info("Nothing to do.")
		report.FinishedAt = time.Now()
		return report, nil
	}

	for _, action := range p.Steps() {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		var (
			skipped bool
			message string
			err     error
		)
		switch action {
		case plan.ActionGetVersion:
			p, message, err = e.getVersion(ctx, logger, p)
			report.Plan = p
		case plan.ActionCreateImage:
			skipped, err = e.createImage(ctx, logger, p.Options)
		case plan.ActionCreateBaseBox:
			skipped, err = e.createBaseBox(ctx, logger, p.Options)
		case plan.ActionAddBaseBox:
			skipped, err = e.addBox(ctx, logger, "base box", p.Options.BaseBoxPath, p.Options.BaseBoxName)
		case plan.ActionCreateFlavorBox:
			skipped, err = e.createFlavorBox(ctx, logger, p.Options)
		case plan.ActionAddFlavorBox:
			skipped, err = e.addBox(ctx, logger, "flavor box", p.Options.FlavorBoxPath, p.Options.FlavorBoxName)
		default:
			err = fmt.Errorf("unsupported action %s", action)
		}

		status := StepCompleted
		switch {
		case err != nil:
			status = StepFailed
			message = err.Error()
		case skipped:
			status = StepSkipped
			message = "output already present"
		}
		if terr := report.transition(action, status, message); terr != nil {
			return report, terr
		}
		if err != nil {
			report.FinishedAt = time.Now()
			return report, fmt.Errorf("%s: %w", action, err)
		}
	}

	report.FinishedAt = time.Now()
	logger.Info("Build finished.",
		"completed", report.Count(StepCompleted),
		"skipped", report.Count(StepSkipped),
	)
	return report, nil
}

func (e *Executor) getVersion(ctx context.Context, logger *slog.Logger, p plan.Plan) (plan.Plan, string, error) {
	if !p.Pending() {
		return p, "version already known", nil
	}

	logger.Info("Getting OS version from installer app...", "installer", p.Options.InstallerPath)
	version, err := e.scripts.InstallerVersion(ctx, p.Options.InstallerPath)
	if err != nil {
		return p, "", err
	}

	resolved, err := p.WithVersion(version)
	if err != nil {
		return p, "", err
	}
	logger.Info(fmt.Sprintf("Found OS version '%s'.", resolved.Version))
	return resolved, "version " + resolved.Version, nil
}

func (e *Executor) createImage(ctx context.Context, logger *slog.Logger, o config.Options) (bool, error) {
	if e.fs.Exists(o.ImagePath) {
		logger.Info("Autoinstall image already exists.", "image", o.ImagePath)
		return true, nil
	}

	logger.Info("Creating autoinstall image...", "image", o.ImagePath)
	if err := e.scripts.CreateImage(ctx, o.InstallerPath, o.ImagePath); err != nil {
		return false, err
	}
	logger.Info("Created autoinstall image.")
	return false, nil
}

func (e *Executor) createBaseBox(ctx context.Context, logger *slog.Logger, o config.Options) (bool, error) {
	if e.fs.Exists(o.BaseBoxPath) {
		logger.Info("Base box already exists.", "box", o.BaseBoxPath)
		return true, nil
	}
	if !e.fs.Exists(o.ImagePath) {
		return false, fmt.Errorf("%w: image %s", plan.ErrMissingFile, o.ImagePath)
	}

	logger.Info("Creating base box...", "box", o.BaseBoxPath, "name", o.BaseBoxName)
	if err := e.scripts.CreateBaseBox(ctx, o.ImagePath, o.BaseBoxPath, o.BaseBoxName); err != nil {
		return false, err
	}
	logger.Info("Created base box.")
	return false, nil
}

func (e *Executor) createFlavorBox(ctx context.Context, logger *slog.Logger, o config.Options) (bool, error) {
	if e.fs.Exists(o.FlavorBoxPath) {
		logger.Info("Flavor box already exists.", "box", o.FlavorBoxPath)
		return true, nil
	}

	logger.Info("Creating flavor box...", "box", o.FlavorBoxPath, "name", o.FlavorBoxName, "flavor", o.FlavorName)
	if err := e.scripts.CreateFlavorBox(ctx, o.BaseBoxName, o.FlavorPath, o.FlavorBoxPath, o.FlavorBoxName); err != nil {
		return false, err
	}
	logger.Info("Created flavor box.")
	return false, nil
}

// addBox registers a box file unless a box with that name already is.
func (e *Executor) addBox(ctx context.Context, logger *slog.Logger, kind, path, name string) (bool, error) {
	registered, err := e.registry.IsRegistered(ctx, name)
	if err != nil {
		return false, err
	}
	if registered {
		logger.Info(fmt.Sprintf("%s already added.", capitalize(kind)), "name", name)
		return true, nil
	}

	logger.Info(fmt.Sprintf("Adding %s...", kind), "box", path, "name", name)
	if err := e.registry.Add(ctx, path, name); err != nil {
		return false, err
	}
	logger.Info(fmt.Sprintf("Added %s.", kind))
	return false, nil
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
