package main

import (
	"fmt"
	"log/slog"

	"github.com/jbweber/macbox/internal/build"
	"github.com/jbweber/macbox/internal/config"
	"github.com/jbweber/macbox/internal/logging"
	"github.com/jbweber/macbox/internal/output"
	"github.com/jbweber/macbox/internal/plan"
	"github.com/jbweber/macbox/internal/runner"
	"github.com/jbweber/macbox/internal/scripts"
	"github.com/jbweber/macbox/internal/vagrant"
)

// app holds the dependencies a command run needs.
type app struct {
	settings *config.Settings
	logger   *slog.Logger
	registry *vagrant.Registry
	planner  *plan.Planner
	executor *build.Executor
}

// newApp wires the planner and executor against real commands. Logs go to
// streams.Stderr; build steps use all three streams.
func newApp(settings *config.Settings, streams runner.Streams) (*app, error) {
	level, err := logging.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(settings.LogFormat)
	if err != nil {
		return nil, err
	}
	logger := logging.New(format, streams.Stderr, level)
	slog.SetDefault(logger)

	layout := settings.Layout()
	r := runner.NewExecRunner(runner.CurrentPrivileges(), streams, logger)
	registry := vagrant.NewRegistry(r, settings.VagrantCommand)

	logger.Debug("Loaded configuration.", "root", layout.Root, "vagrant", settings.VagrantCommand)

	return &app{
		settings: settings,
		logger:   logger,
		registry: registry,
		planner:  plan.NewPlanner(plan.OSFileSystem{}, registry, layout, settings.InstallerSearchPaths),
		executor: build.NewExecutor(plan.OSFileSystem{}, registry, scripts.New(r, layout), logger),
	}, nil
}

// newFormatter validates format and builds the matching formatter.
func newFormatter(format string) (output.Formatter, error) {
	if err := output.ValidateFormat(format); err != nil {
		return nil, err
	}
	return output.NewFormatter(output.Options{
		Format:    output.Format(format),
		NoHeaders: noHeaders,
	})
}

func printReport(report *build.Report) error {
	formatter, err := newFormatter(reportFormat)
	if err != nil {
		return err
	}
	result, err := formatter.FormatReport(report)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Print(result)
	return nil
}
