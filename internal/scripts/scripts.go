// Package scripts wraps the helper shell scripts in the bin directory.
// Each wrapper builds the script's argument list and the privilege it runs
// with; the scripts themselves are opaque. Only version detection captures
// output; the build scripts stream theirs to the user.
package scripts

import (
	"context"
	"fmt"
	"strings"

	"github.com/jbweber/macbox/internal/config"
	"github.com/jbweber/macbox/internal/runner"
)

// Helper script file names.
const (
	GetInstallerVersion    = "get_installer_version.sh"
	CreateAutoinstallImage = "create_autoinstall_image.sh"
	CreateBaseBox          = "create_base_box.sh"
	CreateFlavorBox        = "create_flavor_box.sh"
)

// Scripts runs helper scripts from the layout's bin directory.
type Scripts struct {
	runner runner.Runner
	layout config.Layout
}

// New returns Scripts that runs helpers from layout.BinDir through r.
func New(r runner.Runner, layout config.Layout) *Scripts {
	return &Scripts{runner: r, layout: layout}
}

// InstallerVersion reads the OS version from an installer app. The
// returned version has surrounding whitespace trimmed and may be empty.
func (s *Scripts) InstallerVersion(ctx context.Context, installerPath string) (string, error) {
	res, err := runner.RunChecked(ctx, s.runner, runner.Command{
		Name:      s.layout.ScriptPath(GetInstallerVersion),
		Args:      []string{installerPath},
		Privilege: runner.Elevated,
	})
	if err != nil {
		return "", fmt.Errorf("failed to read installer version: %w", err)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// CreateImage builds an autoinstall disk image from the installer app.
func (s *Scripts) CreateImage(ctx context.Context, installerPath, imagePath string) error {
	_, err := runner.RunChecked(ctx, s.runner, runner.Command{
		Name:      s.layout.ScriptPath(CreateAutoinstallImage),
		Args:      []string{installerPath, imagePath},
		Privilege: runner.Elevated,
		Stream:    true,
	})
	if err != nil {
		return fmt.Errorf("failed to create autoinstall image: %w", err)
	}
	return nil
}

// CreateBaseBox packages a base box from a disk image.
func (s *Scripts) CreateBaseBox(ctx context.Context, imagePath, boxPath, boxName string) error {
	_, err := runner.RunChecked(ctx, s.runner, runner.Command{
		Name:      s.layout.ScriptPath(CreateBaseBox),
		Args:      []string{imagePath, boxPath, boxName},
		Privilege: runner.Unprivileged,
		Stream:    true,
	})
	if err != nil {
		return fmt.Errorf("failed to create base box: %w", err)
	}
	return nil
}

// CreateFlavorBox packages a flavor box on top of a registered base box.
func (s *Scripts) CreateFlavorBox(ctx context.Context, baseBoxName, flavorPath, boxPath, boxName string) error {
	_, err := runner.RunChecked(ctx, s.runner, runner.Command{
		Name:      s.layout.ScriptPath(CreateFlavorBox),
		Args:      []string{baseBoxName, flavorPath, boxPath, boxName},
		Privilege: runner.Unprivileged,
		Stream:    true,
	})
	if err != nil {
		return fmt.Errorf("failed to create flavor box: %w", err)
	}
	return nil
}
