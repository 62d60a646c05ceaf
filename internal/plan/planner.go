// Package plan decides which build steps a run still needs.
//
// The artifact chain, from least to most finished, is:
//
//	installer app → OS version → disk image → base box file →
//	base box registered → flavor box file → flavor box registered
//
// Planning walks the chain from the most finished artifact backwards and
// stops at the first one that is already present, so an existing artifact
// never causes anything before it to be rebuilt. Names and paths the user
// left out are filled in from the conventions in the naming package, but
// only for the steps that are actually planned.
//
// The planner performs no builds. Its only side effects are existence
// checks against the filesystem and the box registry.
package plan

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jbweber/macbox/internal/config"
	"github.com/jbweber/macbox/internal/installer"
	"github.com/jbweber/macbox/internal/naming"
)

// FileSystem reports whether a path exists.
type FileSystem interface {
	Exists(path string) bool
}

// BoxRegistry reports whether a box name is registered.
type BoxRegistry interface {
	IsRegistered(ctx context.Context, name string) (bool, error)
}

// OSFileSystem checks the local filesystem.
type OSFileSystem struct{}

// Exists reports whether path can be stat'ed.
func (OSFileSystem) Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Plan is the outcome of planning: the enriched options and the steps to
// run.
type Plan struct {
	Options config.Options `yaml:"options" json:"options"`
	Actions Actions        `yaml:"actions" json:"actions"`
	Layout  config.Layout  `yaml:"layout" json:"layout"`

	// Version is the detected OS version, set by WithVersion.
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
}

// Steps returns the planned actions in execution order.
func (p Plan) Steps() []Action {
	return p.Actions.List()
}

// Empty reports whether there is nothing to do.
func (p Plan) Empty() bool {
	return p.Actions.Empty()
}

// Pending reports whether resolution waits on version detection.
func (p Plan) Pending() bool {
	return p.Actions.GetVersion && p.Version == ""
}

// WithVersion returns the plan completed with a detected OS version: the
// image path and base box name default to macos<version>, and all
// remaining defaults are resolved.
func (p Plan) WithVersion(version string) (Plan, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return p, fmt.Errorf("%w: could not read the OS version from the installer app", ErrEmptyVersion)
	}

	p.Version = version
	if p.Options.ImagePath == "" {
		p.Options.ImagePath = naming.ImagePathFromVersion(p.Layout.ImageDir, version)
	}
	if p.Options.BaseBoxName == "" {
		p.Options.BaseBoxName = naming.BaseBoxNameFromVersion(version)
	}
	return p.resolve()
}

// resolve fills in defaults for the planned steps and checks that every
// name and path they need is known.
func (p Plan) resolve() (Plan, error) {
	o := &p.Options
	a := p.Actions

	if (a.CreateImage || a.CreateBaseBox) && o.ImagePath == "" {
		return p, fmt.Errorf("%w: image path not specified", ErrMissingInput)
	}

	if a.CreateBaseBox || a.AddBaseBox || a.CreateFlavorBox {
		if o.BaseBoxName == "" && o.BaseBoxPath != "" {
			o.BaseBoxName = naming.BoxNameFromPath(o.BaseBoxPath)
		}
		if o.BaseBoxName == "" {
			return p, fmt.Errorf("%w: base box name not specified", ErrMissingInput)
		}
		if o.BaseBoxPath == "" {
			o.BaseBoxPath = naming.BoxPath(p.Layout.BoxDir, o.BaseBoxName)
		}
	}

	if a.CreateFlavorBox || a.AddFlavorBox {
		if o.FlavorBoxName == "" {
			switch {
			case o.BaseBoxName != "":
				o.FlavorBoxName = naming.FlavorBoxName(o.BaseBoxName, o.FlavorName)
			case o.FlavorBoxPath != "":
				o.FlavorBoxName = naming.BoxNameFromPath(o.FlavorBoxPath)
			}
		}
		if o.FlavorBoxName == "" {
			return p, fmt.Errorf("%w: flavor box name not specified", ErrMissingInput)
		}
		if o.FlavorBoxPath == "" {
			o.FlavorBoxPath = naming.BoxPath(p.Layout.BoxDir, o.FlavorBoxName)
		}
	}

	return p, nil
}

// Planner computes plans against a filesystem and a box registry.
type Planner struct {
	fs                   FileSystem
	registry             BoxRegistry
	layout               config.Layout
	installerSearchPaths []string
}

// NewPlanner creates a Planner. installerSearchPaths is tried in order when
// no installer path is given.
func NewPlanner(fs FileSystem, registry BoxRegistry, layout config.Layout, installerSearchPaths []string) *Planner {
	return &Planner{
		fs:                   fs,
		registry:             registry,
		layout:               layout,
		installerSearchPaths: installerSearchPaths,
	}
}

// Plan determines the steps needed for opts.
//
// When version detection is planned the returned plan is Pending: the
// version-derived defaults are applied by Plan.WithVersion once the
// version is known.
func (p *Planner) Plan(ctx context.Context, opts config.Options) (Plan, error) {
	opts.Normalize()
	opts.FlavorPath = ""

	if opts.FlavorRequested() {
		opts.FlavorPath = naming.FlavorPath(p.layout.FlavorDir, opts.FlavorName)
		if !p.fs.Exists(opts.FlavorPath) {
			return Plan{}, fmt.Errorf("%w: flavor %q not found at %s", ErrMissingFile, opts.FlavorName, opts.FlavorPath)
		}
	}

	actions, err := p.walk(ctx, opts)
	if err != nil {
		return Plan{}, err
	}

	if actions.GetVersion || actions.CreateImage {
		path, err := installer.Locate(p.fs, opts.InstallerPath, p.installerSearchPaths)
		if err != nil {
			return Plan{}, fmt.Errorf("%w: %w", ErrMissingFile, err)
		}
		opts.InstallerPath = path
	}

	if actions.CreateBaseBox && opts.ImagePath != "" && opts.BaseBoxName == "" {
		opts.BaseBoxName = naming.BaseBoxNameFromImage(opts.ImagePath)
	}

	result := Plan{Options: opts, Actions: actions, Layout: p.layout}
	if result.Pending() {
		return result, nil
	}
	return result.resolve()
}

// walk marks steps from the most finished artifact backwards, stopping at
// the first artifact that is already present.
func (p *Planner) walk(ctx context.Context, o config.Options) (Actions, error) {
	var a Actions

	if o.FlavorRequested() {
		registered, err := p.isRegistered(ctx, o.FlavorBoxName)
		if err != nil || registered {
			return a, err
		}
		a.AddFlavorBox = true
		if p.fs.Exists(o.FlavorBoxPath) {
			return a, nil
		}
		a.CreateFlavorBox = true
	}

	registered, err := p.isRegistered(ctx, o.BaseBoxName)
	if err != nil || registered {
		return a, err
	}
	a.AddBaseBox = true
	if p.fs.Exists(o.BaseBoxPath) {
		return a, nil
	}
	a.CreateBaseBox = true
	if p.fs.Exists(o.ImagePath) {
		return a, nil
	}
	a.CreateImage = true
	// A specified image path is enough to skip version detection, even if
	// the file does not exist yet: the version only names the default path.
	if o.ImagePath != "" {
		return a, nil
	}
	a.GetVersion = true
	return a, nil
}

func (p *Planner) isRegistered(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, nil
	}
	registered, err := p.registry.IsRegistered(ctx, name)
	if err != nil {
		return false, fmt.Errorf("failed to query box registry for %s: %w", name, err)
	}
	return registered, nil
}
