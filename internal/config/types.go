package config

import (
	"path/filepath"
	"strings"
)

// Options is the set of artifact names and paths a build works with.
// Fields left empty are either resolved by the planner from naming
// conventions or are not needed for the planned steps.
type Options struct {
	InstallerPath string `yaml:"installer_path,omitempty" json:"installer_path,omitempty"`
	ImagePath     string `yaml:"image_path,omitempty" json:"image_path,omitempty"`
	BaseBoxName   string `yaml:"base_box_name,omitempty" json:"base_box_name,omitempty"`
	BaseBoxPath   string `yaml:"base_box_path,omitempty" json:"base_box_path,omitempty"`
	FlavorName    string `yaml:"flavor_name,omitempty" json:"flavor_name,omitempty"`
	FlavorPath    string `yaml:"flavor_path,omitempty" json:"flavor_path,omitempty"`
	FlavorBoxName string `yaml:"flavor_box_name,omitempty" json:"flavor_box_name,omitempty"`
	FlavorBoxPath string `yaml:"flavor_box_path,omitempty" json:"flavor_box_path,omitempty"`
}

// FlavorRequested reports whether a flavor box should be produced.
func (o Options) FlavorRequested() bool {
	return o.FlavorName != ""
}

// Normalize trims surrounding whitespace from every field so that a flag
// given as " " counts as unset.
func (o *Options) Normalize() {
	o.InstallerPath = strings.TrimSpace(o.InstallerPath)
	o.ImagePath = strings.TrimSpace(o.ImagePath)
	o.BaseBoxName = strings.TrimSpace(o.BaseBoxName)
	o.BaseBoxPath = strings.TrimSpace(o.BaseBoxPath)
	o.FlavorName = strings.TrimSpace(o.FlavorName)
	o.FlavorPath = strings.TrimSpace(o.FlavorPath)
	o.FlavorBoxName = strings.TrimSpace(o.FlavorBoxName)
	o.FlavorBoxPath = strings.TrimSpace(o.FlavorBoxPath)
}

// Layout is the fixed directory structure below the macbox root.
//
//	<root>/bin     helper scripts
//	<root>/dmg     autoinstall images
//	<root>/box     packaged boxes
//	<root>/flavor  flavor customizations
type Layout struct {
	Root      string `yaml:"root" json:"root"`
	BinDir    string `yaml:"bin_dir" json:"bin_dir"`
	ImageDir  string `yaml:"image_dir" json:"image_dir"`
	BoxDir    string `yaml:"box_dir" json:"box_dir"`
	FlavorDir string `yaml:"flavor_dir" json:"flavor_dir"`
}

// NewLayout returns the layout rooted at root.
func NewLayout(root string) Layout {
	return Layout{
		Root:      root,
		BinDir:    filepath.Join(root, "bin"),
		ImageDir:  filepath.Join(root, "dmg"),
		BoxDir:    filepath.Join(root, "box"),
		FlavorDir: filepath.Join(root, "flavor"),
	}
}

// ScriptPath returns the path of a helper script in the bin directory.
func (l Layout) ScriptPath(name string) string {
	return filepath.Join(l.BinDir, name)
}
