// Package naming provides the naming conventions for build artifacts:
// disk images, base boxes, and flavor boxes. Every default name or path
// macbox derives comes from a function in this package.
//
// These rules are pure string operations and never touch the filesystem.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// ImageExtension is the file extension of autoinstall disk images.
	ImageExtension = ".dmg"

	// BoxExtension is the file extension of packaged Vagrant boxes.
	BoxExtension = ".box"

	// boxPrefix prefixes every version-derived box name.
	boxPrefix = "macos"
)

// BaseBoxNameFromVersion returns the base box name for an OS version.
//
// Example: "1012" → "macos1012"
func BaseBoxNameFromVersion(version string) string {
	return boxPrefix + version
}

// ImagePathFromVersion returns the default image path for an OS version.
// Format: {imageDir}/macos{version}.dmg
//
// Example: ("/opt/macbox/dmg", "1012") → "/opt/macbox/dmg/macos1012.dmg"
func ImagePathFromVersion(imageDir, version string) string {
	return filepath.Join(imageDir, BaseBoxNameFromVersion(version)+ImageExtension)
}

// BaseBoxNameFromImage returns the base box name for an image path: the
// file's basename with its extension stripped.
//
// Example: "/tmp/x.dmg" → "x"
func BaseBoxNameFromImage(imagePath string) string {
	return stripExtension(filepath.Base(imagePath))
}

// BoxNameFromPath returns the box name implied by a box file path: the
// basename with a trailing ".box" removed.
//
// Example: "/opt/macbox/box/macos1012.box" → "macos1012"
func BoxNameFromPath(boxPath string) string {
	return strings.TrimSuffix(filepath.Base(boxPath), BoxExtension)
}

// BoxPath returns the path of a box file inside boxDir.
// Format: {boxDir}/{name}.box
func BoxPath(boxDir, name string) string {
	return filepath.Join(boxDir, name+BoxExtension)
}

// FlavorPath returns the directory holding a flavor's customizations.
// Format: {flavorDir}/{flavor}
func FlavorPath(flavorDir, flavor string) string {
	return filepath.Join(flavorDir, flavor)
}

// FlavorBoxName derives a flavor box name from its base box name. The last
// hyphen-delimited segment of the base name is replaced by the flavor; a base
// name without a hyphen is simply suffixed.
//
// Examples:
//
//	("macos1012-beta", "server") → "macos1012-server"
//	("foo", "server")            → "foo-server"
//	("foo-", "server")           → "foo-server"
func FlavorBoxName(baseBoxName, flavor string) string {
	stem := baseBoxName
	if i := strings.LastIndex(baseBoxName, "-"); i >= 0 {
		stem = baseBoxName[:i]
	}
	return fmt.Sprintf("%s-%s", stem, flavor)
}

// stripExtension removes the final extension from a file name, keeping dot
// files such as ".dmg" intact.
func stripExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}
