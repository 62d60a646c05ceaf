package build

import "context"

// fileSystem defines the existence checks the executor needs.
//
// In production, this is satisfied by plan.OSFileSystem.
// In tests, this is satisfied by mock implementations.
type fileSystem interface {
	// Exists reports whether path exists
	Exists(path string) bool
}

// boxRegistry defines the Vagrant registry operations needed for a build.
//
// In production, this is satisfied by *vagrant.Registry.
// In tests, this is satisfied by mock implementations.
type boxRegistry interface {
	// IsRegistered reports whether a box name is registered
	IsRegistered(ctx context.Context, name string) (bool, error)

	// Add registers a box file under a name
	Add(ctx context.Context, path, name string) error
}

// scriptRunner defines the helper scripts needed for a build.
//
// In production, this is satisfied by *scripts.Scripts.
// In tests, this is satisfied by mock implementations.
type scriptRunner interface {
	// InstallerVersion reads the OS version from an installer app
	InstallerVersion(ctx context.Context, installerPath string) (string, error)

	// CreateImage builds an autoinstall image
	CreateImage(ctx context.Context, installerPath, imagePath string) error

	// CreateBaseBox packages a base box from an image
	CreateBaseBox(ctx context.Context, imagePath, boxPath, boxName string) error

	// CreateFlavorBox packages a flavor box from a base box
	CreateFlavorBox(ctx context.Context, baseBoxName, flavorPath, boxPath, boxName string) error
}
