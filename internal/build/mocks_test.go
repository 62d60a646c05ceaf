package build

import (
	"context"
	"fmt"
	"sync"
)

// mockFileSystem is a mock implementation of the fileSystem interface for testing.
// Scripts in tests add files to it to simulate producing artifacts.
type mockFileSystem struct {
	mu    sync.Mutex
	files map[string]bool
}

func newMockFileSystem(paths ...string) *mockFileSystem {
	m := &mockFileSystem{files: make(map[string]bool)}
	for _, p := range paths {
		m.files[p] = true
	}
	return m
}

func (m *mockFileSystem) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.files[path]
}

func (m *mockFileSystem) add(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = true
}

// mockBoxRegistry is a mock implementation of the boxRegistry interface for testing.
type mockBoxRegistry struct {
	mu sync.Mutex

	// Configurable behavior
	registered map[string]bool
	addFunc    func(ctx context.Context, path, name string) error

	// Call tracking
	isRegisteredCalls []string
	addCalls          []string // format: "path=name"
}

// newMockBoxRegistry creates a registry where Add succeeds and registers the box.
func newMockBoxRegistry(names ...string) *mockBoxRegistry {
	m := &mockBoxRegistry{registered: make(map[string]bool)}
	for _, n := range names {
		m.registered[n] = true
	}
	m.addFunc = func(ctx context.Context, path, name string) error {
		m.registered[name] = true
		return nil
	}
	return m
}

func (m *mockBoxRegistry) IsRegistered(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isRegisteredCalls = append(m.isRegisteredCalls, name)
	return m.registered[name], nil
}

func (m *mockBoxRegistry) Add(ctx context.Context, path, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addCalls = append(m.addCalls, fmt.Sprintf("%s=%s", path, name))
	return m.addFunc(ctx, path, name)
}

// mockScripts is a mock implementation of the scriptRunner interface for testing.
type mockScripts struct {
	mu sync.Mutex

	// Configurable behavior
	installerVersionFunc func(ctx context.Context, installerPath string) (string, error)
	createImageFunc      func(ctx context.Context, installerPath, imagePath string) error
	createBaseBoxFunc    func(ctx context.Context, imagePath, boxPath, boxName string) error
	createFlavorBoxFunc  func(ctx context.Context, baseBoxName, flavorPath, boxPath, boxName string) error

	// Call tracking
	calls []string
}

// newMockScripts creates scripts that succeed and create their outputs in fs.
func newMockScripts(fs *mockFileSystem, version string) *mockScripts {
	m := &mockScripts{}
	m.installerVersionFunc = func(ctx context.Context, installerPath string) (string, error) {
		return version + "\n", nil
	}
	m.createImageFunc = func(ctx context.Context, installerPath, imagePath string) error {
		fs.add(imagePath)
		return nil
	}
	m.createBaseBoxFunc = func(ctx context.Context, imagePath, boxPath, boxName string) error {
		fs.add(boxPath)
		return nil
	}
	m.createFlavorBoxFunc = func(ctx context.Context, baseBoxName, flavorPath, boxPath, boxName string) error {
		fs.add(boxPath)
		return nil
	}
	return m
}

func (m *mockScripts) InstallerVersion(ctx context.Context, installerPath string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, fmt.Sprintf("get_installer_version %s", installerPath))
	return m.installerVersionFunc(ctx, installerPath)
}

func (m *mockScripts) CreateImage(ctx context.Context, installerPath, imagePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, fmt.Sprintf("create_autoinstall_image %s %s", installerPath, imagePath))
	return m.createImageFunc(ctx, installerPath, imagePath)
}

func (m *mockScripts) CreateBaseBox(ctx context.Context, imagePath, boxPath, boxName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, fmt.Sprintf("create_base_box %s %s %s", imagePath, boxPath, boxName))
	return m.createBaseBoxFunc(ctx, imagePath, boxPath, boxName)
}

func (m *mockScripts) CreateFlavorBox(ctx context.Context, baseBoxName, flavorPath, boxPath, boxName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, fmt.Sprintf("create_flavor_box %s %s %s %s", baseBoxName, flavorPath, boxPath, boxName))
	return m.createFlavorBoxFunc(ctx, baseBoxName, flavorPath, boxPath, boxName)
}
