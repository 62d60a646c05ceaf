package plan

import (
	"context"
	"sync"
)

// mockFileSystem is a mock implementation of the FileSystem interface for testing.
type mockFileSystem struct {
	mu sync.Mutex

	// Configurable behavior
	files map[string]bool

	// Call tracking
	existsCalls []string
}

// newMockFileSystem creates a mock filesystem where the given paths exist.
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
	m.existsCalls = append(m.existsCalls, path)
	return m.files[path]
}

// mockBoxRegistry is a mock implementation of the BoxRegistry interface for testing.
type mockBoxRegistry struct {
	mu sync.Mutex

	// Configurable behavior
	isRegisteredFunc func(ctx context.Context, name string) (bool, error)

	// Call tracking
	isRegisteredCalls []string
}

// newMockBoxRegistry creates a mock registry where the given boxes are registered.
func newMockBoxRegistry(names ...string) *mockBoxRegistry {
	registered := make(map[string]bool)
	for _, n := range names {
		registered[n] = true
	}

	m := &mockBoxRegistry{}
	m.isRegisteredFunc = func(ctx context.Context, name string) (bool, error) {
		return registered[name], nil
	}
	return m
}

func (m *mockBoxRegistry) IsRegistered(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isRegisteredCalls = append(m.isRegisteredCalls, name)
	return m.isRegisteredFunc(ctx, name)
}
