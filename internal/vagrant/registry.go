// Package vagrant talks to the Vagrant CLI's box registry.
//
// A box is "registered" when its name appears in `vagrant box list`, as
// opposed to merely existing as a .box file on disk.
package vagrant

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/jbweber/macbox/internal/runner"
)

// DefaultCommand is the vagrant executable looked up on PATH.
const DefaultCommand = "vagrant"

// emptyListMarker is what vagrant prints instead of a list when no boxes
// are installed.
const emptyListMarker = "There are no installed boxes!"

// Registry queries and updates the set of registered boxes.
type Registry struct {
	runner  runner.Runner
	command string
}

// NewRegistry returns a Registry that invokes command through r.
// An empty command uses DefaultCommand.
func NewRegistry(r runner.Runner, command string) *Registry {
	if command == "" {
		command = DefaultCommand
	}
	return &Registry{runner: r, command: command}
}

// List returns the names of all registered boxes. A box installed for
// several providers or versions is listed once.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	res, err := runner.RunChecked(ctx, r.runner, runner.Command{
		Name:      r.command,
		Args:      []string{"box", "list"},
		Privilege: runner.Unprivileged,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list vagrant boxes: %w", err)
	}
	return ParseBoxList(res.Stdout), nil
}

// IsRegistered reports whether a box named name is registered. An empty
// name is never registered.
func (r *Registry) IsRegistered(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, nil
	}
	names, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// Add registers the box file at path under name.
func (r *Registry) Add(ctx context.Context, path, name string) error {
	if path == "" || name == "" {
		return fmt.Errorf("box path and name are required (path=%q, name=%q)", path, name)
	}
	_, err := runner.RunChecked(ctx, r.runner, runner.Command{
		Name:      r.command,
		Args:      []string{"box", "add", path, "--name", name},
		Privilege: runner.Unprivileged,
		Stream:    true,
	})
	if err != nil {
		return fmt.Errorf("failed to add box %s: %w", name, err)
	}
	return nil
}

// ParseBoxList extracts box names from `vagrant box list` output. Each line
// has the form "name (provider, version)"; the name is the first field.
func ParseBoxList(output string) []string {
	var names []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, emptyListMarker) {
			continue
		}
		name := strings.Fields(line)[0]
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
