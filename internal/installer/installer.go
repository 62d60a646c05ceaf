// Package installer locates the macOS installer app used for version
// detection and image creation.
package installer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no installer app can be located.
var ErrNotFound = errors.New("installer app not found")

// Checker reports whether a path exists.
type Checker interface {
	Exists(path string) bool
}

// Locate returns the installer app to use. An explicit path wins but must
// exist; otherwise the first existing entry of searchPaths is returned.
func Locate(fs Checker, explicit string, searchPaths []string) (string, error) {
	if explicit != "" {
		if fs.Exists(explicit) {
			return explicit, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, explicit)
	}

	for _, p := range searchPaths {
		if fs.Exists(p) {
			return p, nil
		}
	}
	if len(searchPaths) == 0 {
		return "", fmt.Errorf("%w: no installer path given and no search paths configured", ErrNotFound)
	}
	return "", fmt.Errorf("%w: searched %s", ErrNotFound, strings.Join(searchPaths, ", "))
}
