package plan

import "errors"

// Error kinds. Every planning error wraps exactly one of these.
var (
	// ErrMissingInput means a required option could not be resolved from an
	// explicit value, a naming convention, or detection.
	ErrMissingInput = errors.New("missing required input")

	// ErrMissingFile means a path that must exist does not.
	ErrMissingFile = errors.New("file not found")

	// ErrEmptyVersion means version detection returned nothing.
	ErrEmptyVersion = errors.New("empty OS version")
)
