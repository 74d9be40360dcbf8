package errors

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors for the load/merge pipeline. Call sites wrap these with
// `%w` and the offending file path, section name and item key.
var (
	// ErrRootNotMapping is returned when a template file does not decode to a
	// YAML mapping at the top level.
	ErrRootNotMapping = errors.New("template must contain a YAML mapping")

	// ErrDuplicateMappingKey is returned when a single mapping in an input
	// file defines the same key twice.
	ErrDuplicateMappingKey = errors.New("duplicate mapping key")

	// ErrSectionNotMapping is returned when a top-level section
	// (Parameters, Conditions, Resources, Outputs) is present but its value
	// is not a mapping.
	ErrSectionNotMapping = errors.New("section must be a mapping")

	// ErrDuplicateSectionKey is returned when two inputs contribute the same
	// item name to the same section.
	ErrDuplicateSectionKey = errors.New("duplicate section key")

	// ErrNilSettings is returned when a command pipeline is invoked without
	// resolved settings.
	ErrNilSettings = errors.New("settings cannot be nil")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
