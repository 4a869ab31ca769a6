package workspace

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedManifest = errors.New("unsupported manifest format")
	ErrNoProjects          = errors.New("manifest declares no projects")
	ErrUnknownCommand      = errors.New("command has no action")
)

// ManifestError is returned when the manifest cannot be read, parsed or validated.
type ManifestError struct {
	Path  string
	Stage string // "read", "parse", "decode", "validate"
	Cause error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("manifest %s: %s: %v", e.Path, e.Stage, e.Cause)
}
func (e *ManifestError) Unwrap() error { return e.Cause }

// GitignoreReadError is returned when .gitignore cannot be read.
type GitignoreReadError struct {
	Path  string
	Cause error
}

func (e *GitignoreReadError) Error() string {
	return fmt.Sprintf("failed to read .gitignore at %s: %v", e.Path, e.Cause)
}
func (e *GitignoreReadError) Unwrap() error { return e.Cause }
