package project

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrInvalidConfiguration = errors.New("configuration does not belong to this provider")
	ErrActivationIO         = errors.New("failed to persist active configuration")
)

// ActivationError is returned when switching the active configuration fails.
type ActivationError struct {
	Project       string
	Configuration string
	Kind          error // ErrInvalidConfiguration or ErrActivationIO
	Cause         error
}

func (e *ActivationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("activate %q in %s: %v: %v", e.Configuration, e.Project, e.Kind, e.Cause)
	}
	return fmt.Sprintf("activate %q in %s: %v", e.Configuration, e.Project, e.Kind)
}

// Is matches the error's kind so callers can use errors.Is with the sentinels.
func (e *ActivationError) Is(target error) bool { return target == e.Kind }

func (e *ActivationError) Unwrap() error { return e.Cause }
