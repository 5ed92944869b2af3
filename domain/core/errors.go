package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrSessionNotFound = fmt.Errorf("%w: investigation session", ErrNotFound)

	// Workflow errors
	ErrInvalidTransition = errors.New("invalid stage transition")
	ErrStageGuardNotMet  = errors.New("stage guard not satisfied")

	// Confirmation errors
	ErrInvalidSelection = errors.New("invalid hypothesis selection")
)

// Error constructors with context
func NewTransitionError(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

func NewSelectionError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidSelection, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidSelection(err error) bool {
	return errors.Is(err, ErrInvalidSelection)
}
