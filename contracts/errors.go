package contracts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Registration errors
	ErrInvalidPriority = errors.New("callbacks: priority could not be converted to a number")
	ErrDuplicateLabel  = errors.New("callbacks: label already registered")
	ErrInvalidCallback = errors.New("callbacks: callback does not match its calling convention")
	ErrInvalidOption   = errors.New("callbacks: option does not apply to this phase")

	// Removal errors
	ErrUnknownLabel = errors.New("callbacks: no callback with that label")

	// Invocation errors
	ErrMissingReceiver = errors.New("callbacks: method called without a receiver")
)

// RegistrationError represents a failed Add*Callback call
type RegistrationError struct {
	Op     string // Operation that failed
	Target string // Name of the decorated target
	Label  Label  // Label requested, empty when it was to be generated
	Err    error  // Underlying error
}

func (e *RegistrationError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("%s on %q failed for label %q: %v", e.Op, e.Target, e.Label, e.Err)
	}
	return fmt.Sprintf("%s on %q failed: %v", e.Op, e.Target, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// RemovalError represents a failed removal of a single label
type RemovalError struct {
	Target string
	Label  Label
	Err    error
}

func (e *RemovalError) Error() string {
	return fmt.Sprintf("no callback with label %q attached to %q: %v", e.Label, e.Target, e.Err)
}

func (e *RemovalError) Unwrap() error {
	return e.Err
}

// BatchRemovalError lists the labels a batch removal could not resolve.
// Every other label in the batch was removed.
type BatchRemovalError struct {
	Target string
	Labels []Label
}

func (e *BatchRemovalError) Error() string {
	names := make([]string, len(e.Labels))
	for i, l := range e.Labels {
		names[i] = fmt.Sprintf("%q", string(l))
	}
	return fmt.Sprintf("no callbacks with labels [%s] attached to %q", strings.Join(names, ", "), e.Target)
}

func (e *BatchRemovalError) Unwrap() error {
	return ErrUnknownLabel
}
