package domain

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrUnavailable       = errors.New("service unavailable")
	ErrInternal          = errors.New("internal error")
)

// Specific errors.
var (
	// ErrPointOutsideRegion marks a per-click rejection by the boundary
	// gate. The session stays active; this is not a hard failure.
	ErrPointOutsideRegion = fmt.Errorf("point outside region: %w", ErrInvalidInput)

	// ErrSessionInactive is returned when a vertex is offered to a
	// session that is not collecting.
	ErrSessionInactive = fmt.Errorf("session not active: %w", ErrInvalidTransition)

	// ErrNoLoadedPolygon is returned when edit mode is requested without
	// a hydrated polygon to edit.
	ErrNoLoadedPolygon = fmt.Errorf("no loaded polygon: %w", ErrInvalidTransition)

	// ErrNotEditing is returned when a vertex mutation arrives outside
	// edit mode.
	ErrNotEditing = fmt.Errorf("polygon not in edit mode: %w", ErrInvalidTransition)

	// ErrEndpointsIncomplete is returned when a profile is requested
	// before both endpoints are set.
	ErrEndpointsIncomplete = fmt.Errorf("profile endpoints incomplete: %w", ErrInvalidTransition)

	// ErrProfileInFlight is returned when a profile request is issued
	// while another is outstanding. Callers should treat it as advisory
	// and simply wait.
	ErrProfileInFlight = fmt.Errorf("profile request already in flight: %w", ErrUnavailable)

	// ErrProfileSuperseded is returned to a profile request whose
	// endpoints changed while it was outstanding. The response was
	// discarded; nothing user-visible happened.
	ErrProfileSuperseded = errors.New("profile request superseded")

	ErrMeasurementNotFound = fmt.Errorf("measurement: %w", ErrNotFound)
	ErrRegionUnavailable   = fmt.Errorf("region data: %w", ErrUnavailable)
)

// ValidationError represents a detailed validation error.
type ValidationError struct {
	Field      string      // Field that failed validation
	Value      interface{} // The invalid value
	Constraint string      // The constraint that was violated
	Message    string      // Human-readable message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v, constraint: %s)",
		e.Field, e.Message, e.Value, e.Constraint)
}

// Unwrap returns the underlying error type.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// TransitionError reports an operation invoked in a state that does not
// support it. These are programming-contract violations and fail loudly.
type TransitionError struct {
	Mode      Mode   // Session the operation was invoked on
	Operation string // Operation that was attempted
	State     string // State the session was in
}

// Error implements the error interface.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s session: %s not valid in state %s", e.Mode, e.Operation, e.State)
}

// Unwrap returns the underlying error type.
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ProviderError wraps a failure from the elevation provider. The owning
// session keeps its endpoints so the caller can retry without
// re-selecting points.
type ProviderError struct {
	Provider string // Provider name (api, dem)
	Err      error  // Underlying error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("elevation provider %s: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// StorageError represents an error during storage operations.
type StorageError struct {
	Operation string // Operation that failed (download, list, etc.)
	Key       string // Object key
	Err       error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage error during %s for %s: %v",
			e.Operation, e.Key, e.Err)
	}
	return fmt.Sprintf("storage error during %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string // Configuration field
	Message string // Error message
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying error type.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidInput
}
