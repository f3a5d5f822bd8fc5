package application

import (
	"errors"
	"fmt"

	"github.com/example/sounddesk/internal/scheduler"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrAlreadyExists is returned when a create collides with an existing id.
	ErrAlreadyExists = errors.New("application: already exists")
)

// RoomUnavailableError is returned by session create/update when the
// requested slot overlaps existing bookings. Conflicts carries the blocking
// sessions so callers can show them to the user.
type RoomUnavailableError struct {
	Conflicts []Session
}

// Error implements the error interface.
func (e *RoomUnavailableError) Error() string {
	return "room is already booked for this time slot"
}

// InvalidTransitionError is returned by status changes that are not one of
// the legal lifecycle edges.
type InvalidTransitionError struct {
	From scheduler.Status
	To   scheduler.Status
}

// Error implements the error interface.
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
