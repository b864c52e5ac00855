// Package apperr defines the error taxonomy shared by the appointment store,
// the scheduling engine and the import path. Callers match concrete types with
// errors.As to decide how to render or recover.
package apperr

import "fmt"

// InvalidInputError signals malformed dates/times, references to unknown
// users, or a self-booking attempt.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// ConflictError signals that a proposed or re-checked interval overlaps an
// existing non-terminated appointment for the named user.
type ConflictError struct {
	User string
	Date string
	Time string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule conflict for %s on %s at %s", e.User, e.Date, e.Time)
}

// NotFoundError signals an unknown appointment id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("appointment %d not found", e.ID)
}

// AuthorizationError signals that the actor does not hold the role required
// for the attempted operation on the appointment.
type AuthorizationError struct {
	ID    int64
	Actor string
	Role  string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("user %s is not the %s of appointment %d", e.Actor, e.Role, e.ID)
}

// InvalidStateError signals a transition attempted from a disallowed status.
type InvalidStateError struct {
	ID        int64
	Status    string
	Attempted string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("appointment %d is %s; cannot %s", e.ID, e.Status, e.Attempted)
}

// DuplicateIDError signals an id collision on the import path.
type DuplicateIDError struct {
	ID int64
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("appointment id %d already exists", e.ID)
}
