// Package models holds the record types persisted by the delimited-text
// stores and the closed enums used by the scheduling engine.
package models

import (
	"fmt"
	"time"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/timeutil"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
)

// ParseStatus converts a stored string to a Status, rejecting anything
// outside the closed set so an unrecognized value never reaches the engine.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

// IsTerminated reports whether the appointment has vacated its slot.
// Rejected and Cancelled appointments never count toward conflicts.
func (s Status) IsTerminated() bool {
	return s == StatusRejected || s == StatusCancelled
}

var allowedTransitions = map[Status]map[Status]bool{
	StatusPending:   {StatusApproved: true, StatusRejected: true, StatusCancelled: true},
	StatusApproved:  {StatusCancelled: true},
	StatusRejected:  {StatusCancelled: true},
	StatusCancelled: {},
}

// CanTransition reports whether the status machine allows from -> to. The
// engine consults this table for every decision and cancellation. A booker
// may cancel a rejected request to clear it; Cancelled is final.
func CanTransition(from, to Status) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// Priority is the urgency classification of an appointment.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority converts a stored string to a Priority. The empty string
// maps to Medium, the booking default.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityMedium, nil
	}
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), nil
	default:
		return "", fmt.Errorf("unknown priority: %s", s)
	}
}

// Role identifies which side of an appointment an actor must hold for an
// authorization check.
type Role string

const (
	RoleBookedBy Role = "BookedBy"
	RoleWithWhom Role = "WithWhom"
)

// Appointment is a single booking record. Records are never deleted;
// cancellation is a status write.
type Appointment struct {
	ID              int64
	BookedBy        string
	Date            string // YYYY-MM-DD, compared lexicographically
	Time            string // HH:MM
	WithWhom        string
	ClientName      string // requester display name snapshotted at booking
	Reason          string
	Status          Status
	DurationMinutes int
	Priority        Priority
	Location        string
	Notes           string
	CreatedAt       time.Time
}

// StartMinutes returns the appointment start as minutes since midnight.
func (a *Appointment) StartMinutes() (int, error) {
	return timeutil.ToMinutes(a.Time)
}

// Involves reports whether the user is on either side of the appointment.
func (a *Appointment) Involves(user string) bool {
	return a.BookedBy == user || a.WithWhom == user
}

// Overlaps reports whether the half-open interval [start, start+duration)
// overlaps this appointment's interval on the same calendar date. Touching
// boundaries are not an overlap.
func (a *Appointment) Overlaps(date string, start, duration int) bool {
	if a.Date != date {
		return false
	}
	aStart, err := a.StartMinutes()
	if err != nil {
		return false
	}
	aEnd := aStart + a.DurationMinutes
	end := start + duration
	return start < aEnd && end > aStart
}
