package models

import (
	"fmt"
	"time"
)

// NotificationKind classifies the transition that produced a notification.
// The values are wire strings in the notifications file and are kept exactly
// as historically written, mixed casing included.
type NotificationKind string

const (
	KindRequest   NotificationKind = "APPOINTMENT_REQUEST"
	KindCancelled NotificationKind = "APPOINTMENT_CANCELLED"
	KindApproved  NotificationKind = "APPOINTMENT_Approved"
	KindRejected  NotificationKind = "APPOINTMENT_Rejected"
)

// ParseNotificationKind converts a stored string to a NotificationKind.
func ParseNotificationKind(s string) (NotificationKind, error) {
	switch NotificationKind(s) {
	case KindRequest, KindCancelled, KindApproved, KindRejected:
		return NotificationKind(s), nil
	default:
		return "", fmt.Errorf("unknown notification kind: %s", s)
	}
}

// Notification is an append-only event record keyed by recipient. It is
// created as a side effect of a booking or status transition and only ever
// mutated to flip Read.
type Notification struct {
	ID            int64
	Username      string
	AppointmentID int64
	Message       string
	Kind          NotificationKind
	Timestamp     time.Time
	Read          bool
}
