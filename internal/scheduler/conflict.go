// Package scheduler implements the appointment core: conflict detection,
// slot suggestion and the status transition engine.
package scheduler

import (
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/models"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/timeutil"
)

// AppointmentSource supplies the current record set for free/busy checks.
type AppointmentSource interface {
	All() []models.Appointment
}

// Detector answers free/busy questions against the appointment store.
// Rejected and Cancelled appointments have vacated their slot and are never
// counted; that keeps the free/busy model consistent with the state machine.
type Detector struct {
	source AppointmentSource
}

// NewDetector creates a detector over the given source.
func NewDetector(source AppointmentSource) *Detector {
	return &Detector{source: source}
}

// HasConflict reports whether any existing non-terminated appointment
// involving user on date overlaps the half-open interval
// [startTime, startTime+duration). The record with id excludeID is skipped,
// which lets an approval re-check an appointment against everything but
// itself; pass 0 to check against the full set. The scan stops at the first
// conflict found.
func (d *Detector) HasConflict(user, date, startTime string, durationMinutes int, excludeID int64) (bool, error) {
	start, err := timeutil.ToMinutes(startTime)
	if err != nil {
		return false, err
	}

	for _, c := range d.source.All() {
		if c.ID == excludeID {
			continue
		}
		if !c.Involves(user) || c.Status.IsTerminated() {
			continue
		}
		if c.Overlaps(date, start, durationMinutes) {
			return true, nil
		}
	}
	return false, nil
}
