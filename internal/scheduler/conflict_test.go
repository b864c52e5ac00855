package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/models"
)

type memSource struct {
	appts []models.Appointment
}

func (m *memSource) All() []models.Appointment {
	return append([]models.Appointment(nil), m.appts...)
}

func appt(id int64, bookedBy, withWhom, date, clock string, duration int, status models.Status) models.Appointment {
	return models.Appointment{
		ID:              id,
		BookedBy:        bookedBy,
		WithWhom:        withWhom,
		Date:            date,
		Time:            clock,
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestDetector_HasConflict(t *testing.T) {
	d := NewDetector(&memSource{appts: []models.Appointment{
		appt(1, "alice", "bob", "2025-06-01", "09:00", 60, models.StatusPending),
	}})

	t.Run("overlapping interval conflicts", func(t *testing.T) {
		// [540,600) vs [570,630)
		busy, err := d.HasConflict("alice", "2025-06-01", "09:30", 60, 0)
		require.NoError(t, err)
		assert.True(t, busy)
	})

	t.Run("counterparty side conflicts too", func(t *testing.T) {
		busy, err := d.HasConflict("bob", "2025-06-01", "09:30", 60, 0)
		require.NoError(t, err)
		assert.True(t, busy)
	})

	t.Run("boundary touch is not a conflict", func(t *testing.T) {
		// [540,600) vs [600,630)
		busy, err := d.HasConflict("alice", "2025-06-01", "10:00", 30, 0)
		require.NoError(t, err)
		assert.False(t, busy)
	})

	t.Run("different date never conflicts", func(t *testing.T) {
		busy, err := d.HasConflict("alice", "2025-06-02", "09:00", 60, 0)
		require.NoError(t, err)
		assert.False(t, busy)
	})

	t.Run("uninvolved user never conflicts", func(t *testing.T) {
		busy, err := d.HasConflict("carol", "2025-06-01", "09:00", 60, 0)
		require.NoError(t, err)
		assert.False(t, busy)
	})

	t.Run("identical slot conflicts with itself unless excluded", func(t *testing.T) {
		busy, err := d.HasConflict("alice", "2025-06-01", "09:00", 60, 0)
		require.NoError(t, err)
		assert.True(t, busy)

		busy, err = d.HasConflict("alice", "2025-06-01", "09:00", 60, 1)
		require.NoError(t, err)
		assert.False(t, busy)
	})

	t.Run("malformed proposal time", func(t *testing.T) {
		_, err := d.HasConflict("alice", "2025-06-01", "nine", 60, 0)
		assert.Error(t, err)
	})
}

func TestDetector_TerminatedNeverConflicts(t *testing.T) {
	for _, status := range []models.Status{models.StatusRejected, models.StatusCancelled} {
		d := NewDetector(&memSource{appts: []models.Appointment{
			appt(1, "alice", "bob", "2025-06-01", "09:00", 60, status),
		}})

		busy, err := d.HasConflict("alice", "2025-06-01", "09:00", 60, 0)
		require.NoError(t, err)
		assert.False(t, busy, "status %s should vacate the slot", status)
	}
}

func TestDetector_ApprovedAndPendingConflict(t *testing.T) {
	for _, status := range []models.Status{models.StatusPending, models.StatusApproved} {
		d := NewDetector(&memSource{appts: []models.Appointment{
			appt(1, "alice", "bob", "2025-06-01", "09:00", 60, status),
		}})

		busy, err := d.HasConflict("alice", "2025-06-01", "09:30", 45, 0)
		require.NoError(t, err)
		assert.True(t, busy, "status %s should hold the slot", status)
	}
}
