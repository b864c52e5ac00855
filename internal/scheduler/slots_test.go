package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/models"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/timeutil"
)

func TestSuggestSlots_EmptyDay(t *testing.T) {
	d := NewDetector(&memSource{})

	slots, err := d.SuggestSlots("2025-06-01", "alice", "bob", 60, SlotOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, slots)
}

func TestSuggestSlots_SkipsBusySlots(t *testing.T) {
	d := NewDetector(&memSource{appts: []models.Appointment{
		appt(1, "alice", "carol", "2025-06-01", "09:00", 60, models.StatusApproved),
		appt(2, "dave", "bob", "2025-06-01", "10:00", 30, models.StatusPending),
	}})

	slots, err := d.SuggestSlots("2025-06-01", "alice", "bob", 30, SlotOptions{MaxResults: 3})
	require.NoError(t, err)
	// 09:00 and 09:30 blocked by alice, 10:00 blocked by bob.
	assert.Equal(t, []string{"10:30", "11:00", "11:30"}, slots)
}

func TestSuggestSlots_FullyBookedDayReturnsNothing(t *testing.T) {
	// Book every hour and half-hour offset across 09:00-18:00 for alice.
	var appts []models.Appointment
	id := int64(1)
	for m := 9 * 60; m < 18*60; m += 30 {
		appts = append(appts, appt(id, "alice", "carol", "2025-06-01",
			minutesToClock(m), 30, models.StatusApproved))
		id++
	}
	d := NewDetector(&memSource{appts: appts})

	slots, err := d.SuggestSlots("2025-06-01", "alice", "bob", 60, SlotOptions{})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSuggestSlots_RespectsWindowTail(t *testing.T) {
	d := NewDetector(&memSource{})

	slots, err := d.SuggestSlots("2025-06-01", "alice", "bob", 60, SlotOptions{
		BusinessStart: 16 * 60,
		BusinessEnd:   18 * 60,
		MaxResults:    10,
	})
	require.NoError(t, err)
	// A 60-minute slot must still fit inside the window.
	assert.Equal(t, []string{"16:00", "16:30", "17:00"}, slots)
}

func TestSuggestSlots_Restartable(t *testing.T) {
	d := NewDetector(&memSource{appts: []models.Appointment{
		appt(1, "alice", "bob", "2025-06-01", "09:00", 60, models.StatusPending),
	}})

	first, err := d.SuggestSlots("2025-06-01", "alice", "bob", 60, SlotOptions{})
	require.NoError(t, err)
	second, err := d.SuggestSlots("2025-06-01", "alice", "bob", 60, SlotOptions{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func minutesToClock(m int) string {
	return timeutil.FromMinutes(m)
}
