package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusRejected, StatusCancelled} {
		parsed, err := ParseStatus(string(s))
		assert.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseStatus("pending")
	assert.Error(t, err)

	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestStatus_IsTerminated(t *testing.T) {
	assert.False(t, StatusPending.IsTerminated())
	assert.False(t, StatusApproved.IsTerminated())
	assert.True(t, StatusRejected.IsTerminated())
	assert.True(t, StatusCancelled.IsTerminated())
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"approved to cancelled", StatusApproved, StatusCancelled, true},
		{"approved to rejected", StatusApproved, StatusRejected, false},
		{"rejected to cancelled", StatusRejected, StatusCancelled, true},
		{"rejected to approved", StatusRejected, StatusApproved, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"cancelled stays cancelled", StatusCancelled, StatusCancelled, false},
		{"approved back to pending", StatusApproved, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("")
	assert.NoError(t, err)
	assert.Equal(t, PriorityMedium, p)

	p, err = ParsePriority("High")
	assert.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("urgent")
	assert.Error(t, err)
}

func TestAppointment_Overlaps(t *testing.T) {
	existing := Appointment{
		ID:              1,
		Date:            "2025-06-01",
		Time:            "10:00",
		DurationMinutes: 120, // [600, 720)
	}

	// No overlap, ends exactly at existing start.
	assert.False(t, existing.Overlaps("2025-06-01", 540, 60))

	// No overlap, starts exactly at existing end.
	assert.False(t, existing.Overlaps("2025-06-01", 720, 60))

	// Starts during.
	assert.True(t, existing.Overlaps("2025-06-01", 660, 120))

	// Contained.
	assert.True(t, existing.Overlaps("2025-06-01", 630, 30))

	// Contains.
	assert.True(t, existing.Overlaps("2025-06-01", 540, 300))

	// Different date never overlaps.
	assert.False(t, existing.Overlaps("2025-06-02", 600, 120))
}

func TestAppointment_Involves(t *testing.T) {
	a := Appointment{BookedBy: "alice", WithWhom: "bob"}
	assert.True(t, a.Involves("alice"))
	assert.True(t, a.Involves("bob"))
	assert.False(t, a.Involves("carol"))
}

func TestParseNotificationKind(t *testing.T) {
	for _, k := range []NotificationKind{KindRequest, KindCancelled, KindApproved, KindRejected} {
		parsed, err := ParseNotificationKind(string(k))
		assert.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseNotificationKind("APPOINTMENT_APPROVED")
	assert.Error(t, err)
}
