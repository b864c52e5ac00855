package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/models"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()

	var seen []Event
	bus.Subscribe(TypeApproved, func(e Event) {
		seen = append(seen, e)
	})

	bus.Publish(Event{Type: TypeApproved, AppointmentID: 7, Actor: "bob", Status: models.StatusApproved})
	bus.Publish(Event{Type: TypeCancelled, AppointmentID: 8, Actor: "alice"})

	assert.Len(t, seen, 1)
	assert.Equal(t, int64(7), seen[0].AppointmentID)
	assert.Equal(t, "bob", seen[0].Actor)
	assert.False(t, seen[0].OccurredAt.IsZero())
}

func TestBus_MultipleHandlers(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.Subscribe(TypeBookingRequested, func(Event) { calls++ })
	bus.Subscribe(TypeBookingRequested, func(Event) { calls++ })

	bus.Publish(Event{Type: TypeBookingRequested, AppointmentID: 1})
	assert.Equal(t, 2, calls)
}
