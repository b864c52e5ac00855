// Package events provides in-process pub/sub for appointment lifecycle
// events. The transition engine publishes, observers (metrics, audit
// logging) subscribe.
package events

import (
	"sync"
	"time"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/models"
)

// Type names an appointment lifecycle event.
type Type string

const (
	TypeBookingRequested Type = "booking_requested"
	TypeApproved         Type = "appointment_approved"
	TypeRejected         Type = "appointment_rejected"
	TypeCancelled        Type = "appointment_cancelled"
)

// Event is a lightweight record of one appointment transition.
type Event struct {
	Type          Type
	AppointmentID int64
	Actor         string
	Status        models.Status
	Priority      models.Priority
	OccurredAt    time.Time
}

// Handler reacts to an event.
type Handler func(event Event)

// Bus provides in-process pub/sub for appointment events.
type Bus struct {
	subscribers map[Type][]Handler
	mu          sync.RWMutex
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[Type][]Handler)}
}

// Subscribe registers a handler for a given event type.
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		handler(event)
	}
}
