// Package notify delivers transition notifications into the append-only
// notification store. Delivery is fire-and-forget from the engine's
// perspective: a failed write never rolls back a status transition.
package notify

import (
	"fmt"
	"time"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/models"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/storage"
)

// StoreSink writes notifications to the notification store.
type StoreSink struct {
	store *storage.NotificationStore
	now   func() time.Time
}

// NewStoreSink creates a sink backed by the given store.
func NewStoreSink(store *storage.NotificationStore) *StoreSink {
	return &StoreSink{store: store, now: time.Now}
}

// Emit appends one notification for the recipient and returns its id.
func (s *StoreSink) Emit(recipient string, appointmentID int64, message string, kind models.NotificationKind) (int64, error) {
	n := models.Notification{
		ID:            s.store.NextID(),
		Username:      recipient,
		AppointmentID: appointmentID,
		Message:       message,
		Kind:          kind,
		Timestamp:     s.now(),
		Read:          false,
	}
	if err := s.store.Append(n); err != nil {
		return 0, err
	}
	return n.ID, nil
}

// RequestMessage is the text sent to the counterparty of a new booking.
func RequestMessage(requesterName, date, clock string) string {
	return fmt.Sprintf("New appointment request from %s on %s at %s", requesterName, date, clock)
}

// DecisionMessage is the text sent to the requester after an approve/reject
// decision.
func DecisionMessage(deciderName string, status models.Status, date, clock string) string {
	return fmt.Sprintf("%s has %s your appointment on %s at %s", deciderName, decisionVerb(status), date, clock)
}

// CancelMessage is the text sent to the counterparty when the requester
// cancels.
func CancelMessage(requesterName, date, clock string) string {
	return fmt.Sprintf("%s cancelled the appointment on %s at %s", requesterName, date, clock)
}

func decisionVerb(status models.Status) string {
	if status == models.StatusApproved {
		return "approved"
	}
	return "rejected"
}
