// Package metrics exposes Prometheus counters for scheduler operations.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingRequested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "booking_requested_total",
			Help:      "Count of booking requests created, by priority.",
		},
		[]string{"priority"},
	)

	decisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "decision_total",
			Help:      "Count of approve/reject decisions over pending appointments.",
		},
		[]string{"decision"},
	)

	cancellations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "cancellation_total",
			Help:      "Count of appointments cancelled by their requester.",
		},
	)

	conflictsDetected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "conflict_detected_total",
			Help:      "Count of bookings or approvals refused due to interval conflicts.",
		},
	)

	notificationsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "notification_emitted_total",
			Help:      "Count of notifications written, by kind.",
		},
		[]string{"kind"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingRequested, decisions, cancellations, conflictsDetected, notificationsEmitted)
	})
}

func IncBookingRequested(priority string) {
	bookingRequested.WithLabelValues(priority).Inc()
}

func IncDecision(decision string) {
	decisions.WithLabelValues(decision).Inc()
}

func IncCancellation() {
	cancellations.Inc()
}

func IncConflictDetected() {
	conflictsDetected.Inc()
}

func IncNotificationEmitted(kind string) {
	notificationsEmitted.WithLabelValues(kind).Inc()
}
