package scheduler

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/apperr"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/events"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/metrics"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/models"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/notify"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/timeutil"
)

// UserDirectory resolves usernames for booking validation and display-name
// snapshots.
type UserDirectory interface {
	Exists(username string) bool
	DisplayName(username string) (string, bool)
}

// Notifier appends a notification for a recipient. Failures are logged and
// swallowed; they never roll back a transition.
type Notifier interface {
	Emit(recipient string, appointmentID int64, message string, kind models.NotificationKind) (int64, error)
}

// AppointmentRepository is the store surface the engine mutates through.
type AppointmentRepository interface {
	AppointmentSource
	NextID() int64
	Append(a models.Appointment) error
	FindByID(id int64) (models.Appointment, error)
	UpdateStatus(id int64, newStatus models.Status, actor string, role models.Role) (models.Appointment, error)
}

// Decision is the outcome a counterparty applies to a pending appointment.
type Decision string

const (
	DecisionApprove Decision = "Approve"
	DecisionReject  Decision = "Reject"
)

// BookingRequest carries the fields gathered by the booking screen.
type BookingRequest struct {
	Requester    string
	Counterparty string
	Date         string
	Time         string
	Duration     int
	Reason       string
	Priority     models.Priority
	Location     string
	Notes        string
}

// BulkResult reports the outcome of a best-effort batch decision.
type BulkResult struct {
	Succeeded int
	Skipped   int
}

// Engine validates and applies status transitions, re-checking conflicts on
// approval and emitting one notification per transition.
type Engine struct {
	repo            AppointmentRepository
	users           UserDirectory
	detector        *Detector
	notifier        Notifier
	bus             *events.Bus
	logger          *zerolog.Logger
	defaultDuration int
	now             func() time.Time
}

// NewEngine wires the transition engine. The bus may be nil when no
// observers are attached.
func NewEngine(repo AppointmentRepository, users UserDirectory, notifier Notifier, bus *events.Bus, defaultDuration int, logger *zerolog.Logger) *Engine {
	if defaultDuration <= 0 {
		defaultDuration = 60
	}
	return &Engine{
		repo:            repo,
		users:           users,
		detector:        NewDetector(repo),
		notifier:        notifier,
		bus:             bus,
		logger:          logger,
		defaultDuration: defaultDuration,
		now:             time.Now,
	}
}

// Detector exposes the engine's conflict detector for the suggestion screen.
func (e *Engine) Detector() *Detector {
	return e.detector
}

// RequestBooking validates a proposal, checks both participants for
// conflicts and appends a new Pending appointment. The counterparty receives
// an APPOINTMENT_REQUEST notification.
func (e *Engine) RequestBooking(req BookingRequest) (models.Appointment, error) {
	if !timeutil.IsValidDate(req.Date) {
		return models.Appointment{}, &apperr.InvalidInputError{Reason: "date must be YYYY-MM-DD, got " + req.Date}
	}
	if !timeutil.IsValidTime(req.Time) {
		return models.Appointment{}, &apperr.InvalidInputError{Reason: "time must be HH:MM, got " + req.Time}
	}
	if !e.users.Exists(req.Counterparty) {
		return models.Appointment{}, &apperr.InvalidInputError{Reason: "unknown user " + req.Counterparty}
	}
	if req.Requester == req.Counterparty {
		return models.Appointment{}, &apperr.InvalidInputError{Reason: "cannot book an appointment with yourself"}
	}

	if req.Duration <= 0 {
		req.Duration = e.defaultDuration
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}

	for _, user := range []string{req.Requester, req.Counterparty} {
		busy, err := e.detector.HasConflict(user, req.Date, req.Time, req.Duration, 0)
		if err != nil {
			return models.Appointment{}, err
		}
		if busy {
			metrics.IncConflictDetected()
			return models.Appointment{}, &apperr.ConflictError{User: user, Date: req.Date, Time: req.Time}
		}
	}

	clientName, _ := e.users.DisplayName(req.Requester)
	if clientName == "" {
		clientName = req.Requester
	}

	appt := models.Appointment{
		ID:              e.repo.NextID(),
		BookedBy:        req.Requester,
		Date:            req.Date,
		Time:            req.Time,
		WithWhom:        req.Counterparty,
		ClientName:      clientName,
		Reason:          req.Reason,
		Status:          models.StatusPending,
		DurationMinutes: req.Duration,
		Priority:        req.Priority,
		Location:        req.Location,
		Notes:           req.Notes,
		CreatedAt:       e.now(),
	}
	if err := e.repo.Append(appt); err != nil {
		return models.Appointment{}, err
	}

	e.emit(req.Counterparty, appt.ID, notify.RequestMessage(clientName, appt.Date, appt.Time), models.KindRequest)
	e.publish(events.TypeBookingRequested, appt, req.Requester)
	metrics.IncBookingRequested(string(appt.Priority))

	e.logger.Info().
		Int64("id", appt.ID).
		Str("booked_by", appt.BookedBy).
		Str("with_whom", appt.WithWhom).
		Str("date", appt.Date).
		Str("time", appt.Time).
		Msg("booking requested")

	return appt, nil
}

// Decide applies an approve or reject decision to a pending appointment.
// Only the counterparty may decide, and only while the appointment is
// Pending. Approval re-checks the decider's calendar against everything but
// the appointment itself; a detected conflict fails the operation unless
// force is set.
func (e *Engine) Decide(id int64, actor string, decision Decision, force bool) (models.Appointment, error) {
	rec, err := e.repo.FindByID(id)
	if err != nil {
		return models.Appointment{}, err
	}
	if rec.WithWhom != actor {
		return models.Appointment{}, &apperr.AuthorizationError{ID: id, Actor: actor, Role: string(models.RoleWithWhom)}
	}

	newStatus := models.StatusRejected
	eventType := events.TypeRejected
	kind := models.KindRejected
	if decision == DecisionApprove {
		newStatus = models.StatusApproved
		eventType = events.TypeApproved
		kind = models.KindApproved
	}
	if !models.CanTransition(rec.Status, newStatus) {
		return models.Appointment{}, &apperr.InvalidStateError{ID: id, Status: string(rec.Status), Attempted: string(decision)}
	}

	if decision == DecisionApprove && !force {
		busy, err := e.detector.HasConflict(actor, rec.Date, rec.Time, rec.DurationMinutes, id)
		if err != nil {
			return models.Appointment{}, err
		}
		if busy {
			metrics.IncConflictDetected()
			return models.Appointment{}, &apperr.ConflictError{User: actor, Date: rec.Date, Time: rec.Time}
		}
	}

	updated, err := e.repo.UpdateStatus(id, newStatus, actor, models.RoleWithWhom)
	if err != nil {
		return models.Appointment{}, err
	}

	deciderName, _ := e.users.DisplayName(actor)
	if deciderName == "" {
		deciderName = actor
	}
	e.emit(updated.BookedBy, id, notify.DecisionMessage(deciderName, newStatus, updated.Date, updated.Time), kind)
	e.publish(eventType, updated, actor)
	metrics.IncDecision(string(decision))

	e.logger.Info().
		Int64("id", id).
		Str("actor", actor).
		Str("status", string(newStatus)).
		Bool("forced", force).
		Msg("appointment decided")

	return updated, nil
}

// Cancel moves an appointment to Cancelled. Only the requester may cancel,
// and an already-cancelled appointment stays cancelled. The record is kept:
// cancellation is a status write, never a removal.
func (e *Engine) Cancel(id int64, actor string) (models.Appointment, error) {
	rec, err := e.repo.FindByID(id)
	if err != nil {
		return models.Appointment{}, err
	}
	if rec.BookedBy != actor {
		return models.Appointment{}, &apperr.AuthorizationError{ID: id, Actor: actor, Role: string(models.RoleBookedBy)}
	}
	if !models.CanTransition(rec.Status, models.StatusCancelled) {
		return models.Appointment{}, &apperr.InvalidStateError{ID: id, Status: string(rec.Status), Attempted: "Cancel"}
	}

	updated, err := e.repo.UpdateStatus(id, models.StatusCancelled, actor, models.RoleBookedBy)
	if err != nil {
		return models.Appointment{}, err
	}

	requesterName, _ := e.users.DisplayName(actor)
	if requesterName == "" {
		requesterName = actor
	}
	e.emit(updated.WithWhom, id, notify.CancelMessage(requesterName, updated.Date, updated.Time), models.KindCancelled)
	e.publish(events.TypeCancelled, updated, actor)
	metrics.IncCancellation()

	e.logger.Info().Int64("id", id).Str("actor", actor).Msg("appointment cancelled")

	return updated, nil
}

// BulkDecide applies a decision to every id, skipping individual failures
// instead of aborting the batch.
func (e *Engine) BulkDecide(ids []int64, actor string, decision Decision) BulkResult {
	var res BulkResult
	for _, id := range ids {
		if _, err := e.Decide(id, actor, decision, false); err != nil {
			res.Skipped++
			e.logger.Debug().Int64("id", id).Err(err).Msg("skipped in bulk decision")
			continue
		}
		res.Succeeded++
	}
	return res
}

// emit writes one notification, logging failures without propagating them.
func (e *Engine) emit(recipient string, appointmentID int64, message string, kind models.NotificationKind) {
	if e.notifier == nil {
		return
	}
	if _, err := e.notifier.Emit(recipient, appointmentID, message, kind); err != nil {
		e.logger.Warn().
			Int64("appointment_id", appointmentID).
			Str("recipient", recipient).
			Err(err).
			Msg("failed to emit notification")
		return
	}
	metrics.IncNotificationEmitted(string(kind))
}

func (e *Engine) publish(t events.Type, a models.Appointment, actor string) {
	if e.bus == nil {
		return
	}
	e.bus.Publish(events.Event{
		Type:          t,
		AppointmentID: a.ID,
		Actor:         actor,
		Status:        a.Status,
		Priority:      a.Priority,
		OccurredAt:    e.now(),
	})
}
