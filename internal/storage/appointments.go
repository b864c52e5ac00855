package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/apperr"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/models"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/timeutil"
)

// CreatedDateLayout is the timestamp format used in the appointments and
// notifications files.
const CreatedDateLayout = "2006-01-02 15:04:05"

var appointmentHeader = []string{
	"ID", "BookedBy", "Date", "Time", "WithWhom", "ClientName", "Reason",
	"Status", "Duration", "Priority", "Location", "Notes", "CreatedDate",
}

// AppointmentStore holds the full appointment record set in memory and
// persists it back as a whole on every mutation.
type AppointmentStore struct {
	path        string
	mu          sync.RWMutex
	records     []models.Appointment
	quarantined int
	logger      *zerolog.Logger
}

// OpenAppointmentStore loads the store at path, creating an empty file with
// a header row if none exists.
func OpenAppointmentStore(path string, logger *zerolog.Logger) (*AppointmentStore, error) {
	s := &AppointmentStore{path: path, logger: logger}
	if err := ensureFile(path, appointmentHeader); err != nil {
		return nil, fmt.Errorf("create appointment store: %w", err)
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load re-reads the full record set from disk. Malformed lines are
// quarantined: counted, logged and skipped, never positionally mis-parsed.
func (s *AppointmentStore) Load() error {
	rows, err := readRows(s.path)
	if err != nil {
		return fmt.Errorf("load appointments: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
	s.quarantined = 0
	for i, row := range rows {
		a, err := parseAppointmentRow(row)
		if err != nil {
			s.quarantined++
			if s.logger != nil {
				s.logger.Warn().Int("line", i+2).Err(err).Msg("quarantined malformed appointment row")
			}
			continue
		}
		s.records = append(s.records, a)
	}
	return nil
}

// Quarantined returns the number of malformed lines skipped by the last Load.
func (s *AppointmentStore) Quarantined() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quarantined
}

// All returns a copy of the current record set.
func (s *AppointmentStore) All() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Appointment(nil), s.records...)
}

// NextID returns the next id to assign: max existing id + 1, or 1 when the
// store is empty.
func (s *AppointmentStore) NextID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var max int64
	for _, a := range s.records {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1
}

// Append adds a new record and persists the store. It fails with
// DuplicateIDError if the id is already present; the import path relies on
// this check.
func (s *AppointmentStore) Append(a models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.records {
		if existing.ID == a.ID {
			return &apperr.DuplicateIDError{ID: a.ID}
		}
	}

	s.records = append(s.records, a)
	if err := s.persistLocked(); err != nil {
		s.records = s.records[:len(s.records)-1]
		return err
	}
	return nil
}

// FindByID returns the record with the given id.
func (s *AppointmentStore) FindByID(id int64) (models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.records {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Appointment{}, &apperr.NotFoundError{ID: id}
}

// Filter returns the records matching the predicate, in store order.
func (s *AppointmentStore) Filter(pred func(models.Appointment) bool) []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Appointment
	for _, a := range s.records {
		if pred(a) {
			out = append(out, a)
		}
	}
	return out
}

// UpdateStatus rewrites the status of the record with the given id after
// verifying that actor holds the required role on it, then persists the
// store.
func (s *AppointmentStore) UpdateStatus(id int64, newStatus models.Status, actor string, role models.Role) (models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, a := range s.records {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Appointment{}, &apperr.NotFoundError{ID: id}
	}

	rec := s.records[idx]
	switch role {
	case models.RoleBookedBy:
		if rec.BookedBy != actor {
			return models.Appointment{}, &apperr.AuthorizationError{ID: id, Actor: actor, Role: string(role)}
		}
	case models.RoleWithWhom:
		if rec.WithWhom != actor {
			return models.Appointment{}, &apperr.AuthorizationError{ID: id, Actor: actor, Role: string(role)}
		}
	default:
		return models.Appointment{}, fmt.Errorf("unknown role: %s", role)
	}

	prev := rec.Status
	s.records[idx].Status = newStatus
	if err := s.persistLocked(); err != nil {
		s.records[idx].Status = prev
		return models.Appointment{}, err
	}
	return s.records[idx], nil
}

func (s *AppointmentStore) persistLocked() error {
	rows := make([][]string, 0, len(s.records))
	for _, a := range s.records {
		rows = append(rows, []string{
			strconv.FormatInt(a.ID, 10),
			a.BookedBy,
			a.Date,
			a.Time,
			a.WithWhom,
			a.ClientName,
			a.Reason,
			string(a.Status),
			strconv.Itoa(a.DurationMinutes),
			string(a.Priority),
			a.Location,
			a.Notes,
			a.CreatedAt.Format(CreatedDateLayout),
		})
	}
	return writeRows(s.path, appointmentHeader, rows)
}

func parseAppointmentRow(row []string) (models.Appointment, error) {
	if len(row) != len(appointmentHeader) {
		return models.Appointment{}, fmt.Errorf("expected %d fields, got %d", len(appointmentHeader), len(row))
	}

	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil || id <= 0 {
		return models.Appointment{}, fmt.Errorf("bad id %q", row[0])
	}

	// A row with an unparseable date or time would load but never overlap
	// anything, so it must be quarantined here instead.
	if !timeutil.IsValidDate(row[2]) {
		return models.Appointment{}, fmt.Errorf("bad date %q", row[2])
	}
	if !timeutil.IsValidTime(row[3]) {
		return models.Appointment{}, fmt.Errorf("bad time %q", row[3])
	}

	status, err := models.ParseStatus(row[7])
	if err != nil {
		return models.Appointment{}, err
	}

	duration, err := strconv.Atoi(row[8])
	if err != nil || duration <= 0 {
		return models.Appointment{}, fmt.Errorf("bad duration %q", row[8])
	}

	priority, err := models.ParsePriority(row[9])
	if err != nil {
		return models.Appointment{}, err
	}

	createdAt, err := time.Parse(CreatedDateLayout, row[12])
	if err != nil {
		return models.Appointment{}, fmt.Errorf("bad created date %q", row[12])
	}

	return models.Appointment{
		ID:              id,
		BookedBy:        row[1],
		Date:            row[2],
		Time:            row[3],
		WithWhom:        row[4],
		ClientName:      row[5],
		Reason:          row[6],
		Status:          status,
		DurationMinutes: duration,
		Priority:        priority,
		Location:        row[10],
		Notes:           row[11],
		CreatedAt:       createdAt,
	}, nil
}

// ensureFile creates an empty store file with the given header row when the
// file does not exist yet.
func ensureFile(path string, header []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return writeRows(path, header, nil)
}

// readRows returns all data rows of the file, skipping the header. Field
// count validation is left to the per-record parsers so malformed lines can
// be quarantined individually.
func readRows(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil
}

func writeRows(path string, header []string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes())
}
