package storage

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/models"
)

var notificationHeader = []string{"ID", "UserName", "AppointmentID", "Message", "Type", "Timestamp", "Read"}

// NotificationStore is the append-only notification log. Records are only
// ever mutated to flip the Read flag.
type NotificationStore struct {
	path    string
	mu      sync.RWMutex
	records []models.Notification
	logger  *zerolog.Logger
}

// OpenNotificationStore loads the notification file at path, creating it if
// missing.
func OpenNotificationStore(path string, logger *zerolog.Logger) (*NotificationStore, error) {
	s := &NotificationStore{path: path, logger: logger}
	if err := ensureFile(path, notificationHeader); err != nil {
		return nil, fmt.Errorf("create notification store: %w", err)
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load re-reads the full notification set from disk, quarantining malformed
// lines.
func (s *NotificationStore) Load() error {
	rows, err := readRows(s.path)
	if err != nil {
		return fmt.Errorf("load notifications: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
	for i, row := range rows {
		n, err := parseNotificationRow(row)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn().Int("line", i+2).Err(err).Msg("quarantined malformed notification row")
			}
			continue
		}
		s.records = append(s.records, n)
	}
	return nil
}

// NextID returns the next notification id: max existing + 1, or 1 when empty.
func (s *NotificationStore) NextID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var max int64
	for _, n := range s.records {
		if n.ID > max {
			max = n.ID
		}
	}
	return max + 1
}

// Append adds a notification record and persists the store.
func (s *NotificationStore) Append(n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, n)
	if err := s.persistLocked(); err != nil {
		s.records = s.records[:len(s.records)-1]
		return err
	}
	return nil
}

// For returns all notifications addressed to a user, in append order.
func (s *NotificationStore) For(username string) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Notification
	for _, n := range s.records {
		if n.Username == username {
			out = append(out, n)
		}
	}
	return out
}

// Unread returns the unread notifications addressed to a user.
func (s *NotificationStore) Unread(username string) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Notification
	for _, n := range s.records {
		if n.Username == username && !n.Read {
			out = append(out, n)
		}
	}
	return out
}

// MarkRead flips the Read flag of a notification and persists the store.
func (s *NotificationStore) MarkRead(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.records {
		if n.ID != id {
			continue
		}
		if n.Read {
			return nil
		}
		s.records[i].Read = true
		if err := s.persistLocked(); err != nil {
			s.records[i].Read = false
			return err
		}
		return nil
	}
	return fmt.Errorf("notification %d not found", id)
}

func (s *NotificationStore) persistLocked() error {
	rows := make([][]string, 0, len(s.records))
	for _, n := range s.records {
		rows = append(rows, []string{
			strconv.FormatInt(n.ID, 10),
			n.Username,
			strconv.FormatInt(n.AppointmentID, 10),
			n.Message,
			string(n.Kind),
			n.Timestamp.Format(CreatedDateLayout),
			strconv.FormatBool(n.Read),
		})
	}
	return writeRows(s.path, notificationHeader, rows)
}

func parseNotificationRow(row []string) (models.Notification, error) {
	if len(row) != len(notificationHeader) {
		return models.Notification{}, fmt.Errorf("expected %d fields, got %d", len(notificationHeader), len(row))
	}

	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil || id <= 0 {
		return models.Notification{}, fmt.Errorf("bad id %q", row[0])
	}

	apptID, err := strconv.ParseInt(row[2], 10, 64)
	if err != nil {
		return models.Notification{}, fmt.Errorf("bad appointment id %q", row[2])
	}

	kind, err := models.ParseNotificationKind(row[4])
	if err != nil {
		return models.Notification{}, err
	}

	ts, err := time.Parse(CreatedDateLayout, row[5])
	if err != nil {
		return models.Notification{}, fmt.Errorf("bad timestamp %q", row[5])
	}

	read, err := strconv.ParseBool(row[6])
	if err != nil {
		return models.Notification{}, fmt.Errorf("bad read flag %q", row[6])
	}

	return models.Notification{
		ID:            id,
		Username:      row[1],
		AppointmentID: apptID,
		Message:       row[3],
		Kind:          kind,
		Timestamp:     ts,
		Read:          read,
	}, nil
}
