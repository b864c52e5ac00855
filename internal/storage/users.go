package storage

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/apperr"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/models"
)

var userHeader = []string{"username", "password", "full_name", "profession", "email", "phone", "timezone"}

// UserStore is the account directory. Accounts are created at registration
// and never deleted; only display name, profession and contact fields change
// afterwards.
type UserStore struct {
	path   string
	mu     sync.RWMutex
	users  []models.User
	logger *zerolog.Logger
}

// OpenUserStore loads the user file at path, creating it if missing.
func OpenUserStore(path string, logger *zerolog.Logger) (*UserStore, error) {
	s := &UserStore{path: path, logger: logger}
	if err := ensureFile(path, userHeader); err != nil {
		return nil, fmt.Errorf("create user store: %w", err)
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load re-reads the full user set from disk, quarantining malformed lines.
func (s *UserStore) Load() error {
	rows, err := readRows(s.path)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = s.users[:0]
	for i, row := range rows {
		if len(row) != len(userHeader) || row[0] == "" {
			if s.logger != nil {
				s.logger.Warn().Int("line", i+2).Msg("quarantined malformed user row")
			}
			continue
		}
		s.users = append(s.users, models.User{
			Username:   row[0],
			Password:   row[1],
			FullName:   row[2],
			Profession: row[3],
			Email:      row[4],
			Phone:      row[5],
			Timezone:   row[6],
		})
	}
	return nil
}

// Exists reports whether a username is registered. Usernames are
// case-sensitive.
func (s *UserStore) Exists(username string) bool {
	_, ok := s.FindByUsername(username)
	return ok
}

// DisplayName returns the full name recorded for a username.
func (s *UserStore) DisplayName(username string) (string, bool) {
	u, ok := s.FindByUsername(username)
	if !ok {
		return "", false
	}
	return u.FullName, true
}

// FindByUsername returns the account for a username.
func (s *UserStore) FindByUsername(username string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

// All returns a copy of the registered accounts.
func (s *UserStore) All() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User(nil), s.users...)
}

// Authenticate checks a username/password pair against the directory.
func (s *UserStore) Authenticate(username, password string) bool {
	u, ok := s.FindByUsername(username)
	return ok && u.Password == password
}

// Create registers a new account and persists the store. Duplicate usernames
// are rejected.
func (s *UserStore) Create(u models.User) error {
	if u.Username == "" {
		return &apperr.InvalidInputError{Reason: "username must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return &apperr.InvalidInputError{Reason: "username " + u.Username + " is taken"}
		}
	}

	s.users = append(s.users, u)
	if err := s.persistLocked(); err != nil {
		s.users = s.users[:len(s.users)-1]
		return err
	}
	return nil
}

// UpdateProfile rewrites the editable fields of an existing account. The
// username and password are left untouched.
func (s *UserStore) UpdateProfile(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.users {
		if existing.Username != u.Username {
			continue
		}
		s.users[i].FullName = u.FullName
		s.users[i].Profession = u.Profession
		s.users[i].Email = u.Email
		s.users[i].Phone = u.Phone
		s.users[i].Timezone = u.Timezone
		return s.persistLocked()
	}
	return &apperr.InvalidInputError{Reason: "unknown user " + u.Username}
}

func (s *UserStore) persistLocked() error {
	rows := make([][]string, 0, len(s.users))
	for _, u := range s.users {
		rows = append(rows, []string{u.Username, u.Password, u.FullName, u.Profession, u.Email, u.Phone, u.Timezone})
	}
	return writeRows(s.path, userHeader, rows)
}
