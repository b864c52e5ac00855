// Package importer feeds externally produced appointment CSV files into the
// store. Import is best-effort: each row commits or is rejected on its own,
// and rows already imported stay committed when a later row fails.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/apperr"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/models"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/storage"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/timeutil"
)

// UserDirectory answers whether a referenced username is registered.
type UserDirectory interface {
	Exists(username string) bool
}

// AppointmentSink accepts validated records, rejecting id collisions.
type AppointmentSink interface {
	Append(a models.Appointment) error
}

// LineError records why one row was rejected.
type LineError struct {
	Line int
	Err  error
}

// Result reports the outcome of one import run.
type Result struct {
	Imported int
	Rejected int
	Errors   []LineError
}

// Importer validates and appends rows from an external appointments file.
type Importer struct {
	sink   AppointmentSink
	users  UserDirectory
	logger *zerolog.Logger
}

func New(sink AppointmentSink, users UserDirectory, logger *zerolog.Logger) *Importer {
	return &Importer{sink: sink, users: users, logger: logger}
}

// ImportFile reads the CSV at path (same column layout as the appointment
// store, header row included) and appends each valid row.
func (im *Importer) ImportFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read import file: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("parse import file: %w", err)
	}
	if len(rows) == 0 {
		return Result{}, fmt.Errorf("import file is empty")
	}

	var res Result
	for i, row := range rows[1:] {
		line := i + 2
		if err := im.importRow(row); err != nil {
			res.Rejected++
			res.Errors = append(res.Errors, LineError{Line: line, Err: err})
			im.logger.Warn().Int("line", line).Err(err).Msg("rejected import row")
			continue
		}
		res.Imported++
	}

	im.logger.Info().
		Str("file", path).
		Int("imported", res.Imported).
		Int("rejected", res.Rejected).
		Msg("import complete")
	return res, nil
}

func (im *Importer) importRow(row []string) error {
	a, err := parseRow(row)
	if err != nil {
		return err
	}

	if !im.users.Exists(a.BookedBy) {
		return &apperr.InvalidInputError{Reason: "unknown user " + a.BookedBy}
	}
	if !im.users.Exists(a.WithWhom) {
		return &apperr.InvalidInputError{Reason: "unknown user " + a.WithWhom}
	}
	if a.BookedBy == a.WithWhom {
		return &apperr.InvalidInputError{Reason: "self-booking: " + a.BookedBy}
	}

	return im.sink.Append(a)
}

func parseRow(row []string) (models.Appointment, error) {
	if len(row) != 13 {
		return models.Appointment{}, &apperr.InvalidInputError{Reason: fmt.Sprintf("expected 13 fields, got %d", len(row))}
	}

	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil || id <= 0 {
		return models.Appointment{}, &apperr.InvalidInputError{Reason: "bad id " + row[0]}
	}

	if !timeutil.IsValidDate(row[2]) {
		return models.Appointment{}, &apperr.InvalidInputError{Reason: "bad date " + row[2]}
	}
	if !timeutil.IsValidTime(row[3]) {
		return models.Appointment{}, &apperr.InvalidInputError{Reason: "bad time " + row[3]}
	}

	status, err := models.ParseStatus(row[7])
	if err != nil {
		return models.Appointment{}, &apperr.InvalidInputError{Reason: err.Error()}
	}

	duration, err := strconv.Atoi(row[8])
	if err != nil || duration <= 0 {
		return models.Appointment{}, &apperr.InvalidInputError{Reason: "bad duration " + row[8]}
	}

	priority, err := models.ParsePriority(row[9])
	if err != nil {
		return models.Appointment{}, &apperr.InvalidInputError{Reason: err.Error()}
	}

	createdAt, err := time.Parse(storage.CreatedDateLayout, row[12])
	if err != nil {
		return models.Appointment{}, &apperr.InvalidInputError{Reason: "bad created date " + row[12]}
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
