package cli

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/models"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/storage"
)

func scriptedApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	logger := zerolog.Nop()
	appts, err := storage.OpenAppointmentStore(filepath.Join(t.TempDir(), "appointments.csv"), &logger)
	require.NoError(t, err)

	var out bytes.Buffer
	return &App{
		appts:  appts,
		logger: &logger,
		in:     bufio.NewReader(strings.NewReader(input)),
		out:    &out,
	}, &out
}

func TestApprovalsScreen_NonNumericIDsInput(t *testing.T) {
	app, out := scriptedApp(t, "abc\n")
	require.NoError(t, app.appts.Append(models.Appointment{
		ID:              1,
		BookedBy:        "alice",
		Date:            "2025-06-01",
		Time:            "09:00",
		WithWhom:        "bob",
		ClientName:      "Alice Anders",
		Reason:          "checkup",
		Status:          models.StatusPending,
		DurationMinutes: 60,
		Priority:        models.PriorityMedium,
		CreatedAt:       time.Date(2025, 5, 20, 10, 30, 0, 0, time.UTC),
	}))

	app.approvalsScreen(Session{Username: "bob", DisplayName: "Bob"})

	assert.Contains(t, out.String(), "No valid ids entered.")
}

func TestParseIDs(t *testing.T) {
	assert.Nil(t, parseIDs("abc"))
	assert.Nil(t, parseIDs(""))
	assert.Equal(t, []int64{1, 3}, parseIDs("1, abc, 3"))
	assert.Equal(t, []int64{7}, parseIDs("7"))
}
