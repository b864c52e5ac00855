package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("data", "appointments.csv"), cfg.AppointmentsPath())
	assert.Equal(t, filepath.Join("data", "users.csv"), cfg.UsersPath())
	assert.Equal(t, filepath.Join("data", "notifications.csv"), cfg.NotificationsPath())
	assert.Equal(t, 9*60, cfg.BusinessStartMinutes())
	assert.Equal(t, 18*60, cfg.BusinessEndMinutes())
	assert.Equal(t, 30, cfg.Business.SlotStepMinutes)
	assert.Equal(t, 5, cfg.Business.SuggestionLimit)
	assert.Equal(t, 60, cfg.Business.DefaultDurationMinutes)
	assert.False(t, cfg.Backup.Enabled)

	// The data directory is created.
	info, err := os.Stat("data")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "config.yaml")
	content := `
storage:
  data_dir: ${SCHEDULER_DATA_DIR}
business:
  day_start: "08:00"
  day_end: "20:00"
  slot_step_minutes: 15
backup:
  enabled: true
  retention_days: 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("SCHEDULER_DATA_DIR", filepath.Join(dir, "store"))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "store"), cfg.Storage.DataDir)
	assert.Equal(t, 8*60, cfg.BusinessStartMinutes())
	assert.Equal(t, 20*60, cfg.BusinessEndMinutes())
	assert.Equal(t, 15, cfg.Business.SlotStepMinutes)
	assert.True(t, cfg.Backup.Enabled)
	assert.Equal(t, 7, cfg.Backup.RetentionDays)

	// Unset fields still get defaults.
	assert.Equal(t, "appointments.csv", cfg.Storage.AppointmentsFile)
	assert.Equal(t, 60, cfg.Business.DefaultDurationMinutes)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestBusinessMinutes_MalformedFallsBack(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.Business.DayStart = "morning"
	cfg.Business.DayEnd = "evening"

	assert.Equal(t, 9*60, cfg.BusinessStartMinutes())
	assert.Equal(t, 18*60, cfg.BusinessEndMinutes())
}
