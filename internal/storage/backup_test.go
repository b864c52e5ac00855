package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/config"
)

func TestBackupService_RunOnce(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "appointments.csv")
	require.NoError(t, os.WriteFile(src, []byte("ID,BookedBy\n"), 0o644))

	backupDir := filepath.Join(dir, "backups")
	logger := zerolog.Nop()
	svc := NewBackupService([]string{src}, config.BackupConfig{
		Enabled:       true,
		Path:          backupDir,
		RetentionDays: 31,
	}, &logger)

	require.NoError(t, svc.RunOnce())

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "_appointments.csv"))

	data, err := os.ReadFile(filepath.Join(backupDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "ID,BookedBy\n", string(data))
}

func TestBackupService_Disabled(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	logger := zerolog.Nop()
	svc := NewBackupService(nil, config.BackupConfig{Enabled: false, Path: backupDir}, &logger)

	require.NoError(t, svc.RunOnce())
	_, err := os.Stat(backupDir)
	assert.True(t, os.IsNotExist(err))
}

func TestBackupService_SkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	logger := zerolog.Nop()
	svc := NewBackupService([]string{filepath.Join(dir, "missing.csv")}, config.BackupConfig{
		Enabled: true,
		Path:    backupDir,
	}, &logger)

	require.NoError(t, svc.RunOnce())
	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
