package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/config"
)

// BackupService copies the store files into a backup directory and prunes
// copies older than the retention window. The tool is interactive, so
// backups run once per session rather than on a ticker.
type BackupService struct {
	files  []string
	config config.BackupConfig
	logger *zerolog.Logger
}

func NewBackupService(files []string, cfg config.BackupConfig, logger *zerolog.Logger) *BackupService {
	return &BackupService{
		files:  files,
		config: cfg,
		logger: logger,
	}
}

// RunOnce performs a backup of every store file, then prunes old backups.
// Each run gets an id so its log lines can be correlated.
func (s *BackupService) RunOnce() error {
	if !s.config.Enabled {
		s.logger.Debug().Msg("backup is disabled")
		return nil
	}

	if err := os.MkdirAll(s.config.Path, 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	runID := uuid.New().String()
	timestamp := time.Now().Format("20060102_150405")

	for _, file := range s.files {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue
		}
		dst := filepath.Join(s.config.Path, fmt.Sprintf("%s_%s", timestamp, filepath.Base(file)))
		if err := copyFile(file, dst); err != nil {
			s.logger.Error().Str("run_id", runID).Str("file", file).Err(err).Msg("backup failed")
			return err
		}
		s.logger.Info().Str("run_id", runID).Str("file", file).Str("backup", dst).Msg("backed up store file")
	}

	s.CleanupOldBackups()
	return nil
}

// CleanupOldBackups deletes backups older than the retention window.
func (s *BackupService) CleanupOldBackups() {
	if s.config.RetentionDays <= 0 {
		return
	}

	entries, err := os.ReadDir(s.config.Path)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read backup directory for cleanup")
		return
	}

	cutoff := time.Now().AddDate(0, 0, -s.config.RetentionDays)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			s.logger.Info().Str("file", entry.Name()).Msg("deleting old backup")
			os.Remove(filepath.Join(s.config.Path, entry.Name()))
		}
	}
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destination.Close()

	_, err = io.Copy(destination, source)
	return err
}
