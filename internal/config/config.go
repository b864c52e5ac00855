// Package config loads the scheduler configuration from YAML with ${ENV}
// placeholder expansion and defaulting.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/timeutil"
)

// BackupConfig controls the per-session store file backup.
type BackupConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days"`
}

type Config struct {
	Storage struct {
		DataDir           string `yaml:"data_dir"`
		UsersFile         string `yaml:"users_file"`
		AppointmentsFile  string `yaml:"appointments_file"`
		NotificationsFile string `yaml:"notifications_file"`
	} `yaml:"storage"`

	Business struct {
		DayStart               string `yaml:"day_start"`
		DayEnd                 string `yaml:"day_end"`
		SlotStepMinutes        int    `yaml:"slot_step_minutes"`
		SuggestionLimit        int    `yaml:"suggestion_limit"`
		DefaultDurationMinutes int    `yaml:"default_duration_minutes"`
	} `yaml:"business"`

	Backup BackupConfig `yaml:"backup"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`
}

// Load reads the config at path, defaulting to configs/config.yaml. A missing
// default file is not an error: the tool runs with built-in defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			cfg := &Config{}
			cfg.applyDefaults()
			return cfg, cfg.ensureDataDir()
		}
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, cfg.ensureDataDir()
}

func (c *Config) applyDefaults() {
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
	if c.Storage.UsersFile == "" {
		c.Storage.UsersFile = "users.csv"
	}
	if c.Storage.AppointmentsFile == "" {
		c.Storage.AppointmentsFile = "appointments.csv"
	}
	if c.Storage.NotificationsFile == "" {
		c.Storage.NotificationsFile = "notifications.csv"
	}
	if c.Business.DayStart == "" {
		c.Business.DayStart = "09:00"
	}
	if c.Business.DayEnd == "" {
		c.Business.DayEnd = "18:00"
	}
	if c.Business.SlotStepMinutes <= 0 {
		c.Business.SlotStepMinutes = 30
	}
	if c.Business.SuggestionLimit <= 0 {
		c.Business.SuggestionLimit = 5
	}
	if c.Business.DefaultDurationMinutes <= 0 {
		c.Business.DefaultDurationMinutes = 60
	}
	if c.Backup.Path == "" {
		c.Backup.Path = "backups"
	}
	if c.Backup.RetentionDays <= 0 {
		c.Backup.RetentionDays = 31
	}
	if c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
}

func (c *Config) ensureDataDir() error {
	return os.MkdirAll(c.Storage.DataDir, 0o755)
}

// UsersPath returns the full path of the users file.
func (c *Config) UsersPath() string {
	return filepath.Join(c.Storage.DataDir, c.Storage.UsersFile)
}

// AppointmentsPath returns the full path of the appointments file.
func (c *Config) AppointmentsPath() string {
	return filepath.Join(c.Storage.DataDir, c.Storage.AppointmentsFile)
}

// NotificationsPath returns the full path of the notifications file.
func (c *Config) NotificationsPath() string {
	return filepath.Join(c.Storage.DataDir, c.Storage.NotificationsFile)
}

// BusinessStartMinutes returns the business window start as minutes since
// midnight, falling back to 09:00 on a malformed value.
func (c *Config) BusinessStartMinutes() int {
	m, err := timeutil.ToMinutes(c.Business.DayStart)
	if err != nil {
		return 9 * 60
	}
	return m
}

// BusinessEndMinutes returns the business window end as minutes since
// midnight, falling back to 18:00 on a malformed value.
func (c *Config) BusinessEndMinutes() int {
	m, err := timeutil.ToMinutes(c.Business.DayEnd)
	if err != nil {
		return 18 * 60
	}
	return m
}
