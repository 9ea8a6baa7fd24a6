package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config keeps runtime settings for the task list runner.
type Config struct {
	// DatabasePath is the SQLite file backing the task store.
	DatabasePath string
	// ActiveUser is the username whose reminders the runner polls.
	ActiveUser string
	// PollInterval is the reminder poll cadence. The classifiers match on
	// exact minutes, so anything above one minute misses fires.
	PollInterval time.Duration
	// KeepOverdueArmed disables the one-shot overdue behavior: overdue
	// tasks keep their reminder state and are reported on every poll.
	KeepOverdueArmed bool
}

type fileConfig struct {
	Database         string `yaml:"database"`
	ActiveUser       string `yaml:"active_user"`
	PollInterval     string `yaml:"poll_interval"`
	KeepOverdueArmed bool   `yaml:"keep_overdue_armed"`
}

// Load reads the optional YAML config file at path and applies environment
// overrides (TASKLIST_DB, TASKLIST_USER, TASKLIST_POLL_INTERVAL) with sane
// defaults. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Config{
		DatabasePath: "tasklist.db",
		PollInterval: time.Minute,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var fc fileConfig
			if err := yaml.Unmarshal(data, &fc); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
			if fc.Database != "" {
				cfg.DatabasePath = fc.Database
			}
			cfg.ActiveUser = fc.ActiveUser
			cfg.KeepOverdueArmed = fc.KeepOverdueArmed
			if fc.PollInterval != "" {
				d, err := time.ParseDuration(fc.PollInterval)
				if err != nil || d <= 0 {
					return cfg, fmt.Errorf("config %s: invalid poll_interval %q", path, fc.PollInterval)
				}
				cfg.PollInterval = d
			}
		case os.IsNotExist(err):
			// Defaults and environment only.
		default:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("TASKLIST_DB")); v != "" {
		cfg.DatabasePath = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKLIST_USER")); v != "" {
		cfg.ActiveUser = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKLIST_POLL_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid TASKLIST_POLL_INTERVAL %q", v)
		}
		cfg.PollInterval = d
	}

	return cfg, nil
}
