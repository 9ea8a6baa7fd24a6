package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "tasklist.db", cfg.DatabasePath)
	assert.Equal(t, time.Minute, cfg.PollInterval)
	assert.Empty(t, cfg.ActiveUser)
	assert.False(t, cfg.KeepOverdueArmed)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "tasklist.db", cfg.DatabasePath)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "database: /tmp/tasks.db\nactive_user: alice\npoll_interval: 30s\nkeep_overdue_armed: true\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/tasks.db", cfg.DatabasePath)
	assert.Equal(t, "alice", cfg.ActiveUser)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.True(t, cfg.KeepOverdueArmed)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: from-file.db\nactive_user: alice\n"), 0o644))

	t.Setenv("TASKLIST_DB", "from-env.db")
	t.Setenv("TASKLIST_USER", "bob")
	t.Setenv("TASKLIST_POLL_INTERVAL", "2m")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.DatabasePath)
	assert.Equal(t, "bob", cfg.ActiveUser)
	assert.Equal(t, 2*time.Minute, cfg.PollInterval)
}

func TestLoadRejectsBadInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("poll_interval: soon\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)

	t.Setenv("TASKLIST_POLL_INTERVAL", "-1m")
	_, err = Load("")
	assert.Error(t, err)
}
