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
	t.Setenv("SOLVER_CONFIG", "")
	t.Setenv("PORT", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, 6, cfg.MaxGuesses)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
table_path: /tmp/t.bin
workers: 3
seed: 7
session_ttl: 30m
`), 0o644))

	t.Setenv("PORT", "")
	t.Setenv("BUILD_WORKERS", "5")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/tmp/t.bin", cfg.TablePath)
	assert.Equal(t, 5, cfg.Workers)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("MAX_GUESSES", "six")
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
