package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadYamlMissingFileUsesDefaults(t *testing.T) {
	cfg, err := readYamlFrom(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.PidFile)
	assert.Equal(t, 0, cfg.Retries)
	assert.Equal(t, time.Second, cfg.Sleep)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestReadYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
pid_file: /var/run/app.pid
retries: 3
sleep: 250ms
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := readYamlFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/run/app.pid", cfg.PidFile)
	assert.Equal(t, 3, cfg.Retries)
	assert.Equal(t, 250*time.Millisecond, cfg.Sleep)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestReadYamlInvalidSleep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sleep: nonsense\n"), 0o644))

	_, err := readYamlFrom(path)
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Cfg{LogLevel: "debug"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Cfg{LogLevel: "warn"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Cfg{LogLevel: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Cfg{LogLevel: "info"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Cfg{LogLevel: ""}).SlogLevel())
}
