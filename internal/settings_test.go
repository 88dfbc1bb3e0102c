package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s, err := LoadSettings()
		require.NoError(t, err)

		assert.False(t, s.Debug)
		assert.Equal(t, "info", s.LogLevel)
		assert.Equal(t, "text", s.LogFormat)
		assert.Equal(t, 64, s.SchedulerQueueSize)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("RX_DEBUG", "true")
		t.Setenv("RX_LOG_LEVEL", "debug")
		t.Setenv("RX_SCHEDULER_QUEUE_SIZE", "8")

		s, err := LoadSettings()
		require.NoError(t, err)

		assert.True(t, s.Debug)
		assert.Equal(t, "debug", s.LogLevel)
		assert.Equal(t, 8, s.SchedulerQueueSize)
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rx.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log:\n  format: json\n"), 0o600))
		t.Setenv("RX_CONFIG", path)

		s, err := LoadSettings()
		require.NoError(t, err)
		assert.Equal(t, "json", s.LogFormat)
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Setenv("RX_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

		s, err := LoadSettings()
		assert.Error(t, err)
		assert.Equal(t, "info", s.LogLevel)
	})

	t.Run("bad queue size", func(t *testing.T) {
		t.Setenv("RX_SCHEDULER_QUEUE_SIZE", "-3")

		s, err := LoadSettings()
		require.NoError(t, err)
		assert.Equal(t, 64, s.SchedulerQueueSize)
	})
}

func TestNewLogger(t *testing.T) {
	l := NewLogger(Settings{LogLevel: "warn", LogFormat: "json"}).(*logrusLoggerWrapper)
	assert.Equal(t, logrus.WarnLevel, l.Level)
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	l = NewLogger(Settings{LogLevel: "bogus"}).(*logrusLoggerWrapper)
	assert.Equal(t, logrus.InfoLevel, l.Level)
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}
