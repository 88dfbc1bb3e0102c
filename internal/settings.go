package internal

import (
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Settings is the process-wide configuration, read once at startup and then
// passed to the constructors that need it.
type Settings struct {
	// Debug turns on descriptive signal names and subscription tracing.
	Debug bool

	LogLevel  string
	LogFormat string

	// SchedulerQueueSize is the initial capacity of a queue scheduler's pending buffer.
	SchedulerQueueSize int
}

func newConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("rx")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("debug", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("scheduler.queue_size", 64)

	return v
}

// LoadSettings reads the settings from RX_* environment variables and, when
// RX_CONFIG names a file, from that file first.
func LoadSettings() (Settings, error) {
	v := newConfig()

	var err error
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		err = v.ReadInConfig()
	}

	s := Settings{
		Debug:              v.GetBool("debug"),
		LogLevel:           v.GetString("log.level"),
		LogFormat:          v.GetString("log.format"),
		SchedulerQueueSize: v.GetInt("scheduler.queue_size"),
	}
	if s.SchedulerQueueSize <= 0 {
		s.SchedulerQueueSize = 64
	}

	return s, err
}

var (
	settingsOnce    sync.Once
	defaultSettings Settings
)

// DefaultSettings returns the settings loaded on first use.
// A broken config file falls back to the environment and defaults.
func DefaultSettings() Settings {
	settingsOnce.Do(func() {
		s, err := LoadSettings()
		defaultSettings = s
		if err != nil {
			NewLogger(s).WithField("config", "RX_CONFIG").Warnf("could not read settings file: %v", err)
		}
	})

	return defaultSettings
}
