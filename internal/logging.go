package internal

import (
	"sync"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	WithField(string, any) Logger
	With(map[string]any) Logger

	Debugf(string, ...any)
	Infof(string, ...any)
	Warnf(string, ...any)
	Errorf(string, ...any)
}

// NewLogger builds a logrus logger configured from the given settings.
func NewLogger(s Settings) Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	switch s.LogFormat {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FullTimestamp:   true,
		})
	}

	return &logrusLoggerWrapper{l}
}

var (
	loggerOnce sync.Once
	logger     Logger
)

func defaultLogger() Logger {
	loggerOnce.Do(func() {
		logger = NewLogger(DefaultSettings()).WithField("pkg", "rx")
	})

	return logger
}

type logrusLoggerWrapper struct {
	*logrus.Logger
}

func (l *logrusLoggerWrapper) WithField(field string, value any) Logger {
	return &logrusEntryWrapper{l.Logger.WithField(field, value)}
}

func (l *logrusLoggerWrapper) With(fields map[string]any) Logger {
	return &logrusEntryWrapper{l.Logger.WithFields(fields)}
}

type logrusEntryWrapper struct {
	*logrus.Entry
}

func (e *logrusEntryWrapper) WithField(field string, value any) Logger {
	return &logrusEntryWrapper{e.Entry.WithField(field, value)}
}

func (e *logrusEntryWrapper) With(fields map[string]any) Logger {
	return &logrusEntryWrapper{e.Entry.WithFields(fields)}
}
