// Package log is the application's logging facade over logrus.
// Nothing is written unless logs.write is enabled.
package log

import (
	"io"
	"path/filepath"

	"github.com/animecritique/critique/constant"
	"github.com/animecritique/critique/key"
	"github.com/animecritique/critique/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

var enabled bool

// Setup wires logrus to a rotating file in where.Logs() and applies the configured format and level.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	logrus.SetOutput(&lumberjack.Logger{
		Filename:   filepath.Join(where.Logs(), constant.App+".log"),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	})

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	return nil
}

// Enabled reports whether log output is active.
func Enabled() bool {
	return enabled
}

// WithFields returns an entry carrying structured fields.
// When logging is disabled the entry writes to a discarded logger.
func WithFields(fields map[string]any) *logrus.Entry {
	if !enabled {
		return logrus.NewEntry(discard).WithFields(fields)
	}
	return logrus.WithFields(fields)
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}()

// Error logs at error level.
func Error(args ...any) {
	if enabled {
		logrus.Error(args...)
	}
}

// Warn logs at warn level.
func Warn(args ...any) {
	if enabled {
		logrus.Warn(args...)
	}
}

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...any) {
	if enabled {
		logrus.Warnf(format, args...)
	}
}

// Infof logs a formatted message at info level.
func Infof(format string, args ...any) {
	if enabled {
		logrus.Infof(format, args...)
	}
}
