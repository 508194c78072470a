// Package log provides named logrus loggers used across the converter.
package log

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

var base = &logrus.Logger{
	Out: os.Stderr,
	Formatter: &CustomTextFormatter{
		logrus.TextFormatter{
			FullTimestamp: true,
			// caller is folded into the message by CustomTextFormatter
			CallerPrettyfier: func(*runtime.Frame) (string, string) { return "", "" },
		},
	},
	Hooks:        make(logrus.LevelHooks),
	Level:        logrus.InfoLevel,
	ReportCaller: true,
}

var availableLoggingLevels = []string{"panic", "fatal", "error", "warn", "info", "debug", "trace"}

// AvailableLoggingLevels is the comma separated list accepted by SetLevel.
var AvailableLoggingLevels = strings.Join(availableLoggingLevels, ", ")

// IsValidLevel returns true if level is accepted by SetLevel.
func IsValidLevel(level string) bool {
	for _, l := range availableLoggingLevels {
		if l == strings.ToLower(level) {
			return true
		}
	}
	return false
}

// NamedLogger creates named package logger.
func NamedLogger(name string) *logrus.Entry {
	return base.WithField("logger", name)
}

// SetLevel changes level of all named loggers.
func SetLevel(level string) error {
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid logging level %q, expected one of: %s", level, AvailableLoggingLevels)
	}
	base.SetLevel(parsed)
	return nil
}

// SetOutput redirects all named loggers.
func SetOutput(out io.Writer) {
	base.SetOutput(out)
}

// CustomTextFormatter prefixes every message with the file and line that logged it.
type CustomTextFormatter struct {
	logrus.TextFormatter
}

// Format renders a single log entry
func (f *CustomTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry.HasCaller() {
		entry.Message = fmt.Sprintf("[%-15s:%03d] %s", path.Base(entry.Caller.File), entry.Caller.Line, entry.Message)
	}
	return f.TextFormatter.Format(entry)
}
