// Package output provides logging for the CLI and the HTTP service.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package-wide logger instance.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	ReportCaller:    false,
})

// LogConfig controls SetupLogging.
type LogConfig struct {
	// Verbose enables debug level, timestamps and caller reporting.
	Verbose bool

	// Writer is the log destination. Defaults to os.Stderr.
	Writer io.Writer

	// Prefix is prepended to every line (e.g. "serve").
	Prefix string
}

// SetupLogging configures the logger based on verbosity.
func SetupLogging(cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          cfg.Prefix,
		ReportTimestamp: cfg.Verbose,
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
}

// Logger returns the configured logger.
func Logger() *log.Logger {
	return logger
}

// With returns a child logger carrying the given key-value pairs.
func With(keyvals ...interface{}) *log.Logger {
	return logger.With(keyvals...)
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}
