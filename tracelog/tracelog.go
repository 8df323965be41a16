// Package tracelog is a thin logrus wrapper for the engine's one
// environment input: a diagnostic flag that enables per-stage trace
// printing to stderr. The flag only gates whether these calls happen; it
// never affects any numerical result (specification section 9, "Global
// state").
package tracelog

import "github.com/sirupsen/logrus"

var logger = func() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	return l
}()

// SetLevel adjusts the trace verbosity; callers typically set this once
// at startup, as the qwen2run CLI does from its --log flag.
func SetLevel(level logrus.Level) {
	logger.SetLevel(level)
}

// Infof logs an informational trace line.
func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

// Warnf logs a recoverable-condition trace line.
func Warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}
