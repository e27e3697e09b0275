package log

import (
	"github.com/anchore/go-logger"
	"github.com/anchore/go-logger/adapter/discard"
	red "github.com/anchore/go-logger/adapter/redact"

	"github.com/mvnup/mvnup/internal/redact"
)

// log is the singleton used by all library and CLI code (a discard logger
// until the application configures a real one).
var log logger.Logger = discard.New()

func Set(l logger.Logger) {
	// wrap the logger with redaction when a redaction store has been set up,
	// so secrets never land in log output
	if store := redact.Get(); store != nil {
		l = red.New(l, store)
	}
	log = l
}

func Get() logger.Logger {
	return log
}

func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

func Error(args ...interface{}) {
	log.Error(args...)
}

func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

func Warn(args ...interface{}) {
	log.Warn(args...)
}

func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

func Info(args ...interface{}) {
	log.Info(args...)
}

func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

func Debug(args ...interface{}) {
	log.Debug(args...)
}

func Tracef(format string, args ...interface{}) {
	log.Tracef(format, args...)
}

func Trace(args ...interface{}) {
	log.Trace(args...)
}

func WithFields(fields ...interface{}) logger.MessageLogger {
	return log.WithFields(fields...)
}

func Nested(fields ...interface{}) logger.Logger {
	return log.Nested(fields...)
}
