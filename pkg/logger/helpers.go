package logger

import (
	"context"

	"github.com/rs/zerolog"
)

// LogRequest logs a finished HTTP call at a level matching its status
func LogRequest(l Logger, method, url string, statusCode int, durationMS float64) {
	fields := map[string]interface{}{
		"method":      method,
		"url":         url,
		"status_code": statusCode,
		"duration_ms": durationMS,
	}

	switch {
	case statusCode >= 500:
		l.ErrorWithFields("HTTP request server error", fields)
	case statusCode >= 400:
		l.WarnWithFields("HTTP request client error", fields)
	default:
		l.DebugWithFields("HTTP request completed", fields)
	}
}

// LogUpload logs the outcome of one remote upload
func LogUpload(l Logger, index int, fileName, sourceURL string, err error) {
	fields := map[string]interface{}{
		"index":  index,
		"file":   fileName,
		"source": sourceURL,
	}
	if err != nil {
		l.WithError(err).ErrorWithFields("upload failed", fields)
		return
	}
	l.InfoWithFields("upload accepted", fields)
}

// LogProgress logs how far a counted task has come
func LogProgress(l Logger, stage string, done, total int) {
	l.WithFields(map[string]interface{}{
		"stage": stage,
		"done":  done,
		"total": total,
	}).Debug("progress")
}

// NewNopLogger creates a no-operation logger for testing
func NewNopLogger() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (n nopLogger) Debug(string) {}
func (n nopLogger) Info(string) {}
func (n nopLogger) Warn(string) {}
func (n nopLogger) Error(string) {}
func (n nopLogger) Fatal(string) {}
func (n nopLogger) WithField(string, interface{}) Logger { return n }
func (n nopLogger) WithFields(map[string]interface{}) Logger { return n }
func (n nopLogger) WithError(error) Logger { return n }
func (n nopLogger) WithContext(context.Context) Logger { return n }
func (n nopLogger) DebugWithFields(string, map[string]interface{}) {}
func (n nopLogger) InfoWithFields(string, map[string]interface{}) {}
func (n nopLogger) WarnWithFields(string, map[string]interface{}) {}
func (n nopLogger) ErrorWithFields(string, map[string]interface{}) {}
func (n nopLogger) FatalWithFields(string, map[string]interface{}) {}
func (n nopLogger) GetZerolog() *zerolog.Logger { return nil }
