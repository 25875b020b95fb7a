// Package logger provides structured logging for vkbackup on top of zerolog.
//
//	err := logger.Initialize(&cfg.Logging)
//	log := logger.GetLogger().WithField("component", "saver")
//	log.InfoWithFields("upload accepted", map[string]interface{}{
//	    "file": "12_1.jpg",
//	})
//
// Console output is colored and goes to stderr so command output on stdout
// stays clean. When a file is configured the same events are appended to
// it as JSON lines. Decoded API payloads passed as field values are written
// as nested JSON.
//
// Tests use NewTestLogger to capture messages or NewNopLogger to drop them.
package logger
