// internal/utils/logging.go
package utils

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Logger provides structured logging capabilities
type Logger struct {
	log zerolog.Logger
}

// NewLogger creates a logger writing JSON lines to w at the given level.
// Valid levels are the zerolog names: trace, debug, info, warn, error,
// fatal, panic, disabled.
func NewLogger(w io.Writer, level string) (*Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(w).With().Timestamp().Logger().Level(lvl)

	return &Logger{log: log}, nil
}

// NopLogger returns a logger that discards everything
func NopLogger() *Logger {
	return &Logger{log: zerolog.Nop()}
}

// With returns a child logger carrying the given key-value pairs
func (l *Logger) With(attrs ...interface{}) *Logger {
	return &Logger{log: l.log.With().Fields(pairs(attrs)).Logger()}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, attrs ...interface{}) {
	l.log.Debug().Fields(pairs(attrs)).Msg(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, attrs ...interface{}) {
	l.log.Info().Fields(pairs(attrs)).Msg(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, attrs ...interface{}) {
	l.log.Warn().Fields(pairs(attrs)).Msg(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, attrs ...interface{}) {
	l.log.Error().Fields(pairs(attrs)).Msg(msg)
}

// pairs turns key-value arguments into a field map. Errors are rendered
// with their message and a dangling key gets "<missing>".
func pairs(attrs []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(attrs)/2)
	for i := 0; i < len(attrs); i += 2 {
		key := fmt.Sprintf("%v", attrs[i])

		var val interface{} = "<missing>"
		if i+1 < len(attrs) {
			val = attrs[i+1]
		}
		if err, ok := val.(error); ok {
			val = err.Error()
		}

		fields[key] = val
	}
	return fields
}
