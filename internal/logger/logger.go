package logger

import (
	"strings"
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process-wide logger. The first call fixes its level and
// format; later arguments are ignored.
func Get(level, format string) *Logger {
	once.Do(func() {
		globalLogger = NewWithFormat(level, format)
	})
	return globalLogger
}

// New builds a standalone console logger.
func New(level string) *Logger {
	return NewWithFormat(level, FormatConsole)
}

// NewWithFormat builds a standalone logger. Level and format names are
// case-insensitive; an unknown format means console.
func NewWithFormat(level, format string) *Logger {
	return newZapLogger(normalize(level), normalize(format))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
