package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// LogType represents the type of log message
type LogType string

const (
	UserLog LogType = "user"
	OpLog   LogType = "op"
)

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// UnifiedLogger wraps a logrus logger and tags every entry as user or op output
type UnifiedLogger struct {
	mu     sync.RWMutex
	logger *logrus.Logger
}

var (
	unifiedLog *UnifiedLogger
	once       sync.Once
)

// GetLogger returns the global logger instance, initializing it if necessary
func GetLogger() *UnifiedLogger {
	once.Do(func() {
		unifiedLog = NewUnifiedLogger(os.Stdout)
	})
	return unifiedLog
}

// NewUnifiedLogger creates a logger writing plain messages to out.
// The CLI uses the global instance; tests build their own.
func NewUnifiedLogger(out io.Writer) *UnifiedLogger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&CLIFormatter{
		DisableTimestamp: true,
		DisableLevel:     true,
		DisableColors:    true,
	})
	return &UnifiedLogger{logger: logger}
}

// WithLogType creates a field for the log type
func WithLogType(logType LogType) Field {
	return Field{Key: "log_type", Value: string(logType)}
}

// WithEmoji creates a field for emoji
func WithEmoji(emoji string) Field {
	return Field{Key: "emoji", Value: emoji}
}

// WithFields creates fields from a map
func WithFields(fields map[string]interface{}) []Field {
	result := make([]Field, 0, len(fields))
	for k, v := range fields {
		result = append(result, Field{Key: k, Value: v})
	}
	return result
}

func (l *UnifiedLogger) entry(fields ...Field) *logrus.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	logFields := make(logrus.Fields)
	for _, field := range fields {
		logFields[field.Key] = field.Value
	}

	return l.logger.WithFields(logFields)
}

// Info logs an info message
func (l *UnifiedLogger) Info(msg string, fields ...Field) {
	l.entry(fields...).Info(msg)
}

// Warn logs a warning message
func (l *UnifiedLogger) Warn(msg string, fields ...Field) {
	l.entry(fields...).Warn(msg)
}

// Debug logs a debug message
func (l *UnifiedLogger) Debug(msg string, fields ...Field) {
	l.entry(fields...).Debug(msg)
}

// Op returns an entry tagged as operational output. Components that take a
// logrus.FieldLogger (the bus, the board) are handed this.
func (l *UnifiedLogger) Op() *logrus.Entry {
	return l.entry(WithLogType(OpLog))
}

// GetInternalLogger returns the underlying logrus logger (use with caution)
func (l *UnifiedLogger) GetInternalLogger() *logrus.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.logger
}

// User-facing helpers. Each carries a status prefix and an emoji that the
// output hook prepends for text output.

// Starting logs a start message
func (l *UnifiedLogger) Starting(msg string) {
	l.Info("[STARTING] "+msg, WithLogType(UserLog), WithEmoji("🚀"))
}

// Successf logs a formatted success message
func (l *UnifiedLogger) Successf(format string, args ...interface{}) {
	l.entry(WithLogType(UserLog), WithEmoji("✅")).Infof("[SUCCESS] "+format, args...)
}

// Created logs a task creation message
func (l *UnifiedLogger) Created(msg string) {
	l.Info("[CREATED] "+msg, WithLogType(UserLog), WithEmoji("🆕"))
}

// Movedf logs a formatted task move message
func (l *UnifiedLogger) Movedf(format string, args ...interface{}) {
	l.entry(WithLogType(UserLog), WithEmoji("➡️")).Infof("[MOVED] "+format, args...)
}

// Updatedf logs a formatted task update message
func (l *UnifiedLogger) Updatedf(format string, args ...interface{}) {
	l.entry(WithLogType(UserLog), WithEmoji("✏️")).Infof("[UPDATED] "+format, args...)
}

// Deletedf logs a formatted task deletion message
func (l *UnifiedLogger) Deletedf(format string, args ...interface{}) {
	l.entry(WithLogType(UserLog), WithEmoji("🗑️")).Infof("[DELETED] "+format, args...)
}

// Mismatchf logs a formatted badge/status disagreement
func (l *UnifiedLogger) Mismatchf(format string, args ...interface{}) {
	l.entry(WithLogType(UserLog), WithEmoji("⚠️")).Warnf("[MISMATCH] "+format, args...)
}
