package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// OutputRouterHook routes log entries to different outputs based on log_type
type OutputRouterHook struct {
	UserFormatter logrus.Formatter
	OpFormatter   logrus.Formatter
	UserWriter    io.Writer
	OpWriter      io.Writer
}

// NewOutputRouterHook creates a new output router hook
func NewOutputRouterHook() *OutputRouterHook {
	return &OutputRouterHook{
		UserFormatter: &CLIFormatter{
			DisableTimestamp: true,
			DisableLevel:     true,
		},
		OpFormatter: &CLIFormatter{
			DisableTimestamp: true,
		},
		UserWriter: os.Stdout,
		OpWriter:   os.Stderr,
	}
}

// Levels returns all log levels (this hook processes all levels)
func (h *OutputRouterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire is called when a log event is fired
func (h *OutputRouterHook) Fire(entry *logrus.Entry) error {
	logType, _ := entry.Data["log_type"].(string)

	formatter := h.OpFormatter
	writer := h.OpWriter

	if logType == string(UserLog) {
		formatter = h.UserFormatter
		writer = h.UserWriter

		if _, isJSON := formatter.(*logrus.JSONFormatter); !isJSON {
			if emoji, ok := entry.Data["emoji"].(string); ok && emoji != "" {
				// format a copy, other hooks see the original message
				dup := *entry
				dup.Message = emoji + " " + entry.Message
				entry = &dup
			}
		}
	}

	bytes, err := formatter.Format(entry)
	if err != nil {
		return err
	}

	_, err = writer.Write(bytes)
	return err
}
