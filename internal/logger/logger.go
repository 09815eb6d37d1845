package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var log = GetLogger()

// Options selects log level and format. Zero value is normal text output.
type Options struct {
	Verbose bool
	JSON    bool
	Quiet   bool
}

// CLIFormatter provides clean output for CLI applications
type CLIFormatter struct {
	DisableTimestamp bool
	DisableLevel     bool
	DisableColors    bool
}

func (f *CLIFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	if !f.DisableTimestamp {
		b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
		b.WriteByte(' ')
	}

	if !f.DisableLevel {
		levelColor := ""
		resetColor := ""
		if !f.DisableColors {
			switch entry.Level {
			case logrus.ErrorLevel:
				levelColor = "\033[31m" // Red
			case logrus.WarnLevel:
				levelColor = "\033[33m" // Yellow
			case logrus.InfoLevel:
				levelColor = "\033[36m" // Cyan
			case logrus.DebugLevel:
				levelColor = "\033[37m" // White
			}
			resetColor = "\033[0m"
		}

		b.WriteString(levelColor)
		b.WriteString(strings.ToUpper(entry.Level.String()))
		b.WriteString(resetColor)
		b.WriteString(": ")
	}

	b.WriteString(entry.Message)

	// internal routing fields are not printed
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k == "log_type" || k == "emoji" {
			continue
		}
		keys = append(keys, k)
	}
	if !(f.DisableLevel && f.DisableTimestamp) && len(keys) > 0 {
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf(" %s=%v", k, entry.Data[k]))
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// ApplyEnv folds LOG_MODE and LOG_FORMAT into opts, overriding them. It is
// meant for startup before configuration is loaded; once the config package
// has layered flags over the environment, use SetupWriters directly.
func ApplyEnv(opts Options) Options {
	switch os.Getenv("LOG_MODE") {
	case "quiet":
		opts.Quiet = true
		opts.Verbose = false
	case "verbose", "debug":
		opts.Verbose = true
		opts.Quiet = false
	}

	switch os.Getenv("LOG_FORMAT") {
	case "json":
		opts.JSON = true
	case "text":
		opts.JSON = false
	}
	return opts
}

// Setup configures the global logger from opts and the environment, routing
// user logs to stdout and operational logs to stderr.
func Setup(opts Options) {
	SetupWriters(ApplyEnv(opts), os.Stdout, os.Stderr)
}

// SetupWriters is Setup with explicit destinations.
func SetupWriters(opts Options, userOut, opOut io.Writer) {
	internalLogger := GetLogger().GetInternalLogger()

	level := logrus.InfoLevel
	if opts.Quiet {
		level = logrus.ErrorLevel
	} else if opts.Verbose {
		level = logrus.DebugLevel
	}

	internalLogger.Hooks = make(logrus.LevelHooks)
	internalLogger.SetOutput(io.Discard)
	internalLogger.SetLevel(level)

	hook := NewOutputRouterHook()
	hook.UserWriter = userOut
	hook.OpWriter = opOut

	if opts.JSON {
		internalLogger.SetFormatter(&logrus.JSONFormatter{})
		hook.UserFormatter = &logrus.JSONFormatter{}
		hook.OpFormatter = &logrus.JSONFormatter{}
	} else {
		internalLogger.SetFormatter(&logrus.TextFormatter{})
		if opts.Verbose {
			hook.OpFormatter = &logrus.TextFormatter{
				FullTimestamp: true,
				ForceColors:   isTerminal(opOut),
			}
		} else {
			hook.OpFormatter = &CLIFormatter{
				DisableTimestamp: true,
				DisableColors:    !isTerminal(opOut),
			}
		}
	}

	internalLogger.AddHook(hook)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// Op returns the global operational log entry.
func Op() *logrus.Entry {
	return log.Op()
}

// Warn logs a warning message
func Warn(msg string, fields ...Field) {
	log.Warn(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...Field) {
	log.Debug(msg, fields...)
}

// Starting logs a start message
func Starting(msg string) {
	log.Starting(msg)
}

// Successf logs a formatted success message
func Successf(format string, args ...interface{}) {
	log.Successf(format, args...)
}

// Created logs a task creation message
func Created(msg string) {
	log.Created(msg)
}

// Movedf logs a formatted task move message
func Movedf(format string, args ...interface{}) {
	log.Movedf(format, args...)
}

// Updatedf logs a formatted task update message
func Updatedf(format string, args ...interface{}) {
	log.Updatedf(format, args...)
}

// Deletedf logs a formatted task deletion message
func Deletedf(format string, args ...interface{}) {
	log.Deletedf(format, args...)
}

// Mismatchf logs a formatted badge/status disagreement
func Mismatchf(format string, args ...interface{}) {
	log.Mismatchf(format, args...)
}
