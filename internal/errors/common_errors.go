package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common error codes
const (
	// Input error codes
	CodeMalformedInput = "001"
	CodeTaskNotFound   = "002"
	CodeDuplicateTask  = "003"

	// Listener error codes
	CodeListenerFailed = "001"
	CodeListenerPanic  = "002"

	// Validation error codes
	CodeUnknownTopic    = "001"
	CodePayloadMismatch = "002"
	CodeInvalidTable    = "003"
	CodeInvalidValue    = "004"
	CodeBadgeMismatch   = "005"

	// Configuration error codes
	CodeConfigRead  = "001"
	CodeConfigParse = "002"
)

// NewMalformedInputError creates an error for task records that cannot be decoded
func NewMalformedInputError(source string, originalErr error) *BoardError {
	return NewInputError(CodeMalformedInput,
		fmt.Sprintf("Malformed task input from '%s'", source),
		"Task decoding").
		WithContext("source", source).
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"Task input must be a JSON array of objects",
			"Each task needs at least an 'id' and a 'status' or 'column_identifier'",
		)
}

// NewTaskNotFoundError creates an error for operations on an unknown task id
func NewTaskNotFoundError(taskID, operation string) *BoardError {
	return NewInputError(CodeTaskNotFound,
		fmt.Sprintf("Task '%s' not found", taskID),
		operation).
		WithContext("task", taskID).
		WithTroubleshooting(
			"Verify the task id exists in the loaded board",
			"Run 'boardsync resolve' to list the loaded tasks",
		)
}

// NewDuplicateTaskError creates an error for a task id that is already on the board
func NewDuplicateTaskError(taskID string) *BoardError {
	return NewInputError(CodeDuplicateTask,
		fmt.Sprintf("Task '%s' already exists", taskID),
		"Task creation").
		WithContext("task", taskID)
}

// NewListenerFailureError creates an error for a listener that failed during emission
func NewListenerFailureError(topic, source string, originalErr error) *BoardError {
	return NewListenerError(CodeListenerFailed,
		fmt.Sprintf("Listener '%s' failed on topic '%s'", source, topic),
		"Event delivery").
		WithContext("topic", topic).
		WithContext("source", source).
		WithOriginalError(originalErr)
}

// NewListenerPanicError creates an error for a listener that panicked during emission
func NewListenerPanicError(topic, source string, recovered interface{}) *BoardError {
	return NewListenerError(CodeListenerPanic,
		fmt.Sprintf("Listener '%s' panicked on topic '%s'", source, topic),
		"Event delivery").
		WithContext("topic", topic).
		WithContext("source", source).
		WithContext("panic", fmt.Sprint(recovered))
}

// NewUnknownTopicError creates an error for a topic outside the known set
func NewUnknownTopicError(topic string) *BoardError {
	return NewValidationError(CodeUnknownTopic,
		fmt.Sprintf("Unknown topic '%s'", topic),
		"Topic lookup").
		WithContext("topic", topic).
		WithTroubleshooting(
			"Valid topics are task_created, task_updated, task_moved and task_deleted",
		)
}

// NewPayloadMismatchError creates an error for a payload emitted on the wrong topic
func NewPayloadMismatchError(topic, payloadTopic string) *BoardError {
	return NewValidationError(CodePayloadMismatch,
		fmt.Sprintf("Payload for '%s' emitted on topic '%s'", payloadTopic, topic),
		"Event emission").
		WithContext("topic", topic).
		WithContext("payload_topic", payloadTopic)
}

// NewInvalidTableError creates an error for a status keyword table that cannot be used
func NewInvalidTableError(reason string) *BoardError {
	return NewValidationError(CodeInvalidTable,
		fmt.Sprintf("Invalid status table: %s", reason),
		"Resolver configuration").
		WithTroubleshooting(
			"Statuses must be one of TODO, IN_PROGRESS, REVIEW, DONE, ARCHIVED",
			"Every rule needs at least one non-empty keyword",
		)
}

// NewBadgeMismatchError creates an error for a board whose completion badges disagree
func NewBadgeMismatchError(issues int) *BoardError {
	return NewValidationError(CodeBadgeMismatch,
		fmt.Sprintf("%d task(s) would show inconsistent completion badges", issues),
		"Badge consistency check").
		WithContext("issues", issues).
		WithTroubleshooting(
			"Align each task's status field with its column, or clear the status so the column decides",
			"Run 'boardsync resolve' to see which rule resolved each task",
		)
}

// NewValidationFailedError creates an error for input validation failures
func NewValidationFailedError(field, value, operation string) *BoardError {
	return NewValidationError(CodeInvalidValue,
		fmt.Sprintf("Invalid value for %s: '%s'", field, value),
		operation).
		WithContext("field", field).
		WithContext("value", value).
		WithTroubleshooting(
			"Check the command syntax and parameter values",
			"Use --help to see available options and examples",
		)
}

// NewConfigReadError creates an error for a config file that cannot be read or parsed
func NewConfigReadError(path string, parse bool, originalErr error) *BoardError {
	code := CodeConfigRead
	msg := fmt.Sprintf("Cannot read config file '%s'", path)
	if parse {
		code = CodeConfigParse
		msg = fmt.Sprintf("Cannot parse config file '%s'", path)
	}
	return NewConfigurationError(code, msg, "Configuration loading").
		WithContext("path", path).
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"Verify the file exists and is valid TOML",
			"Unset BOARDSYNC_CONFIG to fall back to defaults",
		)
}

// IsCategory reports whether err carries a BoardError of the given category
func IsCategory(err error, category ErrorCategory) bool {
	var boardErr *BoardError
	if errors.As(err, &boardErr) {
		return boardErr.Category == category
	}
	return false
}

// GetErrorSeverity returns the severity level of an error
func GetErrorSeverity(err error) string {
	var boardErr *BoardError
	if errors.As(err, &boardErr) {
		switch boardErr.Category {
		case ErrorCategoryListener:
			return "WARNING"
		case ErrorCategoryValidation, ErrorCategoryInput:
			return "ERROR"
		case ErrorCategoryConfiguration:
			return "CRITICAL"
		default:
			return "ERROR"
		}
	}
	return "ERROR"
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Join builds a short, single line description of several errors
func Join(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, DisplayErrorSummary(err))
	}
	return strings.Join(parts, "; ")
}
