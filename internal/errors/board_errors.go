package errors

import (
	"fmt"
	"strings"
)

// ErrorCategory represents the category of error
type ErrorCategory string

const (
	// ErrorCategoryInput represents malformed or unknown task input
	ErrorCategoryInput ErrorCategory = "INPUT"
	// ErrorCategoryListener represents a listener that failed during delivery
	ErrorCategoryListener ErrorCategory = "LISTENER"
	// ErrorCategoryValidation represents validation errors
	ErrorCategoryValidation ErrorCategory = "VALIDATION"
	// ErrorCategoryConfiguration represents configuration errors
	ErrorCategoryConfiguration ErrorCategory = "CONFIGURATION"
)

// BoardError represents a structured error with context and troubleshooting information
type BoardError struct {
	Category        ErrorCategory
	Code            string
	Message         string
	Operation       string
	Context         map[string]interface{}
	Troubleshooting []string
	OriginalError   error
}

// Error implements the error interface
func (e *BoardError) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s-%s: %s", e.Category, e.Code, e.Message))

	if e.Operation != "" {
		sb.WriteString(fmt.Sprintf("\nOperation: %s", e.Operation))
	}

	if len(e.Context) > 0 {
		sb.WriteString("\nContext:")
		for _, key := range sortedKeys(e.Context) {
			sb.WriteString(fmt.Sprintf("\n  %s: %v", key, e.Context[key]))
		}
	}

	if len(e.Troubleshooting) > 0 {
		sb.WriteString("\nTroubleshooting:")
		for i, step := range e.Troubleshooting {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}

	if e.OriginalError != nil {
		sb.WriteString(fmt.Sprintf("\nUnderlying error: %v", e.OriginalError))
	}

	return sb.String()
}

// Unwrap returns the original error for error chain compatibility
func (e *BoardError) Unwrap() error {
	return e.OriginalError
}

// Is reports whether target is a BoardError with the same category and code.
func (e *BoardError) Is(target error) bool {
	t, ok := target.(*BoardError)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// NewBoardError creates a new board error with the specified parameters
func NewBoardError(category ErrorCategory, code, message, operation string) *BoardError {
	return &BoardError{
		Category:        category,
		Code:            code,
		Message:         message,
		Operation:       operation,
		Context:         make(map[string]interface{}),
		Troubleshooting: []string{},
	}
}

// WithContext adds context information to the error
func (e *BoardError) WithContext(key string, value interface{}) *BoardError {
	e.Context[key] = value
	return e
}

// WithTroubleshooting adds troubleshooting steps to the error
func (e *BoardError) WithTroubleshooting(steps ...string) *BoardError {
	e.Troubleshooting = append(e.Troubleshooting, steps...)
	return e
}

// WithOriginalError adds the original error
func (e *BoardError) WithOriginalError(err error) *BoardError {
	e.OriginalError = err
	return e
}

// NewInputError creates a new task input error
func NewInputError(code, message, operation string) *BoardError {
	return NewBoardError(ErrorCategoryInput, code, message, operation)
}

// NewListenerError creates a new listener delivery error
func NewListenerError(code, message, operation string) *BoardError {
	return NewBoardError(ErrorCategoryListener, code, message, operation)
}

// NewValidationError creates a new validation error
func NewValidationError(code, message, operation string) *BoardError {
	return NewBoardError(ErrorCategoryValidation, code, message, operation)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(code, message, operation string) *BoardError {
	return NewBoardError(ErrorCategoryConfiguration, code, message, operation)
}
