package errors

import (
	"errors"
	"fmt"
	"strings"
)

// DisplayError formats an error for user-friendly display
func DisplayError(err error) string {
	var boardErr *BoardError
	if errors.As(err, &boardErr) {
		return boardErr.Error()
	}

	return fmt.Sprintf("Error: %v", err)
}

// DisplayErrorSummary provides a brief summary of the error for logs
func DisplayErrorSummary(err error) string {
	var boardErr *BoardError
	if errors.As(err, &boardErr) {
		return fmt.Sprintf("%s-%s: %s", boardErr.Category, boardErr.Code, boardErr.Message)
	}

	errStr := err.Error()
	if len(errStr) > 100 {
		return errStr[:97] + "..."
	}
	return errStr
}

// ShouldDisplayTroubleshooting determines if troubleshooting info should be shown
func ShouldDisplayTroubleshooting(err error) bool {
	var boardErr *BoardError
	if errors.As(err, &boardErr) {
		return len(boardErr.Troubleshooting) > 0
	}
	return false
}

// FormatForCLI formats an error for command-line display with proper spacing
func FormatForCLI(err error) string {
	var boardErr *BoardError
	if !errors.As(err, &boardErr) {
		return "\n" + DisplayError(err) + "\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n%s Error [%s-%s]\n",
		GetErrorSeverity(boardErr), boardErr.Category, boardErr.Code))
	sb.WriteString(fmt.Sprintf("  %s\n", boardErr.Message))

	if boardErr.Operation != "" {
		sb.WriteString(fmt.Sprintf("\nFailed Operation: %s\n", boardErr.Operation))
	}

	if len(boardErr.Context) > 0 {
		sb.WriteString("\nDetails:\n")
		for _, key := range sortedKeys(boardErr.Context) {
			sb.WriteString(fmt.Sprintf("  %s: %v\n", key, boardErr.Context[key]))
		}
	}

	if len(boardErr.Troubleshooting) > 0 {
		sb.WriteString("\nHow to resolve:\n")
		for i, step := range boardErr.Troubleshooting {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
		}
	}

	if boardErr.OriginalError != nil {
		sb.WriteString(fmt.Sprintf("\nTechnical details: %v\n", boardErr.OriginalError))
	}

	return sb.String()
}
