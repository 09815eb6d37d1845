package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	boarderrors "github.com/maxkimambo/boardsync/internal/errors"
	"github.com/maxkimambo/boardsync/internal/status"
)

// uiModules are the surfaces that mirror task state from the bus.
var uiModules = []string{"board", "backlog", "sprints", "status_report"}

// readTasks loads a JSON task list from path, or from stdin when path is "-".
func readTasks(cmd *cobra.Command, path string) ([]status.Task, error) {
	if path == "" {
		return nil, boarderrors.NewValidationFailedError("tasks", path, "Task loading").
			WithTroubleshooting("Pass --tasks FILE, or --tasks - to read from stdin")
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading tasks from %s: %w", path, err)
	}

	tasks, err := status.ParseTasks(data)
	if err != nil {
		return nil, boarderrors.NewMalformedInputError(path, err)
	}
	return tasks, nil
}

// parseAssignment splits a "key=value" flag value.
// Input examples:
//   - "42=concluido" → "42", "concluido"
//   - "7={\"status\": \"DONE\"}" → "7", "{\"status\": \"DONE\"}"
func parseAssignment(flag, s string) (string, string, error) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 {
		return "", "", boarderrors.NewValidationFailedError(flag, s, "Flag parsing").
			WithTroubleshooting(fmt.Sprintf("Expected --%s ID=VALUE", flag))
	}

	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", boarderrors.NewValidationFailedError(flag, s, "Flag parsing").
			WithTroubleshooting("Task id cannot be empty")
	}
	return key, value, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
