package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxkimambo/boardsync/internal/board"
	boarderrors "github.com/maxkimambo/boardsync/internal/errors"
	"github.com/maxkimambo/boardsync/internal/logger"
	"github.com/maxkimambo/boardsync/internal/report"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var (
		tasksPath string
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that completion badges agree across surfaces",
		Long: `Audits the task list for tasks whose status field and column disagree on
completion, which makes the kanban badge and the status report disagree.

Exits non-zero when such discrepancies exist. With --strict, drift between
non-completed states and unresolved tasks also fail the check.

Example:
boardsync check --tasks board.json
boardsync check --tasks board.json --strict
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := readTasks(cmd, tasksPath)
			if err != nil {
				return err
			}
			r, err := opts.cfg.NewResolver()
			if err != nil {
				return err
			}

			issues := board.Audit(tasks, r)
			blocking := 0
			for _, issue := range issues {
				if issue.Kind.Blocking() {
					blocking++
					logger.Mismatchf("task %s: %s", issue.Task.ID, issue.Detail)
					continue
				}
				logger.Debug(issue.Detail, logger.WithFields(map[string]interface{}{
					"task": issue.Task.ID,
					"kind": string(issue.Kind),
				})...)
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.NewReporter().RenderIssues(issues))

			if blocking > 0 {
				return boarderrors.NewBadgeMismatchError(blocking)
			}
			if strict && len(issues) > 0 {
				return boarderrors.NewBadgeMismatchError(len(issues)).
					WithContext("strict", true)
			}

			logger.Successf("%d task(s) checked", len(tasks))
			return nil
		},
	}

	cmd.Flags().StringVarP(&tasksPath, "tasks", "t", "", "JSON file with the task list, or - for stdin (required)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on any finding, not only badge mismatches")
	_ = cmd.MarkFlagRequired("tasks")
	return cmd
}
