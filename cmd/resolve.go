package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxkimambo/boardsync/internal/logger"
	"github.com/maxkimambo/boardsync/internal/report"
	"github.com/maxkimambo/boardsync/internal/status"
)

func newResolveCmd(opts *rootOptions) *cobra.Command {
	var tasksPath string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the canonical status of every task",
		Long: `Resolves each task to TODO, IN_PROGRESS, REVIEW, DONE or ARCHIVED.

The status field wins when it holds a canonical code or a legacy label
(Concluído, Em andamento, Revisão, ...). Otherwise the column identifier is
matched against the keyword table, and tasks matching nothing fall back to TODO.
"Atrasado" only marks a task as overdue.

Example:
boardsync resolve --tasks board.json
cat board.json | boardsync resolve --tasks -
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

			logger.Starting(fmt.Sprintf("Resolving %d task(s)...", len(tasks)))
			for _, task := range tasks {
				res := r.Explain(task)
				if res.Basis == status.BasisFallback {
					logger.Warn("no rule matched, defaulting to TODO", logger.WithFields(map[string]interface{}{
						"task":   task.ID,
						"status": task.Status,
						"column": task.ColumnIdentifier,
					})...)
				}
			}

			reporter := report.NewReporter()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, reporter.RenderTasks(tasks, r))
			fmt.Fprintln(out, reporter.Render(report.Summarize(tasks, r)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&tasksPath, "tasks", "t", "", "JSON file with the task list, or - for stdin (required)")
	_ = cmd.MarkFlagRequired("tasks")
	return cmd
}
