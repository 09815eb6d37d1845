package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/maxkimambo/boardsync/internal/board"
	"github.com/maxkimambo/boardsync/internal/bus"
	boarderrors "github.com/maxkimambo/boardsync/internal/errors"
	"github.com/maxkimambo/boardsync/internal/logger"
	"github.com/maxkimambo/boardsync/internal/render"
	"github.com/maxkimambo/boardsync/internal/report"
	"github.com/maxkimambo/boardsync/internal/status"
)

// activitySource tags the listener that narrates bus traffic.
const activitySource = "activity"

type simulateOptions struct {
	tasksPath string
	creates   []string
	moves     []string
	updates   []string
	deletes   []string
	source    string
}

func newSimulateCmd(opts *rootOptions) *cobra.Command {
	so := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay board changes and check every surface stays in sync",
		Long: `Loads a task list onto an in-memory board, subscribes the board, backlog,
sprints and status_report views to the bus, then applies the requested
changes. Creates run first, then moves, updates and deletes, each in the
order given.

Prints the resulting status report, whether each view still agrees with
the board, and the bus statistics.

Example:
boardsync simulate --tasks board.json --move 42=concluido --move 7=em-revisao
boardsync simulate --tasks board.json --update '999={"status": 15}' --delete 3
boardsync simulate --tasks board.json --create '{"id": "50", "column_identifier": "a-fazer"}'
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.newBus()
			if err != nil {
				return err
			}
			brd, err := loadBoard(cmd, b, so.tasksPath)
			if err != nil {
				return err
			}

			views := make([]*board.View, 0, len(uiModules))
			for _, module := range uiModules {
				v, err := board.NewView(b, module, brd.Tasks())
				if err != nil {
					return err
				}
				views = append(views, v)
			}
			if err := narrate(b); err != nil {
				return err
			}

			logger.Starting(fmt.Sprintf("Simulating on %d task(s) as %q", brd.Len(), so.source))
			ops, errs := applyChanges(brd, so)

			r := b.Resolver()
			inSync := true
			for _, v := range views {
				if ids := v.Diverged(brd, r); len(ids) > 0 {
					inSync = false
					logger.Mismatchf("%s view disagrees with the board on task(s) %s", v.Source(), strings.Join(ids, ", "))
				}
			}

			reporter := report.NewReporter()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, reporter.Render(report.Summarize(brd.Tasks(), r)))
			fmt.Fprintln(out, renderViews(views, brd, r))
			fmt.Fprintln(out, reporter.RenderStats(b.Stats()))

			if len(errs) > 0 {
				lines := make([]string, 0, len(errs))
				for _, err := range errs {
					lines = append(lines, boarderrors.DisplayErrorSummary(err))
				}
				fmt.Fprintln(out, render.Error(fmt.Sprintf("%d change(s) failed", len(errs)), lines...))
				return fmt.Errorf("%d of %d change(s) failed: %s", len(errs), ops, boarderrors.Join(errs))
			}
			if inSync {
				logger.Successf("%d change(s) applied, all %d views in sync", ops, len(views))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&so.tasksPath, "tasks", "t", "", "JSON file with the task list, or - for stdin (required)")
	cmd.Flags().StringArrayVar(&so.creates, "create", nil, "Create a task from a JSON object")
	cmd.Flags().StringArrayVar(&so.moves, "move", nil, "Move a task: ID=COLUMN")
	cmd.Flags().StringArrayVar(&so.updates, "update", nil, "Patch a task: ID=JSON")
	cmd.Flags().StringSliceVar(&so.deletes, "delete", nil, "Delete tasks by id")
	cmd.Flags().StringVar(&so.source, "source", "board", "Emitter tag for the changes")
	_ = cmd.MarkFlagRequired("tasks")
	return cmd
}

func loadBoard(cmd *cobra.Command, b *bus.Bus, path string) (*board.Board, error) {
	if path != "-" && path != "" {
		return board.LoadFile(b, path)
	}
	tasks, err := readTasks(cmd, path)
	if err != nil {
		return nil, err
	}
	brd := board.New(b)
	if err := brd.Load(tasks); err != nil {
		return nil, err
	}
	return brd, nil
}

// narrate logs every event as a user-facing line.
func narrate(b *bus.Bus) error {
	handlers := map[bus.Topic]bus.Listener{
		bus.TopicTaskCreated: func(evt bus.Event) error {
			p := evt.Payload.(bus.TaskCreated)
			logger.Created(fmt.Sprintf("Task %s created as %s by %s", p.Task.ID, p.Status, evt.Source()))
			return nil
		},
		bus.TopicTaskUpdated: func(evt bus.Event) error {
			p := evt.Payload.(bus.TaskUpdated)
			if p.StatusChanged {
				logger.Updatedf("Task %s updated by %s: %s -> %s", p.TaskID, evt.Source(), p.PreviousStatus, p.NewStatus)
			} else {
				logger.Updatedf("Task %s updated by %s", p.TaskID, evt.Source())
			}
			return nil
		},
		bus.TopicTaskMoved: func(evt bus.Event) error {
			p := evt.Payload.(bus.TaskMoved)
			logger.Movedf("Task %s moved %s -> %s (%s) by %s", p.TaskID, p.FromColumn, p.ToColumn, p.NewStatus, evt.Source())
			return nil
		},
		bus.TopicTaskDeleted: func(evt bus.Event) error {
			logger.Deletedf("Task %s deleted by %s", bus.TaskID(evt.Payload), evt.Source())
			return nil
		},
	}
	for _, topic := range bus.Topics {
		if err := b.On(topic, activitySource, handlers[topic]); err != nil {
			return err
		}
	}
	return nil
}

// applyChanges runs every requested change, continuing past failures.
func applyChanges(brd *board.Board, so *simulateOptions) (int, []error) {
	var errs []error
	ops := 0
	record := func(err error) {
		ops++
		if err != nil {
			logger.Debug("change failed", logger.WithFields(map[string]interface{}{
				"error": boarderrors.DisplayErrorSummary(err),
			})...)
			errs = append(errs, err)
		}
	}

	for _, raw := range so.creates {
		if !gjson.Valid(raw) || !gjson.Parse(raw).IsObject() {
			record(boarderrors.NewMalformedInputError("--create", fmt.Errorf("expected a JSON object")))
			continue
		}
		record(brd.Create(status.TaskFromJSON(gjson.Parse(raw)), so.source))
	}

	for _, raw := range so.moves {
		id, column, err := parseAssignment("move", raw)
		if err != nil {
			record(err)
			continue
		}
		record(brd.Move(id, column, so.source))
	}

	for _, raw := range so.updates {
		id, body, err := parseAssignment("update", raw)
		if err != nil {
			record(err)
			continue
		}
		patch, err := status.ParsePatch([]byte(body))
		if err != nil {
			record(boarderrors.NewMalformedInputError("--update", err))
			continue
		}
		record(brd.Update(id, patch, so.source))
	}

	for _, id := range so.deletes {
		record(brd.Delete(strings.TrimSpace(id), so.source))
	}

	return ops, errs
}

func renderViews(views []*board.View, brd *board.Board, r status.Resolver) string {
	table := render.NewTable("View", "Events", "TODO", "IN_PROGRESS", "REVIEW", "DONE", "ARCHIVED", "In sync")
	for _, v := range views {
		counts := v.Counts()
		table.AddRow(
			v.Source(),
			fmt.Sprintf("%d", v.Seen()),
			fmt.Sprintf("%d", counts[status.Todo]),
			fmt.Sprintf("%d", counts[status.InProgress]),
			fmt.Sprintf("%d", counts[status.Review]),
			fmt.Sprintf("%d", counts[status.Done]),
			fmt.Sprintf("%d", counts[status.Archived]),
			yesNo(len(v.Diverged(brd, r)) == 0),
		)
	}
	return table.String()
}
