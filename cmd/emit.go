package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maxkimambo/boardsync/internal/bus"
	boarderrors "github.com/maxkimambo/boardsync/internal/errors"
	"github.com/maxkimambo/boardsync/internal/logger"
	"github.com/maxkimambo/boardsync/internal/render"
	"github.com/maxkimambo/boardsync/internal/report"
	"github.com/maxkimambo/boardsync/internal/status"
)

type emitOptions struct {
	taskID string
	title  string
	status string
	column string
	patch  string
	from   string
	to     string
	source string
	fail   []string
}

// delivery is what a probe listener saw.
type delivery struct {
	listener string
	event    bus.Event
}

func newEmitCmd(opts *rootOptions) *cobra.Command {
	eo := &emitOptions{}

	cmd := &cobra.Command{
		Use:       "emit TOPIC",
		Short:     "Emit one task event and show what each listener received",
		ValidArgs: []string{"task_created", "task_updated", "task_moved", "task_deleted"},
		Args:      cobra.ExactArgs(1),
		Long: `Builds a bus, subscribes probe listeners for board, backlog, sprints and
status_report to every topic, emits a single event and prints what each probe
received along with the bus statistics.

Example:
boardsync emit task_updated --task 999 --patch '{"status": 15}' --source debug_test
boardsync emit task_moved --task 42 --from em-andamento --to concluido
boardsync emit task_created --task 7 --title "Write docs" --column a-fazer
boardsync emit task_deleted --task 7 --fail sprints
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			topic, err := bus.ParseTopic(args[0])
			if err != nil {
				return err
			}
			if eo.taskID == "" {
				return boarderrors.NewValidationFailedError("task", eo.taskID, "Event emission").
					WithTroubleshooting("Pass --task ID")
			}

			b, err := opts.newBus()
			if err != nil {
				return err
			}
			received, err := attachProbes(b, eo.fail)
			if err != nil {
				return err
			}

			logger.Starting(fmt.Sprintf("Emitting %s for task %s as %q", topic, eo.taskID, eo.source))
			if err := emitOne(b, topic, eo); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderDeliveries(*received))
			fmt.Fprintln(out, report.NewReporter().RenderStats(b.Stats()))
			return nil
		},
	}

	cmd.Flags().StringVar(&eo.taskID, "task", "", "Task id (required)")
	cmd.Flags().StringVar(&eo.title, "title", "", "Task title (task_created)")
	cmd.Flags().StringVar(&eo.status, "status", "", "Task status (task_created)")
	cmd.Flags().StringVar(&eo.column, "column", "", "Column identifier (task_created)")
	cmd.Flags().StringVar(&eo.patch, "patch", "{}", "JSON patch (task_updated)")
	cmd.Flags().StringVar(&eo.from, "from", "", "Source column (task_moved)")
	cmd.Flags().StringVar(&eo.to, "to", "", "Destination column (task_moved)")
	cmd.Flags().StringVar(&eo.source, "source", "cli", "Emitter tag carried in the event")
	cmd.Flags().StringSliceVar(&eo.fail, "fail", nil, "Probe listeners that should fail, to see delivery continue")
	return cmd
}

// attachProbes subscribes one recording listener per UI module to every
// topic. Probes named in failing return an error after recording.
func attachProbes(b *bus.Bus, failing []string) (*[]delivery, error) {
	received := &[]delivery{}
	shouldFail := make(map[string]bool, len(failing))
	for _, name := range failing {
		shouldFail[strings.TrimSpace(name)] = true
	}

	for _, module := range uiModules {
		probe := func(evt bus.Event) error {
			*received = append(*received, delivery{listener: module, event: evt})
			logger.Debug("event received", logger.WithFields(map[string]interface{}{
				"source":   module,
				"topic":    evt.Topic.String(),
				"event_id": evt.Metadata.ID,
			})...)
			if shouldFail[module] {
				return fmt.Errorf("probe %s asked to fail", module)
			}
			return nil
		}
		for _, topic := range bus.Topics {
			if err := b.On(topic, module, probe); err != nil {
				return nil, err
			}
		}
	}
	return received, nil
}

func emitOne(b *bus.Bus, topic bus.Topic, eo *emitOptions) error {
	switch topic {
	case bus.TopicTaskCreated:
		return b.EmitTaskCreated(status.Task{
			ID:               eo.taskID,
			Title:            eo.title,
			Status:           eo.status,
			ColumnIdentifier: eo.column,
		}, eo.source)
	case bus.TopicTaskUpdated:
		patch, err := status.ParsePatch([]byte(eo.patch))
		if err != nil {
			return boarderrors.NewMalformedInputError("--patch", err)
		}
		return b.EmitTaskUpdated(eo.taskID, patch, eo.source)
	case bus.TopicTaskMoved:
		if eo.to == "" {
			return boarderrors.NewValidationFailedError("to", eo.to, "Event emission").
				WithTroubleshooting("task_moved needs --to COLUMN")
		}
		return b.EmitTaskMoved(eo.taskID, eo.from, eo.to, eo.source)
	case bus.TopicTaskDeleted:
		return b.EmitTaskDeleted(eo.taskID, eo.source)
	}
	return boarderrors.NewUnknownTopicError(string(topic))
}

func renderDeliveries(received []delivery) string {
	table := render.NewTable("Listener", "Topic", "Task", "Emitter", "Seq", "Payload")
	for _, d := range received {
		table.AddRow(
			d.listener,
			d.event.Topic.String(),
			bus.TaskID(d.event.Payload),
			d.event.Source(),
			fmt.Sprintf("%d", d.event.Metadata.Sequence),
			describePayload(d.event.Payload),
		)
	}
	if table.Rows() == 0 {
		return render.Warning("No deliveries", "No listener received the event.")
	}
	return table.String()
}

func describePayload(p bus.Payload) string {
	switch v := p.(type) {
	case bus.TaskCreated:
		return fmt.Sprintf("status=%s overdue=%s", v.Status, yesNo(v.Overdue))
	case bus.TaskUpdated:
		if !v.StatusChanged {
			return "status unchanged"
		}
		if v.PreviousStatus != "" {
			return fmt.Sprintf("status %s -> %s", v.PreviousStatus, v.NewStatus)
		}
		return fmt.Sprintf("status_changed new_status=%s", v.NewStatus)
	case bus.TaskMoved:
		return fmt.Sprintf("%s -> %s new_status=%s completed=%s",
			v.FromColumn, v.ToColumn, v.NewStatus, yesNo(v.Completed))
	case bus.TaskDeleted:
		return "deleted"
	}
	return ""
}
